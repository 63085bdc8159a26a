package terrain

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sandgames/camera"
	"github.com/pthm-cable/sandgames/config"
)

func testCamera() *camera.Camera {
	return camera.New(r2.Box{Max: r2.Vec{X: 100, Y: 100}}, 200, 200)
}

func TestConstantSandbox(t *testing.T) {
	tests := []struct {
		name  string
		elev  Constant
		water bool
	}{
		{"deep water", -5, true},
		{"sea level is land", 0, false},
		{"land", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := NewSandbox(tt.elev, testCamera(), nil, 0)
			if got := sb.IsUnderwater(10, 10); got != tt.water {
				t.Errorf("IsUnderwater = %v, want %v", got, tt.water)
			}
			if got := sb.Elevation(10, 10); got != float64(tt.elev) {
				t.Errorf("Elevation = %v, want %v", got, float64(tt.elev))
			}
		})
	}
}

func TestSandboxSensorToDisplay(t *testing.T) {
	sb := NewSandbox(Constant(-1), testCamera(), nil, 0)
	x, y := sb.SensorToDisplay(50, 25)
	if math.Abs(x-100) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("SensorToDisplay = (%v, %v), want (100, 50)", x, y)
	}
}

func TestSandboxStabilization(t *testing.T) {
	var now time.Duration
	clock := func() time.Duration { return now }
	sb := NewSandbox(Constant(-1), testCamera(), clock, 500*time.Millisecond)

	if !sb.IsStabilized() {
		t.Fatal("fresh sandbox should be stabilized")
	}

	sb.Unsettle()
	if sb.IsStabilized() {
		t.Error("should be unsettled right after Unsettle")
	}

	now = 499 * time.Millisecond
	if sb.IsStabilized() {
		t.Error("should still be unsettled inside the warm-up window")
	}

	now = 500 * time.Millisecond
	if !sb.IsStabilized() {
		t.Error("should be stabilized once the warm-up elapsed")
	}
}

func TestSandboxWithoutClockAlwaysStable(t *testing.T) {
	sb := NewSandbox(Constant(-1), testCamera(), nil, time.Hour)
	sb.Unsettle()
	if !sb.IsStabilized() {
		t.Error("sandbox without clock should always be stabilized")
	}
}

func TestGridBilinear(t *testing.T) {
	// 2x2 frame: left column water, right column land
	g, err := NewGrid(2, 2, []float64{-10, 10, -10, 10})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"sample", 0, 0, -10},
		{"midpoint", 0.5, 0.5, 0},
		{"quarter", 0.25, 1, -5},
		{"far corner", 1, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Elevation(tt.x, tt.y); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Elevation(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestGridOutsideIsLand(t *testing.T) {
	g, err := NewGrid(2, 2, []float64{-1, -1, -1, -1})
	if err != nil {
		t.Fatal(err)
	}
	sb := NewSandbox(g, testCamera(), nil, 0)

	for _, p := range [][2]float64{{-0.1, 0}, {0, 1.5}, {5, 5}, {math.NaN(), 0}} {
		if sb.IsUnderwater(p[0], p[1]) {
			t.Errorf("point %v outside the frame reported as water", p)
		}
	}
	if !sb.IsUnderwater(0.5, 0.5) {
		t.Error("interior point should be water")
	}
}

func TestNewGridValidates(t *testing.T) {
	if _, err := NewGrid(0, 3, nil); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := NewGrid(2, 2, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for short data")
	}
}

func TestNoiseFieldDeterministic(t *testing.T) {
	cfg := config.TerrainConfig{Seed: 7, Scale: 0.01, Octaves: 3, Lacunarity: 2, Gain: 0.5, SeaLevel: 0.1, Relief: 100}
	a := NewNoiseField(cfg)
	b := NewNoiseField(cfg)

	var water, land int
	for x := 0.0; x < 640; x += 16 {
		for y := 0.0; y < 480; y += 16 {
			ea, eb := a.Elevation(x, y), b.Elevation(x, y)
			if ea != eb {
				t.Fatalf("same seed gave %v and %v at (%v, %v)", ea, eb, x, y)
			}
			if ea < 0 {
				water++
			} else {
				land++
			}
		}
	}
	if water == 0 || land == 0 {
		t.Errorf("expected a mix of water and land, got water=%d land=%d", water, land)
	}
}

func TestNoiseFieldSeaLevelShift(t *testing.T) {
	// Raising the sea level lowers every elevation by the same amount
	low := NewNoiseField(config.TerrainConfig{Seed: 1, Scale: 0.02, Octaves: 2, Lacunarity: 2, Gain: 0.5, SeaLevel: 0, Relief: 10})
	high := NewNoiseField(config.TerrainConfig{Seed: 1, Scale: 0.02, Octaves: 2, Lacunarity: 2, Gain: 0.5, SeaLevel: 0.5, Relief: 10})

	for _, p := range [][2]float64{{3, 4}, {100, 20}, {250, 300}} {
		d := low.Elevation(p[0], p[1]) - high.Elevation(p[0], p[1])
		if math.Abs(d-5) > 1e-9 {
			t.Errorf("elevation shift at %v = %v, want 5", p, d)
		}
	}
}
