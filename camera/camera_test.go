package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func box(x0, y0, x1, y1 float64) r2.Box {
	return r2.Box{Min: r2.Vec{X: x0, Y: y0}, Max: r2.Vec{X: x1, Y: y1}}
}

func TestSensorToDisplayCorners(t *testing.T) {
	cam := New(box(100, 50, 500, 350), 1280, 720)

	tests := []struct {
		name   string
		sx, sy float64
		dx, dy float64
	}{
		{"min corner", 100, 50, 0, 0},
		{"max corner", 500, 350, 1280, 720},
		{"center", 300, 200, 640, 360},
		{"outside left", 0, 50, -320, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := cam.SensorToDisplay(tt.sx, tt.sy)
			if math.Abs(dx-tt.dx) > 0.01 || math.Abs(dy-tt.dy) > 0.01 {
				t.Errorf("SensorToDisplay(%v, %v) = (%v, %v), want (%v, %v)", tt.sx, tt.sy, dx, dy, tt.dx, tt.dy)
			}
		})
	}
}

func TestDisplayToSensorRoundtrip(t *testing.T) {
	cam := New(box(40, 30, 600, 450), 1280, 800)

	testCases := []struct{ dx, dy float64 }{
		{640, 400}, // center
		{10, 10},   // top-left
		{1200, 700},
	}

	for _, tc := range testCases {
		sx, sy := cam.DisplayToSensor(tc.dx, tc.dy)
		dx, dy := cam.SensorToDisplay(sx, sy)
		if math.Abs(dx-tc.dx) > 0.01 || math.Abs(dy-tc.dy) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)", tc.dx, tc.dy, sx, sy, dx, dy)
		}
	}
}

func TestDegenerateROI(t *testing.T) {
	cam := New(box(10, 10, 10, 200), 1280, 720)

	dx, dy := cam.SensorToDisplay(10, 100)
	if dx != 0 || dy != 0 {
		t.Errorf("zero-width ROI should map to origin, got (%v, %v)", dx, dy)
	}
	if cam.Scale() != 0 {
		t.Errorf("Scale() = %v, want 0", cam.Scale())
	}
}

func TestCanonicalizesCorners(t *testing.T) {
	cam := New(box(500, 350, 100, 50), 400, 300)

	if cam.ROI.Min.X != 100 || cam.ROI.Min.Y != 50 {
		t.Errorf("ROI min = %v, want (100, 50)", cam.ROI.Min)
	}
	if !cam.Contains(100, 50) || !cam.Contains(500, 350) {
		t.Error("edges should be inside")
	}
	if cam.Contains(99, 60) {
		t.Error("point left of ROI reported inside")
	}
}

func TestSetROI(t *testing.T) {
	cam := New(box(0, 0, 640, 480), 1280, 960)

	if cam.SetROI(box(0, 0, 640, 480)) {
		t.Error("SetROI with identical box should report no change")
	}
	if !cam.SetROI(box(0, 0, 320, 240)) {
		t.Error("SetROI with new box should report change")
	}
	dx, dy := cam.SensorToDisplay(320, 240)
	if math.Abs(dx-1280) > 0.01 || math.Abs(dy-960) > 0.01 {
		t.Errorf("after SetROI got (%v, %v), want (1280, 960)", dx, dy)
	}
	if math.Abs(cam.Scale()-4) > 1e-9 {
		t.Errorf("Scale() = %v, want 4", cam.Scale())
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(box(0, 0, 100, 100), 200, 200)

	if !cam.IsVisible(50, 50, 1) {
		t.Error("center should be visible")
	}
	if !cam.IsVisible(-5, 50, 10) {
		t.Error("circle overlapping left edge should be visible")
	}
	if cam.IsVisible(-50, 50, 10) {
		t.Error("circle far outside should not be visible")
	}
}

func TestResize(t *testing.T) {
	cam := New(box(0, 0, 100, 100), 200, 200)
	cam.Resize(1000, 500)

	dx, dy := cam.SensorToDisplay(100, 100)
	if dx != 1000 || dy != 500 {
		t.Errorf("after Resize got (%v, %v), want (1000, 500)", dx, dy)
	}
}
