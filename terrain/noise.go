package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/sandgames/config"
)

// NoiseField is a synthetic sand table built from fractal simplex noise.
// Used when no depth sensor is attached.
type NoiseField struct {
	noise      opensimplex.Noise
	scale      float64
	octaves    int
	lacunarity float64
	gain       float64
	seaLevel   float64
	relief     float64
}

// NewNoiseField creates a noise table from terrain config.
func NewNoiseField(cfg config.TerrainConfig) *NoiseField {
	octaves := cfg.Octaves
	if octaves < 1 {
		octaves = 1
	}
	return &NoiseField{
		noise:      opensimplex.New(cfg.Seed),
		scale:      cfg.Scale,
		octaves:    octaves,
		lacunarity: cfg.Lacunarity,
		gain:       cfg.Gain,
		seaLevel:   cfg.SeaLevel,
		relief:     cfg.Relief,
	}
}

// Elevation returns relief × (fbm − seaLevel) at a sensor point.
func (n *NoiseField) Elevation(x, y float64) float64 {
	return (n.fbm(x*n.scale, y*n.scale) - n.seaLevel) * n.relief
}

// fbm sums octaves of noise, normalized back to roughly [-1, 1].
func (n *NoiseField) fbm(x, y float64) float64 {
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < n.octaves; i++ {
		sum += amp * n.noise.Eval2(x*freq, y*freq)
		norm += amp
		amp *= n.gain
		freq *= n.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
