package systems

import "gonum.org/v1/gonum/spatial/r2"

// DefaultMaxAttempts is the rejection sampling budget per placement.
const DefaultMaxAttempts = 100

// Rand is the random source used for placement.
type Rand interface {
	Float64() float64
}

// InsetRegion returns the central sub-rectangle of roi with inset removed
// from every side, as a fraction of the roi extent on that axis.
func InsetRegion(roi r2.Box, inset float64) r2.Box {
	w, h := boxSize(roi)
	return r2.Box{
		Min: r2.Vec{X: roi.Min.X + inset*w, Y: roi.Min.Y + inset*h},
		Max: r2.Vec{X: roi.Max.X - inset*w, Y: roi.Max.Y - inset*h},
	}
}

// Placer finds underwater spawn points by rejection sampling.
type Placer struct {
	Water       WaterMap
	Rand        Rand
	MaxAttempts int

	// Attempts counts candidates drawn by the last Find
	Attempts int
}

// NewPlacer creates a placer with the default attempt budget.
func NewPlacer(water WaterMap, rng Rand) *Placer {
	return &Placer{Water: water, Rand: rng, MaxAttempts: DefaultMaxAttempts}
}

// Find draws uniform points in region until one is under water.
// Returns false once the attempt budget is spent; there is no fallback point.
func (p *Placer) Find(region r2.Box) (r2.Vec, bool) {
	w, h := boxSize(region)
	budget := p.MaxAttempts
	if budget <= 0 {
		budget = DefaultMaxAttempts
	}

	p.Attempts = 0
	for p.Attempts < budget {
		p.Attempts++
		candidate := r2.Vec{
			X: region.Min.X + p.Rand.Float64()*w,
			Y: region.Min.Y + p.Rand.Float64()*h,
		}
		if p.Water.IsUnderwater(candidate.X, candidate.Y) {
			return candidate, true
		}
	}
	return r2.Vec{}, false
}
