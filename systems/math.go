package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// limit caps the magnitude of v at max.
func limit(v r2.Vec, max float64) r2.Vec {
	n := r2.Norm(v)
	if n > max && n > 0 {
		return r2.Scale(max/n, v)
	}
	return v
}

// setMag returns v rescaled to length mag. Zero vectors stay zero.
func setMag(v r2.Vec, mag float64) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(mag/n, v)
}

// distance returns the Euclidean distance between two points.
func distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// heading returns the angle of v in radians.
func heading(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// boxSize returns the width and height of b.
func boxSize(b r2.Box) (w, h float64) {
	return b.Max.X - b.Min.X, b.Max.Y - b.Min.Y
}
