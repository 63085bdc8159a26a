package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgames/effects"
)

// CelebrationRenderer draws confetti and stars.
type CelebrationRenderer struct{}

// NewCelebrationRenderer creates a new celebration renderer.
func NewCelebrationRenderer() *CelebrationRenderer {
	return &CelebrationRenderer{}
}

// Draw renders the particles. t is the wall time in seconds, used for the
// star pulse.
func (r *CelebrationRenderer) Draw(confetti []effects.Confetti, stars []effects.Star, t float64) {
	for i := range stars {
		s := &stars[i]
		pulse := 0.6 + 0.4*math.Sin(t*s.Pulse)
		alpha := uint8(math.Max(0, math.Min(255, s.Alpha*pulse)))
		drawStar(float32(s.Pos.X), float32(s.Pos.Y), float32(s.Size/2), rl.Color{R: 255, G: 230, B: 90, A: alpha})
	}

	for i := range confetti {
		c := &confetti[i]
		size := float32(c.Size)
		rl.DrawRectanglePro(
			rl.Rectangle{X: float32(c.Pos.X), Y: float32(c.Pos.Y), Width: size, Height: size * 0.6},
			rl.Vector2{X: size / 2, Y: size * 0.3},
			float32(c.Rotation),
			c.Color,
		)
	}
}

// drawStar draws a five pointed star as a triangle fan.
func drawStar(cx, cy, outer float32, color rl.Color) {
	inner := outer * 0.45
	var pts [10]rl.Vector2
	for i := range pts {
		radius := outer
		if i%2 == 1 {
			radius = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts[i] = rl.Vector2{X: cx + radius*float32(math.Cos(a)), Y: cy + radius*float32(math.Sin(a))}
	}
	center := rl.Vector2{X: cx, Y: cy}
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		// Counter-clockwise winding for raylib.
		rl.DrawTriangle(center, next, pts[i], color)
	}
}
