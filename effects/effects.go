// Package effects holds the celebration particles shown between levels and on victory.
// The state is purely cosmetic; nothing in a session reads it back.
package effects

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sandgames/config"
)

// Confetti is one falling confetti piece, in display coordinates.
type Confetti struct {
	Pos, Vel      r2.Vec
	Size          float64
	Rotation      float64 // degrees
	RotationSpeed float64
	Color         color.RGBA
}

// Star is a pulsing star near the screen edges.
type Star struct {
	Pos   r2.Vec
	Size  float64
	Alpha float64 // 0..255
	Pulse float64 // pulse frequency, radians per second
}

const (
	starMinSize = 40
	starMaxSize = 100
)

var confettiColors = [...]color.RGBA{
	{255, 100, 100, 255},
	{100, 255, 100, 255},
	{100, 100, 255, 255},
	{255, 255, 100, 255},
	{200, 200, 255, 255},
}

// Layer owns the confetti and stars of one session.
type Layer struct {
	cfg    config.EffectsConfig
	rng    *rand.Rand
	bounds r2.Box

	Confetti []Confetti
	Stars    []Star

	generated bool
}

// New creates an empty layer.
func New(cfg config.EffectsConfig, rng *rand.Rand) *Layer {
	return &Layer{cfg: cfg, rng: rng}
}

// LevelComplete replaces the layer with confetti and stars over bounds.
func (l *Layer) LevelComplete(bounds r2.Box) {
	l.bounds = bounds
	l.generateConfetti()
	l.generateStars()
	l.generated = true
}

// Victory adds faster, larger gold confetti on top of the level complete effects.
func (l *Layer) Victory(bounds r2.Box) {
	l.bounds = bounds
	l.generateConfetti()
	w, h := size(bounds)
	for i := 0; i < l.cfg.VictoryConfetti; i++ {
		l.Confetti = append(l.Confetti, Confetti{
			Pos:           r2.Vec{X: bounds.Min.X + l.uniform(0, w), Y: bounds.Min.Y + l.uniform(0, h)},
			Vel:           r2.Vec{X: l.uniform(-3, 3), Y: l.uniform(-3, 3)},
			Size:          l.uniform(15, 30),
			Rotation:      l.uniform(0, 360),
			RotationSpeed: l.uniform(-8, 8),
			Color:         color.RGBA{uint8(l.uniform(200, 255)), uint8(l.uniform(200, 255)), 50, 255},
		})
	}
	l.generateStars()
	l.generated = true
}

// Update advances confetti one frame and pulses the stars at time now.
// Confetti that falls past the bottom edge wraps back above the top.
func (l *Layer) Update(now time.Duration) {
	w, _ := size(l.bounds)
	for i := range l.Confetti {
		p := &l.Confetti[i]
		p.Pos = r2.Add(p.Pos, p.Vel)
		p.Rotation += p.RotationSpeed

		p.Vel.Y += l.cfg.Gravity
		p.Vel = r2.Scale(l.cfg.Drag, p.Vel)

		if p.Pos.Y > l.bounds.Max.Y+50 {
			p.Pos.Y = l.bounds.Min.Y - 50
			p.Pos.X = l.bounds.Min.X + l.uniform(0, w)
		}
	}

	t := now.Seconds()
	for i := range l.Stars {
		s := &l.Stars[i]
		s.Alpha = 150 + 105*math.Sin(t*s.Pulse)
	}
}

// Clear drops all particles and resets the generated flag.
func (l *Layer) Clear() {
	l.Confetti = l.Confetti[:0]
	l.Stars = l.Stars[:0]
	l.generated = false
}

// Generated reports whether effects were generated since the last Clear.
func (l *Layer) Generated() bool {
	return l.generated
}

func (l *Layer) generateConfetti() {
	l.Confetti = l.Confetti[:0]
	w, h := size(l.bounds)
	for i := 0; i < l.cfg.Confetti; i++ {
		var y float64
		// Most confetti starts in the lower part of the screen
		if l.rng.Float64() < 0.7 {
			y = l.uniform(h*0.6, h+20)
		} else {
			y = l.uniform(-100, h*0.3)
		}
		l.Confetti = append(l.Confetti, Confetti{
			Pos:           r2.Vec{X: l.bounds.Min.X + l.uniform(0, w), Y: l.bounds.Min.Y + y},
			Vel:           r2.Vec{X: l.uniform(-1, 1), Y: l.uniform(1, 3)},
			Size:          l.uniform(8, 15),
			Rotation:      l.uniform(0, 360),
			RotationSpeed: l.uniform(-3, 3),
			Color:         confettiColors[l.rng.Intn(len(confettiColors))],
		})
	}
}

// generateStars places stars along the edges, keeping the center clear.
func (l *Layer) generateStars() {
	l.Stars = l.Stars[:0]
	w, h := size(l.bounds)
	for i := 0; i < l.cfg.Stars; i++ {
		var x, y float64
		if l.rng.Float64() < 0.5 {
			if l.rng.Float64() < 0.5 {
				x = l.uniform(0, 100)
			} else {
				x = l.uniform(w-100, w)
			}
			y = l.uniform(50, h-200)
		} else {
			x = l.uniform(100, w-100)
			if l.rng.Float64() < 0.5 {
				y = l.uniform(0, 80)
			} else {
				y = l.uniform(h-200, h-100)
			}
		}
		l.Stars = append(l.Stars, Star{
			Pos:   r2.Vec{X: l.bounds.Min.X + x, Y: l.bounds.Min.Y + y},
			Size:  l.uniform(starMinSize, starMaxSize),
			Alpha: l.uniform(80, 180),
			Pulse: l.uniform(0.3, 1.5),
		})
	}
}

func (l *Layer) uniform(lo, hi float64) float64 {
	return lo + l.rng.Float64()*(hi-lo)
}

func size(b r2.Box) (w, h float64) {
	return b.Max.X - b.Min.X, b.Max.Y - b.Min.Y
}
