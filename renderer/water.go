package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgames/camera"
	"github.com/pthm-cable/sandgames/terrain"
)

const shimmerTrail = 6

type shimmer struct {
	x, y           float32 // display space
	vx, vy         float32
	trailX, trailY [shimmerTrail]float32
	trailLen       uint8
	life, maxLife  int32
	size           float32
}

// WaterShimmer draws faint drifting streaks over the water so the
// projected lakes read as moving water. Streaks that drift onto land die.
type WaterShimmer struct {
	width, height float32
	particles     []shimmer
	rng           *rand.Rand
}

// NewWaterShimmer creates count streaks over a width x height display.
func NewWaterShimmer(width, height int32, count int, seed int64) *WaterShimmer {
	return &WaterShimmer{
		width:     float32(width),
		height:    float32(height),
		particles: make([]shimmer, count),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Update advances every streak one frame and respawns dead ones on water.
func (w *WaterShimmer) Update(oracle terrain.Oracle, cam *camera.Camera, tick int32) {
	for i := range w.particles {
		p := &w.particles[i]
		if p.life <= 0 {
			w.respawn(p, oracle, cam)
			continue
		}

		copy(p.trailX[1:], p.trailX[:shimmerTrail-1])
		copy(p.trailY[1:], p.trailY[:shimmerTrail-1])
		p.trailX[0], p.trailY[0] = p.x, p.y
		if p.trailLen < shimmerTrail {
			p.trailLen++
		}

		// Slow curl so streaks do not move in straight lines.
		angle := float64(p.x*0.004+p.y*0.003) + float64(tick)*0.01
		p.vx += float32(math.Cos(angle)) * 0.02
		p.vy += float32(math.Sin(angle)) * 0.02
		p.vx *= 0.98
		p.vy *= 0.98
		p.x += p.vx
		p.y += p.vy
		p.life--

		sx, sy := cam.DisplayToSensor(float64(p.x), float64(p.y))
		if !oracle.IsUnderwater(sx, sy) {
			p.life = 0
		}
	}
}

func (w *WaterShimmer) respawn(p *shimmer, oracle terrain.Oracle, cam *camera.Camera) {
	// One try per frame keeps the cost flat when there is little water.
	x := w.rng.Float32() * w.width
	y := w.rng.Float32() * w.height
	sx, sy := cam.DisplayToSensor(float64(x), float64(y))
	if !oracle.IsUnderwater(sx, sy) {
		return
	}
	*p = shimmer{
		x:       x,
		y:       y,
		vx:      (w.rng.Float32() - 0.5) * 0.6,
		vy:      (w.rng.Float32() - 0.5) * 0.6,
		maxLife: 120 + w.rng.Int31n(180),
		size:    0.6 + w.rng.Float32()*0.8,
	}
	p.life = p.maxLife
}

// Draw renders the streaks with additive blending.
func (w *WaterShimmer) Draw(tick int32) {
	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range w.particles {
		p := &w.particles[i]
		if p.life <= 0 || p.trailLen < 1 {
			continue
		}

		lifeRatio := float32(p.life) / float32(p.maxLife)
		fadeIn := float32(math.Min(float64(1-lifeRatio)*5, 1))
		fadeOut := float32(math.Min(float64(lifeRatio)*3, 1))
		pulse := float32(math.Sin(float64(tick)*0.05+float64(p.x+p.y)*0.01)*0.5 + 0.5)
		baseAlpha := fadeIn * fadeOut * (0.4 + pulse*0.6) * 90
		if baseAlpha < 2 {
			continue
		}

		prevX, prevY := p.x, p.y
		for j := uint8(0); j < p.trailLen; j++ {
			fade := 1 - float32(j)/float32(p.trailLen)
			c := rl.Color{R: 140, G: 200, B: 230, A: uint8(baseAlpha * fade * fade)}
			rl.DrawLineEx(
				rl.Vector2{X: prevX, Y: prevY},
				rl.Vector2{X: p.trailX[j], Y: p.trailY[j]},
				p.size*2*fade,
				c,
			)
			prevX, prevY = p.trailX[j], p.trailY[j]
		}
	}
	rl.EndBlendMode()
}

// Reset kills every streak, e.g. after the viewport changes.
func (w *WaterShimmer) Reset(width, height int32) {
	w.width, w.height = float32(width), float32(height)
	for i := range w.particles {
		w.particles[i] = shimmer{}
	}
}
