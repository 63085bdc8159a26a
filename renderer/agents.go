package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgames/camera"
	"github.com/pthm-cable/sandgames/game"
)

var (
	fishColor  = rl.Color{R: 255, G: 150, B: 40, A: 255}
	sharkColor = rl.Color{R: 110, G: 120, B: 135, A: 255}
	foodColor  = rl.Color{R: 120, G: 230, B: 90, A: 255}
)

// AgentRenderer draws prey, threats and food from a snapshot.
type AgentRenderer struct{}

// NewAgentRenderer creates a new agent renderer.
func NewAgentRenderer() *AgentRenderer {
	return &AgentRenderer{}
}

// Draw renders every agent of snap through cam. t is the wall time in
// seconds, used to animate tails and food.
func (r *AgentRenderer) Draw(snap *game.Snapshot, cam *camera.Camera, t float64) {
	scale := float32(cam.Scale())

	for i, f := range snap.Food {
		if !f.Active || !cam.IsVisible(f.X, f.Y, f.Size) {
			continue
		}
		x, y := cam.SensorToDisplay(f.X, f.Y)
		pulse := float32(1 + 0.15*math.Sin(t*4+float64(i)))
		radius := float32(f.Size) / 2 * scale * pulse
		rl.DrawCircle(int32(x), int32(y), radius*1.6, rl.Color{R: foodColor.R, G: foodColor.G, B: foodColor.B, A: 50})
		rl.DrawCircle(int32(x), int32(y), radius, foodColor)
	}

	for i, a := range snap.Prey {
		if !cam.IsVisible(a.X, a.Y, a.Size) {
			continue
		}
		drawFish(a, cam, scale, t+float64(i)*0.37, fishColor)
	}
	for i, a := range snap.Threats {
		if !cam.IsVisible(a.X, a.Y, a.Size) {
			continue
		}
		drawFish(a, cam, scale, t+float64(i)*0.61, sharkColor)
		x, y := cam.SensorToDisplay(a.X, a.Y)
		heading := headingOf(a)
		// Dorsal fin.
		drawOrientedTriangle(float32(x), float32(y), heading-math.Pi/2, float32(a.Size)*scale*0.25, sharkColor)
	}
}

// drawFish draws a body triangle with a wagging tail.
func drawFish(a game.AgentView, cam *camera.Camera, scale float32, t float64, color rl.Color) {
	x, y := cam.SensorToDisplay(a.X, a.Y)
	heading := headingOf(a)
	radius := float32(a.Size) / 2 * scale

	drawOrientedTriangle(float32(x), float32(y), heading, radius, color)

	wag := float32(math.Sin(t*10)) * 0.5
	tailAngle := heading + math.Pi + wag
	tx := float32(x) + float32(math.Cos(float64(tailAngle)))*radius*1.2
	ty := float32(y) + float32(math.Sin(float64(tailAngle)))*radius*1.2
	drawOrientedTriangle(tx, ty, heading+wag, radius*0.5, color)
}

// headingOf returns the direction of travel, pointing right when idle.
func headingOf(a game.AgentView) float32 {
	if a.VX == 0 && a.VY == 0 {
		return 0
	}
	return float32(math.Atan2(a.VY, a.VX))
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	front := rl.Vector2{X: x + cos*radius*1.5, Y: y + sin*radius*1.5}

	backAngle := float64(heading) + math.Pi*0.8
	backLeft := rl.Vector2{X: x + float32(math.Cos(backAngle))*radius, Y: y + float32(math.Sin(backAngle))*radius}

	backAngle = float64(heading) - math.Pi*0.8
	backRight := rl.Vector2{X: x + float32(math.Cos(backAngle))*radius, Y: y + float32(math.Sin(backAngle))*radius}

	// DrawTriangle requires counter-clockwise winding
	rl.DrawTriangle(front, backRight, backLeft, color)
}
