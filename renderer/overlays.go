package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sandgames/camera"
	"github.com/pthm-cable/sandgames/config"
	"github.com/pthm-cable/sandgames/game"
	"github.com/pthm-cable/sandgames/terrain"
)

// Overlays selects the operator debug layers to draw.
type Overlays struct {
	WaterMask    bool
	SpawnRegion  bool
	ThreatRadius bool
	Velocity     bool
	PickupRange  bool
}

// DebugRenderer draws operator overlays on top of the preview.
type DebugRenderer struct {
	cfg *config.Config
}

// NewDebugRenderer creates an overlay renderer reading radii and insets from cfg.
func NewDebugRenderer(cfg *config.Config) *DebugRenderer {
	return &DebugRenderer{cfg: cfg}
}

// Draw renders the enabled overlays.
func (d *DebugRenderer) Draw(on Overlays, snap *game.Snapshot, oracle terrain.Oracle, cam *camera.Camera) {
	scale := float32(cam.Scale())

	if on.WaterMask {
		d.drawWaterMask(oracle, cam)
	}
	if on.SpawnRegion {
		d.drawRegion(cam, d.cfg.Spawn.AgentInset, rl.Color{R: 255, G: 255, B: 0, A: 200})
		d.drawRegion(cam, d.cfg.Spawn.CollectibleInset, rl.Color{R: 120, G: 255, B: 120, A: 200})
	}
	if on.ThreatRadius {
		for _, a := range snap.Threats {
			x, y := cam.SensorToDisplay(a.X, a.Y)
			r := float32(a.Size*d.cfg.Steering.ThreatInfluence) * scale
			rl.DrawCircleLines(int32(x), int32(y), r, rl.Color{R: 255, G: 60, B: 60, A: 180})
		}
	}
	if on.PickupRange {
		for _, a := range snap.Prey {
			x, y := cam.SensorToDisplay(a.X, a.Y)
			r := float32(a.Size+d.cfg.Collectibles.CollectMargin) * scale
			rl.DrawCircleLines(int32(x), int32(y), r, rl.Color{R: 120, G: 255, B: 120, A: 120})
		}
	}
	if on.Velocity {
		for _, group := range [][]game.AgentView{snap.Prey, snap.Threats} {
			for _, a := range group {
				x, y := cam.SensorToDisplay(a.X, a.Y)
				ex, ey := cam.SensorToDisplay(a.X+a.VX*10, a.Y+a.VY*10)
				rl.DrawLineEx(
					rl.Vector2{X: float32(x), Y: float32(y)},
					rl.Vector2{X: float32(ex), Y: float32(ey)},
					1.5, rl.Color{R: 0, G: 255, B: 255, A: 200},
				)
			}
		}
	}
}

// drawWaterMask tints every underwater cell of a coarse display grid.
func (d *DebugRenderer) drawWaterMask(oracle terrain.Oracle, cam *camera.Camera) {
	const cell = 16
	tint := rl.Color{R: 0, G: 120, B: 255, A: 70}
	for y := 0.0; y < cam.ViewportH; y += cell {
		for x := 0.0; x < cam.ViewportW; x += cell {
			sx, sy := cam.DisplayToSensor(x+cell/2, y+cell/2)
			if oracle.IsUnderwater(sx, sy) {
				rl.DrawRectangle(int32(x), int32(y), cell, cell, tint)
			}
		}
	}
}

// drawRegion outlines the ROI shrunk by inset per side.
func (d *DebugRenderer) drawRegion(cam *camera.Camera, inset float64, color rl.Color) {
	roi := cam.ROI
	w, h := roi.Size().X, roi.Size().Y
	region := r2.Box{
		Min: r2.Vec{X: roi.Min.X + w*inset, Y: roi.Min.Y + h*inset},
		Max: r2.Vec{X: roi.Max.X - w*inset, Y: roi.Max.Y - h*inset},
	}
	x0, y0 := cam.SensorToDisplay(region.Min.X, region.Min.Y)
	x1, y1 := cam.SensorToDisplay(region.Max.X, region.Max.Y)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: float32(x0), Y: float32(y0), Width: float32(x1 - x0), Height: float32(y1 - y0)}, 2, color)
}
