package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgames/camera"
	"github.com/pthm-cable/sandgames/config"
	"github.com/pthm-cable/sandgames/game"
	"github.com/pthm-cable/sandgames/terrain"
)

const (
	terrainCell  = 4
	bakeInterval = 15 // frames between terrain rebakes
	shimmerCount = 400
)

// Projector composes the projected scene: terrain, water, agents,
// celebration particles and the operator overlays.
type Projector struct {
	cam *camera.Camera

	terrain     *TerrainRenderer
	water       *WaterShimmer
	agents      *AgentRenderer
	celebration *CelebrationRenderer
	debug       *DebugRenderer

	lastBake int32
	stale    bool
}

// NewProjector creates the scene renderer for the camera's viewport.
func NewProjector(cfg *config.Config, cam *camera.Camera) *Projector {
	w, h := int32(cam.ViewportW), int32(cam.ViewportH)
	return &Projector{
		cam:         cam,
		terrain:     NewTerrainRenderer(w, h, terrainCell),
		water:       NewWaterShimmer(w, h, shimmerCount, cfg.Terrain.Seed),
		agents:      NewAgentRenderer(),
		celebration: NewCelebrationRenderer(),
		debug:       NewDebugRenderer(cfg),
		stale:       true,
	}
}

// Invalidate forces a terrain rebake on the next frame.
func (p *Projector) Invalidate() {
	p.stale = true
}

// Draw renders one frame. Sand moves slowly, so the terrain texture is
// only rebaked every few frames or after Invalidate.
func (p *Projector) Draw(snap *game.Snapshot, oracle terrain.Oracle, tick int32, t float64, on Overlays) {
	if p.stale || tick-p.lastBake >= bakeInterval {
		p.terrain.Bake(oracle, p.cam)
		p.lastBake = tick
		p.stale = false
	}

	p.terrain.Draw(rl.Rectangle{Width: float32(p.cam.ViewportW), Height: float32(p.cam.ViewportH)})
	p.water.Update(oracle, p.cam, tick)
	p.water.Draw(tick)
	p.agents.Draw(snap, p.cam, t)
	p.debug.Draw(on, snap, oracle, p.cam)
	p.celebration.Draw(snap.Confetti, snap.Stars, t)
}

// Resize rebuilds the viewport-sized buffers after the window changes size.
func (p *Projector) Resize(width, height int32) {
	p.cam.Resize(float64(width), float64(height))
	p.terrain.Unload()
	p.terrain = NewTerrainRenderer(width, height, terrainCell)
	p.water.Reset(width, height)
	p.stale = true
}

// Unload frees GPU resources.
func (p *Projector) Unload() {
	p.terrain.Unload()
}
