// Package renderer draws the sand table, the agents and the celebration
// particles for the projector and the operator preview.
package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgames/camera"
	"github.com/pthm-cable/sandgames/terrain"
)

// TerrainRenderer bakes the elevation under the camera into a texture.
// The texture is coarser than the viewport and stretched when drawn.
type TerrainRenderer struct {
	cellSize    int32
	gridW       int32
	gridH       int32
	pixels      []color.RGBA
	texture     rl.Texture2D
	initialized bool
}

// NewTerrainRenderer creates a renderer sampling one elevation per cellSize
// display pixels.
func NewTerrainRenderer(width, height, cellSize int32) *TerrainRenderer {
	if cellSize < 1 {
		cellSize = 1
	}
	gw := (width + cellSize - 1) / cellSize
	gh := (height + cellSize - 1) / cellSize
	return &TerrainRenderer{
		cellSize: cellSize,
		gridW:    gw,
		gridH:    gh,
		pixels:   make([]color.RGBA, gw*gh),
	}
}

// Init creates the GPU texture (must be called after the raylib window is created).
func (r *TerrainRenderer) Init() {
	if r.initialized {
		return
	}
	img := rl.GenImageColor(int(r.gridW), int(r.gridH), rl.Black)
	r.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.texture, rl.FilterBilinear)
	r.initialized = true
}

// Bake samples the oracle at each cell center and uploads the colors.
func (r *TerrainRenderer) Bake(oracle terrain.Oracle, cam *camera.Camera) {
	if !r.initialized {
		r.Init()
	}
	half := float64(r.cellSize) / 2
	for gy := int32(0); gy < r.gridH; gy++ {
		for gx := int32(0); gx < r.gridW; gx++ {
			sx, sy := cam.DisplayToSensor(float64(gx*r.cellSize)+half, float64(gy*r.cellSize)+half)
			r.pixels[gy*r.gridW+gx] = ElevationColor(oracle.Elevation(sx, sy))
		}
	}
	rl.UpdateTexture(r.texture, r.pixels)
}

// Draw stretches the baked texture over dst.
func (r *TerrainRenderer) Draw(dst rl.Rectangle) {
	if !r.initialized {
		return
	}
	src := rl.Rectangle{Width: float32(r.gridW), Height: float32(r.gridH)}
	rl.DrawTexturePro(r.texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees resources.
func (r *TerrainRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.texture)
		r.initialized = false
	}
}

var (
	deepWater = color.RGBA{10, 30, 90, 255}
	shallows  = color.RGBA{60, 140, 200, 255}
)

// land bands, lowest first
var landBands = []struct {
	min float64
	c   color.RGBA
}{
	{0, color.RGBA{225, 205, 140, 255}},  // beach
	{8, color.RGBA{90, 160, 70, 255}},    // grass
	{40, color.RGBA{120, 100, 70, 255}},  // hills
	{80, color.RGBA{235, 235, 240, 255}}, // peaks
}

const waterDepth = 60

// ElevationColor maps an elevation to the projected tint: a blue ramp below
// zero and contour bands above it.
func ElevationColor(e float64) color.RGBA {
	if math.IsNaN(e) {
		return landBands[0].c
	}
	if e < 0 {
		return lerpColor(shallows, deepWater, -e/waterDepth)
	}
	c := landBands[0].c
	for _, band := range landBands {
		if e >= band.min {
			c = band.c
		}
	}
	return c
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}
