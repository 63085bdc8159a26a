// Terrain preview tool - interactive tuning of the synthetic sand table.
//
// Usage: go run ./cmd/terrainpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/sandgames/config"
	"github.com/pthm-cable/sandgames/renderer"
	"github.com/pthm-cable/sandgames/terrain"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewW     = 640
	previewH     = 480
	panelWidth   = windowWidth - previewW - 30
	gridW        = 160
	gridH        = 120
)

// slider is one tunable terrain parameter.
type slider struct {
	label    string
	min, max float32
	format   string
	value    func(p *config.TerrainConfig) *float64
}

var sliders = []slider{
	{"Scale (features per sensor pixel)", 0.001, 0.03, "%.4f", func(p *config.TerrainConfig) *float64 { return &p.Scale }},
	{"Lacunarity (frequency multiplier)", 1.5, 4.0, "%.2f", func(p *config.TerrainConfig) *float64 { return &p.Lacunarity }},
	{"Gain (amplitude multiplier)", 0.2, 0.9, "%.2f", func(p *config.TerrainConfig) *float64 { return &p.Gain }},
	{"Sea level (noise at elevation 0)", -0.6, 0.6, "%.2f", func(p *config.TerrainConfig) *float64 { return &p.SeaLevel }},
	{"Relief (elevation per noise unit)", 10, 250, "%.0f", func(p *config.TerrainConfig) *float64 { return &p.Relief }},
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	defaults := cfg.Terrain
	params := defaults
	sensorW, sensorH := float64(cfg.Sensor.Width), float64(cfg.Sensor.Height)

	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	pixels := make([]color.RGBA, gridW*gridH)
	var stats fieldStats
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			stats = sample(terrain.NewNoiseField(params), pixels, sensorW, sensorH)
			rl.UpdateTexture(texture, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridW, Height: gridH},
			rl.Rectangle{X: 10, Y: 10, Width: previewW, Height: previewH},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		statsY := int32(previewH + 25)
		rl.DrawText(fmt.Sprintf("Min: %.1f  Max: %.1f", stats.min, stats.max), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Water: %.0f%%", stats.water*100), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			v := s.value(&params)
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*v), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *v), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != float32(*v) {
				*v = float64(next)
				needsRegen = true
			}
			panelY += 35
		}

		rl.DrawText("Octaves", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		octaves := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "8",
			float32(params.Octaves), 1, 8,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Octaves), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(octaves) != params.Octaves {
			params.Octaves = int(octaves)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 55

		out := terrainYAML(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(out, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(out)
		}

		rl.EndDrawing()
	}
}

type fieldStats struct {
	min, max float64
	water    float64 // fraction of cells below zero
}

// sample colors one pixel per grid cell, spread over the whole sensor frame.
func sample(s terrain.Surface, pixels []color.RGBA, sensorW, sensorH float64) fieldStats {
	st := fieldStats{min: 1e9, max: -1e9}
	var wet int
	for gy := 0; gy < gridH; gy++ {
		y := (float64(gy) + 0.5) / gridH * sensorH
		for gx := 0; gx < gridW; gx++ {
			x := (float64(gx) + 0.5) / gridW * sensorW
			e := s.Elevation(x, y)
			st.min = min(st.min, e)
			st.max = max(st.max, e)
			if e < 0 {
				wet++
			}
			pixels[gy*gridW+gx] = renderer.ElevationColor(e)
		}
	}
	st.water = float64(wet) / float64(len(pixels))
	return st
}

func terrainYAML(p config.TerrainConfig) string {
	b, err := yaml.Marshal(struct {
		Terrain config.TerrainConfig `yaml:"terrain"`
	}{p})
	if err != nil {
		return err.Error()
	}
	return string(b)
}
