package host

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgames/app"
)

// keyCommands maps the show keys to commands.
var keyCommands = map[int32]app.Command{
	rl.KeyEscape: app.CommandAbort,
	rl.KeySpace:  app.CommandSkipIntro,
	rl.KeyOne:    app.CommandStartSurvival,
	rl.KeyTwo:    app.CommandStartFeeding,
	rl.KeyR:      app.CommandReset,
	rl.KeyU:      app.CommandUnsettle,
}

// handleInput processes keyboard input.
func (w *Window) handleInput() {
	w.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		w.operator = !w.operator
		slog.Info("operator_view", "enabled", w.operator)
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if cmd, ok := keyCommands[key]; ok {
			w.app.Apply(cmd)
			continue
		}
		if w.operator {
			if id, on, ok := w.overlays.HandleKeyPress(key); ok {
				slog.Debug("overlay_toggled", "overlay", string(id), "enabled", on)
			}
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (w *Window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	width := int32(rl.GetScreenWidth())
	height := int32(rl.GetScreenHeight())
	if width == w.width && height == w.height {
		return
	}
	w.width, w.height = width, height

	w.app.Resize(int(width), int(height))
	w.projector.Resize(width, height)
	w.controls.SetPosition(width-230, 10)
}
