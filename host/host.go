// Package host puts an App in a raylib window: the window is the projector
// output, and the operator view adds controls and debug overlays on top.
package host

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgames/app"
	"github.com/pthm-cable/sandgames/renderer"
	"github.com/pthm-cable/sandgames/telemetry"
	"github.com/pthm-cable/sandgames/ui"
)

// Window drives one App from the raylib main loop.
type Window struct {
	app *app.App

	projector *renderer.Projector
	hud       *ui.HUD
	status    *ui.StatusPanel
	controls  *ui.ControlsPanel
	overlays  *ui.OverlayRegistry

	operator      bool
	width, height int32
	tick          int32
}

// New creates the renderers. Must be called after rl.InitWindow.
func New(a *app.App) *Window {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	a.Resize(int(w), int(h))

	return &Window{
		app:       a,
		projector: renderer.NewProjector(a.Config(), a.Camera()),
		hud:       ui.NewHUD(),
		status:    ui.NewStatusPanel(10, 10, 260),
		controls:  ui.NewControlsPanel(w-230, 10, 220),
		overlays:  ui.NewOverlayRegistry(),
		width:     w,
		height:    h,
	}
}

// Update handles input and advances the app.
func (w *Window) Update() {
	w.app.BeginFrame()
	w.handleInput()
	w.app.Update()
	w.tick++
}

// Draw renders the frame and closes the app's frame timing.
func (w *Window) Draw() {
	w.app.StartPhase(telemetry.PhaseRender)
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	snap := w.app.Active().Snapshot()
	t := rl.GetTime()

	var on renderer.Overlays
	if w.operator {
		on = renderer.Overlays{
			WaterMask:    w.overlays.IsEnabled(ui.OverlayWaterMask),
			SpawnRegion:  w.overlays.IsEnabled(ui.OverlaySpawnRegion),
			ThreatRadius: w.overlays.IsEnabled(ui.OverlayThreatRadius),
			Velocity:     w.overlays.IsEnabled(ui.OverlayVelocity),
			PickupRange:  w.overlays.IsEnabled(ui.OverlayPickupRange),
		}
	}
	w.projector.Draw(&snap, w.app.Table(), w.tick, t, on)
	w.hud.Draw(snap.HUD(), w.width, w.height, t)

	if !w.app.Busy() {
		w.drawAttract()
	}
	if w.operator {
		w.status.Draw(snap, rl.GetFPS())
		w.app.Apply(commandFor(w.controls.Draw(snap.State, w.overlays)))
	}

	rl.EndDrawing()
	w.app.EndFrame()
}

// drawAttract shows the start keys while both games are idle.
func (w *Window) drawAttract() {
	text := "1: Sobrevivencia    2: Alimentacao"
	size := int32(28)
	tw := rl.MeasureText(text, size)
	rl.DrawText(text, (w.width-tw)/2, w.height-60, size, rl.Color{R: 255, G: 255, B: 255, A: 160})
}

// Unload frees GPU resources.
func (w *Window) Unload() {
	w.projector.Unload()
}

func commandFor(a ui.Action) app.Command {
	switch a {
	case ui.ActionStartSurvival:
		return app.CommandStartSurvival
	case ui.ActionStartFeeding:
		return app.CommandStartFeeding
	case ui.ActionSkipIntro:
		return app.CommandSkipIntro
	case ui.ActionAbort:
		return app.CommandAbort
	case ui.ActionReset:
		return app.CommandReset
	}
	return app.CommandNone
}
