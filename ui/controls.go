package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgames/game"
)

// Action is an operator request raised from the controls panel.
type Action uint8

const (
	ActionNone Action = iota
	ActionStartSurvival
	ActionStartFeeding
	ActionSkipIntro
	ActionAbort
	ActionReset
)

// ControlsPanel renders the operator buttons and the overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel for the active session state and returns the
// action of the button clicked this frame, if any.
func (c *ControlsPanel) Draw(state game.State, overlays *OverlayRegistry) Action {
	if !c.visible {
		return ActionNone
	}

	r := c.renderer
	pad := r.Theme.Padding
	lh := r.Theme.LineHeight
	bw := float32(c.width - pad*2)
	const bh = 28

	buttons := c.buttons(state)
	toggles := overlays.All()
	height := pad*3 + lh + int32(len(buttons))*(bh+6) + lh + int32(len(toggles))*lh
	r.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + pad
	y := c.y + pad
	rl.DrawText("Operator", x, y, 16, rl.White)
	y += lh + 4

	action := ActionNone
	for _, b := range buttons {
		if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: bw, Height: bh}, b.label) {
			action = b.action
		}
		y += bh + 6
	}

	y = r.DrawSectionHeader(x, y+4, "Overlays")
	for _, desc := range toggles {
		c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), c.width-pad*2)
		y += lh
	}
	return action
}

type button struct {
	label  string
	action Action
}

// buttons lists the controls that make sense in a state.
func (c *ControlsPanel) buttons(state game.State) []button {
	switch state {
	case game.StateIdle:
		return []button{
			{"Start survival [1]", ActionStartSurvival},
			{"Start feeding [2]", ActionStartFeeding},
		}
	case game.StateIntro:
		return []button{
			{"Skip intro [Space]", ActionSkipIntro},
			{"Abort [Esc]", ActionAbort},
		}
	default:
		return []button{{"Reset to idle [R]", ActionReset}}
	}
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}
