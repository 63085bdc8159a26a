package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgames/game"
)

// HUD renders the projected game text.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders h over a projector surface of the given size. t drives the
// title pulse on the victory screen.
func (d *HUD) Draw(h game.HUD, width, height int32, t float64) {
	th := d.renderer.Theme
	cx := width / 2

	if tint, ok := d.tint(h.Tone); ok {
		rl.DrawRectangle(0, 0, width, height, tint)
	}

	if h.Tone == game.ToneNone {
		// Playing: title and status bar along the top edge.
		if h.Title != "" {
			d.renderer.DrawCentered(h.Title, cx, 50, th.BodyFontSize+4, rl.White)
		}
		for i, line := range h.Status {
			d.renderer.DrawCentered(line, cx, 90+int32(i)*th.BodyFontSize, th.BodyFontSize-4, rl.White)
		}
		return
	}

	titleColor := th.TitleColor
	switch h.Tone {
	case game.ToneFailure:
		titleColor = th.FailureTitle
	case game.ToneVictory:
		pulse := 0.5 + 0.5*math.Sin(t*3)
		titleColor = rl.Color{R: 255, G: uint8(255 * pulse), B: 0, A: 255}
	}

	y := height / 5
	if h.Trophy != "" {
		d.drawTrophy(cx, y, h.Trophy)
		y += 140
	}

	d.renderer.DrawCentered(h.Title, cx, y, th.TitleFontSize, titleColor)
	y += th.TitleFontSize + 20
	for _, line := range h.Lines {
		d.renderer.DrawCentered(line, cx, y, th.BodyFontSize, rl.RayWhite)
		y += th.BodyFontSize + 16
	}

	if h.Footer != "" {
		d.renderer.DrawCentered(h.Footer, cx, height-60, th.BodyFontSize, rl.White)
	}
}

func (d *HUD) tint(tone game.Tone) (rl.Color, bool) {
	th := d.renderer.Theme
	switch tone {
	case game.ToneIntro:
		return th.IntroTint, true
	case game.ToneSuccess:
		return th.SuccessTint, true
	case game.ToneVictory:
		return th.VictoryTint, true
	case game.ToneFailure:
		return th.FailureTint, true
	}
	return rl.Color{}, false
}

// drawTrophy draws a medal disc with its caption below.
func (d *HUD) drawTrophy(cx, y int32, caption string) {
	medal := rl.Gold
	switch caption {
	case "TROFEU BRONZE":
		medal = rl.Color{R: 205, G: 127, B: 50, A: 255}
	case "TROFEU PRATA":
		medal = rl.Color{R: 192, G: 192, B: 192, A: 255}
	}
	rl.DrawCircle(cx, y+50, 56, rl.Color{R: 0, G: 0, B: 0, A: 80})
	rl.DrawCircle(cx, y+50, 45, medal)
	rl.DrawCircleLines(cx, y+50, 45, rl.White)
	d.renderer.DrawCentered(caption, cx, y+105, d.renderer.Theme.HeaderFontSize+6, d.renderer.Theme.TrophyColor)
}

// StatusPanel shows the session counters on the operator screen.
type StatusPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatusPanel creates a status panel.
func NewStatusPanel(x, y, width int32) *StatusPanel {
	return &StatusPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *StatusPanel) SetPosition(x, y int32) {
	p.x, p.y = x, y
}

// Draw renders the panel and returns the Y below it.
func (p *StatusPanel) Draw(s game.Snapshot, fps int32) int32 {
	r := p.renderer
	pad := r.Theme.Padding
	inner := p.width - pad*2

	rows := int32(8)
	r.DrawPanel(p.x, p.y, p.width, rows*r.Theme.LineHeight+pad*2+8)

	x := p.x + pad
	y := p.y + pad
	y = r.DrawSectionHeader(x, y, fmt.Sprintf("%s (%s)", s.Game, s.State))
	y = r.DrawLabelValue(x, y, "Level", fmt.Sprintf("%d/%d %s", s.Level, s.MaxLevels, s.LevelName))
	y = r.DrawLabelValue(x, y, "Time left", fmt.Sprintf("%.1fs", s.TimeLeft))
	if s.Game == "survival" {
		y = r.DrawBar(x, y, "Fish", float64(s.Survived), float64(s.InitialPrey), inner)
		y = r.DrawLabelValue(x, y, "Sharks", fmt.Sprintf("%d/%d (%d spawned)", s.ThreatCount, s.MaxThreats, s.ThreatsSpawned))
	} else {
		y = r.DrawBar(x, y, "Food", float64(s.Collected), float64(s.Target), inner)
		y = r.DrawLabelValue(x, y, "On table", fmt.Sprintf("%d", len(s.Food)))
	}
	y = r.DrawLabelValue(x, y, "Total", fmt.Sprintf("%d", s.TotalCollected))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", fps))
	return y + pad
}
