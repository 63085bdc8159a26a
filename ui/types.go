// Package ui draws the projected game text and the operator panels.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	Shadow        rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	BarFillLow    rl.Color
	BarFillMedium rl.Color
	BarFillHigh   rl.Color

	// Full-screen panel tints, indexed by game.Tone
	IntroTint   rl.Color
	SuccessTint rl.Color
	VictoryTint rl.Color
	FailureTint rl.Color

	TitleColor   rl.Color
	FailureTitle rl.Color
	TrophyColor  rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	TitleFontSize  int32
	BodyFontSize   int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,
		Shadow:        rl.Color{R: 0, G: 0, B: 0, A: 220},
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:       rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillLow:    rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium: rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:   rl.Color{R: 100, G: 200, B: 100, A: 255},

		IntroTint:   rl.Color{R: 0, G: 0, B: 0, A: 200},
		SuccessTint: rl.Color{R: 50, G: 50, B: 0, A: 200},
		VictoryTint: rl.Color{R: 40, G: 30, B: 0, A: 200},
		FailureTint: rl.Color{R: 50, G: 0, B: 0, A: 200},

		TitleColor:   rl.Color{R: 255, G: 255, B: 0, A: 255},
		FailureTitle: rl.Color{R: 255, G: 100, B: 100, A: 255},
		TrophyColor:  rl.Color{R: 255, G: 255, B: 200, A: 255},

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
		TitleFontSize:  48,
		BodyFontSize:   28,
	}
}
