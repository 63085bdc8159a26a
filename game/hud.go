package game

import (
	"fmt"
	"math"
)

// Tone is the background tint of a full-screen panel.
type Tone uint8

const (
	ToneNone Tone = iota
	ToneIntro
	ToneSuccess
	ToneVictory
	ToneFailure
)

// HUD is the projected text for one frame. Renderers lay it out; the wording
// is decided here so it can be checked without a window.
type HUD struct {
	Tone   Tone
	Title  string
	Status []string // status bar, playing only
	Lines  []string // body of a full-screen panel
	Trophy string   // award caption on level complete
	Footer string   // countdown or instruction
}

type hudText struct {
	introTitle  string
	introGoal   string
	counter     func(s Snapshot) string
	nextLines   func(n *LevelPreview) []string
	victory     string
	victoryBody func(s Snapshot) []string
	failure     func(s Snapshot) []string
}

var hudTexts = map[string]hudText{
	"survival": {
		introTitle: "JOGO DE SOBREVIVENCIA",
		introGoal:  "Proteja os peixes dos tubaroes.",
		counter: func(s Snapshot) string {
			return fmt.Sprintf("Peixes: %d / %d   Tubaroes: %d / %d", s.Survived, s.InitialPrey, s.ThreatCount, s.MaxThreats)
		},
		nextLines: func(n *LevelPreview) []string {
			return []string{
				fmt.Sprintf("- %d peixes para proteger", n.InitialPrey),
				fmt.Sprintf("- %d predadores", n.MaxThreats),
			}
		},
		victory: "EXCELENTE!",
		victoryBody: func(s Snapshot) []string {
			return []string{fmt.Sprintf("Todas as %d fases finalizadas!", s.MaxLevels)}
		},
		failure: func(s Snapshot) []string {
			return []string{
				fmt.Sprintf("Fase %d Fracassada", s.Level),
				"Vamos Iniciar Novamente!!",
			}
		},
	},
	"feeding": {
		introTitle: "JOGO DE ALIMENTACAO",
		introGoal:  "Leve os peixes ate a comida.",
		counter: func(s Snapshot) string {
			return fmt.Sprintf("Comida: %d / %d", s.Collected, s.Target)
		},
		nextLines: func(n *LevelPreview) []string {
			return []string{
				fmt.Sprintf("- %d Alimentos para coletar", n.Target),
				fmt.Sprintf("- %d peixes famintos", n.InitialPrey),
			}
		},
		victory: "VITORIA!",
		victoryBody: func(s Snapshot) []string {
			return []string{
				fmt.Sprintf("Todas as %d fases concluidas!", s.MaxLevels),
				fmt.Sprintf("Total de alimentos coletados: %d", s.TotalCollected),
				"Parabens, voce alimentou todos os peixes!",
			}
		},
		failure: func(s Snapshot) []string {
			return []string{
				fmt.Sprintf("Fase %d Fracassada!", s.Level),
				fmt.Sprintf("Alimentos coletados: %d / %d", s.Collected, s.Target),
				"Vamos Tentar novamente!",
				"Dica: Crie caminhos para levar os peixes a comida !",
			}
		},
	},
}

var trophyCaptions = map[Trophy]string{
	TrophyBronze: "TROFEU BRONZE",
	TrophySilver: "TROFEU PRATA",
	TrophyGold:   "TROFEU OURO",
}

// HUD returns the projected text for the snapshot. Idle sessions show nothing.
func (s Snapshot) HUD() HUD {
	text, ok := hudTexts[s.Game]
	if !ok {
		return HUD{}
	}

	switch s.State {
	case StateIntro:
		return HUD{
			Tone:  ToneIntro,
			Title: text.introTitle,
			Lines: []string{
				fmt.Sprintf("Complete %d fases!", s.MaxLevels),
				text.introGoal,
				"Pressione ESPACO para comecar agora.",
			},
			Footer: fmt.Sprintf("O jogo comeca em: %ds", wholeSeconds(s.IntroLeft)),
		}

	case StatePlaying:
		return HUD{
			Title: fmt.Sprintf("Fase %d: %s", s.Level, s.LevelName),
			Status: []string{
				fmt.Sprintf("Tempo: %ds", wholeSeconds(s.TimeLeft)),
				text.counter(s),
			},
		}

	case StateLevelComplete:
		h := HUD{
			Tone:   ToneSuccess,
			Title:  fmt.Sprintf("FASE %d SUPERADA!", s.Level-1),
			Trophy: trophyCaptions[s.Trophy],
			Footer: fmt.Sprintf("Proxima fase em: %ds", wholeSeconds(s.TransitionLeft)),
		}
		if s.Game == "feeding" {
			h.Lines = append(h.Lines, fmt.Sprintf("Voce coletou %d alimentos!", s.Collected))
		} else {
			h.Lines = append(h.Lines, fmt.Sprintf("%d peixes sobreviveram!", s.Survived))
		}
		if s.Next != nil {
			h.Lines = append(h.Lines, "Proximo: "+s.Next.Name, "Prepare-se para:")
			h.Lines = append(h.Lines, text.nextLines(s.Next)...)
		}
		return h

	case StateShowingResults:
		footer := fmt.Sprintf("Fim de jogo em: %ds", wholeSeconds(s.ResultsLeft))
		if s.Victory {
			return HUD{
				Tone:   ToneVictory,
				Title:  text.victory,
				Lines:  text.victoryBody(s),
				Trophy: trophyCaptions[s.Trophy],
				Footer: footer,
			}
		}
		return HUD{
			Tone:   ToneFailure,
			Title:  "GAME OVER",
			Lines:  text.failure(s),
			Footer: footer,
		}
	}
	return HUD{}
}

// wholeSeconds truncates like a countdown display.
func wholeSeconds(sec float64) int {
	return int(math.Max(0, math.Floor(sec)))
}
