package game

import (
	"time"

	"github.com/pthm-cable/sandgames/components"
	"github.com/pthm-cable/sandgames/effects"
)

// Trophy is the award shown when a level is cleared.
type Trophy string

const (
	TrophyNone   Trophy = ""
	TrophyBronze Trophy = "bronze"
	TrophySilver Trophy = "silver"
	TrophyGold   Trophy = "gold"
)

// TrophyFor returns the trophy earned for clearing level n.
func TrophyFor(level int) Trophy {
	switch {
	case level <= 0:
		return TrophyNone
	case level == 1:
		return TrophyBronze
	case level == 2:
		return TrophySilver
	default:
		return TrophyGold
	}
}

// LevelPreview describes the level about to start.
type LevelPreview struct {
	Name        string `json:"name"`
	InitialPrey int    `json:"initial_prey"`
	MaxThreats  int    `json:"max_threats"`
	Target      int    `json:"target"`
}

// Snapshot is a read-only copy of a session for renderers and the monitor feed.
// Times are in seconds.
type Snapshot struct {
	Game      string `json:"game"`
	SessionID string `json:"session_id,omitempty"`
	State     State  `json:"state"`
	Level     int    `json:"level"`
	MaxLevels int    `json:"max_levels"`
	LevelName string `json:"level_name"`
	Victory   bool   `json:"victory"`
	Trophy    Trophy `json:"trophy,omitempty"`

	TimeLeft       float64 `json:"time_left"`
	IntroLeft      float64 `json:"intro_left"`
	TransitionLeft float64 `json:"transition_left"`
	ResultsLeft    float64 `json:"results_left"`

	Survived       int `json:"survived"`
	InitialPrey    int `json:"initial_prey"`
	ThreatCount    int `json:"threat_count"`
	MaxThreats     int `json:"max_threats"`
	ThreatsSpawned int `json:"threats_spawned"`
	Collected      int `json:"collected"`
	Target         int `json:"target"`
	TotalCollected int `json:"total_collected"`

	// Next is set on the level complete screen.
	Next *LevelPreview `json:"next,omitempty"`

	Prey    []AgentView `json:"prey"`
	Threats []AgentView `json:"threats"`
	Food    []ItemView  `json:"food"`

	Confetti []effects.Confetti `json:"-"`
	Stars    []effects.Star     `json:"-"`
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	now := s.clock.Now()

	// During victory currentLevel is one past the table.
	level := s.currentLevel
	if n := s.levels.Len(); level > n {
		level = n
	}

	snap := Snapshot{
		Game:      s.Name(),
		SessionID: s.id,
		State:     s.state,
		Level:     level,
		MaxLevels: s.levels.Len(),
		LevelName: s.level.Name,
		Victory:   s.victory,
		Trophy:    s.trophy,

		Survived:       s.survived,
		InitialPrey:    s.initialPrey,
		ThreatCount:    s.pop.Count(components.KindThreat),
		MaxThreats:     s.level.MaxThreats,
		ThreatsSpawned: s.threatsSpawned,
		Collected:      s.collected,
		Target:         s.level.TargetCollectibles,
		TotalCollected: s.totalCollected,

		Prey:    s.pop.views(components.KindPrey),
		Threats: s.pop.views(components.KindThreat),
		Food:    s.pop.itemViews(),
	}

	switch s.state {
	case StateIntro:
		snap.IntroLeft = remaining(s.cfg.Derived.IntroDisplay, now-s.introStart)
	case StatePlaying:
		snap.TimeLeft = remaining(s.level.Duration, now-s.levelStart)
	case StateLevelComplete:
		snap.TransitionLeft = remaining(s.cfg.Derived.LevelTransition, now-s.transitionStart)
		if next, ok := s.levels.Level(s.currentLevel); ok {
			snap.Next = &LevelPreview{
				Name:        next.Name,
				InitialPrey: next.InitialPopulation,
				MaxThreats:  next.MaxThreats,
				Target:      next.TargetCollectibles,
			}
		}
	case StateShowingResults:
		snap.ResultsLeft = remaining(s.cfg.Derived.ResultsDisplay, now-s.resultsStart)
	}

	if len(s.fx.Confetti) > 0 {
		snap.Confetti = append([]effects.Confetti(nil), s.fx.Confetti...)
	}
	if len(s.fx.Stars) > 0 {
		snap.Stars = append([]effects.Star(nil), s.fx.Stars...)
	}
	return snap
}

func remaining(total, elapsed time.Duration) float64 {
	if left := total - elapsed; left > 0 {
		return left.Seconds()
	}
	return 0
}
