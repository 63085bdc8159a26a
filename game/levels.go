package game

import (
	"time"

	"github.com/pthm-cable/sandgames/config"
)

// LevelConfig is the immutable parameter set of one level.
// MaxThreats is used by survival, TargetCollectibles by feeding.
type LevelConfig struct {
	Number             int
	InitialPopulation  int
	MaxThreats         int
	TargetCollectibles int
	SpawnInterval      time.Duration
	Duration           time.Duration
	Name               string
}

// LevelTable is the ordered, read-only list of levels of a game.
type LevelTable struct {
	levels []LevelConfig
}

// NewLevelTable converts configured levels.
func NewLevelTable(levels []config.LevelConfig) LevelTable {
	out := make([]LevelConfig, len(levels))
	for i, l := range levels {
		out[i] = LevelConfig{
			Number:             l.Number,
			InitialPopulation:  l.InitialPopulation,
			MaxThreats:         l.MaxThreats,
			TargetCollectibles: l.TargetCollectibles,
			SpawnInterval:      config.Seconds(l.SpawnInterval),
			Duration:           config.Seconds(l.Duration),
			Name:               l.Name,
		}
	}
	return LevelTable{levels: out}
}

// Len returns the number of levels (maxLevels).
func (t LevelTable) Len() int {
	return len(t.levels)
}

// Level returns level n, 1-based. Out-of-range indices report false.
func (t LevelTable) Level(n int) (LevelConfig, bool) {
	if n < 1 || n > len(t.levels) {
		return LevelConfig{}, false
	}
	return t.levels[n-1], true
}
