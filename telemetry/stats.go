package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// LevelStats summarizes one played level.
type LevelStats struct {
	SessionID   string  `csv:"session_id"`
	Game        string  `csv:"game"`
	Level       int     `csv:"level"`
	Outcome     string  `csv:"outcome"` // complete, defeat
	DurationSec float64 `csv:"duration"`

	InitialPrey    int `csv:"initial_prey"`
	PreyCaught     int `csv:"prey_caught"`
	ThreatsSpawned int `csv:"threats_spawned"`
	FoodSpawned    int `csv:"food_spawned"`
	FoodCollected  int `csv:"food_collected"`
	FoodExpired    int `csv:"food_expired"`
	SpawnExhausted int `csv:"spawn_exhausted"`

	// Seconds into the level at which prey were caught / food was eaten
	CatchTimeMean   float64 `csv:"catch_time_mean"`
	CatchTimeP50    float64 `csv:"catch_time_p50"`
	CollectTimeMean float64 `csv:"collect_time_mean"`
	CollectTimeStd  float64 `csv:"collect_time_std"`
	CollectTimeP50  float64 `csv:"collect_time_p50"`
}

// SurvivalRate is the fraction of the initial prey alive at the end of the level.
func (s LevelStats) SurvivalRate() float64 {
	if s.InitialPrey == 0 {
		return 0
	}
	return float64(s.InitialPrey-s.PreyCaught) / float64(s.InitialPrey)
}

// LogValue implements slog.LogValuer for structured logging.
func (s LevelStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session_id", s.SessionID),
		slog.String("game", s.Game),
		slog.Int("level", s.Level),
		slog.String("outcome", s.Outcome),
		slog.Float64("duration", s.DurationSec),
		slog.Int("initial_prey", s.InitialPrey),
		slog.Int("prey_caught", s.PreyCaught),
		slog.Int("threats_spawned", s.ThreatsSpawned),
		slog.Int("food_spawned", s.FoodSpawned),
		slog.Int("food_collected", s.FoodCollected),
		slog.Int("food_expired", s.FoodExpired),
		slog.Int("spawn_exhausted", s.SpawnExhausted),
		slog.Float64("catch_time_mean", s.CatchTimeMean),
		slog.Float64("collect_time_mean", s.CollectTimeMean),
		slog.Float64("collect_time_p50", s.CollectTimeP50),
	)
}

// LogStats outputs the level stats using structured logging.
func (s LevelStats) LogStats() {
	slog.Info("level_stats", "stats", s)
}

// SessionStats summarizes a whole game from start to results.
type SessionStats struct {
	SessionID     string  `csv:"session_id"`
	Game          string  `csv:"game"`
	Outcome       string  `csv:"outcome"` // victory, defeat, abort
	LevelsCleared int     `csv:"levels_cleared"`
	PreyCaught    int     `csv:"prey_caught"`
	FoodCollected int     `csv:"food_collected"`
	DurationSec   float64 `csv:"duration"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s SessionStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session_id", s.SessionID),
		slog.String("game", s.Game),
		slog.String("outcome", s.Outcome),
		slog.Int("levels_cleared", s.LevelsCleared),
		slog.Int("prey_caught", s.PreyCaught),
		slog.Int("food_collected", s.FoodCollected),
		slog.Float64("duration", s.DurationSec),
	)
}

// Summarize returns the mean, sample standard deviation and empirical median of values.
// Empty input yields zeros; a single value has zero deviation.
func Summarize(values []float64) (mean, std, p50 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if n > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return mean, std, p50
}
