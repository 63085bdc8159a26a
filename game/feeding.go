package game

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sandgames/config"
	"github.com/pthm-cable/sandgames/systems"
	"github.com/pthm-cable/sandgames/telemetry"
)

// Feeding has a school of fish eat food dropped into the water.
// A level is won by collecting its target before time runs out.
type Feeding struct{}

func (Feeding) Name() string { return "feeding" }

func (Feeding) Levels(cfg *config.Config) []config.LevelConfig {
	return cfg.Feeding.Levels
}

// Objective is met once enough food has been eaten this level.
func (Feeding) Objective(s *Session, now time.Duration) bool {
	return s.collected >= s.level.TargetCollectibles
}

// Lost reports that the level ran out of time.
func (Feeding) Lost(s *Session, now time.Duration) bool {
	return now-s.levelStart >= s.level.Duration
}

// Spawn drops one item per elapsed interval while below the cap.
// At the cap the cadence does not restart.
func (Feeding) Spawn(s *Session, now time.Duration) {
	limit := s.cfg.Collectibles.MaxSimultaneous
	if now-s.lastSpawn <= s.level.SpawnInterval || s.pop.CollectibleCount() >= limit {
		return
	}
	s.lastSpawn = now

	switch s.pop.TrySpawnCollectible(limit, now) {
	case Spawned:
		s.emit(telemetry.EventFoodSpawned, now, s.pop.CollectibleCount())
	case SpawnExhausted:
		s.emit(telemetry.EventSpawnExhausted, now, s.pop.placer.Attempts)
	}
}

// Expire removes items past their age, collected or not.
func (Feeding) Expire(s *Session, now time.Duration) {
	if n := s.pop.ExpireCollectibles(now, s.cfg.Derived.CollectibleAge); n > 0 {
		s.emit(telemetry.EventFoodExpired, now, n)
	}
}

// Simulate flocks the fish and lets each active item be eaten by the first
// fish that reaches it.
func (Feeding) Simulate(s *Session, now time.Duration) {
	prey := agentsOf(s.pop.Prey())
	for _, p := range prey {
		p.ApplyBehaviours(false, prey, nil)
		p.Update()
	}
	s.pop.Sync()

	var active []Item
	var locs []r2.Vec
	for _, it := range s.pop.Collectibles() {
		if it.Active {
			active = append(active, it)
			locs = append(locs, it.Location)
		}
	}
	for _, c := range systems.FoodCollected(locs, prey, s.cfg.Collectibles.CollectMargin) {
		s.pop.Deactivate(active[c.Item].Entity)
		s.collected++
		s.totalCollected++
		slog.Debug("food_collected", "level", s.currentLevel, "collected", s.collected, "target", s.level.TargetCollectibles)
		s.emit(telemetry.EventFoodCollected, now, s.collected)
	}
}

// ResetLevel removes leftover food and zeroes the level count.
func (Feeding) ResetLevel(s *Session) {
	s.pop.ClearCollectibles()
	s.collected = 0
}
