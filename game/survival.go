package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/sandgames/components"
	"github.com/pthm-cable/sandgames/config"
	"github.com/pthm-cable/sandgames/systems"
	"github.com/pthm-cable/sandgames/telemetry"
)

// Survival keeps a school of fish alive while sharks arrive on a cadence.
// A level is won by outlasting its duration with at least one fish left.
type Survival struct{}

func (Survival) Name() string { return "survival" }

func (Survival) Levels(cfg *config.Config) []config.LevelConfig {
	return cfg.Survival.Levels
}

// Objective is met once the level has run for its full duration.
func (Survival) Objective(s *Session, now time.Duration) bool {
	return now-s.levelStart >= s.level.Duration
}

// Lost reports an empty prey population.
func (Survival) Lost(s *Session, now time.Duration) bool {
	return s.pop.Count(components.KindPrey) == 0
}

// Spawn tries one threat per elapsed interval. The cadence restarts whether
// or not the threat was placed.
func (Survival) Spawn(s *Session, now time.Duration) {
	if now-s.lastSpawn <= s.level.SpawnInterval {
		return
	}
	s.lastSpawn = now

	switch s.pop.TrySpawnThreat(s.level.MaxThreats) {
	case Spawned:
		s.threatsSpawned++
		s.emit(telemetry.EventThreatSpawned, now, s.pop.Count(components.KindThreat))
	case SpawnExhausted:
		s.emit(telemetry.EventSpawnExhausted, now, s.pop.placer.Attempts)
	}
}

func (Survival) Expire(*Session, time.Duration) {}

// Simulate moves the prey against the threat set built on the previous
// tick, then moves the threats and rebuilds the set from where they ended
// up. Prey a threat has reached are removed last.
func (Survival) Simulate(s *Session, now time.Duration) {
	prey := s.pop.Prey()
	threats := s.pop.Threats()
	preyAgents := agentsOf(prey)
	threatAgents := agentsOf(threats)

	for _, p := range preyAgents {
		p.ApplyBehaviours(true, preyAgents, s.threatSet)
		p.Update()
	}

	for _, t := range threatAgents {
		t.ApplyBehaviours(false, preyAgents, nil)
		t.Update()
	}
	s.threatSet = systems.ThreatsFrom(threatAgents, s.cfg.Steering.ThreatInfluence)
	s.pop.Sync()

	for _, i := range systems.PreyCaught(preyAgents, threatAgents) {
		s.pop.Remove(prey[i].Entity)
		s.survived--
		slog.Debug("prey_caught", "level", s.currentLevel, "survived", s.survived)
		s.emit(telemetry.EventPreyCaught, now, s.survived)
	}
}

// ResetLevel removes the sharks of the previous level.
func (Survival) ResetLevel(s *Session) {
	s.pop.Clear(components.KindThreat)
	s.threatSet = nil
	s.threatsSpawned = 0
}
