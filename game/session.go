package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sandgames/components"
	"github.com/pthm-cable/sandgames/config"
	"github.com/pthm-cable/sandgames/effects"
	"github.com/pthm-cable/sandgames/systems"
	"github.com/pthm-cable/sandgames/telemetry"
	"github.com/pthm-cable/sandgames/terrain"
)

// Rules is the game-specific part of a session.
type Rules interface {
	Name() string
	// Objective reports whether the current level is won.
	Objective(s *Session, now time.Duration) bool
	// Lost reports whether the game is lost.
	Lost(s *Session, now time.Duration) bool
	// Spawn adds at most one threat or collectible when its cadence allows.
	Spawn(s *Session, now time.Duration)
	// Expire removes aged-out entities.
	Expire(s *Session, now time.Duration)
	// Simulate runs behaviours, movement and collisions for one tick.
	Simulate(s *Session, now time.Duration)
	// ResetLevel clears the per-level entities and counters.
	ResetLevel(s *Session)
	// Levels returns the game's level table from config.
	Levels(cfg *config.Config) []config.LevelConfig
}

// Options wires a session to its collaborators.
type Options struct {
	Config *config.Config
	Oracle terrain.Oracle
	Clock  Clock
	Rand   *rand.Rand

	// Factory builds agents; nil uses Fish and Shark.
	Factory AgentFactory
	// Placer overrides spawn placement; nil samples with Rand.
	Placer *systems.Placer
	// Sink receives telemetry events; may be nil.
	Sink telemetry.Sink
}

// Session is one game variant's state machine together with its population.
// It is driven by Update once per frame and is not safe for concurrent use.
type Session struct {
	rules  Rules
	levels LevelTable
	cfg    *config.Config
	clock  Clock
	oracle terrain.Oracle
	pop    *Population
	fx     *effects.Layer
	sink   telemetry.Sink

	state          State
	id             string
	currentLevel   int
	level          LevelConfig
	levelCompleted bool
	victory        bool
	trophy         Trophy

	introStart      time.Duration
	gameStart       time.Duration
	levelStart      time.Duration
	transitionStart time.Duration
	resultsStart    time.Duration
	lastSpawn       time.Duration

	// Per-level counters
	initialPrey    int
	survived       int
	threatsSpawned int
	collected      int
	// Per-session counter
	totalCollected int

	// threatSet is the survival threat set from the previous tick.
	threatSet []systems.Threat

	projW, projH     int
	sensorW, sensorH int
	roi              r2.Box
}

// NewSurvival creates a survival game session.
func NewSurvival(opts Options) *Session {
	return newSession(Survival{}, opts)
}

// NewFeeding creates a feeding game session.
func NewFeeding(opts Options) *Session {
	return newSession(Feeding{}, opts)
}

func newSession(rules Rules, opts Options) *Session {
	cfg := opts.Config
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	clock := opts.Clock
	if clock == nil {
		clock = NewSystemClock()
	}

	placer := opts.Placer
	if placer == nil {
		placer = systems.NewPlacer(opts.Oracle, rng)
		placer.MaxAttempts = cfg.Spawn.MaxAttempts
	}
	factory := opts.Factory
	if factory == nil {
		factory = SpeciesFactory(cfg.Steering, opts.Oracle, rng)
	}

	s := &Session{
		rules:  rules,
		levels: NewLevelTable(rules.Levels(cfg)),
		cfg:    cfg,
		clock:  clock,
		oracle: opts.Oracle,
		pop: NewPopulation(PopulationOptions{
			Placer:     placer,
			Factory:    factory,
			AgentInset: cfg.Spawn.AgentInset,
			ItemInset:  cfg.Spawn.CollectibleInset,
			ItemSize:   cfg.Collectibles.Size,
		}),
		fx:      effects.New(cfg.Effects, rng),
		sink:    opts.Sink,
		projW:   cfg.Projector.Width,
		projH:   cfg.Projector.Height,
		sensorW: cfg.Sensor.Width,
		sensorH: cfg.Sensor.Height,
	}
	roi := cfg.Sensor.ROI
	s.SetSensorROI(r2.Box{
		Min: r2.Vec{X: roi.X, Y: roi.Y},
		Max: r2.Vec{X: roi.X + roi.Width, Y: roi.Y + roi.Height},
	})
	s.ResetGame()
	return s
}

// SpeciesFactory builds Fish for prey and Shark for threats.
func SpeciesFactory(cfg config.SteeringConfig, water systems.WaterMap, rng *rand.Rand) AgentFactory {
	return func(kind components.Kind, at r2.Vec, bounds r2.Box) systems.Agent {
		if kind == components.KindThreat {
			return systems.NewShark(at, cfg.Shark, water, bounds, rng)
		}
		return systems.NewFish(at, cfg.Fish, water, bounds, rng)
	}
}

// Name returns the game name ("survival" or "feeding").
func (s *Session) Name() string { return s.rules.Name() }

// State returns the current phase.
func (s *Session) State() State { return s.state }

// IsIdle reports whether the session waits for a start.
func (s *Session) IsIdle() bool { return s.state == StateIdle }

// IsInIntro reports whether the intro screen is showing.
func (s *Session) IsInIntro() bool { return s.state == StateIntro }

// Population exposes the live agents and items.
func (s *Session) Population() *Population { return s.pop }

// Effects exposes the celebration layer.
func (s *Session) Effects() *effects.Layer { return s.fx }

// StartGame begins a new game from IDLE and shows the intro.
// Returns false and changes nothing in any other state.
func (s *Session) StartGame() bool {
	if !s.fire(EventStart) {
		return false
	}
	now := s.clock.Now()
	s.id = uuid.NewString()
	s.currentLevel = 1
	s.levelCompleted = false
	s.victory = false
	s.trophy = TrophyNone
	s.totalCollected = 0
	s.applyLevel(s.currentLevel)
	s.fx.Clear()
	s.introStart = now

	slog.Info("game_start", "game", s.Name(), "session_id", s.id)
	s.emit(telemetry.EventSessionStart, now, 0)
	return true
}

// StartFromIntro skips the rest of the intro. Ignored outside INTRO.
func (s *Session) StartFromIntro() {
	if !s.fire(EventSkipIntro) {
		return
	}
	s.beginPlay(s.clock.Now())
}

// Abort backs out of the intro to IDLE. Returns false outside INTRO.
func (s *Session) Abort() bool {
	if !s.fire(EventAbort) {
		return false
	}
	slog.Info("game_abort", "game", s.Name(), "session_id", s.id)
	s.emit(telemetry.EventAbort, s.clock.Now(), 0)
	s.ResetGame()
	return true
}

// GoBackToIdle resets the session to IDLE from any state. Leaving a game
// that has not finished yet is recorded as an abort.
func (s *Session) GoBackToIdle() {
	switch s.state {
	case StateIntro, StatePlaying, StateLevelComplete:
		s.emit(telemetry.EventAbort, s.clock.Now(), 0)
	}
	s.ResetGame()
}

// ResetGame returns to IDLE at level 1 with empty populations and counters.
// Calling it twice is the same as calling it once.
func (s *Session) ResetGame() {
	s.fire(EventReset)
	s.currentLevel = 1
	s.levelCompleted = false
	s.victory = false
	s.initialPrey = 0
	s.survived = 0
	s.threatsSpawned = 0
	s.collected = 0
	s.totalCollected = 0
	s.threatSet = nil
	s.pop.Reset()
	s.fx.Clear()
	s.applyLevel(s.currentLevel)
}

// SetProjectorResolution sets the display size used for effects.
func (s *Session) SetProjectorResolution(w, h int) {
	s.projW, s.projH = w, h
}

// SetSensorResolution sets the sensor frame size. An empty ROI then covers the frame.
func (s *Session) SetSensorResolution(w, h int) {
	s.sensorW, s.sensorH = w, h
	if s.roi.Max.X <= s.roi.Min.X || s.roi.Max.Y <= s.roi.Min.Y {
		s.SetSensorROI(r2.Box{Max: r2.Vec{X: float64(w), Y: float64(h)}})
	}
}

// SetSensorROI updates the calibrated region used for placement and agent bounds.
func (s *Session) SetSensorROI(roi r2.Box) {
	if roi.Min.X > roi.Max.X {
		roi.Min.X, roi.Max.X = roi.Max.X, roi.Min.X
	}
	if roi.Min.Y > roi.Max.Y {
		roi.Min.Y, roi.Max.Y = roi.Max.Y, roi.Min.Y
	}
	s.roi = roi
	s.pop.SetROI(roi)
}

// Update advances the session by one frame.
func (s *Session) Update() {
	now := s.clock.Now()
	switch s.state {
	case StateIntro:
		if now-s.introStart > s.cfg.Derived.IntroDisplay && s.fire(EventIntroTimeout) {
			s.beginPlay(now)
		}

	case StatePlaying:
		s.updatePlaying(now)

	case StateLevelComplete:
		s.fx.Update(now)
		if now-s.transitionStart > s.cfg.Derived.LevelTransition && s.fire(EventTransitionTimeout) {
			s.resumeLevel(now)
		}

	case StateShowingResults:
		if s.victory {
			s.fx.Update(now)
		}
		if now-s.resultsStart > s.cfg.Derived.ResultsDisplay && s.fire(EventResultsTimeout) {
			s.ResetGame()
		}
	}
}

// updatePlaying runs one PLAYING tick: objective, loss, spawn, expiry, simulation.
func (s *Session) updatePlaying(now time.Duration) {
	if !s.levelCompleted && s.rules.Objective(s, now) {
		s.levelCompleted = true
		s.completeLevel(now)
		return
	}
	if s.rules.Lost(s, now) {
		s.defeat(now)
		return
	}

	s.rules.Spawn(s, now)
	s.rules.Expire(s, now)

	if s.oracle.IsStabilized() {
		s.rules.Simulate(s, now)
	}
}

// beginPlay starts level play after the intro.
func (s *Session) beginPlay(now time.Duration) {
	s.gameStart = now
	s.startLevel(now)
}

// resumeLevel starts the next level after the level complete screen.
func (s *Session) resumeLevel(now time.Duration) {
	s.applyLevel(s.currentLevel)
	s.startLevel(now)
}

func (s *Session) startLevel(now time.Duration) {
	s.levelCompleted = false
	s.levelStart = now
	s.spawnInitialPrey()
	s.rules.ResetLevel(s)
	s.lastSpawn = now
	s.fx.Clear()

	slog.Info("level_start", "game", s.Name(), "level", s.currentLevel, "name", s.level.Name, "prey", s.initialPrey)
	s.emit(telemetry.EventLevelStart, now, s.initialPrey)
}

func (s *Session) spawnInitialPrey() {
	n := s.pop.SpawnInitialPrey(s.level.InitialPopulation)
	if n < s.level.InitialPopulation {
		slog.Warn("initial_prey_short", "game", s.Name(), "wanted", s.level.InitialPopulation, "placed", n)
	}
	s.initialPrey = n
	s.survived = n
}

// completeLevel advances to the next level, or to victory after the last one.
func (s *Session) completeLevel(now time.Duration) {
	finished := s.currentLevel
	s.trophy = TrophyFor(finished)
	s.emit(telemetry.EventLevelComplete, now, 0)
	s.currentLevel++

	if s.currentLevel > s.levels.Len() {
		s.fire(EventFinalObjectiveMet)
		s.victory = true
		s.resultsStart = now
		s.fx.Victory(s.displayBounds())
		slog.Info("victory", "game", s.Name(), "session_id", s.id)
		s.emit(telemetry.EventVictory, now, 0)
		return
	}

	s.fire(EventObjectiveMet)
	s.transitionStart = now
	s.fx.LevelComplete(s.displayBounds())
	slog.Info("level_complete", "game", s.Name(), "level", finished)
}

func (s *Session) defeat(now time.Duration) {
	s.fire(EventLoss)
	s.victory = false
	s.resultsStart = now
	s.fx.Clear()
	slog.Info("defeat", "game", s.Name(), "level", s.currentLevel)
	s.emit(telemetry.EventDefeat, now, 0)
}

// applyLevel loads level n. Unknown levels leave the current config in place.
func (s *Session) applyLevel(n int) {
	lvl, ok := s.levels.Level(n)
	if !ok {
		slog.Warn("unknown_level", "game", s.Name(), "level", n)
		return
	}
	s.level = lvl
}

// fire applies e to the state machine and reports whether it was accepted.
func (s *Session) fire(e Event) bool {
	next, ok := Transition(s.state, e)
	if !ok {
		return false
	}
	if next != s.state {
		slog.Debug("state_transition", "game", s.Name(), "from", s.state.String(), "to", next.String(), "event", e.String())
	}
	s.state = next
	return true
}

func (s *Session) emit(t telemetry.EventType, now time.Duration, count int) {
	if s.sink == nil {
		return
	}
	s.sink.Record(telemetry.Event{
		Type:      t,
		Game:      s.Name(),
		SessionID: s.id,
		Level:     s.currentLevel,
		At:        now,
		Count:     count,
	})
}

func (s *Session) displayBounds() r2.Box {
	return r2.Box{Max: r2.Vec{X: float64(s.projW), Y: float64(s.projH)}}
}
