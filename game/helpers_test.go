package game

import (
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sandgames/camera"
	"github.com/pthm-cable/sandgames/components"
	"github.com/pthm-cable/sandgames/config"
	"github.com/pthm-cable/sandgames/systems"
	"github.com/pthm-cable/sandgames/telemetry"
	"github.com/pthm-cable/sandgames/terrain"
)

// fixedRand always samples the middle of the spawn region.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

// puppet is an agent that stays where it is put and records what it was told.
type puppet struct {
	loc, vel r2.Vec
	size     float64
	drift    r2.Vec // added to loc on every Update

	seen        []r2.Vec // threat locations from the last ApplyBehaviours

	applied     int
	updated     int
	avoid       bool
	neighbors   int
	threatCount int
}

func (p *puppet) ApplyBehaviours(avoid bool, neighbors []systems.Agent, threats []systems.Threat) {
	p.applied++
	p.avoid = avoid
	p.neighbors = len(neighbors)
	p.threatCount = len(threats)
	p.seen = p.seen[:0]
	for _, t := range threats {
		p.seen = append(p.seen, t.Location)
	}
}
func (p *puppet) Update() {
	p.updated++
	p.loc = r2.Add(p.loc, p.drift)
}
func (p *puppet) Location() r2.Vec { return p.loc }
func (p *puppet) Velocity() r2.Vec { return p.vel }
func (p *puppet) Size() float64    { return p.size }

// recorder is a telemetry sink that keeps every event.
type recorder struct {
	events []telemetry.Event
}

func (r *recorder) Record(e telemetry.Event) { r.events = append(r.events, e) }

func (r *recorder) count(t telemetry.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

type harness struct {
	t     *testing.T
	cfg   *config.Config
	clock *ManualClock
	box   *terrain.Sandbox
	sink  *recorder
	sess  *Session
}

type harnessOptions struct {
	game      string  // "survival" or "feeding"
	elevation float64 // constant table height; negative is water
	warmup    time.Duration
	// place overrides where puppets appear; nil keeps the placer's point
	place func(kind components.Kind, at r2.Vec) r2.Vec
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func newHarness(t *testing.T, cfg *config.Config, o harnessOptions) *harness {
	t.Helper()
	h := &harness{t: t, cfg: cfg, clock: &ManualClock{}, sink: &recorder{}}

	roi := r2.Box{Max: r2.Vec{X: float64(cfg.Sensor.Width), Y: float64(cfg.Sensor.Height)}}
	cam := camera.New(roi, float64(cfg.Projector.Width), float64(cfg.Projector.Height))
	var now func() time.Duration
	if o.warmup > 0 {
		now = h.clock.Now
	}
	h.box = terrain.NewSandbox(terrain.Constant(o.elevation), cam, now, o.warmup)

	factory := func(kind components.Kind, at r2.Vec, bounds r2.Box) systems.Agent {
		if o.place != nil {
			at = o.place(kind, at)
		}
		size := cfg.Steering.Fish.Size
		if kind == components.KindThreat {
			size = cfg.Steering.Shark.Size
		}
		return &puppet{loc: at, size: size}
	}

	opts := Options{
		Config:  cfg,
		Oracle:  h.box,
		Clock:   h.clock,
		Factory: factory,
		Placer:  systems.NewPlacer(h.box, fixedRand(0.5)),
		Sink:    h.sink,
	}
	if o.game == "feeding" {
		h.sess = NewFeeding(opts)
	} else {
		h.sess = NewSurvival(opts)
	}
	return h
}

// step advances the clock by d and runs one update.
func (h *harness) step(d time.Duration) {
	h.clock.Advance(d)
	h.sess.Update()
}

// play starts a game and waits out the intro.
func (h *harness) play() {
	h.t.Helper()
	if !h.sess.StartGame() {
		h.t.Fatalf("StartGame refused in state %v", h.sess.State())
	}
	h.step(h.cfg.Derived.IntroDisplay + time.Millisecond)
	if h.sess.State() != StatePlaying {
		h.t.Fatalf("state after intro = %v, want playing", h.sess.State())
	}
}

func (h *harness) expectState(want State) {
	h.t.Helper()
	if got := h.sess.State(); got != want {
		h.t.Fatalf("state = %v, want %v", got, want)
	}
}

func puppetOf(m Member) *puppet {
	return m.Agent.(*puppet)
}
