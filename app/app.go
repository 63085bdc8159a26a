// Package app runs the two sand-table games against one shared table.
// It owns the terrain, the sessions, telemetry and the monitor feed, and
// takes operator commands from whatever front end hosts it.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sandgames/camera"
	"github.com/pthm-cable/sandgames/config"
	"github.com/pthm-cable/sandgames/game"
	"github.com/pthm-cable/sandgames/monitor"
	"github.com/pthm-cable/sandgames/telemetry"
	"github.com/pthm-cable/sandgames/terrain"
)

// Game names, in selection order.
const (
	Survival = "survival"
	Feeding  = "feeding"
)

// FrameDT is the simulated frame length of headless runs.
const FrameDT = time.Second / 60

const perfEvery = 600 // frames between perf log lines

// Options configures a new App.
type Options struct {
	Config *config.Config
	Seed   int64

	// Clock drives every session; nil uses the wall clock. Headless runs
	// pass a ManualClock, which UpdateHeadless advances by FrameDT.
	Clock game.Clock
	// Surface is the sand table; nil uses the configured noise field.
	Surface terrain.Surface

	OutputDir   string // overrides config telemetry.output_dir when set
	MonitorAddr string // overrides config monitor.addr when set
	PerfLog     bool

	// AutoPlay restarts the named game whenever every session is idle.
	AutoPlay string
}

// App holds the complete host state.
type App struct {
	cfg   *config.Config
	clock game.Clock
	cam   *camera.Camera
	table *terrain.Sandbox

	sessions map[string]*game.Session
	order    []string
	active   string

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	pending   []telemetry.Bookmark

	hub    *monitor.Hub
	cancel context.CancelFunc

	perf     *telemetry.PerfCollector
	perfLog  bool
	autoPlay string
	frame    int64
}

// New builds the table, both sessions and the optional outputs.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	clock := opts.Clock
	if clock == nil {
		clock = game.NewSystemClock()
	}

	a := &App{
		cfg:      cfg,
		clock:    clock,
		sessions: make(map[string]*game.Session),
		order:    []string{Survival, Feeding},
		active:   Survival,
		perf:     telemetry.NewPerfCollector(120),
		perfLog:  opts.PerfLog,
		autoPlay: opts.AutoPlay,
	}
	if opts.AutoPlay != "" {
		if opts.AutoPlay != Survival && opts.AutoPlay != Feeding {
			return nil, fmt.Errorf("unknown game %q", opts.AutoPlay)
		}
		a.active = opts.AutoPlay
	}

	a.cam = camera.New(a.configuredROI(), float64(cfg.Projector.Width), float64(cfg.Projector.Height))
	surface := opts.Surface
	if surface == nil {
		surface = terrain.NewNoiseField(cfg.Terrain)
	}
	a.table = terrain.NewSandbox(surface, a.cam, clock.Now, cfg.Derived.StabilizeWarmup)

	outDir := cfg.Telemetry.OutputDir
	if opts.OutputDir != "" {
		outDir = opts.OutputDir
	}
	out, err := telemetry.NewOutputManager(outDir)
	if err != nil {
		return nil, fmt.Errorf("telemetry output: %w", err)
	}
	if err := out.WriteConfig(cfg); err != nil {
		out.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	a.output = out
	a.collector = telemetry.NewCollector(out, cfg.Telemetry.LogLevels)
	a.collector.OnBookmark = func(b telemetry.Bookmark) {
		a.pending = append(a.pending, b)
	}

	for i, name := range a.order {
		so := game.Options{
			Config: cfg,
			Oracle: a.table,
			Clock:  clock,
			Rand:   rand.New(rand.NewSource(opts.Seed + int64(i))),
			Sink:   a.collector,
		}
		var s *game.Session
		if name == Survival {
			s = game.NewSurvival(so)
		} else {
			s = game.NewFeeding(so)
		}
		s.SetProjectorResolution(cfg.Projector.Width, cfg.Projector.Height)
		s.SetSensorResolution(cfg.Sensor.Width, cfg.Sensor.Height)
		s.SetSensorROI(a.cam.ROI)
		a.sessions[name] = s
	}

	addr := cfg.Monitor.Addr
	if opts.MonitorAddr != "" {
		addr = opts.MonitorAddr
	}
	if addr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		a.cancel = cancel
		a.hub = monitor.NewHub()
		go func() {
			if err := monitor.Serve(ctx, addr, a.hub); err != nil {
				slog.Error("monitor_failed", "error", err)
			}
		}()
	}

	slog.Info("app_ready",
		"seed", opts.Seed,
		"projector", fmt.Sprintf("%dx%d", cfg.Projector.Width, cfg.Projector.Height),
		"roi", a.cam.ROI,
		"output_dir", out.Dir(),
		"monitor", addr,
	)
	return a, nil
}

// configuredROI returns the configured ROI, or the whole sensor frame when
// none is set.
func (a *App) configuredROI() r2.Box {
	roi := a.cfg.Sensor.ROI
	if roi.Width <= 0 || roi.Height <= 0 {
		return r2.Box{Max: r2.Vec{X: float64(a.cfg.Sensor.Width), Y: float64(a.cfg.Sensor.Height)}}
	}
	return r2.Box{
		Min: r2.Vec{X: roi.X, Y: roi.Y},
		Max: r2.Vec{X: roi.X + roi.Width, Y: roi.Y + roi.Height},
	}
}

// Config returns the configuration in use.
func (a *App) Config() *config.Config { return a.cfg }

// Camera returns the projector calibration.
func (a *App) Camera() *camera.Camera { return a.cam }

// Table returns the terrain oracle shared by both games.
func (a *App) Table() *terrain.Sandbox { return a.table }

// Session returns the named session, or nil.
func (a *App) Session(name string) *game.Session { return a.sessions[name] }

// Active returns the session shown on the table.
func (a *App) Active() *game.Session { return a.sessions[a.active] }

// Frame returns the number of completed frames.
func (a *App) Frame() int64 { return a.frame }

// Collector returns the telemetry collector.
func (a *App) Collector() *telemetry.Collector { return a.collector }

// Hub returns the monitor hub, or nil when the feed is disabled.
func (a *App) Hub() *monitor.Hub { return a.hub }

// Perf returns the frame timing collector.
func (a *App) Perf() *telemetry.PerfCollector { return a.perf }

// Busy reports whether any session is past idle.
func (a *App) Busy() bool {
	for _, s := range a.sessions {
		if !s.IsIdle() {
			return true
		}
	}
	return false
}

// SetROI recalibrates the table and starts a new settling window.
func (a *App) SetROI(roi r2.Box) {
	if !a.cam.SetROI(roi) {
		return
	}
	a.table.Unsettle()
	for _, s := range a.sessions {
		s.SetSensorROI(a.cam.ROI)
	}
	slog.Info("roi_changed", "roi", a.cam.ROI)
}

// Resize updates the projector size used for effects and mapping.
func (a *App) Resize(w, h int) {
	a.cam.Resize(float64(w), float64(h))
	for _, s := range a.sessions {
		s.SetProjectorResolution(w, h)
	}
}

// BeginFrame starts frame timing. Operator input handled before Update is
// counted as the input phase.
func (a *App) BeginFrame() {
	a.perf.StartFrame()
	a.perf.StartPhase(telemetry.PhaseInput)
}

// Update runs one frame: the ROI is propagated, sessions advance and the
// monitor is fed. Front ends call BeginFrame before handling input and
// EndFrame after drawing.
func (a *App) Update() {
	a.perf.StartPhase(telemetry.PhaseSensor)
	// Re-sent every frame so a recalibration reaches idle sessions too.
	for _, s := range a.sessions {
		s.SetSensorROI(a.cam.ROI)
	}

	a.perf.StartPhase(telemetry.PhaseSession)
	if a.autoPlay != "" && !a.Busy() {
		a.Start(a.autoPlay)
	}
	for _, name := range a.order {
		a.sessions[name].Update()
	}

	a.perf.StartPhase(telemetry.PhaseMonitor)
	a.publish()
	a.flushBookmarks()
}

// UpdateHeadless advances a manual clock by FrameDT, runs one frame and ends it.
func (a *App) UpdateHeadless() {
	if mc, ok := a.clock.(*game.ManualClock); ok {
		mc.Advance(FrameDT)
	}
	a.BeginFrame()
	a.Update()
	a.EndFrame()
}

// EndFrame closes the frame timing and logs perf periodically.
func (a *App) EndFrame() {
	a.perf.EndFrame()
	a.frame++
	if a.perfLog && a.frame%perfEvery == 0 {
		stats := a.perf.Stats()
		slog.Info("perf", "frame", a.frame, "stats", stats)
		if err := a.output.WritePerf(stats.ToCSV(a.frame)); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	}
}

// StartPhase forwards to the frame timer so front ends can time their own work.
func (a *App) StartPhase(phase string) {
	a.perf.StartPhase(phase)
}

func (a *App) publish() {
	if a.hub == nil {
		return
	}
	every := int64(a.cfg.Monitor.PublishEvery)
	if every < 1 {
		every = 1
	}
	if a.frame%every != 0 {
		return
	}
	snap := a.Active().Snapshot()
	if err := a.hub.Publish("snapshot", snap); err != nil {
		slog.Warn("monitor_publish_failed", "error", err)
	}
}

// flushBookmarks saves a session snapshot next to each bookmark raised
// this frame.
func (a *App) flushBookmarks() {
	if len(a.pending) == 0 {
		return
	}
	dir := a.output.Dir()
	for i := range a.pending {
		b := a.pending[i]
		if dir == "" {
			continue
		}
		s := a.sessions[b.Game]
		if s == nil {
			continue
		}
		path, err := telemetry.SaveSnapshot(&telemetry.SnapshotFile{Bookmark: &b, Session: s.Snapshot()}, filepath.Join(dir, "snapshots"))
		if err != nil {
			slog.Error("failed to save bookmark snapshot", "error", err)
			continue
		}
		slog.Debug("bookmark_saved", "path", path)
	}
	a.pending = a.pending[:0]
}

// Close stops the monitor and flushes telemetry.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	return a.output.Close()
}
