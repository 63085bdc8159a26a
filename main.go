package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgames/app"
	"github.com/pthm-cable/sandgames/config"
	"github.com/pthm-cable/sandgames/game"
	"github.com/pthm-cable/sandgames/host"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	monitorAddr := flag.String("monitor-addr", "", "Serve the snapshot feed on this address (e.g. :8080)")
	headless := flag.Bool("headless", false, "Run without graphics on a simulated clock")
	autoPlay := flag.String("game", "", "Start this game (survival|feeding) whenever the table is idle")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	perfLog := flag.Bool("perf", false, "Log frame timings periodically")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "value", *logLevel, "error", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := app.Options{
		Config:      cfg,
		Seed:        rngSeed,
		OutputDir:   *outputDir,
		MonitorAddr: *monitorAddr,
		PerfLog:     *perfLog,
		AutoPlay:    *autoPlay,
	}

	if *headless {
		// Headless mode - simulated clock, no raylib needed
		opts.Clock = &game.ManualClock{}
		a, err := app.New(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer a.Close()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"game", *autoPlay,
			"max_ticks", *maxTicks,
		)

		for {
			a.UpdateHeadless()

			if *maxTicks > 0 && a.Frame() >= int64(*maxTicks) {
				slog.Info("max ticks reached", "frame", a.Frame())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Projector.Width), int32(cfg.Projector.Height), "Sand Games")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Projector.TargetFPS))
	// ESC aborts the intro instead of closing the window.
	rl.SetExitKey(0)

	a, err := app.New(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	w := host.New(a)
	defer w.Unload()

	for !rl.WindowShouldClose() {
		w.Update()
		w.Draw()

		if *maxTicks > 0 && a.Frame() >= int64(*maxTicks) {
			break
		}
	}
}
