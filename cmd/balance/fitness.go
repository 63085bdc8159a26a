package main

import (
	"math"
	"sync"
	"time"

	"github.com/pthm-cable/sandgames/app"
	"github.com/pthm-cable/sandgames/config"
	"github.com/pthm-cable/sandgames/game"
	"github.com/pthm-cable/sandgames/telemetry"
)

// Targets is the intended clear rate of levels 1..n: each level a bit
// harder than the one before.
var Targets = []float64{0.85, 0.65, 0.45}

// missingPenalty is charged for each target level never reached.
const missingPenalty = 1.0

// FitnessEvaluator plays headless games and scores how far the observed
// clear rates are from Targets.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config
	simTime    time.Duration

	mu       sync.Mutex
	lastRate map[string][]float64
}

// NewFitnessEvaluator creates a new evaluator. Each seed plays both games
// for simTime of simulated time.
func NewFitnessEvaluator(params *ParamVector, simTime time.Duration, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		seeds:      seeds,
		baseConfig: baseCfg,
		simTime:    simTime,
	}
}

// LastRates returns the per-level clear rates of the most recent evaluation.
func (fe *FitnessEvaluator) LastRates() map[string][]float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastRate
}

// tally counts played and cleared levels per game.
type tally struct {
	played, cleared map[string][]int
}

func newTally() tally {
	return tally{played: map[string][]int{}, cleared: map[string][]int{}}
}

func (t tally) add(levels []telemetry.LevelStats) {
	for _, l := range levels {
		if l.Outcome == "abort" {
			continue
		}
		for len(t.played[l.Game]) < l.Level {
			t.played[l.Game] = append(t.played[l.Game], 0)
			t.cleared[l.Game] = append(t.cleared[l.Game], 0)
		}
		t.played[l.Game][l.Level-1]++
		if l.Outcome == "complete" {
			t.cleared[l.Game][l.Level-1]++
		}
	}
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([][]telemetry.LevelStats, len(fe.seeds)*2)
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		for j, name := range []string{app.Survival, app.Feeding} {
			wg.Add(1)
			go func(idx int, s int64, name string) {
				defer wg.Done()
				results[idx] = fe.play(x, s, name)
			}(i*2+j, seed, name)
		}
	}
	wg.Wait()

	t := newTally()
	for _, r := range results {
		t.add(r)
	}

	rates := map[string][]float64{}
	var fitness float64
	for _, name := range []string{app.Survival, app.Feeding} {
		for lvl, target := range Targets {
			if lvl >= len(t.played[name]) || t.played[name][lvl] == 0 {
				fitness += missingPenalty
				rates[name] = append(rates[name], math.NaN())
				continue
			}
			rate := float64(t.cleared[name][lvl]) / float64(t.played[name][lvl])
			rates[name] = append(rates[name], rate)
			fitness += (rate - target) * (rate - target)
		}
	}

	fe.mu.Lock()
	fe.lastRate = rates
	fe.mu.Unlock()
	return fitness
}

// play runs one game back to back on a seeded table and returns its levels.
func (fe *FitnessEvaluator) play(x []float64, seed int64, name string) []telemetry.LevelStats {
	cfg := copyConfig(fe.baseConfig)
	fe.params.ApplyToConfig(cfg, x)
	cfg.Terrain.Seed = seed
	cfg.Telemetry.OutputDir = ""
	cfg.Telemetry.LogLevels = false
	cfg.Monitor.Addr = ""

	a, err := app.New(app.Options{
		Config:   cfg,
		Seed:     seed,
		Clock:    &game.ManualClock{},
		AutoPlay: name,
	})
	if err != nil {
		return nil
	}
	defer a.Close()

	frames := int64(fe.simTime / app.FrameDT)
	for a.Frame() < frames {
		a.UpdateHeadless()
	}
	return a.Collector().Levels()
}
