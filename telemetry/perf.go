package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one application frame.
const (
	PhaseInput   = "input"
	PhaseSensor  = "sensor"
	PhaseSession = "session"
	PhaseMonitor = "monitor"
	PhaseRender  = "render"
)

var phases = []string{PhaseInput, PhaseSensor, PhaseSession, PhaseMonitor, PhaseRender}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame timings over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated frame statistics.
type PerfStats struct {
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	FramesPerSecond float64
}

// Stats aggregates the samples in the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.sampleCount == 0 {
		return s
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		sample := p.samples[i]
		total += sample.FrameDuration
		if i == 0 || sample.FrameDuration < s.MinFrame {
			s.MinFrame = sample.FrameDuration
		}
		if sample.FrameDuration > s.MaxFrame {
			s.MaxFrame = sample.FrameDuration
		}
		for phase, d := range sample.Phases {
			phaseSum[phase] += d
		}
	}

	s.AvgFrame = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		s.PhaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if s.AvgFrame > 0 {
			s.PhasePct[phase] = float64(s.PhaseAvg[phase]) / float64(s.AvgFrame) * 100
		}
	}
	if s.AvgFrame > 0 {
		s.FramesPerSecond = float64(time.Second) / float64(s.AvgFrame)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Float64("fps", s.FramesPerSecond),
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of frame stats.
type PerfStatsCSV struct {
	Frame      int64   `csv:"frame"`
	AvgFrameUS int64   `csv:"avg_frame_us"`
	MinFrameUS int64   `csv:"min_frame_us"`
	MaxFrameUS int64   `csv:"max_frame_us"`
	FPS        float64 `csv:"fps"`
	InputPct   float64 `csv:"input_pct"`
	SensorPct  float64 `csv:"sensor_pct"`
	SessionPct float64 `csv:"session_pct"`
	MonitorPct float64 `csv:"monitor_pct"`
	RenderPct  float64 `csv:"render_pct"`
}

// ToCSV converts PerfStats to a flat CSV row.
func (s PerfStats) ToCSV(frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:      frame,
		AvgFrameUS: s.AvgFrame.Microseconds(),
		MinFrameUS: s.MinFrame.Microseconds(),
		MaxFrameUS: s.MaxFrame.Microseconds(),
		FPS:        s.FramesPerSecond,
		InputPct:   s.PhasePct[PhaseInput],
		SensorPct:  s.PhasePct[PhaseSensor],
		SessionPct: s.PhasePct[PhaseSession],
		MonitorPct: s.PhasePct[PhaseMonitor],
		RenderPct:  s.PhasePct[PhaseRender],
	}
}
