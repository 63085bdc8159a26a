package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
)

func ev(typ EventType, level int, at time.Duration, count int) Event {
	return Event{Type: typ, Game: "feeding", SessionID: "run-1", Level: level, At: at, Count: count}
}

func TestCollectorLevelFlow(t *testing.T) {
	c := NewCollector(nil, false)

	c.Record(ev(EventSessionStart, 1, 0, 0))
	c.Record(ev(EventLevelStart, 1, 10*time.Second, 10))
	c.Record(ev(EventFoodSpawned, 1, 13*time.Second, 0))
	c.Record(ev(EventFoodCollected, 1, 14*time.Second, 1))
	c.Record(ev(EventFoodSpawned, 1, 16*time.Second, 0))
	c.Record(ev(EventSpawnExhausted, 1, 19*time.Second, 100))
	c.Record(ev(EventFoodExpired, 1, 26*time.Second, 1))
	c.Record(ev(EventFoodCollected, 1, 18*time.Second, 2))
	c.Record(ev(EventLevelComplete, 1, 20*time.Second, 0))

	levels := c.Levels()
	if len(levels) != 1 {
		t.Fatalf("levels = %d, want 1", len(levels))
	}
	s := levels[0]
	if s.Outcome != "complete" || s.Level != 1 || s.SessionID != "run-1" {
		t.Errorf("unexpected identity: %+v", s)
	}
	if s.InitialPrey != 10 || s.FoodSpawned != 2 || s.FoodCollected != 2 || s.FoodExpired != 1 || s.SpawnExhausted != 1 {
		t.Errorf("unexpected counters: %+v", s)
	}
	if math.Abs(s.DurationSec-10) > 1e-9 {
		t.Errorf("duration = %v, want 10", s.DurationSec)
	}
	// collected at 4s and 8s into the level
	if math.Abs(s.CollectTimeMean-6) > 1e-9 {
		t.Errorf("collect mean = %v, want 6", s.CollectTimeMean)
	}
	if len(c.Sessions()) != 0 {
		t.Errorf("session should still be open")
	}
}

func TestCollectorDefeatClosesSession(t *testing.T) {
	c := NewCollector(nil, false)

	c.Record(Event{Type: EventSessionStart, Game: "survival", SessionID: "s", At: 0})
	c.Record(Event{Type: EventLevelStart, Game: "survival", SessionID: "s", Level: 1, At: time.Second, Count: 2})
	c.Record(Event{Type: EventLevelComplete, Game: "survival", SessionID: "s", Level: 1, At: 11 * time.Second})
	c.Record(Event{Type: EventLevelStart, Game: "survival", SessionID: "s", Level: 2, At: 16 * time.Second, Count: 2})
	c.Record(Event{Type: EventThreatSpawned, Game: "survival", SessionID: "s", Level: 2, At: 17 * time.Second})
	c.Record(Event{Type: EventPreyCaught, Game: "survival", SessionID: "s", Level: 2, At: 18 * time.Second})
	c.Record(Event{Type: EventPreyCaught, Game: "survival", SessionID: "s", Level: 2, At: 20 * time.Second})
	c.Record(Event{Type: EventDefeat, Game: "survival", SessionID: "s", Level: 2, At: 20 * time.Second})

	levels := c.Levels()
	if len(levels) != 2 {
		t.Fatalf("levels = %d, want 2", len(levels))
	}
	last := levels[1]
	if last.Outcome != "defeat" || last.PreyCaught != 2 || last.ThreatsSpawned != 1 {
		t.Errorf("unexpected level 2 stats: %+v", last)
	}
	if last.SurvivalRate() != 0 {
		t.Errorf("survival rate = %v, want 0", last.SurvivalRate())
	}
	if math.Abs(last.CatchTimeMean-3) > 1e-9 {
		t.Errorf("catch mean = %v, want 3", last.CatchTimeMean)
	}

	sessions := c.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	if sessions[0].Outcome != "defeat" || sessions[0].LevelsCleared != 1 || sessions[0].PreyCaught != 2 {
		t.Errorf("unexpected session: %+v", sessions[0])
	}
	if math.Abs(sessions[0].DurationSec-20) > 1e-9 {
		t.Errorf("session duration = %v, want 20", sessions[0].DurationSec)
	}
}

func TestCollectorAbortDuringIntro(t *testing.T) {
	c := NewCollector(nil, false)
	c.Record(ev(EventSessionStart, 1, 0, 0))
	c.Record(ev(EventAbort, 1, 3*time.Second, 0))

	if len(c.Levels()) != 0 {
		t.Errorf("abort during intro should not record a level")
	}
	if s := c.Sessions(); len(s) != 1 || s[0].Outcome != "abort" {
		t.Errorf("sessions = %+v, want one aborted session", s)
	}
}

func TestCollectorIgnoresEventsOutsideLevel(t *testing.T) {
	c := NewCollector(nil, false)
	c.Record(ev(EventFoodCollected, 1, time.Second, 1))
	c.Record(ev(EventLevelComplete, 1, 2*time.Second, 0))
	c.Record(ev(EventVictory, 1, 2*time.Second, 0))

	if len(c.Levels()) != 0 || len(c.Sessions()) != 0 {
		t.Errorf("stray events produced records: %v %v", c.Levels(), c.Sessions())
	}
}

func TestOutputManagerCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	c := NewCollector(om, false)

	for level := 1; level <= 2; level++ {
		start := time.Duration(level) * 10 * time.Second
		c.Record(ev(EventLevelStart, level, start, 10))
		c.Record(ev(EventFoodCollected, level, start+time.Second, 1))
		c.Record(ev(EventLevelComplete, level, start+2*time.Second, 0))
	}
	if err := om.WritePerf(PerfStatsCSV{Frame: 120, FPS: 60}); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "levels.csv"))
	if err != nil {
		t.Fatal(err)
	}
	var rows []LevelStats
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("parsing levels.csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (header written once)", len(rows))
	}
	if rows[1].Level != 2 || rows[1].FoodCollected != 1 || rows[1].Outcome != "complete" {
		t.Errorf("unexpected row: %+v", rows[1])
	}

	if _, err := os.Stat(filepath.Join(dir, "sessions.csv")); err != nil {
		t.Errorf("sessions.csv missing: %v", err)
	}

	data, err = os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	var perf []PerfStatsCSV
	if err := gocsv.UnmarshalBytes(data, &perf); err != nil {
		t.Fatalf("parsing perf.csv: %v", err)
	}
	if len(perf) != 1 || perf[0].Frame != 120 || perf[0].FPS != 60 {
		t.Errorf("perf rows = %+v", perf)
	}
}

func TestNilOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	if err := om.WriteLevel(LevelStats{}); err != nil {
		t.Errorf("nil WriteLevel: %v", err)
	}
	if err := om.WriteSession(SessionStats{}); err != nil {
		t.Errorf("nil WriteSession: %v", err)
	}
	if err := om.WritePerf(PerfStatsCSV{}); err != nil {
		t.Errorf("nil WritePerf: %v", err)
	}
	if err := om.WriteConfig(nil); err != nil {
		t.Errorf("nil WriteConfig: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("nil Dir() = %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
