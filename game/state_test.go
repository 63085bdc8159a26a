package game

import (
	"encoding/json"
	"testing"

	"github.com/pthm-cable/sandgames/config"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from   State
		event  Event
		want   State
		wantOK bool
	}{
		{StateIdle, EventStart, StateIntro, true},
		{StateIdle, EventSkipIntro, StateIdle, false},
		{StateIdle, EventAbort, StateIdle, false},
		{StateIntro, EventIntroTimeout, StatePlaying, true},
		{StateIntro, EventSkipIntro, StatePlaying, true},
		{StateIntro, EventAbort, StateIdle, true},
		{StateIntro, EventStart, StateIntro, false},
		{StatePlaying, EventObjectiveMet, StateLevelComplete, true},
		{StatePlaying, EventFinalObjectiveMet, StateShowingResults, true},
		{StatePlaying, EventLoss, StateShowingResults, true},
		{StatePlaying, EventAbort, StatePlaying, false},
		{StatePlaying, EventStart, StatePlaying, false},
		{StateLevelComplete, EventTransitionTimeout, StatePlaying, true},
		{StateLevelComplete, EventLoss, StateLevelComplete, false},
		{StateShowingResults, EventResultsTimeout, StateIdle, true},
		{StateShowingResults, EventStart, StateShowingResults, false},
		{StatePlaying, EventReset, StateIdle, true},
		{StateShowingResults, EventReset, StateIdle, true},
		{StateIdle, EventReset, StateIdle, true},
	}

	for _, tt := range tests {
		got, ok := Transition(tt.from, tt.event)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Transition(%v, %v) = %v, %v; want %v, %v", tt.from, tt.event, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStateJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		S State `json:"s"`
	}{StateLevelComplete})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"s":"level_complete"}` {
		t.Errorf("got %s", data)
	}
	if State(99).String() != "unknown" || Event(99).String() != "unknown" {
		t.Errorf("out of range names should be unknown")
	}
}

func TestLevelTable(t *testing.T) {
	table := NewLevelTable([]config.LevelConfig{
		{Number: 1, InitialPopulation: 10, SpawnInterval: 3.5, Duration: 20, Name: "one"},
		{Number: 2, InitialPopulation: 12, SpawnInterval: 0.25, Duration: 30, Name: "two"},
	})

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	l, ok := table.Level(1)
	if !ok || l.Name != "one" || l.SpawnInterval.Milliseconds() != 3500 || l.Duration.Seconds() != 20 {
		t.Errorf("Level(1) = %+v, %v", l, ok)
	}
	if l, ok := table.Level(2); !ok || l.SpawnInterval.Milliseconds() != 250 {
		t.Errorf("Level(2) = %+v, %v", l, ok)
	}
	for _, n := range []int{0, -1, 3} {
		if _, ok := table.Level(n); ok {
			t.Errorf("Level(%d) should be out of range", n)
		}
	}
}
