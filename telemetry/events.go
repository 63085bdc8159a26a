// Package telemetry records session events, aggregates per-level stats and writes CSV output.
package telemetry

import "time"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSessionStart EventType = iota
	EventLevelStart
	EventPreyCaught
	EventThreatSpawned
	EventFoodSpawned
	EventFoodCollected
	EventFoodExpired
	EventSpawnExhausted
	EventLevelComplete
	EventDefeat
	EventVictory
	EventAbort
)

var eventNames = [...]string{
	EventSessionStart:   "session_start",
	EventLevelStart:     "level_start",
	EventPreyCaught:     "prey_caught",
	EventThreatSpawned:  "threat_spawned",
	EventFoodSpawned:    "food_spawned",
	EventFoodCollected:  "food_collected",
	EventFoodExpired:    "food_expired",
	EventSpawnExhausted: "spawn_exhausted",
	EventLevelComplete:  "level_complete",
	EventDefeat:         "defeat",
	EventVictory:        "victory",
	EventAbort:          "abort",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is a single session occurrence.
type Event struct {
	Type      EventType
	Game      string
	SessionID string
	Level     int
	At        time.Duration // session clock

	// Count depends on the type: prey spawned for level_start, items for
	// food_expired, placement attempts for spawn_exhausted.
	Count int
}

// Sink receives events as they happen.
type Sink interface {
	Record(Event)
}
