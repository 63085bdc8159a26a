package game

import "fmt"

// State is a session phase.
type State uint8

const (
	StateIdle State = iota
	StateIntro
	StatePlaying
	StateLevelComplete
	StateShowingResults
)

var stateNames = [...]string{
	StateIdle:           "idle",
	StateIntro:          "intro",
	StatePlaying:        "playing",
	StateLevelComplete:  "level_complete",
	StateShowingResults: "showing_results",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// MarshalText renders the state name in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name, so monitor clients can decode snapshots.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// Event drives a state transition.
type Event uint8

const (
	EventStart             Event = iota // operator starts the game
	EventIntroTimeout                   // intro screen elapsed
	EventSkipIntro                      // operator skips the intro
	EventObjectiveMet                   // level objective met, more levels remain
	EventFinalObjectiveMet              // objective met on the last level
	EventLoss                           // loss condition hit
	EventTransitionTimeout              // level complete screen elapsed
	EventResultsTimeout                 // results screen elapsed
	EventAbort                          // operator backs out of the intro
	EventReset                          // unconditional return to idle
)

var eventNames = [...]string{
	EventStart:             "start",
	EventIntroTimeout:      "intro_timeout",
	EventSkipIntro:         "skip_intro",
	EventObjectiveMet:      "objective_met",
	EventFinalObjectiveMet: "final_objective_met",
	EventLoss:              "loss",
	EventTransitionTimeout: "transition_timeout",
	EventResultsTimeout:    "results_timeout",
	EventAbort:             "abort",
	EventReset:             "reset",
}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Transition returns the state reached from s on e.
// The second result is false when s does not accept e; s is returned unchanged.
func Transition(s State, e Event) (State, bool) {
	if e == EventReset {
		return StateIdle, true
	}
	switch s {
	case StateIdle:
		if e == EventStart {
			return StateIntro, true
		}
	case StateIntro:
		switch e {
		case EventIntroTimeout, EventSkipIntro:
			return StatePlaying, true
		case EventAbort:
			return StateIdle, true
		}
	case StatePlaying:
		switch e {
		case EventObjectiveMet:
			return StateLevelComplete, true
		case EventFinalObjectiveMet, EventLoss:
			return StateShowingResults, true
		}
	case StateLevelComplete:
		if e == EventTransitionTimeout {
			return StatePlaying, true
		}
	case StateShowingResults:
		if e == EventResultsTimeout {
			return StateIdle, true
		}
	}
	return s, false
}
