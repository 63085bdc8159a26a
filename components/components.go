// Package components defines ECS components for the game populations.
package components

import (
	"time"

	"github.com/pthm-cable/sandgames/systems"
)

// Kind distinguishes the two agent populations.
type Kind uint8

const (
	KindPrey   Kind = iota // Fish: flock, flee, eat
	KindThreat             // Shark: pursue prey
)

// String returns the lowercase kind name used in logs and snapshots.
func (k Kind) String() string {
	switch k {
	case KindPrey:
		return "prey"
	case KindThreat:
		return "threat"
	default:
		return "unknown"
	}
}

// Position is a point in sensor space.
type Position struct {
	X, Y float64
}

// Velocity is the per-tick displacement in sensor space.
type Velocity struct {
	X, Y float64
}

// Body holds the collision size of an agent or item.
type Body struct {
	Size float64
}

// Agent identifies a steering agent in its population.
// Seq is the insertion index; lower Seq wins collision ties.
type Agent struct {
	Seq  uint64
	Kind Kind
}

// Steering holds the species behaviour driving an agent.
type Steering struct {
	Agent systems.Agent
}

// Food is a collectible item in the feeding game.
// Inactive items stay in the world until they age out.
type Food struct {
	Seq       uint64
	Active    bool
	SpawnTime time.Duration
}
