package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sandgames/config"
)

// Shark is the threat species. It pursues the nearest prey and wanders
// when none is in range.
type Shark struct {
	vehicle
}

// NewShark creates a shark at the given sensor point.
func NewShark(at r2.Vec, cfg config.SpeciesConfig, water WaterMap, bounds r2.Box, rng *rand.Rand) *Shark {
	return &Shark{vehicle: newVehicle(at, cfg, water, bounds, rng)}
}

// ApplyBehaviours pursues the nearest of the given prey. Sharks have no
// predators, so avoidPredators and threats are ignored.
func (s *Shark) ApplyBehaviours(avoidPredators bool, prey []Agent, threats []Threat) {
	if target, ok := s.nearest(prey); ok {
		s.applyForce(s.pursue(target), 1)
	} else {
		s.applyForce(s.wander(), s.cfg.WanderWeight)
	}
	s.applyForce(s.stayInWater(), s.cfg.WaterWeight)
	s.applyForce(s.stayInBounds(), 1)
}

func (s *Shark) nearest(prey []Agent) (Agent, bool) {
	var (
		best     Agent
		bestDist = s.cfg.Perception
	)
	for _, p := range prey {
		if d := distance(s.loc, p.Location()); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, best != nil
}

// maxLead caps how many ticks ahead a shark predicts its target.
const maxLead = 20.0

// pursue seeks where the target will be, leading by the time to close the gap.
func (s *Shark) pursue(target Agent) r2.Vec {
	lead := 0.0
	if s.cfg.MaxSpeed > 0 {
		lead = min(distance(s.loc, target.Location())/s.cfg.MaxSpeed, maxLead)
	}
	predicted := r2.Add(target.Location(), r2.Scale(lead, target.Velocity()))
	return s.seek(predicted)
}
