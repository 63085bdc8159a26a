package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sandgames/config"
)

// Fish is the prey species: a boid that flocks with other fish, flees
// threats and keeps to the water.
type Fish struct {
	vehicle
}

// NewFish creates a fish at the given sensor point.
func NewFish(at r2.Vec, cfg config.SpeciesConfig, water WaterMap, bounds r2.Box, rng *rand.Rand) *Fish {
	return &Fish{vehicle: newVehicle(at, cfg, water, bounds, rng)}
}

// ApplyBehaviours accumulates flocking over neighbours, evasion from every
// threat whose influence radius contains the fish, and the water and
// boundary terms.
func (f *Fish) ApplyBehaviours(avoidPredators bool, neighbors []Agent, threats []Threat) {
	sep, ali, coh := f.flock(neighbors)
	f.applyForce(sep, f.cfg.SeparationWeight)
	f.applyForce(ali, f.cfg.AlignmentWeight)
	f.applyForce(coh, f.cfg.CohesionWeight)

	if avoidPredators {
		f.applyForce(f.evade(threats), f.cfg.FleeWeight)
	}

	f.applyForce(f.wander(), f.cfg.WanderWeight)
	f.applyForce(f.stayInWater(), f.cfg.WaterWeight)
	f.applyForce(f.stayInBounds(), 1)
}

// flock computes separation, alignment and cohesion steering.
func (f *Fish) flock(neighbors []Agent) (sep, ali, coh r2.Vec) {
	var (
		away, velSum, locSum r2.Vec
		crowded, seen        int
	)
	for _, other := range neighbors {
		if other == Agent(f) {
			continue
		}
		d := distance(f.loc, other.Location())
		if d <= 0 || d > f.cfg.Perception {
			continue
		}
		if d < f.cfg.SeparationDist {
			// Closer neighbours push harder
			away = r2.Add(away, r2.Scale(1/d, setMag(r2.Sub(f.loc, other.Location()), 1)))
			crowded++
		}
		velSum = r2.Add(velSum, other.Velocity())
		locSum = r2.Add(locSum, other.Location())
		seen++
	}

	if crowded > 0 {
		desired := setMag(away, f.cfg.MaxSpeed)
		sep = limit(r2.Sub(desired, f.vel), f.cfg.MaxForce)
	}
	if seen > 0 {
		desired := setMag(velSum, f.cfg.MaxSpeed)
		ali = limit(r2.Sub(desired, f.vel), f.cfg.MaxForce)
		coh = f.seek(r2.Scale(1/float64(seen), locSum))
	}
	return sep, ali, coh
}

// evade flees the predicted positions of nearby threats.
func (f *Fish) evade(threats []Threat) r2.Vec {
	var sum r2.Vec
	for _, t := range threats {
		if distance(f.loc, t.Location) >= t.Radius {
			continue
		}
		sum = r2.Add(sum, f.flee(r2.Add(t.Location, t.Velocity)))
	}
	return limit(sum, f.cfg.MaxForce)
}
