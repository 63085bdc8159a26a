// Package systems provides the agent behaviours, spawn placement and collision
// rules shared by the games.
package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sandgames/config"
)

// Agent is a steering agent. The games depend only on this capability.
type Agent interface {
	// ApplyBehaviours accumulates steering for this tick. Neighbours are the
	// agents this one reacts to: its flock for prey, the prey for threats.
	ApplyBehaviours(avoidPredators bool, neighbors []Agent, threats []Threat)
	// Update integrates the accumulated steering into velocity and position.
	Update()
	Location() r2.Vec
	Velocity() r2.Vec
	Size() float64
}

// Bounded is implemented by agents that keep inside the calibrated region.
type Bounded interface {
	SetBounds(r2.Box)
}

// WaterMap answers whether a sensor point is under water.
type WaterMap interface {
	IsUnderwater(x, y float64) bool
}

// Threat is one entry of the per-tick threat set seen by prey.
type Threat struct {
	Location r2.Vec
	Velocity r2.Vec
	Radius   float64
}

// ThreatsFrom builds the threat set from the current threat agents.
// The result has one entry per threat, with radius = size × multiplier.
func ThreatsFrom(threats []Agent, multiplier float64) []Threat {
	out := make([]Threat, len(threats))
	for i, a := range threats {
		out[i] = Threat{
			Location: a.Location(),
			Velocity: a.Velocity(),
			Radius:   a.Size() * multiplier,
		}
	}
	return out
}

// vehicle is the motion model shared by the species.
type vehicle struct {
	loc, vel, acc r2.Vec
	cfg           config.SpeciesConfig
	water         WaterMap
	bounds        r2.Box
	rng           *rand.Rand
	wanderTheta   float64
}

func newVehicle(at r2.Vec, cfg config.SpeciesConfig, water WaterMap, bounds r2.Box, rng *rand.Rand) vehicle {
	angle := rng.Float64() * 2 * math.Pi
	return vehicle{
		loc:         at,
		vel:         r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)},
		cfg:         cfg,
		water:       water,
		bounds:      bounds,
		rng:         rng,
		wanderTheta: angle,
	}
}

func (v *vehicle) Location() r2.Vec { return v.loc }
func (v *vehicle) Velocity() r2.Vec { return v.vel }
func (v *vehicle) Size() float64    { return v.cfg.Size }

// SetBounds replaces the region the vehicle keeps inside.
func (v *vehicle) SetBounds(b r2.Box) { v.bounds = b }

// Update integrates acceleration. A step whose destination is land is
// rejected and the vehicle turns around.
func (v *vehicle) Update() {
	v.vel = limit(r2.Add(v.vel, v.acc), v.cfg.MaxSpeed)
	v.acc = r2.Vec{}

	next := r2.Add(v.loc, v.vel)
	if v.water != nil && !v.water.IsUnderwater(next.X, next.Y) {
		v.vel = r2.Scale(-1, v.vel)
		return
	}
	v.loc = next
}

func (v *vehicle) applyForce(f r2.Vec, weight float64) {
	v.acc = r2.Add(v.acc, r2.Scale(weight, f))
}

// seek steers towards target at full speed.
func (v *vehicle) seek(target r2.Vec) r2.Vec {
	desired := setMag(r2.Sub(target, v.loc), v.cfg.MaxSpeed)
	return limit(r2.Sub(desired, v.vel), v.cfg.MaxForce)
}

// flee steers directly away from target at full speed.
func (v *vehicle) flee(target r2.Vec) r2.Vec {
	desired := setMag(r2.Sub(v.loc, target), v.cfg.MaxSpeed)
	return limit(r2.Sub(desired, v.vel), v.cfg.MaxForce)
}

// stayInWater probes ahead along the velocity and steers back when the probe is on land.
func (v *vehicle) stayInWater() r2.Vec {
	if v.water == nil || v.cfg.WaterLookahead <= 0 {
		return r2.Vec{}
	}
	ahead := r2.Add(v.loc, setMag(v.vel, v.cfg.WaterLookahead))
	if v.water.IsUnderwater(ahead.X, ahead.Y) {
		return r2.Vec{}
	}
	return v.flee(ahead)
}

// stayInBounds pushes the vehicle back inside its region near the edges.
func (v *vehicle) stayInBounds() r2.Vec {
	w, h := boxSize(v.bounds)
	if w <= 0 || h <= 0 {
		return r2.Vec{}
	}
	m := v.cfg.BoundaryMargin
	var desired r2.Vec
	switch {
	case v.loc.X < v.bounds.Min.X+m:
		desired.X = v.cfg.MaxSpeed
	case v.loc.X > v.bounds.Max.X-m:
		desired.X = -v.cfg.MaxSpeed
	default:
		desired.X = v.vel.X
	}
	switch {
	case v.loc.Y < v.bounds.Min.Y+m:
		desired.Y = v.cfg.MaxSpeed
	case v.loc.Y > v.bounds.Max.Y-m:
		desired.Y = -v.cfg.MaxSpeed
	default:
		desired.Y = v.vel.Y
	}
	if desired == v.vel {
		return r2.Vec{}
	}
	desired = setMag(desired, v.cfg.MaxSpeed)
	return limit(r2.Sub(desired, v.vel), v.cfg.MaxForce)
}

// wander seeks a jittered point on a circle projected ahead of the vehicle.
func (v *vehicle) wander() r2.Vec {
	const (
		wanderDistance = 20.0
		wanderRadius   = 8.0
		wanderJitter   = 0.3
	)
	v.wanderTheta += (v.rng.Float64()*2 - 1) * wanderJitter
	center := r2.Add(v.loc, setMag(v.vel, wanderDistance))
	angle := v.wanderTheta + heading(v.vel)
	offset := r2.Vec{X: wanderRadius * math.Cos(angle), Y: wanderRadius * math.Sin(angle)}
	return v.seek(r2.Add(center, offset))
}
