package game

import (
	"log/slog"
	"sort"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sandgames/components"
	"github.com/pthm-cable/sandgames/systems"
)

// AgentFactory builds the steering agent for a new prey or threat.
type AgentFactory func(kind components.Kind, at r2.Vec, bounds r2.Box) systems.Agent

// SpawnResult reports the outcome of a single spawn attempt.
type SpawnResult uint8

const (
	Spawned        SpawnResult = iota
	SpawnAtCap                 // population already at its cap
	SpawnExhausted             // no underwater point found
)

// Member is a live agent with its entity and insertion index.
type Member struct {
	Entity ecs.Entity
	Seq    uint64
	Agent  systems.Agent
}

// Item is a collectible in the feeding game.
type Item struct {
	Entity    ecs.Entity
	Seq       uint64
	Location  r2.Vec
	Active    bool
	SpawnTime time.Duration
}

// Population owns the prey, threats and collectibles of a session in an ECS world.
// Listings are always in insertion order.
type Population struct {
	world *ecs.World

	agentMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Agent,
		components.Steering,
	]
	agentFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Agent,
		components.Steering,
	]
	itemMapper *ecs.Map3[components.Position, components.Body, components.Food]
	itemFilter *ecs.Filter3[components.Position, components.Body, components.Food]
	foodMap    *ecs.Map1[components.Food]

	placer  *systems.Placer
	factory AgentFactory

	roi        r2.Box
	agentInset float64
	itemInset  float64
	itemSize   float64
	nextSeq    uint64
}

// PopulationOptions configures spawn placement.
type PopulationOptions struct {
	Placer     *systems.Placer
	Factory    AgentFactory
	AgentInset float64 // fraction of the ROI removed per side for agents
	ItemInset  float64 // fraction of the ROI removed per side for collectibles
	ItemSize   float64
}

// NewPopulation creates an empty population.
func NewPopulation(opts PopulationOptions) *Population {
	world := ecs.NewWorld()
	return &Population{
		world: world,
		agentMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Agent,
			components.Steering,
		](world),
		agentFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Agent,
			components.Steering,
		](world),
		itemMapper: ecs.NewMap3[components.Position, components.Body, components.Food](world),
		itemFilter: ecs.NewFilter3[components.Position, components.Body, components.Food](world),
		foodMap:    ecs.NewMap1[components.Food](world),
		placer:     opts.Placer,
		factory:    opts.Factory,
		agentInset: opts.AgentInset,
		itemInset:  opts.ItemInset,
		itemSize:   opts.ItemSize,
	}
}

// SetROI updates the placement region and the bounds of live agents.
func (p *Population) SetROI(roi r2.Box) {
	p.roi = roi
	for _, m := range p.members(components.KindPrey, components.KindThreat) {
		if b, ok := m.Agent.(systems.Bounded); ok {
			b.SetBounds(roi)
		}
	}
}

// SpawnInitialPrey replaces the prey with up to n new ones and returns how
// many were placed. Failed placements are skipped, not retried.
func (p *Population) SpawnInitialPrey(n int) int {
	p.Clear(components.KindPrey)
	placed := 0
	for i := 0; i < n; i++ {
		if p.spawnAgent(components.KindPrey) == Spawned {
			placed++
		}
	}
	return placed
}

// TrySpawnThreat adds one threat unless the population is at limit.
func (p *Population) TrySpawnThreat(limit int) SpawnResult {
	if p.Count(components.KindThreat) >= limit {
		return SpawnAtCap
	}
	return p.spawnAgent(components.KindThreat)
}

// TrySpawnCollectible adds one active item unless limit items exist.
func (p *Population) TrySpawnCollectible(limit int, now time.Duration) SpawnResult {
	if p.CollectibleCount() >= limit {
		return SpawnAtCap
	}
	at, ok := p.placer.Find(systems.InsetRegion(p.roi, p.itemInset))
	if !ok {
		slog.Debug("spawn_exhausted", "kind", "collectible", "attempts", p.placer.Attempts)
		return SpawnExhausted
	}

	pos := components.Position{X: at.X, Y: at.Y}
	body := components.Body{Size: p.itemSize}
	food := components.Food{Seq: p.seq(), Active: true, SpawnTime: now}
	p.itemMapper.NewEntity(&pos, &body, &food)
	return Spawned
}

func (p *Population) spawnAgent(kind components.Kind) SpawnResult {
	at, ok := p.placer.Find(systems.InsetRegion(p.roi, p.agentInset))
	if !ok {
		slog.Debug("spawn_exhausted", "kind", kind.String(), "attempts", p.placer.Attempts)
		return SpawnExhausted
	}

	agent := p.factory(kind, at, p.roi)
	loc, vel := agent.Location(), agent.Velocity()
	pos := components.Position{X: loc.X, Y: loc.Y}
	v := components.Velocity{X: vel.X, Y: vel.Y}
	body := components.Body{Size: agent.Size()}
	meta := components.Agent{Seq: p.seq(), Kind: kind}
	steer := components.Steering{Agent: agent}
	p.agentMapper.NewEntity(&pos, &v, &body, &meta, &steer)
	return Spawned
}

func (p *Population) seq() uint64 {
	s := p.nextSeq
	p.nextSeq++
	return s
}

// Prey returns the live prey.
func (p *Population) Prey() []Member {
	return p.members(components.KindPrey)
}

// Threats returns the live threats.
func (p *Population) Threats() []Member {
	return p.members(components.KindThreat)
}

func (p *Population) members(kinds ...components.Kind) []Member {
	var out []Member
	query := p.agentFilter.Query()
	for query.Next() {
		_, _, _, meta, steer := query.Get()
		for _, k := range kinds {
			if meta.Kind == k {
				out = append(out, Member{Entity: query.Entity(), Seq: meta.Seq, Agent: steer.Agent})
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// Collectibles returns every item, active or not.
func (p *Population) Collectibles() []Item {
	var out []Item
	query := p.itemFilter.Query()
	for query.Next() {
		pos, _, food := query.Get()
		out = append(out, Item{
			Entity:    query.Entity(),
			Seq:       food.Seq,
			Location:  r2.Vec{X: pos.X, Y: pos.Y},
			Active:    food.Active,
			SpawnTime: food.SpawnTime,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// Count returns the number of live agents of a kind.
func (p *Population) Count(kind components.Kind) int {
	n := 0
	query := p.agentFilter.Query()
	for query.Next() {
		_, _, _, meta, _ := query.Get()
		if meta.Kind == kind {
			n++
		}
	}
	return n
}

// CollectibleCount returns the number of items, including collected ones
// that have not aged out yet.
func (p *Population) CollectibleCount() int {
	n := 0
	query := p.itemFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Remove deletes an agent or item.
func (p *Population) Remove(e ecs.Entity) {
	if p.world.Alive(e) {
		p.world.RemoveEntity(e)
	}
}

// Deactivate marks an item as collected. It stays until it ages out.
func (p *Population) Deactivate(e ecs.Entity) {
	if !p.world.Alive(e) {
		return
	}
	p.foodMap.Get(e).Active = false
}

// ExpireCollectibles removes items older than maxAge (strictly) and returns how many.
func (p *Population) ExpireCollectibles(now, maxAge time.Duration) int {
	var expired []ecs.Entity
	query := p.itemFilter.Query()
	for query.Next() {
		_, _, food := query.Get()
		if now-food.SpawnTime > maxAge {
			expired = append(expired, query.Entity())
		}
	}
	for _, e := range expired {
		p.world.RemoveEntity(e)
	}
	return len(expired)
}

// Sync copies agent state into the position and velocity components.
func (p *Population) Sync() {
	query := p.agentFilter.Query()
	for query.Next() {
		pos, vel, _, _, steer := query.Get()
		loc, v := steer.Agent.Location(), steer.Agent.Velocity()
		pos.X, pos.Y = loc.X, loc.Y
		vel.X, vel.Y = v.X, v.Y
	}
}

// Clear removes every agent of a kind.
func (p *Population) Clear(kind components.Kind) {
	for _, m := range p.members(kind) {
		p.world.RemoveEntity(m.Entity)
	}
}

// ClearCollectibles removes every item.
func (p *Population) ClearCollectibles() {
	for _, it := range p.Collectibles() {
		p.world.RemoveEntity(it.Entity)
	}
}

// Reset removes everything.
func (p *Population) Reset() {
	p.Clear(components.KindPrey)
	p.Clear(components.KindThreat)
	p.ClearCollectibles()
}

// AgentView is a read-only copy of an agent for presentation.
type AgentView struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	Size float64 `json:"size"`
}

// ItemView is a read-only copy of a collectible for presentation.
type ItemView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   float64 `json:"size"`
	Active bool    `json:"active"`
}

// views reads the synced components of every agent of a kind.
func (p *Population) views(kind components.Kind) []AgentView {
	type row struct {
		seq uint64
		v   AgentView
	}
	var rows []row
	query := p.agentFilter.Query()
	for query.Next() {
		pos, vel, body, meta, _ := query.Get()
		if meta.Kind != kind {
			continue
		}
		rows = append(rows, row{meta.Seq, AgentView{
			Kind: kind.String(),
			X:    pos.X,
			Y:    pos.Y,
			VX:   vel.X,
			VY:   vel.Y,
			Size: body.Size,
		}})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]AgentView, len(rows))
	for i, r := range rows {
		out[i] = r.v
	}
	return out
}

func (p *Population) itemViews() []ItemView {
	var out []ItemView
	for _, it := range p.Collectibles() {
		out = append(out, ItemView{X: it.Location.X, Y: it.Location.Y, Size: p.itemSize, Active: it.Active})
	}
	return out
}

// agentsOf extracts the steering agents from members.
func agentsOf(members []Member) []systems.Agent {
	out := make([]systems.Agent, len(members))
	for i, m := range members {
		out[i] = m.Agent
	}
	return out
}
