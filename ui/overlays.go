package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Operator view overlays.
const (
	OverlayWaterMask    OverlayID = "water_mask"
	OverlaySpawnRegion  OverlayID = "spawn_region"
	OverlayThreatRadius OverlayID = "threat_radius"
	OverlayVelocity     OverlayID = "velocity"
	OverlayPickupRange  OverlayID = "pickup_range"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "W")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the operator overlays.
// The water mask starts enabled.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	reg.SetEnabled(OverlayWaterMask, true)
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayWaterMask,
		Name:        "Water Mask",
		Description: "Tint sensor points below sea level",
		Key:         rl.KeyW,
		KeyLabel:    "W",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlaySpawnRegion,
		Name:        "Spawn Regions",
		Description: "Outline the inset regions used for placement",
		Key:         rl.KeyG,
		KeyLabel:    "G",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayThreatRadius,
		Name:        "Threat Radius",
		Description: "Circle the area each shark scares fish away from",
		Key:         rl.KeyT,
		KeyLabel:    "T",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayVelocity,
		Name:        "Velocity",
		Description: "Draw each agent's velocity vector",
		Key:         rl.KeyV,
		KeyLabel:    "V",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayPickupRange,
		Name:        "Pickup Range",
		Description: "Circle the distance at which a fish eats food",
		Key:         rl.KeyP,
		KeyLabel:    "P",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	on := !r.enabled[id]
	r.SetEnabled(id, on)
	return on
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}
