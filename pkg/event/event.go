// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-drift/pkg/entity"
	"github.com/opd-ai/go-drift/pkg/physics"
)

// Type represents the type of event
type Type string

// Game event types
const (
	VehicleReset     Type = "vehicle_reset"
	LevelReset       Type = "level_reset"
	ObstacleHit      Type = "obstacle_hit"
	NitrousCollected Type = "nitrous_collected"
	NitrousActivated Type = "nitrous_activated"
	NitrousDepleted  Type = "nitrous_depleted"
	GearChanged      Type = "gear_changed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it; calling
// Cancel more than once is harmless.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:   id,
		Type: eventType,
		Cancel: func() {
			b.unsubscribe(eventType, id)
		},
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			// Copy so a Publish iterating the old slice is unaffected.
			next := make([]registration, 0, len(regs)-1)
			next = append(next, regs[:i]...)
			next = append(next, regs[i+1:]...)
			if len(next) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = next
			}
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// VehicleEvent describes something that happened to the vehicle.
type VehicleEvent struct {
	BaseEvent
	VehicleID entity.ID
	Position  physics.Vector3
	Rotation  float64
}

// NewVehicleEvent creates a new vehicle event
func NewVehicleEvent(eventType Type, source interface{}, vehicleID entity.ID, position physics.Vector3, rotation float64) *VehicleEvent {
	return &VehicleEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		VehicleID: vehicleID,
		Position:  position,
		Rotation:  rotation,
	}
}

// CollisionEvent reports a vehicle hitting an obstacle or collecting a
// powerup.
type CollisionEvent struct {
	BaseEvent
	VehicleID entity.ID
	OtherID   entity.ID
	Normal    physics.Vector2D
	Overlap   float64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(eventType Type, source interface{}, vehicleID, otherID entity.ID, result physics.CollisionResult) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		VehicleID: vehicleID,
		OtherID:   otherID,
		Normal:    result.Normal,
		Overlap:   result.Overlap,
	}
}

// GearEvent reports an automatic shift.
type GearEvent struct {
	BaseEvent
	VehicleID entity.ID
	From      int
	To        int
}

// NewGearEvent creates a new gear change event
func NewGearEvent(source interface{}, vehicleID entity.ID, from, to int) *GearEvent {
	return &GearEvent{
		BaseEvent: BaseEvent{
			EventType: GearChanged,
			Source:    source,
		},
		VehicleID: vehicleID,
		From:      from,
		To:        to,
	}
}

// LevelEvent reports level wide changes such as a full reset.
type LevelEvent struct {
	BaseEvent
	Obstacles int
	Powerups  int
}

// NewLevelEvent creates a new level event
func NewLevelEvent(eventType Type, source interface{}, obstacles, powerups int) *LevelEvent {
	return &LevelEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Obstacles: obstacles,
		Powerups:  powerups,
	}
}
