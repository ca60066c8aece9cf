// pkg/entity/entity.go
package entity

import (
	"math"
	"sync/atomic"

	"github.com/opd-ai/go-drift/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

var nextID atomic.Uint64

// GenerateID returns a process-unique entity ID. IDs start at 1.
func GenerateID() ID {
	return ID(nextID.Add(1))
}

// Entity is the read surface shared by everything placed in the level.
type Entity interface {
	GetID() ID
	Position() physics.Vector3
	Rotation() float64
	Size() physics.Vector3
	Radius() float64
	IsActive() bool
	Update(deltaTime float64)
	Reset()
}

// BaseEntity holds the transform, footprint and active flag common to all
// simulated objects. The collision radius is cached and kept in sync with
// the size.
type BaseEntity struct {
	ID ID

	position        physics.Vector3
	initialPosition physics.Vector3
	rotation        float64
	initialRotation float64
	size            physics.Vector3
	radius          float64
	active          bool
}

// NewBaseEntity creates an active unit-sized entity at position.
func NewBaseEntity(id ID, position physics.Vector3) BaseEntity {
	e := BaseEntity{
		ID:              id,
		position:        position,
		initialPosition: position,
		active:          true,
	}
	e.SetSize(physics.Vector3{X: 1, Y: 1, Z: 1})
	return e
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// Position returns the current world position.
func (e *BaseEntity) Position() physics.Vector3 {
	return e.position
}

// InitialPosition returns the position restored by Reset.
func (e *BaseEntity) InitialPosition() physics.Vector3 {
	return e.initialPosition
}

// SetPosition moves the entity without changing its reset position.
func (e *BaseEntity) SetPosition(p physics.Vector3) {
	e.position = p
}

// Rotation returns the yaw in radians.
func (e *BaseEntity) Rotation() float64 {
	return e.rotation
}

// SetRotation sets the yaw in radians.
func (e *BaseEntity) SetRotation(r float64) {
	e.rotation = r
}

// SetInitialRotation sets both the current rotation and the one restored
// by Reset. It is meant for constructors.
func (e *BaseEntity) SetInitialRotation(r float64) {
	e.rotation = r
	e.initialRotation = r
}

// Size returns width (x), height (y) and length (z).
func (e *BaseEntity) Size() physics.Vector3 {
	return e.size
}

// SetSize replaces the footprint and recomputes the collision radius.
func (e *BaseEntity) SetSize(size physics.Vector3) {
	e.size = size
	halfWidth := math.Abs(size.X) / 2
	halfLength := math.Abs(size.Z) / 2
	e.radius = math.Sqrt(halfWidth*halfWidth + halfLength*halfLength)
}

// Radius returns the cached collision radius.
func (e *BaseEntity) Radius() float64 {
	return e.radius
}

// Collider returns the entity's collision circle on the ground plane.
func (e *BaseEntity) Collider() physics.Circle {
	return physics.Circle{Center: e.position.Ground(), Radius: e.radius}
}

// IsActive reports whether the entity participates in the level.
func (e *BaseEntity) IsActive() bool {
	return e.active
}

// SetActive toggles participation in the level.
func (e *BaseEntity) SetActive(active bool) {
	e.active = active
}

// Reset restores the construction-time transform and reactivates the entity.
func (e *BaseEntity) Reset() {
	e.position = e.initialPosition
	e.rotation = e.initialRotation
	e.active = true
}

// Update is a no-op for static entities.
func (e *BaseEntity) Update(deltaTime float64) {}

// Body is implemented by anything that embeds BaseEntity.
type Body interface {
	Collider() physics.Circle
}

// CheckCircleCollision tests e against other as circles on the x/z plane.
// The normal points from e toward other.
func (e *BaseEntity) CheckCircleCollision(other Body) physics.CollisionResult {
	return physics.CheckCollision(e.Collider(), other.Collider())
}

// Intersects reports whether e and other overlap.
func (e *BaseEntity) Intersects(other Body) bool {
	return e.CheckCircleCollision(other).Collided
}
