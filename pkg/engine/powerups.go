package engine

import (
	"github.com/opd-ai/go-drift/pkg/entity"
	"github.com/opd-ai/go-drift/pkg/event"
	"github.com/opd-ai/go-drift/pkg/vehicle"
)

// PowerupField holds the level's collectibles.
type PowerupField struct {
	powerups []*entity.Powerup
}

// NewPowerupField wraps powerups.
func NewPowerupField(powerups []*entity.Powerup) *PowerupField {
	return &PowerupField{powerups: powerups}
}

// Powerups returns every powerup, collected or not.
func (f *PowerupField) Powerups() []*entity.Powerup {
	return f.powerups
}

// Count returns the number of powerups.
func (f *PowerupField) Count() int {
	return len(f.powerups)
}

// Active returns how many powerups are still collectible.
func (f *PowerupField) Active() int {
	n := 0
	for _, p := range f.powerups {
		if p.IsActive() {
			n++
		}
	}
	return n
}

// HandleCollisions checks every active powerup against the vehicle. A
// nitrous pickup is collected only while the vehicle holds no charge and
// none is burning, so at most one is taken per frame.
func (f *PowerupField) HandleCollisions(v *vehicle.Vehicle) []*event.CollisionEvent {
	var collected []*event.CollisionEvent
	for _, p := range f.powerups {
		if !p.IsActive() || v.HasNitrous() || v.IsNitrousActive() {
			continue
		}
		hit := v.CheckCircleCollision(p)
		if !hit.Collided {
			continue
		}
		v.PickupNitrous()
		p.SetActive(false)
		collected = append(collected, event.NewCollisionEvent(event.NitrousCollected, f, v.GetID(), p.GetID(), hit))
	}
	return collected
}

// Update spins the powerups.
func (f *PowerupField) Update(deltaTime float64) {
	for _, p := range f.powerups {
		p.Update(deltaTime)
	}
}

// Reset makes every powerup collectible again.
func (f *PowerupField) Reset() {
	for _, p := range f.powerups {
		p.Reset()
	}
}
