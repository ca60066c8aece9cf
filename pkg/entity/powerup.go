package entity

import (
	"github.com/opd-ai/go-drift/pkg/physics"
)

// PowerupType defines the kind of collectible
type PowerupType int

const (
	Nitrous PowerupType = iota
)

// String returns the string representation of PowerupType
func (t PowerupType) String() string {
	switch t {
	case Nitrous:
		return "Nitrous"
	default:
		return "Unknown"
	}
}

// Powerup is a collectible that deactivates once picked up. It spins for
// display; the spin never changes its collision footprint.
type Powerup struct {
	BaseEntity
	kind PowerupType
	spin float64
}

// NewPowerup creates an active powerup at position.
func NewPowerup(id ID, position physics.Vector3, kind PowerupType, dims Dimensions) *Powerup {
	p := &Powerup{
		BaseEntity: NewBaseEntity(id, position),
		kind:       kind,
		spin:       dims.PowerupSpin,
	}
	p.SetSize(physics.Vector3{X: dims.PowerupSize, Y: dims.PowerupSize, Z: dims.PowerupSize})
	return p
}

// Type returns the powerup kind.
func (p *Powerup) Type() PowerupType {
	return p.kind
}

// Update advances the display spin.
func (p *Powerup) Update(deltaTime float64) {
	if !(deltaTime > 0) {
		return
	}
	p.SetRotation(physics.NormalizeAngle(p.Rotation() + p.spin*deltaTime))
}
