package vehicle

import (
	"strconv"

	"github.com/opd-ai/go-drift/pkg/entity"
	"github.com/opd-ai/go-drift/pkg/physics"
)

// State is the complete mutable vehicle model advanced by Step.
type State struct {
	entity.BaseEntity

	// Velocity is signed along the facing direction.
	Velocity float64
	// Acceleration is set by a control call and cleared by every Step.
	Acceleration  float64
	SteeringInput float64

	Drifting   bool
	DriftAngle float64

	HasNitrous       bool
	NitrousActive    bool
	NitrousRemaining float64

	// Gear is 0 for reverse, 1..N forward.
	Gear int
	RPM  float64

	Scale                  float64
	AccelerationMultiplier float64
}

// NewState builds a stopped vehicle at position facing the tuning's
// initial rotation.
func NewState(id entity.ID, position physics.Vector3, tuning *Tuning) State {
	s := State{
		BaseEntity:             entity.NewBaseEntity(id, position),
		Scale:                  1,
		AccelerationMultiplier: 1,
	}
	s.SetInitialRotation(tuning.InitialRotation)
	s.applyScale(tuning)
	s.clearDynamics(tuning)
	return s
}

// clearDynamics zeroes motion, drift and nitrous and returns the drivetrain
// to first gear at idle. Scale and the acceleration multiplier are kept.
func (s *State) clearDynamics(tuning *Tuning) {
	s.Velocity = 0
	s.Acceleration = 0
	s.SteeringInput = 0
	s.Drifting = false
	s.DriftAngle = 0
	s.HasNitrous = false
	s.NitrousActive = false
	s.NitrousRemaining = 0
	s.Gear = 1
	s.RPM = tuning.IdleRPM
}

func (s *State) applyScale(tuning *Tuning) {
	s.SetSize(physics.Vector3{
		X: tuning.Width * s.Scale,
		Y: tuning.Height * s.Scale,
		Z: tuning.Length * s.Scale,
	})
}

// Telemetry is a read-only snapshot of the vehicle for renderers, audio
// and the HUD.
type Telemetry struct {
	ID               entity.ID
	Position         physics.Vector3
	Rotation         float64
	Velocity         float64
	Scale            float64
	Radius           float64
	Drifting         bool
	DriftAngle       float64
	HasNitrous       bool
	NitrousActive    bool
	NitrousRemaining float64
	Gear             int
	RPM              float64
	SteeringInput    float64
}

// SpeedKPH returns |velocity| in km/h.
func (t Telemetry) SpeedKPH() float64 {
	if t.Velocity < 0 {
		return -t.Velocity * 3.6
	}
	return t.Velocity * 3.6
}

// GearLabel returns "R" for reverse and the gear number otherwise.
func (t Telemetry) GearLabel() string {
	if t.Gear == 0 {
		return "R"
	}
	return strconv.Itoa(t.Gear)
}

func (s *State) telemetry() Telemetry {
	return Telemetry{
		ID:               s.ID,
		Position:         s.Position(),
		Rotation:         s.Rotation(),
		Velocity:         s.Velocity,
		Scale:            s.Scale,
		Radius:           s.Radius(),
		Drifting:         s.Drifting,
		DriftAngle:       s.DriftAngle,
		HasNitrous:       s.HasNitrous,
		NitrousActive:    s.NitrousActive,
		NitrousRemaining: s.NitrousRemaining,
		Gear:             s.Gear,
		RPM:              s.RPM,
		SteeringInput:    s.SteeringInput,
	}
}
