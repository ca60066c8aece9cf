package vehicle

import (
	"math"

	"github.com/opd-ai/go-drift/pkg/entity"
	"github.com/opd-ai/go-drift/pkg/physics"
)

// ResetEvent is returned by Reset so the frame loop can react, for example
// by re-framing the camera.
type ResetEvent struct {
	VehicleID entity.ID
	Position  physics.Vector3
	Rotation  float64
}

// Vehicle owns a State and the Tuning it is driven with. Control calls set
// one-frame intents; Update integrates them.
type Vehicle struct {
	state     State
	tuning    Tuning
	turnCurve physics.Piecewise
}

// New creates a stopped vehicle at position using tuning.
func New(position physics.Vector3, tuning Tuning) *Vehicle {
	v := &Vehicle{tuning: tuning}
	v.tuning.GearSpeeds = append([]float64(nil), tuning.GearSpeeds...)
	v.tuning.GearAccelerationMultipliers = append([]float64(nil), tuning.GearAccelerationMultipliers...)
	v.state = NewState(entity.GenerateID(), position, &v.tuning)
	v.turnCurve = v.tuning.TurnRateCurve()
	return v
}

// NewDefault creates a vehicle with DefaultTuning.
func NewDefault(position physics.Vector3) *Vehicle {
	return New(position, DefaultTuning())
}

// Tuning returns a copy of the handling profile.
func (v *Vehicle) Tuning() Tuning {
	t := v.tuning
	t.GearSpeeds = append([]float64(nil), v.tuning.GearSpeeds...)
	t.GearAccelerationMultipliers = append([]float64(nil), v.tuning.GearAccelerationMultipliers...)
	return t
}

// Telemetry returns a snapshot of the public vehicle state.
func (v *Vehicle) Telemetry() Telemetry {
	return v.state.telemetry()
}

// GetID returns the vehicle's entity ID.
func (v *Vehicle) GetID() entity.ID { return v.state.ID }

// Position returns the world position.
func (v *Vehicle) Position() physics.Vector3 { return v.state.Position() }

// SetPosition teleports the vehicle.
func (v *Vehicle) SetPosition(p physics.Vector3) { v.state.SetPosition(p) }

// Rotation returns the facing angle in [0, 2pi).
func (v *Vehicle) Rotation() float64 { return v.state.Rotation() }

// Size returns the scaled footprint.
func (v *Vehicle) Size() physics.Vector3 { return v.state.Size() }

// Radius returns the scaled collision radius.
func (v *Vehicle) Radius() float64 { return v.state.Radius() }

// Collider returns the collision circle on the ground plane.
func (v *Vehicle) Collider() physics.Circle { return v.state.Collider() }

// CheckCircleCollision tests the vehicle against other. The normal points
// from the vehicle toward other.
func (v *Vehicle) CheckCircleCollision(other entity.Body) physics.CollisionResult {
	return v.state.CheckCircleCollision(other)
}

// Intersects reports whether the vehicle overlaps other.
func (v *Vehicle) Intersects(other entity.Body) bool {
	return v.state.Intersects(other)
}

// Velocity returns the signed speed in m/s; forward is positive.
func (v *Vehicle) Velocity() float64 { return v.state.Velocity }

// IsDrifting reports whether drift mode is on.
func (v *Vehicle) IsDrifting() bool { return v.state.Drifting }

// DriftAngle returns the slip between facing and travel in radians.
func (v *Vehicle) DriftAngle() float64 { return v.state.DriftAngle }

// HasNitrous reports whether a boost charge is held.
func (v *Vehicle) HasNitrous() bool { return v.state.HasNitrous }

// IsNitrousActive reports whether a boost is burning.
func (v *Vehicle) IsNitrousActive() bool { return v.state.NitrousActive }

// NitrousRemaining returns the seconds left on the current boost.
func (v *Vehicle) NitrousRemaining() float64 { return v.state.NitrousRemaining }

// Gear returns the current gear, 0 for reverse.
func (v *Vehicle) Gear() int { return v.state.Gear }

// RPM returns the engine speed.
func (v *Vehicle) RPM() float64 { return v.state.RPM }

// SteeringInput returns the decaying steering intent.
func (v *Vehicle) SteeringInput() float64 { return v.state.SteeringInput }

// Scale returns the uniform size factor.
func (v *Vehicle) Scale() float64 { return v.state.Scale }

// AccelerationMultiplier returns the caller adjustable throttle factor.
func (v *Vehicle) AccelerationMultiplier() float64 { return v.state.AccelerationMultiplier }

// AccelerateForward applies forward throttle for this frame using the
// vehicle's acceleration multiplier.
func (v *Vehicle) AccelerateForward() {
	v.AccelerateForwardWith(v.state.AccelerationMultiplier)
}

// AccelerateForwardWith applies forward throttle for this frame scaled by
// multiplier, which is clamped like SetAccelerationMultiplier.
func (v *Vehicle) AccelerateForwardWith(multiplier float64) {
	if math.IsNaN(multiplier) {
		multiplier = v.state.AccelerationMultiplier
	}
	multiplier = physics.Clamp(multiplier, v.tuning.MinAccelerationMultiplier, v.tuning.MaxAccelerationMultiplier)
	base := v.tuning.ForwardAcceleration
	if v.state.NitrousActive {
		base = v.tuning.NitrousAcceleration
	}
	v.state.Acceleration = base * v.tuning.GearAccelerationMultiplier(v.state.Gear) * multiplier
}

// AccelerateBackward applies brake/reverse throttle for this frame.
func (v *Vehicle) AccelerateBackward() {
	v.state.Acceleration = v.tuning.BackwardAcceleration
}

// Turn steers by amount (negative is left, positive right). Steering is
// inverted while reversing and has no effect below the minimum speed.
// While drifting it also builds drift angle up to the tuning limit.
func (v *Vehicle) Turn(amount float64) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return
	}
	s := &v.state
	s.SteeringInput = amount

	direction := 1.0
	if s.Velocity < 0 {
		direction = -1
	}
	delta := amount * v.tuning.TurnSpeed * v.turnCurve.At(math.Abs(s.Velocity)) * direction
	s.SetRotation(physics.NormalizeAngle(s.Rotation() + delta))

	if s.Drifting {
		s.DriftAngle = physics.Clamp(s.DriftAngle+delta*v.tuning.DriftAngleMultiplier,
			-v.tuning.DriftAngleMax, v.tuning.DriftAngleMax)
	}
}

// StartDrift enters drift mode.
func (v *Vehicle) StartDrift() {
	v.state.Drifting = true
}

// StopDrift leaves drift mode, keeping part of the angle for a smooth exit.
func (v *Vehicle) StopDrift() {
	v.state.Drifting = false
	v.state.DriftAngle *= v.tuning.DriftExitRetention
}

// PickupNitrous makes a boost available.
func (v *Vehicle) PickupNitrous() {
	v.state.HasNitrous = true
}

// ActivateNitrous burns an available boost. It reports whether the boost
// started; it is a no-op without a charge or while one is burning.
func (v *Vehicle) ActivateNitrous() bool {
	if !v.state.HasNitrous || v.state.NitrousActive {
		return false
	}
	v.state.HasNitrous = false
	v.state.NitrousActive = true
	v.state.NitrousRemaining = v.tuning.NitrousDuration
	return true
}

// Update advances the vehicle by deltaTime seconds.
func (v *Vehicle) Update(deltaTime float64) StepResult {
	return Step(&v.state, &v.tuning, deltaTime)
}

// Reset returns the vehicle to its spawn transform with all motion,
// drift and nitrous cleared. Scale and acceleration multiplier persist.
func (v *Vehicle) Reset() ResetEvent {
	v.state.BaseEntity.Reset()
	v.state.clearDynamics(&v.tuning)
	return ResetEvent{
		VehicleID: v.state.ID,
		Position:  v.state.Position(),
		Rotation:  v.state.Rotation(),
	}
}

// SetVelocity overrides the signed speed, clamped to MaxVelocityMultiplier
// times MaxSpeed either way. NaN stops the vehicle.
func (v *Vehicle) SetVelocity(velocity float64) {
	if math.IsNaN(velocity) {
		velocity = 0
	}
	limit := v.tuning.MaxSpeed * v.tuning.MaxVelocityMultiplier
	v.state.Velocity = physics.Clamp(velocity, -limit, limit)
}

// SetScale resizes the vehicle uniformly, which also changes its collision
// radius. The scale is clamped to the tuning bounds; NaN is ignored.
func (v *Vehicle) SetScale(scale float64) {
	if math.IsNaN(scale) {
		return
	}
	v.state.Scale = physics.Clamp(scale, v.tuning.MinScale, v.tuning.MaxScale)
	v.state.applyScale(&v.tuning)
}

// SetAccelerationMultiplier sets the default throttle factor, clamped to
// the tuning bounds. NaN is ignored.
func (v *Vehicle) SetAccelerationMultiplier(multiplier float64) {
	if math.IsNaN(multiplier) {
		return
	}
	v.state.AccelerationMultiplier = physics.Clamp(multiplier,
		v.tuning.MinAccelerationMultiplier, v.tuning.MaxAccelerationMultiplier)
}
