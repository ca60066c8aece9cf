package vehicle

import (
	"math"

	"github.com/opd-ai/go-drift/pkg/physics"
)

// StepResult reports the discrete transitions that happened during a Step.
type StepResult struct {
	PreviousGear    int
	Gear            int
	NitrousDepleted bool
}

// GearChanged reports whether the transmission shifted.
func (r StepResult) GearChanged() bool {
	return r.Gear != r.PreviousGear
}

// SanitizeDelta maps a caller supplied frame time onto a usable one. NaN
// and non-positive values become 0 and anything longer than limit,
// including +Inf, becomes limit.
func SanitizeDelta(dt, limit float64) float64 {
	switch {
	case math.IsNaN(dt) || dt <= 0:
		return 0
	case dt > limit:
		return limit
	}
	return dt
}

// Step advances the vehicle by dt seconds. The order is significant:
// nitrous timer, gear, velocity with friction and clamp, RPM, drift decay,
// position, then the per-frame control decay.
func Step(s *State, t *Tuning, dt float64) StepResult {
	dt = SanitizeDelta(dt, t.MaxDeltaTime)
	res := StepResult{PreviousGear: s.Gear}

	if s.NitrousActive {
		s.NitrousRemaining -= dt
		if s.NitrousRemaining <= 0 {
			s.NitrousActive = false
			s.NitrousRemaining = 0
			res.NitrousDepleted = true
		}
	}

	s.Gear = t.GearFor(s.Velocity)
	res.Gear = s.Gear

	s.Velocity += s.Acceleration * dt
	s.Velocity *= t.FrictionOver(s.Velocity, s.Drifting, dt)
	s.Velocity = physics.Clamp(s.Velocity, -t.MaxReverseSpeed, t.SpeedLimit(s.NitrousActive))

	s.RPM = t.RPM(s.Velocity, s.Gear)

	if s.Drifting {
		s.DriftAngle *= t.DriftDecay
	}

	heading := s.Rotation()
	if s.Drifting {
		heading -= s.DriftAngle
	}
	pos := s.Position()
	s.SetPosition(pos.WithGround(pos.Ground().Add(physics.Heading(heading, s.Velocity*dt))))

	s.Acceleration = 0
	s.SteeringInput *= t.SteeringDecay
	if math.Abs(s.SteeringInput) < t.SteeringZeroThreshold {
		s.SteeringInput = 0
	}

	return res
}
