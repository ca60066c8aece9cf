package vehicle

import (
	"math"

	"github.com/opd-ai/go-drift/pkg/physics"
)

// Turn rate segment names.
const (
	SegmentCrawl  = "crawl"
	SegmentLow    = "low"
	SegmentMedium = "medium"
	SegmentHigh   = "high"
)

// TurnRateCurve builds the steering responsiveness curve over |velocity|.
// It is zero below MinSpeedThreshold, rises across three widening bands,
// then falls toward TurnRateHighFloor at MaxSpeed and stays clamped there.
func (t *Tuning) TurnRateCurve() physics.Piecewise {
	return physics.Piecewise{
		Ramps: []physics.Ramp{
			{Name: SegmentCrawl, Start: t.MinSpeedThreshold, End: t.TurnRateMinSpeed, From: t.TurnRateCrawl, To: t.TurnRateNearStop},
			{Name: SegmentLow, Start: t.TurnRateMinSpeed, End: t.TurnRateLowSpeed, From: t.TurnRateNearStop, To: t.TurnRateLow},
			{Name: SegmentMedium, Start: t.TurnRateLowSpeed, End: t.TurnRateMediumSpeed, From: t.TurnRateLow, To: t.TurnRatePeak},
			{Name: SegmentHigh, Start: t.TurnRateMediumSpeed, End: t.MaxSpeed, From: t.TurnRatePeak, To: t.TurnRateHighFloor},
		},
		Below: 0,
		Floor: t.TurnRateHighFloor,
		Ceil:  t.TurnRatePeak,
	}
}

// TurnRate evaluates TurnRateCurve at the given speed.
func (t *Tuning) TurnRate(speed float64) float64 {
	return t.TurnRateCurve().At(math.Abs(speed))
}

// Friction returns the per-frame velocity retention factor. Drifting uses a
// fixed coefficient; otherwise the factor grows logarithmically with the
// speed ratio so slow vehicles bleed speed faster.
func (t *Tuning) Friction(velocity float64, drifting bool) float64 {
	if drifting {
		return t.DriftFrictionCoefficient
	}
	ratio := physics.Clamp(math.Abs(velocity)/t.MaxSpeed, t.FrictionMinRatio, 1)
	span := t.FrictionCoefficient - t.FrictionBase
	f := t.FrictionBase + (math.Log(ratio)+t.FrictionLogOffset)/t.FrictionLogOffset*span
	return physics.Clamp(f, t.FrictionBase, t.FrictionCoefficient)
}

// FrictionOver returns the velocity retained over a step of dt seconds:
// the per reference step coefficient compounded dt/FrictionReferenceStep
// times.
func (t *Tuning) FrictionOver(velocity float64, drifting bool, dt float64) float64 {
	if !(dt > 0) {
		return 1
	}
	return math.Pow(t.Friction(velocity, drifting), dt/t.FrictionReferenceStep)
}

// GearFor selects the gear for a velocity: 0 when reversing, 1 when
// stopped, otherwise the lowest gear whose upper bound exceeds |velocity|.
func (t *Tuning) GearFor(velocity float64) int {
	if velocity < 0 {
		return 0
	}
	speed := math.Abs(velocity)
	if speed < t.MinSpeedThreshold {
		return 1
	}
	n := t.Gears()
	for g := 1; g <= n && g < len(t.GearSpeeds); g++ {
		if speed < t.GearSpeeds[g] {
			return g
		}
	}
	return n
}

// GearAccelerationMultiplier returns the torque factor of a forward gear,
// or 1 for reverse.
func (t *Tuning) GearAccelerationMultiplier(gear int) float64 {
	if gear < 1 || gear > t.Gears() {
		return 1
	}
	return t.GearAccelerationMultipliers[gear-1]
}

// RPM maps speed within the gear's band onto [ShiftDownRPM, MaxRPM].
// Reverse shares first gear's band.
func (t *Tuning) RPM(velocity float64, gear int) float64 {
	speed := math.Abs(velocity)
	if speed < t.MinSpeedThreshold {
		return t.IdleRPM
	}
	band := max(gear, 1)
	band = min(band, t.Gears(), len(t.GearSpeeds)-1)
	if band < 1 {
		return t.IdleRPM
	}
	lo, hi := t.GearSpeeds[band-1], t.GearSpeeds[band]
	ratio := 1.0
	if hi > lo {
		ratio = physics.Clamp((speed-lo)/(hi-lo), 0, 1)
	}
	return t.ShiftDownRPM + ratio*(t.MaxRPM-t.ShiftDownRPM)
}

// SpeedLimit returns the forward ceiling, raised while nitrous burns.
func (t *Tuning) SpeedLimit(nitrousActive bool) float64 {
	if nitrousActive {
		return t.NitrousMaxSpeed
	}
	return t.MaxSpeed
}
