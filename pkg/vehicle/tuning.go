// Package vehicle implements the arcade vehicle model: speed dependent
// steering, automatic gears, engine RPM, drift and nitrous.
package vehicle

import (
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-drift/pkg/validation"
)

// Tuning is a complete vehicle handling profile. Treat it as immutable once
// a Vehicle has been built from it. Speeds are in m/s, accelerations in
// m/s^2 and angles in radians.
type Tuning struct {
	Width  float64 `json:"width" mapstructure:"width"`
	Height float64 `json:"height" mapstructure:"height"`
	Length float64 `json:"length" mapstructure:"length"`

	MaxSpeed        float64 `json:"maxSpeed" mapstructure:"maxSpeed"`
	MaxReverseSpeed float64 `json:"maxReverseSpeed" mapstructure:"maxReverseSpeed"`
	// MaxVelocityMultiplier bounds SetVelocity to +/- MaxSpeed times this.
	MaxVelocityMultiplier float64 `json:"maxVelocityMultiplier" mapstructure:"maxVelocityMultiplier"`

	ForwardAcceleration  float64 `json:"forwardAcceleration" mapstructure:"forwardAcceleration"`
	BackwardAcceleration float64 `json:"backwardAcceleration" mapstructure:"backwardAcceleration"`

	// MinSpeedThreshold is the speed below which the vehicle counts as
	// stopped: no steering, first gear, idle RPM.
	MinSpeedThreshold float64 `json:"minSpeedThreshold" mapstructure:"minSpeedThreshold"`

	TurnSpeed float64 `json:"turnSpeed" mapstructure:"turnSpeed"`
	// Turn rate breakpoints. See TurnRateCurve.
	TurnRateMinSpeed    float64 `json:"turnRateMinSpeed" mapstructure:"turnRateMinSpeed"`
	TurnRateLowSpeed    float64 `json:"turnRateLowSpeed" mapstructure:"turnRateLowSpeed"`
	TurnRateMediumSpeed float64 `json:"turnRateMediumSpeed" mapstructure:"turnRateMediumSpeed"`
	TurnRateCrawl       float64 `json:"turnRateCrawl" mapstructure:"turnRateCrawl"`
	TurnRateNearStop    float64 `json:"turnRateNearStop" mapstructure:"turnRateNearStop"`
	TurnRateLow         float64 `json:"turnRateLow" mapstructure:"turnRateLow"`
	TurnRatePeak        float64 `json:"turnRatePeak" mapstructure:"turnRatePeak"`
	TurnRateHighFloor   float64 `json:"turnRateHighFloor" mapstructure:"turnRateHighFloor"`

	// FrictionCoefficient is the velocity retention near top speed; the
	// logarithmic curve drops toward FrictionBase at low speed.
	FrictionCoefficient      float64 `json:"frictionCoefficient" mapstructure:"frictionCoefficient"`
	FrictionBase             float64 `json:"frictionBase" mapstructure:"frictionBase"`
	FrictionMinRatio         float64 `json:"frictionMinRatio" mapstructure:"frictionMinRatio"`
	FrictionLogOffset        float64 `json:"frictionLogOffset" mapstructure:"frictionLogOffset"`
	DriftFrictionCoefficient float64 `json:"driftFrictionCoefficient" mapstructure:"driftFrictionCoefficient"`
	// FrictionReferenceStep is the frame time the coefficients above are
	// given for. Other steps scale them so top speed does not depend on the
	// frame rate.
	FrictionReferenceStep    float64 `json:"frictionReferenceStep" mapstructure:"frictionReferenceStep"`

	DriftAngleMax        float64 `json:"driftAngleMax" mapstructure:"driftAngleMax"`
	DriftAngleMultiplier float64 `json:"driftAngleMultiplier" mapstructure:"driftAngleMultiplier"`
	DriftExitRetention   float64 `json:"driftExitRetention" mapstructure:"driftExitRetention"`
	DriftDecay           float64 `json:"driftDecay" mapstructure:"driftDecay"`

	SteeringDecay         float64 `json:"steeringDecay" mapstructure:"steeringDecay"`
	SteeringZeroThreshold float64 `json:"steeringZeroThreshold" mapstructure:"steeringZeroThreshold"`

	NitrousDuration     float64 `json:"nitrousDuration" mapstructure:"nitrousDuration"`
	NitrousAcceleration float64 `json:"nitrousAcceleration" mapstructure:"nitrousAcceleration"`
	NitrousMaxSpeed     float64 `json:"nitrousMaxSpeed" mapstructure:"nitrousMaxSpeed"`

	// GearSpeeds holds N+1 increasing boundaries for N gears; gear g covers
	// [GearSpeeds[g-1], GearSpeeds[g]).
	GearSpeeds []float64 `json:"gearSpeeds" mapstructure:"gearSpeeds"`
	// GearAccelerationMultipliers holds one torque factor per forward gear.
	GearAccelerationMultipliers []float64 `json:"gearAccelerationMultipliers" mapstructure:"gearAccelerationMultipliers"`

	IdleRPM      float64 `json:"idleRpm" mapstructure:"idleRpm"`
	ShiftDownRPM float64 `json:"shiftDownRpm" mapstructure:"shiftDownRpm"`
	MaxRPM       float64 `json:"maxRpm" mapstructure:"maxRpm"`

	InitialRotation float64 `json:"initialRotation" mapstructure:"initialRotation"`
	// MaxDeltaTime is the longest time step integrated at once.
	MaxDeltaTime float64 `json:"maxDeltaTime" mapstructure:"maxDeltaTime"`

	MinScale                  float64 `json:"minScale" mapstructure:"minScale"`
	MaxScale                  float64 `json:"maxScale" mapstructure:"maxScale"`
	MinAccelerationMultiplier float64 `json:"minAccelerationMultiplier" mapstructure:"minAccelerationMultiplier"`
	MaxAccelerationMultiplier float64 `json:"maxAccelerationMultiplier" mapstructure:"maxAccelerationMultiplier"`
}

// DefaultTuning returns the stock handling profile.
func DefaultTuning() Tuning {
	return Tuning{
		Width:  1.0,
		Height: 0.5,
		Length: 2.0,

		MaxSpeed:              55.56, // 200 km/h
		MaxReverseSpeed:       13.9,  // 50 km/h
		MaxVelocityMultiplier: 1.5,

		ForwardAcceleration:  7.8,
		BackwardAcceleration: -4.0,

		MinSpeedThreshold: 0.1,

		TurnSpeed:           1.5,
		TurnRateMinSpeed:    0.3,
		TurnRateLowSpeed:    3.0,
		TurnRateMediumSpeed: 15.0,
		TurnRateCrawl:       0.05,
		TurnRateNearStop:    0.15,
		TurnRateLow:         0.5,
		TurnRatePeak:        1.0,
		TurnRateHighFloor:   0.6,

		FrictionCoefficient:      0.9982,
		FrictionBase:             0.994,
		FrictionMinRatio:         0.01,
		FrictionLogOffset:        4.6,
		DriftFrictionCoefficient: 0.992,
		FrictionReferenceStep:    1.0 / 60,

		DriftAngleMax:        math.Pi / 3,
		DriftAngleMultiplier: 1.2,
		DriftExitRetention:   0.5,
		DriftDecay:           0.95,

		SteeringDecay:         0.85,
		SteeringZeroThreshold: 0.01,

		NitrousDuration:     5.0,
		NitrousAcceleration: 14.0,
		NitrousMaxSpeed:     69.44, // 250 km/h

		GearSpeeds:                  []float64{0, 10, 20, 45, 70},
		GearAccelerationMultipliers: []float64{1.5, 1.2, 1.0, 0.8},

		IdleRPM:      1000,
		ShiftDownRPM: 2500,
		MaxRPM:       7000,

		InitialRotation: math.Pi,
		MaxDeltaTime:    0.25,

		MinScale:                  0.1,
		MaxScale:                  10,
		MinAccelerationMultiplier: 0.1,
		MaxAccelerationMultiplier: 5,
	}
}

// Gears returns the number of forward gears.
func (t *Tuning) Gears() int {
	return len(t.GearAccelerationMultipliers)
}

// Validate reports every inconsistency in the profile at once.
func (t *Tuning) Validate() error {
	errs := []error{
		validation.Positive("width", t.Width),
		validation.Positive("height", t.Height),
		validation.Positive("length", t.Length),
		validation.Positive("maxSpeed", t.MaxSpeed),
		validation.Positive("maxReverseSpeed", t.MaxReverseSpeed),
		validation.InRange("maxVelocityMultiplier", t.MaxVelocityMultiplier, 1, 2),
		validation.Positive("forwardAcceleration", t.ForwardAcceleration),
		validation.InRange("backwardAcceleration", t.BackwardAcceleration, math.Inf(-1), 0),
		validation.Positive("minSpeedThreshold", t.MinSpeedThreshold),
		validation.Positive("turnSpeed", t.TurnSpeed),
		validation.StrictlyIncreasing("turn rate breakpoints", []float64{
			t.MinSpeedThreshold, t.TurnRateMinSpeed, t.TurnRateLowSpeed, t.TurnRateMediumSpeed, t.MaxSpeed,
		}),
		validation.InRange("turnRateHighFloor", t.TurnRateHighFloor, 0, t.TurnRatePeak),
		validation.InRange("frictionCoefficient", t.FrictionCoefficient, 0, 1),
		validation.InRange("frictionBase", t.FrictionBase, 0, t.FrictionCoefficient),
		validation.InRange("frictionMinRatio", t.FrictionMinRatio, math.SmallestNonzeroFloat64, 1),
		validation.Positive("frictionLogOffset", t.FrictionLogOffset),
		validation.InRange("driftFrictionCoefficient", t.DriftFrictionCoefficient, 0, 1),
		validation.Positive("frictionReferenceStep", t.FrictionReferenceStep),
		validation.InRange("driftAngleMax", t.DriftAngleMax, 0, math.Pi/2),
		validation.NonNegative("driftAngleMultiplier", t.DriftAngleMultiplier),
		validation.InRange("driftExitRetention", t.DriftExitRetention, 0, 1),
		validation.InRange("driftDecay", t.DriftDecay, 0, 1),
		validation.InRange("steeringDecay", t.SteeringDecay, 0, 1),
		validation.NonNegative("steeringZeroThreshold", t.SteeringZeroThreshold),
		validation.Positive("nitrousDuration", t.NitrousDuration),
		validation.Positive("nitrousAcceleration", t.NitrousAcceleration),
		validation.Less("maxSpeed", t.MaxSpeed, "nitrousMaxSpeed", t.NitrousMaxSpeed),
		validation.StrictlyIncreasing("gearSpeeds", t.GearSpeeds),
		validation.StrictlyIncreasing("rpm", []float64{t.IdleRPM, t.ShiftDownRPM, t.MaxRPM}),
		validation.Positive("idleRpm", t.IdleRPM),
		validation.Positive("maxDeltaTime", t.MaxDeltaTime),
		validation.Positive("minScale", t.MinScale),
		validation.Less("minScale", t.MinScale, "maxScale", t.MaxScale),
		validation.Positive("minAccelerationMultiplier", t.MinAccelerationMultiplier),
		validation.Less("minAccelerationMultiplier", t.MinAccelerationMultiplier,
			"maxAccelerationMultiplier", t.MaxAccelerationMultiplier),
	}
	if t.Gears() == 0 {
		errs = append(errs, fmt.Errorf("at least one gear is required"))
	}
	if len(t.GearSpeeds) != t.Gears()+1 {
		errs = append(errs, fmt.Errorf("gearSpeeds needs %d entries for %d gears, got %d",
			t.Gears()+1, t.Gears(), len(t.GearSpeeds)))
	}
	for i, m := range t.GearAccelerationMultipliers {
		errs = append(errs, validation.Positive(fmt.Sprintf("gearAccelerationMultipliers[%d]", i), m))
	}
	return errors.Join(errs...)
}
