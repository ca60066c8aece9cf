package vehicle

import (
	"math"
	"strings"
	"testing"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestTurnRate_Breakpoints(t *testing.T) {
	tuning := DefaultTuning()

	tests := []struct {
		name  string
		speed float64
		want  float64
	}{
		{"stopped", 0, 0},
		{"just below threshold", 0.0999, 0},
		{"crawl start", 0.1, 0.05},
		{"crawl midpoint", 0.2, 0.10},
		{"low start", 0.3, 0.15},
		{"low end approaches", 3.0 - 1e-12, 0.5},
		{"medium start", 3.0, 0.5},
		{"medium midpoint", 9.0, 0.75},
		{"high start", 15.0, 1.0},
		{"max speed", 55.56, 0.6},
		{"beyond max clamps to floor", 69.44, 0.6},
		{"negative uses magnitude", -9.0, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tuning.TurnRate(tt.speed)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("TurnRate(%v) = %v, want %v", tt.speed, got, tt.want)
			}
		})
	}
}

func TestTurnRateCurve_Segments(t *testing.T) {
	tuning := DefaultTuning()
	curve := tuning.TurnRateCurve()

	tests := []struct {
		speed float64
		want  string
	}{
		{0.15, SegmentCrawl},
		{1, SegmentLow},
		{10, SegmentMedium},
		{30, SegmentHigh},
	}
	for _, tt := range tests {
		seg, ok := curve.Segment(tt.speed)
		if !ok || seg.Name != tt.want {
			t.Errorf("Segment(%v) = %q, %v; want %q", tt.speed, seg.Name, ok, tt.want)
		}
	}
	if _, ok := curve.Segment(0.05); ok {
		t.Error("Segment(0.05) should be outside every ramp")
	}

	// Each ramp must meet its neighbour so the curve is continuous.
	for i := 1; i < len(curve.Ramps); i++ {
		prev, next := curve.Ramps[i-1], curve.Ramps[i]
		if prev.End != next.Start || prev.To != next.From {
			t.Errorf("ramps %q and %q are discontinuous", prev.Name, next.Name)
		}
	}
}

func TestTurnRate_PeakInMidRange(t *testing.T) {
	tuning := DefaultTuning()
	peak := tuning.TurnRate(15)
	for _, speed := range []float64{0.5, 2, 5, 30, 50} {
		if tuning.TurnRate(speed) > peak {
			t.Errorf("TurnRate(%v) = %v exceeds the mid-range peak %v", speed, tuning.TurnRate(speed), peak)
		}
	}
}

func TestFriction(t *testing.T) {
	tuning := DefaultTuning()

	tests := []struct {
		name     string
		velocity float64
		drifting bool
		want     float64
	}{
		{"drifting is fixed", 30, true, 0.992},
		{"drifting at rest", 0, true, 0.992},
		{"at max speed", 55.56, false, 0.9982},
		{"above max speed", 80, false, 0.9982},
		{"stopped clamps to base", 0, false, 0.994},
		{"one tenth speed", 5.556, false, 0.994 + (math.Log(0.1)+4.6)/4.6*(0.9982-0.994)},
		{"half speed", 27.78, false, 0.994 + (math.Log(0.5)+4.6)/4.6*(0.9982-0.994)},
		{"reverse uses magnitude", -27.78, false, 0.994 + (math.Log(0.5)+4.6)/4.6*(0.9982-0.994)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tuning.Friction(tt.velocity, tt.drifting)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Friction(%v, %v) = %v, want %v", tt.velocity, tt.drifting, got, tt.want)
			}
			if !tt.drifting && (got < tuning.FrictionBase || got > tuning.FrictionCoefficient) {
				t.Errorf("Friction(%v) = %v outside [%v, %v]", tt.velocity, got, tuning.FrictionBase, tuning.FrictionCoefficient)
			}
		})
	}

	// Slower vehicles must lose proportionally more speed.
	if tuning.Friction(5, false) >= tuning.Friction(40, false) {
		t.Error("friction retention should grow with speed")
	}
}

func TestFrictionOver(t *testing.T) {
	tuning := DefaultTuning()
	ref := tuning.FrictionReferenceStep

	tests := []struct {
		name     string
		velocity float64
		drifting bool
		dt       float64
		want     float64
	}{
		{"reference step", 30, false, ref, tuning.Friction(30, false)},
		{"two reference steps", 30, false, 2 * ref, math.Pow(tuning.Friction(30, false), 2)},
		{"quarter step", 55.56, false, ref / 4, math.Pow(0.9982, 0.25)},
		{"drifting", 20, true, 0.1, math.Pow(0.992, 6)},
		{"zero step keeps speed", 30, false, 0, 1},
		{"negative step keeps speed", 30, false, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tuning.FrictionOver(tt.velocity, tt.drifting, tt.dt)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("FrictionOver(%v, %v, %v) = %v, want %v", tt.velocity, tt.drifting, tt.dt, got, tt.want)
			}
		})
	}

	// Four quarter steps lose as much as one full step.
	quarter := tuning.FrictionOver(40, false, ref/4)
	if full := tuning.FrictionOver(40, false, ref); math.Abs(math.Pow(quarter, 4)-full) > 1e-12 {
		t.Errorf("quarter steps compound to %v, want %v", math.Pow(quarter, 4), full)
	}
}

func TestGearFor(t *testing.T) {
	tuning := DefaultTuning()

	tests := []struct {
		velocity float64
		want     int
	}{
		{-5, 0},
		{-0.01, 0},
		{0, 1},
		{0.05, 1},
		{5, 1},
		{10, 2},
		{19.99, 2},
		{20, 3},
		{44, 3},
		{45, 4},
		{69.9, 4},
		{70, 4},
		{500, 4},
	}

	for _, tt := range tests {
		if got := tuning.GearFor(tt.velocity); got != tt.want {
			t.Errorf("GearFor(%v) = %d, want %d", tt.velocity, got, tt.want)
		}
	}
}

func TestGearAccelerationMultiplier(t *testing.T) {
	tuning := DefaultTuning()
	want := []float64{1, 1.5, 1.2, 1.0, 0.8, 1}
	for gear, w := range want {
		if got := tuning.GearAccelerationMultiplier(gear); got != w {
			t.Errorf("GearAccelerationMultiplier(%d) = %v, want %v", gear, got, w)
		}
	}
}

func TestRPM(t *testing.T) {
	tuning := DefaultTuning()

	tests := []struct {
		name     string
		velocity float64
		gear     int
		want     float64
	}{
		{"idle when stopped", 0.05, 1, 1000},
		{"bottom of first gear", 0.1, 1, 2500 + 0.01*4500},
		{"middle of first gear", 5, 1, 2500 + 0.5*4500},
		{"bottom of third gear", 20, 3, 2500},
		{"top of fourth gear", 70, 4, 7000},
		{"past the table", 90, 4, 7000},
		{"reverse uses first gear band", -5, 0, 2500 + 0.5*4500},
		{"speed below band clamps", 5, 3, 2500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tuning.RPM(tt.velocity, tt.gear)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("RPM(%v, %d) = %v, want %v", tt.velocity, tt.gear, got, tt.want)
			}
			if got < tuning.IdleRPM || got > tuning.MaxRPM {
				t.Errorf("RPM(%v, %d) = %v outside [idle, max]", tt.velocity, tt.gear, got)
			}
		})
	}
}

func TestSanitizeDelta(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"normal", 0.016, 0.016},
		{"zero", 0, 0},
		{"negative", -1, 0},
		{"nan", math.NaN(), 0},
		{"negative infinity", math.Inf(-1), 0},
		{"positive infinity", math.Inf(1), 0.25},
		{"at the limit", 0.25, 0.25},
		{"large finite capped", 1000, 0.25},
		{"huge finite capped", 1e300, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeDelta(tt.in, 0.25); got != tt.want {
				t.Errorf("SanitizeDelta(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTuning_Validate(t *testing.T) {
	def := DefaultTuning()
	if err := def.Validate(); err != nil {
		t.Fatalf("DefaultTuning().Validate() = %v", err)
	}

	tests := []struct {
		name        string
		mutate      func(*Tuning)
		errContains string
	}{
		{"zero max speed", func(t *Tuning) { t.MaxSpeed = 0 }, "maxSpeed"},
		{"nitrous slower than max", func(t *Tuning) { t.NitrousMaxSpeed = 10 }, "nitrousMaxSpeed"},
		{"gear table mismatch", func(t *Tuning) { t.GearSpeeds = []float64{0, 10, 20} }, "gearSpeeds needs 5"},
		{"gear table not increasing", func(t *Tuning) { t.GearSpeeds = []float64{0, 10, 10, 45, 70} }, "strictly increasing"},
		{"no gears", func(t *Tuning) { t.GearAccelerationMultipliers = nil; t.GearSpeeds = []float64{0} }, "at least one gear"},
		{"unordered rpm", func(t *Tuning) { t.ShiftDownRPM = 500 }, "rpm"},
		{"friction above one", func(t *Tuning) { t.FrictionCoefficient = 1.2 }, "frictionCoefficient"},
		{"zero friction step", func(t *Tuning) { t.FrictionReferenceStep = 0 }, "frictionReferenceStep"},
		{"nan turn speed", func(t *Tuning) { t.TurnSpeed = math.NaN() }, "turnSpeed"},
		{"positive backward acceleration", func(t *Tuning) { t.BackwardAcceleration = 2 }, "backwardAcceleration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.mutate(&tuning)
			err := tuning.Validate()
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() error = %v, should contain %q", err, tt.errContains)
			}
		})
	}
}
