package physics

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestVector2D_Arithmetic(t *testing.T) {
	a := Vector2D{X: 3, Y: -4}
	b := Vector2D{X: 1, Y: 2}

	if got := a.Add(b); got != (Vector2D{X: 4, Y: -2}) {
		t.Errorf("Add() = %v, want {4 -2}", got)
	}
	if got := a.Sub(b); got != (Vector2D{X: 2, Y: -6}) {
		t.Errorf("Sub() = %v, want {2 -6}", got)
	}
	if got := a.Scale(-0.5); got != (Vector2D{X: -1.5, Y: 2}) {
		t.Errorf("Scale() = %v, want {-1.5 2}", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
	if got := a.LengthSquared(); got != 25 {
		t.Errorf("LengthSquared() = %v, want 25", got)
	}
	if got := a.Distance(b); !almostEqual(got, math.Sqrt(40)) {
		t.Errorf("Distance() = %v, want %v", got, math.Sqrt(40))
	}
}

func TestVector2D_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vector2D
		want Vector2D
	}{
		{"axis", Vector2D{X: 0, Y: 7}, Vector2D{X: 0, Y: 1}},
		{"diagonal", Vector2D{X: 3, Y: 4}, Vector2D{X: 0.6, Y: 0.8}},
		{"zero", Vector2D{}, Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  Vector2D
	}{
		{"facing +z", 0, Vector2D{X: 0, Y: 2}},
		{"facing +x", math.Pi / 2, Vector2D{X: 2, Y: 0}},
		{"facing -z", math.Pi, Vector2D{X: 0, Y: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Heading(tt.angle, 2)
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("Heading(%v, 2) = %v, want %v", tt.angle, got, tt.want)
			}
		})
	}
}

func TestVector3_Ground(t *testing.T) {
	v := Vector3{X: 1, Y: 9, Z: -2}
	if got := v.Ground(); got != (Vector2D{X: 1, Y: -2}) {
		t.Errorf("Ground() = %v, want {1 -2}", got)
	}
	moved := v.WithGround(Vector2D{X: 5, Y: 6})
	if moved != (Vector3{X: 5, Y: 9, Z: 6}) {
		t.Errorf("WithGround() = %v, want {5 9 6}", moved)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already normalized", 1, 1},
		{"full turn", 2 * math.Pi, 0},
		{"negative", -math.Pi / 2, 3 * math.Pi / 2},
		{"several turns", 5*math.Pi + 0.25, math.Pi + 0.25},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAngle(tt.in)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got < 0 || got >= 2*math.Pi {
				t.Errorf("NormalizeAngle(%v) = %v, outside [0, 2pi)", tt.in, got)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 1); got != 0 {
		t.Errorf("Clamp(-1, 0, 1) = %v, want 0", got)
	}
	if got := Clamp(2, 0, 1); got != 1 {
		t.Errorf("Clamp(2, 0, 1) = %v, want 1", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("Clamp(0.5, 0, 1) = %v, want 0.5", got)
	}
}
