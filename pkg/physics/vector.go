// pkg/physics/vector.go
package physics

import "math"

// Vector2D is a point or direction on the ground plane. X maps to world x and
// Y maps to world z; height never participates in ground-plane math.
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{X: v.X / length, Y: v.Y / length}
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Heading returns the ground-plane displacement for travelling magnitude
// units along angle. Angle 0 points down +z, pi/2 points down +x.
func Heading(angle, magnitude float64) Vector2D {
	return Vector2D{
		X: math.Sin(angle) * magnitude,
		Y: math.Cos(angle) * magnitude,
	}
}

// Vector3 is a world-space position or extent.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Ground projects the vector onto the x/z plane.
func (v Vector3) Ground() Vector2D {
	return Vector2D{X: v.X, Y: v.Z}
}

// WithGround returns v with its x and z replaced by g, keeping the height.
func (v Vector3) WithGround(g Vector2D) Vector3 {
	return Vector3{X: g.X, Y: v.Y, Z: g.Y}
}

// NormalizeAngle wraps an angle into [0, 2*pi).
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	// Mod can round a tiny negative up to exactly 2*pi.
	if angle >= 2*math.Pi {
		angle = 0
	}
	return angle
}

// Clamp limits value to [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
