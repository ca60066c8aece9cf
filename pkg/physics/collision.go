// pkg/physics/collision.go
package physics

import "math"

// CoincidentEpsilon is the center distance below which two circles are
// treated as sharing a center.
const CoincidentEpsilon = 1e-3

// Circle represents a circular collision shape on the ground plane
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides reports whether two circles overlap or touch.
func (c Circle) Collides(other Circle) bool {
	return CheckCollision(c, other).Collided
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided bool
	// Normal is the unit vector from the first circle toward the second.
	Normal Vector2D
	// Overlap is how far the circles interpenetrate along Normal.
	Overlap float64
}

// CheckCollision performs detailed collision detection between two circles.
// The square root is only taken once an overlap is geometrically possible.
func CheckCollision(a, b Circle) CollisionResult {
	radiusSum := a.Radius + b.Radius
	delta := b.Center.Sub(a.Center)
	distanceSquared := delta.LengthSquared()

	if distanceSquared > radiusSum*radiusSum {
		return CollisionResult{}
	}

	distance := math.Sqrt(distanceSquared)
	if distance <= CoincidentEpsilon {
		return CollisionResult{
			Collided: true,
			Normal:   Vector2D{X: 1, Y: 0},
			Overlap:  radiusSum,
		}
	}

	return CollisionResult{
		Collided: true,
		Normal:   delta.Scale(1 / distance),
		Overlap:  radiusSum - distance,
	}
}
