// pkg/physics/quadtree.go
package physics

// Rect represents an axis-aligned rectangular area on the ground plane
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// Contains reports whether point lies inside the rectangle. The low edges
// are inclusive and the high edges exclusive so quadrants never share points.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(other.Center.X-other.Width/2 > r.Center.X+r.Width/2 ||
		other.Center.X+other.Width/2 < r.Center.X-r.Width/2 ||
		other.Center.Y-other.Height/2 > r.Center.Y+r.Height/2 ||
		other.Center.Y+other.Height/2 < r.Center.Y-r.Height/2)
}

// Nodes this narrow stop subdividing and hold any number of points, so
// coincident points cannot recurse forever.
const minQuadWidth = 1e-3

// QuadTree indexes static items by point for area queries such as view
// culling.
type QuadTree[T any] struct {
	Boundary Rect
	Capacity int
	Points   []Vector2D
	Items    []T
	Divided  bool

	NorthWest *QuadTree[T]
	NorthEast *QuadTree[T]
	SouthWest *QuadTree[T]
	SouthEast *QuadTree[T]
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree[T any](boundary Rect, capacity int) *QuadTree[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree[T]{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2D, 0, capacity),
		Items:    make([]T, 0, capacity),
	}
}

// Insert adds item at point. It returns false when point is outside the tree.
func (qt *QuadTree[T]) Insert(point Vector2D, item T) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if !qt.Divided && (len(qt.Points) < qt.Capacity || qt.Boundary.Width <= minQuadWidth) {
		qt.Points = append(qt.Points, point)
		qt.Items = append(qt.Items, item)
		return true
	}

	if !qt.Divided {
		qt.subdivide()
	}

	return qt.NorthWest.Insert(point, item) ||
		qt.NorthEast.Insert(point, item) ||
		qt.SouthWest.Insert(point, item) ||
		qt.SouthEast.Insert(point, item)
}

func (qt *QuadTree[T]) subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	qt.NorthWest = NewQuadTree[T](Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity)
	qt.NorthEast = NewQuadTree[T](Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity)
	qt.SouthWest = NewQuadTree[T](Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity)
	qt.SouthEast = NewQuadTree[T](Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity)
	qt.Divided = true
}

// Query returns every item whose point lies inside area.
func (qt *QuadTree[T]) Query(area Rect) []T {
	var found []T
	qt.query(area, &found)
	return found
}

func (qt *QuadTree[T]) query(area Rect, found *[]T) {
	if !qt.Boundary.Intersects(area) {
		return
	}
	for i, point := range qt.Points {
		if area.Contains(point) {
			*found = append(*found, qt.Items[i])
		}
	}
	if !qt.Divided {
		return
	}
	qt.NorthWest.query(area, found)
	qt.NorthEast.query(area, found)
	qt.SouthWest.query(area, found)
	qt.SouthEast.query(area, found)
}

// Len returns the number of items stored in the tree.
func (qt *QuadTree[T]) Len() int {
	n := len(qt.Items)
	if qt.Divided {
		n += qt.NorthWest.Len() + qt.NorthEast.Len() + qt.SouthWest.Len() + qt.SouthEast.Len()
	}
	return n
}
