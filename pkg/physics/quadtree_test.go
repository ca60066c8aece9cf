package physics

import (
	"sort"
	"testing"
)

func TestRect_Contains(t *testing.T) {
	rect := Rect{Center: Vector2D{X: 10, Y: 10}, Width: 20, Height: 20}

	tests := []struct {
		name     string
		point    Vector2D
		expected bool
	}{
		{"center", Vector2D{X: 10, Y: 10}, true},
		{"low_edge", Vector2D{X: 0, Y: 10}, true},
		{"high_edge", Vector2D{X: 20, Y: 10}, false},
		{"outside", Vector2D{X: 25, Y: 25}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.Contains(tt.point); got != tt.expected {
				t.Errorf("Rect.Contains(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestRect_Intersects(t *testing.T) {
	a := Rect{Center: Vector2D{X: 0, Y: 0}, Width: 10, Height: 10}
	if !a.Intersects(Rect{Center: Vector2D{X: 8, Y: 0}, Width: 10, Height: 10}) {
		t.Error("expected overlapping rects to intersect")
	}
	if a.Intersects(Rect{Center: Vector2D{X: 30, Y: 0}, Width: 10, Height: 10}) {
		t.Error("expected distant rects not to intersect")
	}
}

func TestQuadTree_InsertAndQuery(t *testing.T) {
	qt := NewQuadTree[int](Rect{Center: Vector2D{}, Width: 100, Height: 100}, 2)

	points := []Vector2D{
		{X: -40, Y: -40},
		{X: -10, Y: 5},
		{X: 10, Y: 10},
		{X: 12, Y: 14},
		{X: 45, Y: 45},
	}
	for i, p := range points {
		if !qt.Insert(p, i) {
			t.Fatalf("Insert(%v) failed", p)
		}
	}

	if qt.Insert(Vector2D{X: 200, Y: 0}, 99) {
		t.Error("Insert outside the boundary should fail")
	}
	if !qt.Divided {
		t.Error("tree should subdivide past capacity")
	}
	if got := qt.Len(); got != len(points) {
		t.Errorf("Len() = %d, want %d", got, len(points))
	}

	got := qt.Query(Rect{Center: Vector2D{X: 10, Y: 10}, Width: 10, Height: 10})
	sort.Ints(got)
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("Query() = %v, want [2 3]", got)
	}

	if all := qt.Query(qt.Boundary); len(all) != len(points) {
		t.Errorf("Query(boundary) returned %d items, want %d", len(all), len(points))
	}
}

func TestQuadTree_CoincidentPoints(t *testing.T) {
	qt := NewQuadTree[int](Rect{Width: 10, Height: 10}, 2)
	for i := 0; i < 50; i++ {
		if !qt.Insert(Vector2D{X: 1, Y: 1}, i) {
			t.Fatalf("Insert(%d) failed", i)
		}
	}
	if got := qt.Len(); got != 50 {
		t.Errorf("Len() = %d, want 50", got)
	}
	if got := len(qt.Query(Rect{Center: Vector2D{X: 1, Y: 1}, Width: 0.5, Height: 0.5})); got != 50 {
		t.Errorf("Query() found %d, want 50", got)
	}
}
