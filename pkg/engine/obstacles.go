package engine

import (
	"math"
	"slices"

	"github.com/opd-ai/go-drift/pkg/entity"
	"github.com/opd-ai/go-drift/pkg/event"
	"github.com/opd-ai/go-drift/pkg/physics"
	"github.com/opd-ai/go-drift/pkg/vehicle"
)

const spatialIndexCapacity = 8

// ObstacleField holds the static walls and trees in construction order,
// with a spatial index for broad phase queries.
type ObstacleField struct {
	obstacles []*entity.Obstacle
	index     *physics.QuadTree[int]
	// reach is the largest obstacle collision radius.
	reach float64
}

// NewObstacleField indexes obstacles. The slice order is the collision
// priority order.
func NewObstacleField(obstacles []*entity.Obstacle) *ObstacleField {
	f := &ObstacleField{obstacles: obstacles}

	extent := 1.0
	for _, o := range obstacles {
		p := o.Position().Ground()
		extent = max(extent, math.Abs(p.X), math.Abs(p.Y))
		f.reach = max(f.reach, o.Radius())
	}
	bounds := physics.Rect{Width: 2*extent + 2, Height: 2*extent + 2}
	f.index = physics.NewQuadTree[int](bounds, spatialIndexCapacity)
	for i, o := range obstacles {
		f.index.Insert(o.Position().Ground(), i)
	}
	return f
}

// Obstacles returns the obstacles in construction order.
func (f *ObstacleField) Obstacles() []*entity.Obstacle {
	return f.obstacles
}

// Count returns the number of obstacles.
func (f *ObstacleField) Count() int {
	return len(f.obstacles)
}

// Within returns the obstacles whose centers lie inside area, in
// construction order.
func (f *ObstacleField) Within(area physics.Rect) []*entity.Obstacle {
	idx := f.index.Query(area)
	slices.Sort(idx)
	out := make([]*entity.Obstacle, len(idx))
	for i, j := range idx {
		out[i] = f.obstacles[j]
	}
	return out
}

// HandleCollisions resolves the first obstacle, in construction order, that
// the vehicle overlaps: the vehicle is pushed out along the contact normal
// and stopped. Later overlaps are left for the next frame. It returns the
// hit, or nil when the vehicle is clear.
func (f *ObstacleField) HandleCollisions(v *vehicle.Vehicle) *event.CollisionEvent {
	span := 2*(v.Radius()+f.reach) + 1
	area := physics.Rect{Center: v.Position().Ground(), Width: span, Height: span}

	for _, o := range f.Within(area) {
		hit := v.CheckCircleCollision(o)
		if !hit.Collided {
			continue
		}
		pos := v.Position()
		v.SetPosition(pos.WithGround(pos.Ground().Sub(hit.Normal.Scale(hit.Overlap))))
		v.SetVelocity(0)
		return event.NewCollisionEvent(event.ObstacleHit, f, v.GetID(), o.GetID(), hit)
	}
	return nil
}

// Update advances every obstacle. Obstacles are static, so this only
// exists to keep the frame loop uniform.
func (f *ObstacleField) Update(deltaTime float64) {
	for _, o := range f.obstacles {
		o.Update(deltaTime)
	}
}

// Reset restores every obstacle to its construction transform.
func (f *ObstacleField) Reset() {
	for _, o := range f.obstacles {
		o.Reset()
	}
}
