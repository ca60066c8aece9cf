package entity

import (
	"github.com/opd-ai/go-drift/pkg/physics"
)

// ObstacleType defines the kind of static obstacle
type ObstacleType int

const (
	Wall ObstacleType = iota
	Tree
)

// String returns the string representation of ObstacleType
func (t ObstacleType) String() string {
	switch t {
	case Wall:
		return "Wall"
	case Tree:
		return "Tree"
	default:
		return "Unknown"
	}
}

// WallOrientation selects which horizontal axis a wall segment runs along.
type WallOrientation int

const (
	// Horizontal walls run along x (north and south edges).
	Horizontal WallOrientation = iota
	// Vertical walls run along z (east and west edges).
	Vertical
)

// String returns the string representation of WallOrientation
func (o WallOrientation) String() string {
	switch o {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// Obstacle is an immutable wall segment or tree.
type Obstacle struct {
	BaseEntity
	kind        ObstacleType
	orientation WallOrientation
}

// NewWall creates a wall segment centered at position.
func NewWall(id ID, position physics.Vector3, orientation WallOrientation, dims Dimensions) *Obstacle {
	o := &Obstacle{
		BaseEntity:  NewBaseEntity(id, position),
		kind:        Wall,
		orientation: orientation,
	}
	if orientation == Vertical {
		o.SetSize(physics.Vector3{X: dims.WallThickness, Y: dims.WallHeight, Z: dims.WallLength})
	} else {
		o.SetSize(physics.Vector3{X: dims.WallLength, Y: dims.WallHeight, Z: dims.WallThickness})
	}
	return o
}

// NewTree creates a tree trunk centered at position.
func NewTree(id ID, position physics.Vector3, dims Dimensions) *Obstacle {
	o := &Obstacle{
		BaseEntity: NewBaseEntity(id, position),
		kind:       Tree,
	}
	o.SetSize(physics.Vector3{X: dims.TreeRadius * 2, Y: dims.TreeHeight, Z: dims.TreeRadius * 2})
	return o
}

// Type returns the obstacle kind.
func (o *Obstacle) Type() ObstacleType {
	return o.kind
}

// Orientation returns the wall orientation. It is Horizontal for trees.
func (o *Obstacle) Orientation() WallOrientation {
	return o.orientation
}
