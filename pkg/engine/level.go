package engine

import (
	"math/rand/v2"

	"github.com/opd-ai/go-drift/pkg/config"
	"github.com/opd-ai/go-drift/pkg/entity"
	"github.com/opd-ai/go-drift/pkg/physics"
	"github.com/opd-ai/go-drift/pkg/placement"
)

// LevelStats summarizes a generated level. Degraded counts placements that
// fell back to an unconstrained sample.
type LevelStats struct {
	Walls           int
	Trees           int
	Powerups        int
	DegradedTrees   int
	DegradedPickups int
}

// Level is a generated play area.
type Level struct {
	Obstacles *ObstacleField
	Powerups  *PowerupField
	Stats     LevelStats
}

// GenerateLevel builds the perimeter walls, scatters trees and places
// nitrous pickups. A non-zero Seed in the level config makes the layout
// reproducible.
func GenerateLevel(level config.LevelConfig, dims entity.Dimensions) *Level {
	treeGen := placement.NewGenerator(level.PlayAreaSize, level.TreeWallMargin, levelSource(level.Seed, 1)...)
	pickupGen := placement.NewGenerator(level.PlayAreaSize, level.PowerupMargin, levelSource(level.Seed, 2)...)

	walls := BuildWalls(level, dims)
	trees, degradedTrees := PlaceTrees(level, dims, treeGen)
	powerups, degradedPickups := PlacePowerups(level, dims, pickupGen, trees)

	obstacles := make([]*entity.Obstacle, 0, len(walls)+len(trees))
	obstacles = append(obstacles, walls...)
	obstacles = append(obstacles, trees...)

	return &Level{
		Obstacles: NewObstacleField(obstacles),
		Powerups:  NewPowerupField(powerups),
		Stats: LevelStats{
			Walls:           len(walls),
			Trees:           len(trees),
			Powerups:        len(powerups),
			DegradedTrees:   degradedTrees,
			DegradedPickups: degradedPickups,
		},
	}
}

func levelSource(seed, stream uint64) []placement.Option {
	if seed == 0 {
		return nil
	}
	return []placement.Option{placement.WithSource(rand.NewPCG(seed, stream))}
}

// BuildWalls lines the play area edges with wall segments. Each step along
// the edge adds the north, south, west and east segment in that order.
func BuildWalls(level config.LevelConfig, dims entity.Dimensions) []*entity.Obstacle {
	if !(level.WallSegmentLength > 0) || !(level.PlayAreaSize > 0) {
		return nil
	}
	half := level.PlayAreaSize / 2
	segments := int(level.PlayAreaSize / level.WallSegmentLength)
	y := dims.WallHeight / 2

	walls := make([]*entity.Obstacle, 0, segments*4)
	for i := 0; i < segments; i++ {
		offset := -half + float64(i)*level.WallSegmentLength + level.WallSegmentLength/2
		walls = append(walls,
			entity.NewWall(entity.GenerateID(), physics.Vector3{X: offset, Y: y, Z: -half}, entity.Horizontal, dims),
			entity.NewWall(entity.GenerateID(), physics.Vector3{X: offset, Y: y, Z: half}, entity.Horizontal, dims),
			entity.NewWall(entity.GenerateID(), physics.Vector3{X: -half, Y: y, Z: offset}, entity.Vertical, dims),
			entity.NewWall(entity.GenerateID(), physics.Vector3{X: half, Y: y, Z: offset}, entity.Vertical, dims),
		)
	}
	return walls
}

// PlaceTrees scatters TreeCount trees, keeping the spawn area clear and the
// trunks apart. It returns the trees and how many placements degraded.
func PlaceTrees(level config.LevelConfig, dims entity.Dimensions, gen *placement.Generator) ([]*entity.Obstacle, int) {
	trees := make([]*entity.Obstacle, 0, max(level.TreeCount, 0))
	placed := make([]physics.Vector2D, 0, max(level.TreeCount, 0))
	degraded := 0

	for i := 0; i < level.TreeCount; i++ {
		p, ok := gen.WithConstraints(placed, level.TreeCenterClearance, level.TreeSpacing)
		if !ok {
			degraded++
		}
		placed = append(placed, p)
		pos := physics.Vector3{Y: dims.TreeHeight / 2}.WithGround(p)
		trees = append(trees, entity.NewTree(entity.GenerateID(), pos, dims))
	}
	return trees, degraded
}

// PlacePowerups places PowerupCount nitrous pickups away from each other
// and from the trees.
func PlacePowerups(level config.LevelConfig, dims entity.Dimensions, gen *placement.Generator, trees []*entity.Obstacle) ([]*entity.Powerup, int) {
	powerups := make([]*entity.Powerup, 0, max(level.PowerupCount, 0))
	taken := make([]physics.Vector2D, 0, len(trees)+max(level.PowerupCount, 0))
	for _, t := range trees {
		taken = append(taken, t.Position().Ground())
	}
	degraded := 0

	for i := 0; i < level.PowerupCount; i++ {
		p, ok := gen.WithMinDistance(taken, level.PowerupSpacing)
		if !ok {
			degraded++
		}
		taken = append(taken, p)
		pos := physics.Vector3{Y: level.PowerupHeight}.WithGround(p)
		powerups = append(powerups, entity.NewPowerup(entity.GenerateID(), pos, entity.Nitrous, dims))
	}
	return powerups, degraded
}
