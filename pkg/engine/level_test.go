package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/go-drift/pkg/config"
	"github.com/opd-ai/go-drift/pkg/entity"
	"github.com/opd-ai/go-drift/pkg/physics"
	"github.com/opd-ai/go-drift/pkg/placement"
)

func testLevel() config.LevelConfig {
	level := config.DefaultConfig().Level
	level.PlayAreaSize = 100
	level.TreeCount = 20
	level.PowerupCount = 5
	return level
}

func TestBuildWalls_Layout(t *testing.T) {
	dims := entity.DefaultDimensions()
	walls := BuildWalls(testLevel(), dims)

	// 100 / 5 = 20 segments per side.
	if len(walls) != 80 {
		t.Fatalf("len(walls) = %d, want 80", len(walls))
	}

	want := []struct {
		x, z   float64
		orient entity.WallOrientation
	}{
		{-47.5, -50, entity.Horizontal},
		{-47.5, 50, entity.Horizontal},
		{-50, -47.5, entity.Vertical},
		{50, -47.5, entity.Vertical},
	}
	for i, w := range want {
		p := walls[i].Position()
		if p.X != w.x || p.Z != w.z {
			t.Errorf("wall %d at (%v, %v), want (%v, %v)", i, p.X, p.Z, w.x, w.z)
		}
		if walls[i].Orientation() != w.orient {
			t.Errorf("wall %d orientation = %v, want %v", i, walls[i].Orientation(), w.orient)
		}
		if p.Y != dims.WallHeight/2 {
			t.Errorf("wall %d height = %v, want %v", i, p.Y, dims.WallHeight/2)
		}
	}

	last := walls[len(walls)-1].Position()
	if last.X != 50 || last.Z != 47.5 {
		t.Errorf("last wall at (%v, %v), want (50, 47.5)", last.X, last.Z)
	}
}

func TestBuildWalls_Degenerate(t *testing.T) {
	tests := []struct {
		name  string
		size  float64
		seg   float64
		walls int
	}{
		{"zero segment", 100, 0, 0},
		{"segment longer than area", 4, 5, 0},
		{"partial segment dropped", 12, 5, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := testLevel()
			level.PlayAreaSize = tt.size
			level.WallSegmentLength = tt.seg
			if got := len(BuildWalls(level, entity.DefaultDimensions())); got != tt.walls {
				t.Errorf("len(walls) = %d, want %d", got, tt.walls)
			}
		})
	}
}

func TestPlaceTrees_Constraints(t *testing.T) {
	level := testLevel()
	dims := entity.DefaultDimensions()
	gen := placement.NewGenerator(level.PlayAreaSize, level.TreeWallMargin, placement.WithSource(rand.NewPCG(7, 7)))

	trees, degraded := PlaceTrees(level, dims, gen)
	if len(trees) != level.TreeCount {
		t.Fatalf("len(trees) = %d, want %d", len(trees), level.TreeCount)
	}
	if degraded != 0 {
		t.Errorf("%d trees degraded in a sparse level", degraded)
	}

	limit := level.PlayAreaSize/2 - level.TreeWallMargin
	for i, tree := range trees {
		p := tree.Position()
		if tree.Type() != entity.Tree {
			t.Errorf("tree %d has type %v", i, tree.Type())
		}
		if p.Y != dims.TreeHeight/2 {
			t.Errorf("tree %d height = %v", i, p.Y)
		}
		if p.X < -limit || p.X > limit || p.Z < -limit || p.Z > limit {
			t.Errorf("tree %d at %v outside the wall margin", i, p)
		}
		if p.Ground().Length() < level.TreeCenterClearance {
			t.Errorf("tree %d at %v inside the spawn clearance", i, p)
		}
		for j := 0; j < i; j++ {
			if d := p.Ground().Distance(trees[j].Position().Ground()); d < level.TreeSpacing {
				t.Errorf("trees %d and %d only %v apart", i, j, d)
			}
		}
	}
}

func TestPlacePowerups_AwayFromTrees(t *testing.T) {
	level := testLevel()
	dims := entity.DefaultDimensions()
	trees := []*entity.Obstacle{
		entity.NewTree(entity.GenerateID(), physics.Vector3{X: 10, Z: 10}, dims),
		entity.NewTree(entity.GenerateID(), physics.Vector3{X: -10, Z: -10}, dims),
	}
	gen := placement.NewGenerator(level.PlayAreaSize, level.PowerupMargin, placement.WithSource(rand.NewPCG(3, 4)))

	powerups, degraded := PlacePowerups(level, dims, gen, trees)
	if len(powerups) != level.PowerupCount {
		t.Fatalf("len(powerups) = %d, want %d", len(powerups), level.PowerupCount)
	}
	if degraded != 0 {
		t.Errorf("%d powerups degraded", degraded)
	}

	for i, p := range powerups {
		pos := p.Position()
		if pos.Y != level.PowerupHeight {
			t.Errorf("powerup %d height = %v, want %v", i, pos.Y, level.PowerupHeight)
		}
		if p.Type() != entity.Nitrous || !p.IsActive() {
			t.Errorf("powerup %d = %v active=%v", i, p.Type(), p.IsActive())
		}
		for _, tree := range trees {
			if d := pos.Ground().Distance(tree.Position().Ground()); d < level.PowerupSpacing {
				t.Errorf("powerup %d only %v from a tree", i, d)
			}
		}
	}
}

func TestGenerateLevel_SeedReproducible(t *testing.T) {
	level := testLevel()
	level.Seed = 99
	dims := entity.DefaultDimensions()

	a := GenerateLevel(level, dims)
	b := GenerateLevel(level, dims)

	if a.Stats != b.Stats {
		t.Fatalf("stats differ: %+v vs %+v", a.Stats, b.Stats)
	}
	for i, o := range a.Obstacles.Obstacles() {
		if o.Position() != b.Obstacles.Obstacles()[i].Position() {
			t.Fatalf("obstacle %d differs", i)
		}
	}
	for i, p := range a.Powerups.Powerups() {
		if p.Position() != b.Powerups.Powerups()[i].Position() {
			t.Fatalf("powerup %d differs", i)
		}
	}
}

func TestGenerateLevel_Stats(t *testing.T) {
	level := testLevel()
	l := GenerateLevel(level, entity.DefaultDimensions())

	if l.Stats.Walls != 80 || l.Stats.Trees != 20 || l.Stats.Powerups != 5 {
		t.Errorf("Stats = %+v", l.Stats)
	}
	if l.Obstacles.Count() != 100 {
		t.Errorf("Obstacles.Count() = %d, want 100", l.Obstacles.Count())
	}
	// Walls come first so they win collision ties.
	if l.Obstacles.Obstacles()[0].Type() != entity.Wall || l.Obstacles.Obstacles()[99].Type() != entity.Tree {
		t.Error("walls must precede trees")
	}
}

func TestGenerateLevel_Empty(t *testing.T) {
	level := testLevel()
	level.TreeCount = 0
	level.PowerupCount = 0

	l := GenerateLevel(level, entity.DefaultDimensions())
	if l.Stats.Trees != 0 || l.Powerups.Count() != 0 {
		t.Errorf("Stats = %+v", l.Stats)
	}
}
