// Package placement draws random positions inside a square play area with
// optional spacing constraints.
//
// Constrained queries retry a bounded number of times and then fall back
// to an unconstrained sample, so placement always terminates. The returned
// flag tells the caller whether the constraints were actually met; a false
// flag is not an error and the position is still usable.
package placement

import (
	"math/rand/v2"

	"github.com/opd-ai/go-drift/pkg/physics"
)

// DefaultMaxAttempts is the retry budget of the constrained queries.
const DefaultMaxAttempts = 100

// Generator samples uniformly from [min, max]^2 where the bounds are the
// play area shrunk by a margin on every side. It is not safe for
// concurrent use.
type Generator struct {
	rng         *rand.Rand
	min, max    float64
	maxAttempts int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource makes the generator draw from src, which makes its output
// reproducible for a seeded source.
func WithSource(src rand.Source) Option {
	return func(g *Generator) {
		g.rng = rand.New(src)
	}
}

// WithMaxAttempts overrides the retry budget. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n >= 1 {
			g.maxAttempts = n
		}
	}
}

// NewGenerator creates a generator for a play area of the given edge
// length centered on the origin. A margin that leaves no room collapses
// the sampling region to the center.
func NewGenerator(playAreaSize, margin float64, opts ...Option) *Generator {
	half := playAreaSize / 2
	g := &Generator{
		min:         -half + margin,
		max:         half - margin,
		maxAttempts: DefaultMaxAttempts,
	}
	if !(g.min <= g.max) {
		g.min, g.max = 0, 0
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Bounds returns the per-axis sampling range.
func (g *Generator) Bounds() (lo, hi float64) {
	return g.min, g.max
}

// MaxAttempts returns the retry budget.
func (g *Generator) MaxAttempts() int {
	return g.maxAttempts
}

// Random returns an unconstrained sample. X maps to world x, Y to world z.
func (g *Generator) Random() physics.Vector2D {
	return physics.Vector2D{X: g.sample(), Y: g.sample()}
}

func (g *Generator) sample() float64 {
	return g.min + g.rng.Float64()*(g.max-g.min)
}

// WithMinDistance returns a sample at least minDistance from every point in
// existing. After MaxAttempts failures it returns an unconstrained sample
// and false.
func (g *Generator) WithMinDistance(existing []physics.Vector2D, minDistance float64) (physics.Vector2D, bool) {
	for i := 0; i < g.maxAttempts; i++ {
		p := g.Random()
		if farFromAll(p, existing, minDistance) {
			return p, true
		}
	}
	return g.Random(), false
}

// WithConstraints is WithMinDistance that additionally keeps the sample at
// least minFromCenter away from the origin.
func (g *Generator) WithConstraints(existing []physics.Vector2D, minFromCenter, minFromOthers float64) (physics.Vector2D, bool) {
	for i := 0; i < g.maxAttempts; i++ {
		p := g.Random()
		if minFromCenter > 0 && p.LengthSquared() < minFromCenter*minFromCenter {
			continue
		}
		if farFromAll(p, existing, minFromOthers) {
			return p, true
		}
	}
	return g.Random(), false
}

func farFromAll(p physics.Vector2D, existing []physics.Vector2D, minDistance float64) bool {
	if !(minDistance > 0) {
		return true
	}
	limit := minDistance * minDistance
	for _, e := range existing {
		if p.Sub(e).LengthSquared() < limit {
			return false
		}
	}
	return true
}
