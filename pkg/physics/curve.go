// pkg/physics/curve.go
package physics

// Ramp is one linear segment of a piecewise curve. Over [Start, End) the
// value moves from From to To.
type Ramp struct {
	Name  string
	Start float64
	End   float64
	From  float64
	To    float64
}

// Contains reports whether x falls in the ramp's half-open domain.
func (r Ramp) Contains(x float64) bool {
	return x >= r.Start && x < r.End
}

// At evaluates the ramp at x without checking the domain.
func (r Ramp) At(x float64) float64 {
	width := r.End - r.Start
	if width <= 0 {
		return r.From
	}
	return r.From + (x-r.Start)/width*(r.To-r.From)
}

// Piecewise is an ordered table of ramps with fixed values outside them.
// Ramps must be sorted by Start and must not overlap.
type Piecewise struct {
	Ramps []Ramp
	// Below is returned for x before the first ramp.
	Below float64
	// Floor and Ceil bound the extrapolated value past the last ramp.
	Floor float64
	Ceil  float64
}

// At evaluates the curve. Past the last ramp the last ramp's line is
// extended and clamped to [Floor, Ceil].
func (p Piecewise) At(x float64) float64 {
	if len(p.Ramps) == 0 || x < p.Ramps[0].Start {
		return p.Below
	}
	for _, r := range p.Ramps {
		if r.Contains(x) {
			return r.At(x)
		}
	}
	last := p.Ramps[len(p.Ramps)-1]
	return Clamp(last.At(x), p.Floor, p.Ceil)
}

// Segment returns the ramp that covers x, or false when x lies outside
// every ramp.
func (p Piecewise) Segment(x float64) (Ramp, bool) {
	for _, r := range p.Ramps {
		if r.Contains(x) {
			return r, true
		}
	}
	return Ramp{}, false
}
