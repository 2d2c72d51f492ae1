package armlink

import (
	"fmt"
	"math"

	"github.com/soypat/armlink/arc"
)

// Params fully determines an arm link. Collar i is centered at Pi. P0 sits at
// the origin, P1 is Length0 away from it at Angle0, and P2 is Length1 away
// from P1 at -Angle1. Lengths are in model units, angles in radians.
type Params struct {
	R0, R1, R2 float64
	Angle0     float64
	Angle1     float64
	Length0    float64
	Length1    float64
	// FilletOffset is the distance from the corner of the elbow's straight
	// sides to the tangency points of the fillet rounding it.
	FilletOffset float64
	// ChordTolerance is the longest chord allowed when discretizing arcs.
	ChordTolerance float64
	// Thickness is the extrusion depth along -z.
	Thickness float64
}

// DefaultParams returns a straight tapered link.
func DefaultParams() Params {
	return Params{
		R0:             .3,
		R1:             .2,
		R2:             .2,
		Angle0:         math.Pi / 6,
		Angle1:         -math.Pi / 6,
		Length0:        1.2,
		Length1:        1.7,
		FilletOffset:   .2,
		ChordTolerance: .05,
		Thickness:      .5,
	}
}

// Range is a closed interval.
type Range struct {
	Min, Max float64
}

func (r Range) clamp(v float64) float64 {
	return math.Min(r.Max, math.Max(v, r.Min))
}

// Bounds limits each group of parameters to an interval.
type Bounds struct {
	Radius         Range
	Angle          Range
	Length         Range
	FilletOffset   Range
	ChordTolerance Range
	Thickness      Range
}

// DefaultBounds are the interactive editing limits of the link designer.
// Both angles share the Angle range, so clamping turns a negative Angle1
// (a left or straight link) into a slight right bend.
var DefaultBounds = Bounds{
	Radius:         Range{.1, .4},
	Angle:          Range{.1, 1.5},
	Length:         Range{.4, 3},
	FilletOffset:   Range{.1, .5},
	ChordTolerance: Range{.01, .1},
	Thickness:      Range{.1, 1},
}

// Clamp returns p with every parameter limited to b. Angle0 and Angle1
// are both limited to b.Angle.
func (p Params) Clamp(b Bounds) Params {
	return Params{
		R0:             b.Radius.clamp(p.R0),
		R1:             b.Radius.clamp(p.R1),
		R2:             b.Radius.clamp(p.R2),
		Angle0:         b.Angle.clamp(p.Angle0),
		Angle1:         b.Angle.clamp(p.Angle1),
		Length0:        b.Length.clamp(p.Length0),
		Length1:        b.Length.clamp(p.Length1),
		FilletOffset:   b.FilletOffset.clamp(p.FilletOffset),
		ChordTolerance: b.ChordTolerance.clamp(p.ChordTolerance),
		Thickness:      b.Thickness.clamp(p.Thickness),
	}
}

// Validate reports the first parameter that cannot produce a link.
// Returned errors wrap ErrInvalidParams.
func (p Params) Validate() error {
	for _, f := range []struct {
		name     string
		v        float64
		positive bool
	}{
		{"R0", p.R0, true},
		{"R1", p.R1, true},
		{"R2", p.R2, true},
		{"Angle0", p.Angle0, false},
		{"Angle1", p.Angle1, false},
		{"Length0", p.Length0, true},
		{"Length1", p.Length1, true},
		{"FilletOffset", p.FilletOffset, true},
		{"ChordTolerance", p.ChordTolerance, true},
		{"Thickness", p.Thickness, true},
	} {
		switch {
		case math.IsNaN(f.v) || math.IsInf(f.v, 0):
			return fmt.Errorf("%w: %s is %g", ErrInvalidParams, f.name, f.v)
		case f.positive && f.v <= 0:
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParams, f.name, f.v)
		}
	}
	if minR := math.Min(p.R0, math.Min(p.R1, p.R2)); p.ChordTolerance > 2*minR {
		return fmt.Errorf("%w: %w: chord %g exceeds smallest collar diameter %g", ErrInvalidParams, arc.ErrUnachievableChordTolerance, p.ChordTolerance, 2*minR)
	}
	return nil
}
