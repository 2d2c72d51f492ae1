// Package tangent solves the planar tangency problems of a link outline:
// lines tangent to two circles and the fillet circle tangent to two lines.
package tangent

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/armlink/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrParallelLines       = errors.New("tangent: lines are parallel")
	ErrIncompatibleRadii   = errors.New("tangent: circle radii incompatible with center distance")
	ErrAntiparallelVectors = errors.New("tangent: line directions are antiparallel")
	ErrNonPositiveRadius   = errors.New("tangent: radius must be positive")
	ErrNonPositiveOffset   = errors.New("tangent: fillet offset must be positive")
	ErrDegenerateLine      = errors.New("tangent: line defined by coincident points")
)

const (
	// parallelTol bounds the cross product of unit line directions below
	// which two lines are considered parallel.
	parallelTol = 1e-6
	// antiparallelTol bounds how close the dot product of unit directions
	// must be to -1 for them to be antiparallel.
	antiparallelTol = 1e-6
)

// Circle is a circle in the plane. Radius must be positive.
type Circle struct {
	Center r2.Vec
	Radius float64
}

// Tangents holds the tangency points of two tangent lines to a pair of
// circles c0 and c1. The first line joins indices 0 and 1, the second
// joins 2 and 3. Which index refers to which circle and side depends on
// the solver, see the index constants.
type Tangents [4]r2.Vec

// Indices into the result of NonCrossing. Left and right are seen
// looking from c0 toward c1.
const (
	C0Left = iota
	C1Left
	C0Right
	C1Right
)

// Indices into the result of Crossing. Upper lies left of the center line
// looking from c0 toward c1, lower lies right of it. The first line touches
// c0 above and c1 below.
const (
	C0Upper = iota
	C1Lower
	C0Lower
	C1Upper
)

// Line returns the two tangency points of line i (0 or 1).
func (t Tangents) Line(i int) (r2.Vec, r2.Vec) {
	return t[2*i], t[2*i+1]
}

func checkCircles(c0, c1 Circle) (centerLine r2.Vec, dist float64, err error) {
	if !(c0.Radius > 0) || !(c1.Radius > 0) {
		return r2.Vec{}, 0, fmt.Errorf("%w: radii %g and %g", ErrNonPositiveRadius, c0.Radius, c1.Radius)
	}
	centerLine = r2.Sub(c1.Center, c0.Center)
	dist = r2.Norm(centerLine)
	if dist == 0 {
		return r2.Vec{}, 0, fmt.Errorf("%w: concentric circles", ErrIncompatibleRadii)
	}
	return centerLine, dist, nil
}

// NonCrossing returns the two lines tangent to both circles that do not
// pass between them. The tangency points on each line share the same
// outward normal. It fails with ErrIncompatibleRadii when one circle
// contains the other.
func NonCrossing(c0, c1 Circle) (Tangents, error) {
	d, dist, err := checkCircles(c0, c1)
	if err != nil {
		return Tangents{}, err
	}
	dr := c0.Radius - c1.Radius
	if dist < math.Abs(dr) {
		return Tangents{}, fmt.Errorf("%w: center distance %g below radius difference %g", ErrIncompatibleRadii, dist, math.Abs(dr))
	}
	aa := math.Atan2(d.Y, d.X)
	// Half angle between the two tangency normals.
	bb := math.Acos(math.Abs(dr) / dist)
	if dr < 0 {
		bb = math.Pi - bb
	}
	n := d2.PolarToXY(1, aa-bb)
	var t Tangents
	t[C0Right] = r2.Add(c0.Center, r2.Scale(c0.Radius, n))
	t[C1Right] = r2.Add(c1.Center, r2.Scale(c1.Radius, n))
	t[C0Left] = r2.Add(c0.Center, d2.Rotate(r2.Sub(t[C0Right], c0.Center), 2*bb, d2.CCW))
	t[C1Left] = r2.Add(c1.Center, d2.Rotate(r2.Sub(t[C1Right], c1.Center), 2*bb, d2.CCW))
	return t, nil
}

// Crossing returns the two lines tangent to both circles that pass between
// them. It fails with ErrIncompatibleRadii when the circles overlap.
func Crossing(c0, c1 Circle) (Tangents, error) {
	d, dist, err := checkCircles(c0, c1)
	if err != nil {
		return Tangents{}, err
	}
	sum := c0.Radius + c1.Radius
	if dist < sum {
		return Tangents{}, fmt.Errorf("%w: center distance %g below radius sum %g", ErrIncompatibleRadii, dist, sum)
	}
	aa := math.Atan2(d.Y, d.X)
	bb := math.Acos(sum / dist)
	n := d2.PolarToXY(1, aa+bb)
	var t Tangents
	t[C0Upper] = r2.Add(c0.Center, r2.Scale(c0.Radius, n))
	t[C1Lower] = r2.Sub(c1.Center, r2.Scale(c1.Radius, n))
	t[C0Lower] = r2.Add(c0.Center, d2.Rotate(r2.Sub(t[C0Upper], c0.Center), 2*bb, d2.CW))
	t[C1Upper] = r2.Add(c1.Center, d2.Rotate(r2.Sub(t[C1Lower], c1.Center), 2*bb, d2.CW))
	return t, nil
}
