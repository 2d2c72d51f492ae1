package tangent

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// FilletSolution is a circle tangent to two lines together with its two
// tangency points and the intersection of the lines it rounds off.
type FilletSolution struct {
	Circle
	// Tangent0 lies on the first line, Tangent1 on the second.
	Tangent0, Tangent1 r2.Vec
	Intersection       r2.Vec
}

// Intersect returns the intersection of the infinite line through l0p0 and
// l0p1 with the one through l1p0 and l1p1. ok is false and the point is the
// zero vector when the lines are parallel or either line is degenerate.
func Intersect(l0p0, l0p1, l1p0, l1p1 r2.Vec) (p r2.Vec, ok bool) {
	d0 := r2.Sub(l0p1, l0p0)
	d1 := r2.Sub(l1p1, l1p0)
	n0, n1 := r2.Norm(d0), r2.Norm(d1)
	if n0 == 0 || n1 == 0 {
		return r2.Vec{}, false
	}
	den := r2.Cross(d0, d1)
	if math.Abs(den/(n0*n1)) < parallelTol {
		return r2.Vec{}, false
	}
	s := r2.Cross(r2.Sub(l1p0, l0p0), d1) / den
	return r2.Add(l0p0, r2.Scale(s, d0)), true
}

// Fillet returns the circle tangent to the line running from l0p0 toward
// l0p1 and the line running from l1p0 toward l1p1, with both tangency points
// at distance offset from the lines' intersection, moved back against each
// line's direction. Lines should therefore be given pointing toward the
// corner being rounded. Whether the tangency points fall within the given
// segments is left to the caller.
func Fillet(l0p0, l0p1, l1p0, l1p1 r2.Vec, offset float64) (FilletSolution, error) {
	if !(offset > 0) {
		return FilletSolution{}, fmt.Errorf("%w: got %g", ErrNonPositiveOffset, offset)
	}
	d0 := r2.Sub(l0p1, l0p0)
	d1 := r2.Sub(l1p1, l1p0)
	if r2.Norm(d0) == 0 || r2.Norm(d1) == 0 {
		return FilletSolution{}, ErrDegenerateLine
	}
	u0, u1 := r2.Unit(d0), r2.Unit(d1)
	cos := r2.Dot(u0, u1)
	if math.Abs(cos+1) < antiparallelTol {
		return FilletSolution{}, ErrAntiparallelVectors
	}
	corner, ok := Intersect(l0p0, l0p1, l1p0, l1p1)
	if !ok {
		return FilletSolution{}, ErrParallelLines
	}
	half := math.Acos(math.Min(1, math.Max(-1, cos))) / 2
	radius := offset * math.Tan(half)
	bisector := r2.Unit(r2.Add(u0, u1))
	back := radius / math.Tan(half)
	return FilletSolution{
		Circle: Circle{
			Center: r2.Sub(corner, r2.Scale(offset/math.Cos(half), bisector)),
			Radius: radius,
		},
		Tangent0:     r2.Sub(corner, r2.Scale(back, u0)),
		Tangent1:     r2.Sub(corner, r2.Scale(back, u1)),
		Intersection: corner,
	}, nil
}
