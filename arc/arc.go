// Package arc discretizes circular arcs into polylines whose consecutive
// points are never further apart than a requested chord length.
package arc

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/armlink/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrUnachievableChordTolerance = errors.New("arc: chord tolerance not achievable for radius")
	ErrNonPositiveRadius          = errors.New("arc: radius must be positive")
	ErrDegenerateArc              = errors.New("arc: boundary point coincides with center")
)

// antiparallelTol is how close the normalized dot product of the boundary
// radii must be to -1 for the arc to be taken as a half turn.
const antiparallelTol = 1e-6

// Sweep returns the counter-clockwise angle in [0, 2π) swept when going from
// a to b around center. Antiparallel boundary radii sweep exactly π.
func Sweep(center, a, b r2.Vec) float64 {
	va := r2.Sub(a, center)
	vb := r2.Sub(b, center)
	cos := d2.Cos(va, vb)
	if math.Abs(cos+1) < antiparallelTol {
		return math.Pi
	}
	sweep := math.Acos(cos)
	if r2.Cross(va, vb) < 0 {
		sweep = 2*math.Pi - sweep
	}
	return sweep
}

// Divide returns a polyline running counter-clockwise around center from a
// to b. The first and last points are a and b exactly. Interior points are
// spaced evenly by the angle subtending a chord of length maxChord on a
// circle of the given radius, so no segment is longer than maxChord.
// a and b are expected to lie on the circle.
func Divide(center r2.Vec, radius float64, a, b r2.Vec, maxChord float64) ([]r2.Vec, error) {
	switch {
	case radius <= 0 || math.IsNaN(radius):
		return nil, fmt.Errorf("%w: got %g", ErrNonPositiveRadius, radius)
	case !(maxChord > 0 && maxChord <= 2*radius):
		return nil, fmt.Errorf("%w: chord %g, radius %g", ErrUnachievableChordTolerance, maxChord, radius)
	}
	va := r2.Sub(a, center)
	if r2.Norm(va) == 0 || r2.Norm(r2.Sub(b, center)) == 0 {
		return nil, ErrDegenerateArc
	}
	sweep := Sweep(center, a, b)
	delta := 2 * math.Asin(maxChord/(2*radius))
	n := int(math.Ceil(sweep/delta)) + 1
	if n < 2 {
		n = 2
	}
	pts := make([]r2.Vec, n)
	pts[0] = a
	for i := 1; i < n-1; i++ {
		pts[i] = r2.Add(center, d2.Rotate(va, float64(i)*delta, d2.CCW))
	}
	pts[n-1] = b
	return pts, nil
}

// DivideShort is like Divide but follows the shorter of the two arcs joining
// a and b. When that arc runs clockwise the points are produced by Divide
// from b to a and returned in reverse, so the result still starts at a.
func DivideShort(center r2.Vec, radius float64, a, b r2.Vec, maxChord float64) ([]r2.Vec, error) {
	if Sweep(center, a, b) <= math.Pi {
		return Divide(center, radius, a, b, maxChord)
	}
	pts, err := Divide(center, radius, b, a, maxChord)
	if err != nil {
		return nil, err
	}
	d2.Set(pts).Reverse()
	return pts, nil
}
