package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Direction is the sense of a planar rotation.
type Direction int

const (
	// CCW rotates counter-clockwise (positive angle).
	CCW Direction = 1
	// CW rotates clockwise.
	CW Direction = -1
)

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// Rotate rotates v about the origin by angle radians in the dir sense.
func Rotate(v r2.Vec, angle float64, dir Direction) r2.Vec {
	s, c := math.Sincos(float64(dir) * angle)
	return r2.Vec{
		X: c*v.X - s*v.Y,
		Y: s*v.X + c*v.Y,
	}
}

// PolarToXY converts polar to cartesian coordinates.
func PolarToXY(r, theta float64) r2.Vec {
	s, c := math.Sincos(theta)
	return r2.Vec{X: r * c, Y: r * s}
}

// Cos returns the cosine of the angle between a and b, clamped to [-1, 1].
// It is NaN if either vector is zero.
func Cos(a, b r2.Vec) float64 {
	return Clamp(r2.Dot(a, b)/(r2.Norm(a)*r2.Norm(b)), -1, 1)
}

// Clamp x between a and b, assume a <= b
func Clamp(x, a, b float64) float64 {
	return math.Min(b, math.Max(x, a))
}

type Set []r2.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r2.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r2.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Area returns the signed shoelace area of the closed polygon a.
// Counter-clockwise polygons have positive area.
func (a Set) Area() float64 {
	var sum float64
	for i := range a {
		j := (i + 1) % len(a)
		sum += r2.Cross(a[i], a[j])
	}
	return sum / 2
}

// Reverse reverses a in place.
func (a Set) Reverse() {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}
