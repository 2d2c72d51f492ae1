package tangent_test

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/armlink/internal/d2"
	"github.com/soypat/armlink/tangent"
	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-9

var circlePairs = []struct {
	name   string
	c0, c1 tangent.Circle
}{
	{"equal", tangent.Circle{Radius: .2}, tangent.Circle{Center: r2.Vec{X: 2}, Radius: .2}},
	{"taper", tangent.Circle{Radius: .3}, tangent.Circle{Center: d2.PolarToXY(1.2, math.Pi/6), Radius: .2}},
	{"flare", tangent.Circle{Center: r2.Vec{X: 1, Y: 1}, Radius: .1}, tangent.Circle{Center: r2.Vec{X: -.5, Y: 2}, Radius: .4}},
	{"steep", tangent.Circle{Radius: .4}, tangent.Circle{Center: r2.Vec{Y: -1.1}, Radius: .35}},
}

// checkLine verifies both points of a tangent line sit on their circles
// with the line perpendicular to each radius.
func checkLine(t *testing.T, p0, p1 r2.Vec, c0, c1 tangent.Circle) {
	t.Helper()
	dir := r2.Unit(r2.Sub(p1, p0))
	for _, tp := range []struct {
		p r2.Vec
		c tangent.Circle
	}{{p0, c0}, {p1, c1}} {
		radial := r2.Sub(tp.p, tp.c.Center)
		if d := r2.Norm(radial) - tp.c.Radius; math.Abs(d) > tol {
			t.Errorf("point %v off circle by %g", tp.p, d)
		}
		if dot := r2.Dot(r2.Unit(radial), dir); math.Abs(dot) > tol {
			t.Errorf("line not perpendicular to radius at %v: cos=%g", tp.p, dot)
		}
	}
}

func TestNonCrossing(t *testing.T) {
	for _, test := range circlePairs {
		t.Run(test.name, func(t *testing.T) {
			tg, err := tangent.NonCrossing(test.c0, test.c1)
			if err != nil {
				t.Fatal(err)
			}
			checkLine(t, tg[tangent.C0Left], tg[tangent.C1Left], test.c0, test.c1)
			checkLine(t, tg[tangent.C0Right], tg[tangent.C1Right], test.c0, test.c1)
			axis := r2.Sub(test.c1.Center, test.c0.Center)
			if r2.Cross(axis, r2.Sub(tg[tangent.C0Left], test.c0.Center)) <= 0 {
				t.Error("left tangency point of c0 is not left of center line")
			}
			if r2.Cross(axis, r2.Sub(tg[tangent.C1Right], test.c1.Center)) >= 0 {
				t.Error("right tangency point of c1 is not right of center line")
			}
			// Both circles lie on the same side of a non-crossing line.
			for line := 0; line < 2; line++ {
				p0, p1 := tg.Line(line)
				dir := r2.Sub(p1, p0)
				s0 := r2.Cross(dir, r2.Sub(test.c0.Center, p0))
				s1 := r2.Cross(dir, r2.Sub(test.c1.Center, p0))
				if s0*s1 <= 0 {
					t.Errorf("line %d separates the circles", line)
				}
			}
		})
	}
}

func TestCrossing(t *testing.T) {
	for _, test := range circlePairs {
		t.Run(test.name, func(t *testing.T) {
			tg, err := tangent.Crossing(test.c0, test.c1)
			if err != nil {
				t.Fatal(err)
			}
			checkLine(t, tg[tangent.C0Upper], tg[tangent.C1Lower], test.c0, test.c1)
			checkLine(t, tg[tangent.C0Lower], tg[tangent.C1Upper], test.c0, test.c1)
			axis := r2.Sub(test.c1.Center, test.c0.Center)
			if r2.Cross(axis, r2.Sub(tg[tangent.C0Upper], test.c0.Center)) <= 0 {
				t.Error("upper tangency point of c0 is below center line")
			}
			if r2.Cross(axis, r2.Sub(tg[tangent.C1Upper], test.c1.Center)) <= 0 {
				t.Error("upper tangency point of c1 is below center line")
			}
			for line := 0; line < 2; line++ {
				p0, p1 := tg.Line(line)
				dir := r2.Sub(p1, p0)
				s0 := r2.Cross(dir, r2.Sub(test.c0.Center, p0))
				s1 := r2.Cross(dir, r2.Sub(test.c1.Center, p0))
				if s0*s1 >= 0 {
					t.Errorf("line %d does not separate the circles", line)
				}
			}
		})
	}
}

func TestTangentErrors(t *testing.T) {
	big := tangent.Circle{Radius: 1}
	small := tangent.Circle{Center: r2.Vec{X: .2}, Radius: .3}
	if _, err := tangent.NonCrossing(big, small); !errors.Is(err, tangent.ErrIncompatibleRadii) {
		t.Errorf("nested circles: got %v", err)
	}
	if _, err := tangent.Crossing(big, small); !errors.Is(err, tangent.ErrIncompatibleRadii) {
		t.Errorf("overlapping circles: got %v", err)
	}
	if _, err := tangent.NonCrossing(big, big); !errors.Is(err, tangent.ErrIncompatibleRadii) {
		t.Errorf("concentric circles: got %v", err)
	}
	if _, err := tangent.NonCrossing(big, tangent.Circle{Center: r2.Vec{X: 3}}); !errors.Is(err, tangent.ErrNonPositiveRadius) {
		t.Errorf("zero radius: got %v", err)
	}
}

func TestFilletRightAngle(t *testing.T) {
	const offset = .25
	f, err := tangent.Fillet(r2.Vec{X: -5}, r2.Vec{X: -1}, r2.Vec{Y: -5}, r2.Vec{Y: -1}, offset)
	if err != nil {
		t.Fatal(err)
	}
	if !d2.EqualWithin(f.Intersection, r2.Vec{}, tol) {
		t.Errorf("intersection: got %v", f.Intersection)
	}
	if math.Abs(f.Radius-offset) > tol {
		t.Errorf("radius: got %g, want %g", f.Radius, offset)
	}
	if !d2.EqualWithin(f.Center, r2.Vec{X: -offset, Y: -offset}, tol) {
		t.Errorf("center: got %v", f.Center)
	}
	if !d2.EqualWithin(f.Tangent0, r2.Vec{X: -offset}, tol) || !d2.EqualWithin(f.Tangent1, r2.Vec{Y: -offset}, tol) {
		t.Errorf("tangent points: got %v %v", f.Tangent0, f.Tangent1)
	}
}

func TestFilletTangency(t *testing.T) {
	for _, angle := range []float64{.1, .5, 1, 2, 3} {
		l1p0 := r2.Add(r2.Vec{X: 1, Y: 1}, d2.PolarToXY(4, angle))
		f, err := tangent.Fillet(r2.Vec{X: -3, Y: 1}, r2.Vec{X: 0, Y: 1}, l1p0, r2.Vec{X: 1, Y: 1}, .3)
		if err != nil {
			t.Fatalf("angle %g: %v", angle, err)
		}
		lines := [2][2]r2.Vec{{{X: -3, Y: 1}, {X: 0, Y: 1}}, {l1p0, {X: 1, Y: 1}}}
		for i, tp := range []r2.Vec{f.Tangent0, f.Tangent1} {
			dir := r2.Unit(r2.Sub(lines[i][1], lines[i][0]))
			if off := r2.Cross(dir, r2.Sub(tp, lines[i][0])); math.Abs(off) > tol {
				t.Errorf("angle %g: tangent %d off its line by %g", angle, i, off)
			}
			radial := r2.Sub(tp, f.Center)
			if d := r2.Norm(radial) - f.Radius; math.Abs(d) > tol {
				t.Errorf("angle %g: tangent %d off fillet circle by %g", angle, i, d)
			}
			if dot := r2.Dot(radial, dir); math.Abs(dot) > tol {
				t.Errorf("angle %g: fillet not tangent to line %d: %g", angle, i, dot)
			}
			if d := r2.Norm(r2.Sub(f.Intersection, tp)); math.Abs(d-.3) > tol {
				t.Errorf("angle %g: tangent %d at distance %g from corner", angle, i, d)
			}
		}
	}
}

func TestFilletErrors(t *testing.T) {
	o := r2.Vec{}
	x := r2.Vec{X: 1}
	for _, test := range []struct {
		name                   string
		l0p0, l0p1, l1p0, l1p1 r2.Vec
		offset                 float64
		want                   error
	}{
		{"antiparallel", o, x, r2.Vec{Y: 1}, r2.Vec{X: -1, Y: 1}, .1, tangent.ErrAntiparallelVectors},
		{"parallel", o, x, r2.Vec{Y: 1}, r2.Vec{X: 1, Y: 1}, .1, tangent.ErrParallelLines},
		{"zero offset", o, x, r2.Vec{Y: -1}, r2.Vec{X: 1, Y: 1}, 0, tangent.ErrNonPositiveOffset},
		{"degenerate", o, o, r2.Vec{Y: -1}, r2.Vec{X: 1, Y: 1}, .1, tangent.ErrDegenerateLine},
	} {
		_, err := tangent.Fillet(test.l0p0, test.l0p1, test.l1p0, test.l1p1, test.offset)
		if !errors.Is(err, test.want) {
			t.Errorf("%s: got %v, want %v", test.name, err, test.want)
		}
	}
}

func TestIntersect(t *testing.T) {
	p, ok := tangent.Intersect(r2.Vec{}, r2.Vec{X: 2, Y: 2}, r2.Vec{X: 0, Y: 2}, r2.Vec{X: 2, Y: 0})
	if !ok || !d2.EqualWithin(p, r2.Vec{X: 1, Y: 1}, tol) {
		t.Errorf("got %v %v, want (1,1)", p, ok)
	}
	p, ok = tangent.Intersect(r2.Vec{}, r2.Vec{X: 1}, r2.Vec{Y: 1}, r2.Vec{X: 5, Y: 1})
	if ok || p != (r2.Vec{}) {
		t.Errorf("parallel lines: got %v %v", p, ok)
	}
}
