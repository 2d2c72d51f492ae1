package armlink

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestStitchMismatchedChains(t *testing.T) {
	for _, test := range []struct{ nl, nr int }{
		{2, 2}, {2, 7}, {9, 2}, {5, 6}, {3, 11}, {1, 5}, {4, 1},
	} {
		// Left chain along y=1 and right chain along y=-1, both running
		// toward -x like the collar and fillet of a link. A single point
		// chain sits at x=0.5.
		chainX := func(i, n int) float64 {
			if n == 1 {
				return .5
			}
			return 1 - float64(i)/float64(n-1)
		}
		var pts []r2.Vec
		left := Span{Start: 0, Count: test.nl}
		for i := 0; i < test.nl; i++ {
			pts = append(pts, r2.Vec{X: chainX(i, test.nl), Y: 1})
		}
		right := Span{Start: test.nl, Count: test.nr}
		for j := 0; j < test.nr; j++ {
			pts = append(pts, r2.Vec{X: chainX(j, test.nr), Y: -1})
		}
		// The band is the 1x2 rectangle between the chains, or a triangle
		// of half its area when one chain is a single point.
		want := 2.
		if test.nl == 1 || test.nr == 1 {
			want = 1
		}
		var f faces
		stitch(&f, pts, left, right)
		if len(f) != test.nl+test.nr-2 {
			t.Errorf("%d/%d: got %d triangles, want %d", test.nl, test.nr, len(f), test.nl+test.nr-2)
			continue
		}
		var area float64
		used := map[[2]int]int{}
		for _, tri := range f {
			a, b, c := pts[tri[0]], pts[tri[1]], pts[tri[2]]
			cr := r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
			if cr <= 0 {
				t.Errorf("%d/%d: triangle %v not counter-clockwise", test.nl, test.nr, tri)
			}
			area += cr / 2
			for k := 0; k < 3; k++ {
				used[[2]int{tri[k], tri[(k+1)%3]}]++
			}
		}
		if area < want-1e-12 || area > want+1e-12 {
			t.Errorf("%d/%d: covered area %g, want %g", test.nl, test.nr, area, want)
		}
		for i := 0; i < test.nl-1; i++ {
			if used[[2]int{left.At(i), left.At(i + 1)}] != 1 {
				t.Errorf("%d/%d: left edge %d not used once", test.nl, test.nr, i)
			}
		}
		for j := 0; j < test.nr-1; j++ {
			if used[[2]int{right.At(j + 1), right.At(j)}] != 1 {
				t.Errorf("%d/%d: right edge %d not used once", test.nl, test.nr, j)
			}
		}
	}
}

func TestSpan(t *testing.T) {
	s := Span{Start: 4, Count: 3}
	if s.First() != 4 || s.Last() != 6 || s.End() != 7 || s.At(1) != 5 {
		t.Errorf("span accessors wrong: %+v", s)
	}
}
