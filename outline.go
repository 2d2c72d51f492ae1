package armlink

import (
	"fmt"
	"math"

	"github.com/soypat/armlink/arc"
	"github.com/soypat/armlink/internal/d2"
	"github.com/soypat/armlink/tangent"
	"gonum.org/v1/gonum/spatial/r2"
)

// Span is a run of consecutive indices into a vertex sequence.
type Span struct {
	Start, Count int
}

// At returns the i'th index of the span.
func (s Span) At(i int) int { return s.Start + i }

// First returns the first index of the span.
func (s Span) First() int { return s.Start }

// Last returns the last index of the span.
func (s Span) Last() int { return s.Start + s.Count - 1 }

// End returns the index following the span.
func (s Span) End() int { return s.Start + s.Count }

// Arcs of an outline, in the order they appear in its front sequence.
const (
	// ArcCap0 runs counter-clockwise around the back of collar 0.
	ArcCap0 = iota
	// ArcCollar follows collar 1 on the left side, from the P2 side toward P0.
	// It is the single corner point of the left sides when they cross
	// before reaching collar 1.
	ArcCollar
	// ArcFillet rounds the elbow on the right side, from the P2 side toward P0.
	ArcFillet
	// ArcCap2 runs counter-clockwise around the front of collar 2.
	ArcCap2
	numArcs
)

// Outline is the planar construction of a link in the z=0 plane.
type Outline struct {
	Centers [3]r2.Vec
	Radii   [3]float64
	// Segment0 are the non-crossing tangents from collar 0 to collar 1,
	// Segment1 from collar 1 to collar 2.
	Segment0, Segment1 tangent.Tangents
	Fillet             tangent.FilletSolution
	Arcs               [numArcs][]r2.Vec
	// Spans locates each arc in the front sequence.
	Spans [numArcs]Span
	// Hub0 and Hub2 are the front sequence indices of the centers of
	// collars 0 and 2.
	Hub0, Hub2 int
	// Kink is set when ArcCollar is the corner of the left sides.
	Kink bool
}

// NewOutline solves the tangencies of the link described by p and
// discretizes its boundary arcs.
func NewOutline(p Params) (*Outline, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	o := &Outline{Radii: [3]float64{p.R0, p.R1, p.R2}}
	o.Centers[1] = d2.PolarToXY(p.Length0, p.Angle0)
	o.Centers[2] = r2.Add(o.Centers[1], d2.PolarToXY(p.Length1, -p.Angle1))
	c0 := tangent.Circle{Center: o.Centers[0], Radius: p.R0}
	c1 := tangent.Circle{Center: o.Centers[1], Radius: p.R1}
	c2 := tangent.Circle{Center: o.Centers[2], Radius: p.R2}

	var err error
	o.Segment0, err = tangent.NonCrossing(c0, c1)
	if err != nil {
		return nil, fmt.Errorf("first segment: %w", err)
	}
	o.Segment1, err = tangent.NonCrossing(c1, c2)
	if err != nil {
		return nil, fmt.Errorf("second segment: %w", err)
	}
	t0, t1 := o.Segment0, o.Segment1
	// Both right side lines are directed toward the elbow.
	o.Fillet, err = tangent.Fillet(t0[tangent.C0Right], t0[tangent.C1Right], t1[tangent.C1Right], t1[tangent.C0Right], p.FilletOffset)
	if err != nil {
		return nil, fmt.Errorf("elbow fillet: %w", err)
	}
	if err := o.checkFillet(); err != nil {
		return nil, err
	}

	tol := p.ChordTolerance
	o.Arcs[ArcCap0], err = arc.Divide(c0.Center, c0.Radius, t0[tangent.C0Left], t0[tangent.C0Right], tol)
	if err != nil {
		return nil, fmt.Errorf("collar 0 cap: %w", err)
	}
	o.Arcs[ArcCollar], err = o.collarArc(tol)
	if err != nil {
		return nil, err
	}
	// The fillet radius is derived from the elbow geometry, so a coarse
	// tolerance degrades to a single chord instead of failing.
	f := o.Fillet
	o.Arcs[ArcFillet], err = arc.DivideShort(f.Center, f.Radius, f.Tangent1, f.Tangent0, math.Min(tol, 2*f.Radius))
	if err != nil {
		return nil, fmt.Errorf("elbow fillet: %w", err)
	}
	o.Arcs[ArcCap2], err = arc.Divide(c2.Center, c2.Radius, t1[tangent.C1Right], t1[tangent.C1Left], tol)
	if err != nil {
		return nil, fmt.Errorf("collar 2 cap: %w", err)
	}

	start := 0
	for i, a := range o.Arcs {
		o.Spans[i] = Span{Start: start, Count: len(a)}
		start += len(a)
	}
	o.Hub0 = start
	o.Hub2 = start + 1
	if err := o.checkFolds(); err != nil {
		return nil, err
	}
	return o, nil
}

// collarArc returns the left side of collar 1, counter-clockwise from the
// second segment's tangency point to the first's. When that would take the
// long way round the left sides cross before touching the collar and their
// intersection replaces the arc.
func (o *Outline) collarArc(tol float64) ([]r2.Vec, error) {
	t0, t1 := o.Segment0, o.Segment1
	c1 := o.Centers[1]
	from, to := t1[tangent.C0Left], t0[tangent.C1Left]
	if arc.Sweep(c1, from, to) <= math.Pi {
		pts, err := arc.Divide(c1, o.Radii[1], from, to, tol)
		if err != nil {
			return nil, fmt.Errorf("collar 1: %w", err)
		}
		return pts, nil
	}
	corner, ok := tangent.Intersect(t0[tangent.C0Left], t0[tangent.C1Left], t1[tangent.C0Left], t1[tangent.C1Left])
	if !ok {
		return nil, fmt.Errorf("%w: left sides do not meet", ErrFoldedOutline)
	}
	for i, side := range []struct{ from, toward r2.Vec }{
		{t0[tangent.C0Left], t0[tangent.C1Left]},
		{t1[tangent.C1Left], t1[tangent.C0Left]},
	} {
		if r2.Dot(r2.Sub(corner, side.from), r2.Sub(side.toward, side.from)) < 0 {
			return nil, fmt.Errorf("%w: left corner falls behind the end collar of segment %d", ErrFoldedOutline, i)
		}
	}
	o.Kink = true
	return []r2.Vec{corner}, nil
}

// checkFolds verifies every front face is wound counter-clockwise and that
// no two boundary edges cross.
func (o *Outline) checkFolds() error {
	front := o.Front()
	for _, f := range o.frontFaces() {
		a, b, c := front[f[0]], front[f[1]], front[f[2]]
		if r2.Cross(r2.Sub(b, a), r2.Sub(c, a)) <= 0 {
			return fmt.Errorf("%w: front face %v is inverted", ErrFoldedOutline, f)
		}
	}
	poly := o.Polygon()
	n := len(poly)
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // adjacent through the closing edge
			}
			if segmentsCross(poly[i], poly[(i+1)%n], poly[j], poly[(j+1)%n]) {
				return fmt.Errorf("%w: boundary edges %d and %d cross", ErrFoldedOutline, i, j)
			}
		}
	}
	return nil
}

// segmentsCross reports whether segments pq and rs properly intersect.
func segmentsCross(p, q, r, s r2.Vec) bool {
	pq, rs := r2.Sub(q, p), r2.Sub(s, r)
	d1 := r2.Cross(pq, r2.Sub(r, p))
	d2 := r2.Cross(pq, r2.Sub(s, p))
	d3 := r2.Cross(rs, r2.Sub(p, r))
	d4 := r2.Cross(rs, r2.Sub(q, r))
	return d1*d2 < 0 && d3*d4 < 0
}

// checkFillet verifies the fillet tangency points lie ahead of the collar 0
// and collar 2 tangency points on the right side lines.
func (o *Outline) checkFillet() error {
	f := o.Fillet
	for i, side := range []struct {
		from, toward, tp r2.Vec
	}{
		{o.Segment0[tangent.C0Right], o.Segment0[tangent.C1Right], f.Tangent0},
		{o.Segment1[tangent.C1Right], o.Segment1[tangent.C0Right], f.Tangent1},
	} {
		dir := r2.Sub(side.toward, side.from)
		if r2.Dot(r2.Sub(side.tp, side.from), dir) < 0 {
			return fmt.Errorf("%w: tangency point on segment %d falls behind its end collar", ErrFilletOutOfRange, i)
		}
	}
	return nil
}

// FrontCount returns the number of vertices in the front sequence.
func (o *Outline) FrontCount() int { return o.Hub2 + 1 }

// Front returns the front sequence: the four arcs in order followed by the
// centers of collar 0 and collar 2.
func (o *Outline) Front() []r2.Vec {
	pts := make([]r2.Vec, 0, o.FrontCount())
	for _, a := range o.Arcs {
		pts = append(pts, a...)
	}
	return append(pts, o.Centers[0], o.Centers[2])
}

// Boundary returns the front sequence indices of the outline's boundary
// as a counter-clockwise cycle starting at the first point of ArcCap0.
func (o *Outline) Boundary() []int {
	cap0, collar, fillet, cap2 := o.Spans[ArcCap0], o.Spans[ArcCollar], o.Spans[ArcFillet], o.Spans[ArcCap2]
	idx := make([]int, 0, o.Hub0)
	for i := 0; i < cap0.Count; i++ {
		idx = append(idx, cap0.At(i))
	}
	for i := fillet.Count - 1; i >= 0; i-- {
		idx = append(idx, fillet.At(i))
	}
	for i := 0; i < cap2.Count; i++ {
		idx = append(idx, cap2.At(i))
	}
	for i := 0; i < collar.Count; i++ {
		idx = append(idx, collar.At(i))
	}
	return idx
}

// Polygon returns the boundary of the outline as a counter-clockwise
// polygon. Consecutive arcs share no points, the closing edge is implicit.
func (o *Outline) Polygon() []r2.Vec {
	front := o.Front()
	idx := o.Boundary()
	poly := make([]r2.Vec, len(idx))
	for i, j := range idx {
		poly[i] = front[j]
	}
	return poly
}

// Bounds returns the bounding box of the outline.
func (o *Outline) Bounds() d2.Box {
	return d2.BoxOf(o.Polygon())
}
