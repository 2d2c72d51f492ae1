// Package sdfcheck audits link meshes against an independent signed
// distance model of the link built with sdfx from the exact collar,
// segment and fillet geometry, not from the discretized outline.
package sdfcheck

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/armlink"
	"github.com/soypat/armlink/mesh"
	"github.com/soypat/armlink/tangent"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrDeviation = errors.New("sdfcheck: vertex off reference surface")

func vec2(p r2.Vec) v2.Vec { return v2.Vec{X: p.X, Y: p.Y} }

func disk(c tangent.Circle) (sdf.SDF2, error) {
	s, err := sdf.Circle2D(c.Radius)
	if err != nil {
		return nil, err
	}
	return sdf.Transform2D(s, sdf.Translate2d(vec2(c.Center))), nil
}

func polygon(pts ...r2.Vec) (sdf.SDF2, error) {
	vs := make([]v2.Vec, len(pts))
	for i, p := range pts {
		vs[i] = vec2(p)
	}
	return sdf.Polygon2D(vs)
}

// Outline2D returns the signed distance function of the planar link
// described by o. The straight sides form a core polygon through the
// tangency points. The end collars are added whole, the left side of the
// middle collar as the lens its arc cuts off, and the elbow fillet is
// subtracted from a concave corner or added within a convex one.
func Outline2D(o *armlink.Outline) (sdf.SDF2, error) {
	t0, t1, f := o.Segment0, o.Segment1, o.Fillet
	core := []r2.Vec{t0[tangent.C0Right], f.Tangent0, f.Tangent1, t1[tangent.C1Right], t1[tangent.C1Left]}
	if o.Kink {
		core = append(core, o.Arcs[armlink.ArcCollar][0])
	} else {
		core = append(core, t1[tangent.C0Left], t0[tangent.C1Left])
	}
	core = append(core, t0[tangent.C0Left])
	body, err := polygon(core...)
	if err != nil {
		return nil, fmt.Errorf("core polygon: %w", err)
	}
	parts := []sdf.SDF2{body}
	for _, i := range []int{0, 2} {
		d, err := disk(tangent.Circle{Center: o.Centers[i], Radius: o.Radii[i]})
		if err != nil {
			return nil, fmt.Errorf("collar %d: %w", i, err)
		}
		parts = append(parts, d)
	}
	apex, ok := tangent.Intersect(t0[tangent.C0Left], t0[tangent.C1Left], t1[tangent.C0Left], t1[tangent.C1Left])
	if !o.Kink && ok {
		d1, err := disk(tangent.Circle{Center: o.Centers[1], Radius: o.Radii[1]})
		if err != nil {
			return nil, fmt.Errorf("collar 1: %w", err)
		}
		wedge, err := polygon(t1[tangent.C0Left], apex, t0[tangent.C1Left])
		if err != nil {
			return nil, fmt.Errorf("collar 1 lens: %w", err)
		}
		parts = append(parts, sdf.Intersect2D(d1, wedge))
	}

	fd, err := disk(f.Circle)
	if err != nil {
		return nil, fmt.Errorf("fillet: %w", err)
	}
	u0 := r2.Sub(t0[tangent.C1Right], t0[tangent.C0Right])
	u1 := r2.Sub(t1[tangent.C0Right], t1[tangent.C1Right])
	if r2.Cross(u0, u1) > 0 {
		// Concave elbow: the fillet circle lies outside the link.
		return sdf.Difference2D(sdf.Union2D(parts...), fd), nil
	}
	corner, err := polygon(f.Tangent0, f.Intersection, f.Tangent1)
	if err != nil {
		return nil, fmt.Errorf("fillet corner: %w", err)
	}
	parts = append(parts, sdf.Intersect2D(fd, corner))
	return sdf.Union2D(parts...), nil
}

// Reference returns the signed distance function of the link described by
// o extruded from z=0 down to z=-thickness.
func Reference(o *armlink.Outline, thickness float64) (sdf.SDF3, error) {
	s2, err := Outline2D(o)
	if err != nil {
		return nil, err
	}
	// Extrude3D is symmetric about z=0.
	s3 := sdf.Extrude3D(s2, thickness)
	return sdf.Transform3D(s3, sdf.Translate3d(v3.Vec{Z: -thickness / 2})), nil
}

// MaxDeviation returns the largest absolute value of s over vertices and the
// index of the vertex where it occurs. worst is -1 for no vertices.
func MaxDeviation(s sdf.SDF3, vertices []r3.Vec) (dev float64, worst int) {
	worst = -1
	for i, v := range vertices {
		d := math.Abs(s.Evaluate(v3.Vec{X: v.X, Y: v.Y, Z: v.Z}))
		if d > dev || worst < 0 {
			dev, worst = d, i
		}
	}
	return dev, worst
}

// Audit returns an error wrapping ErrDeviation if a vertex of m lies
// further than tol from the surface of the link described by o extruded by
// thickness, or if a vertex of the outline boundary, front or back, lies
// further than tol from the reference outline.
func Audit(o *armlink.Outline, m mesh.Mesh, thickness, tol float64) error {
	s2, err := Outline2D(o)
	if err != nil {
		return err
	}
	nf := o.FrontCount()
	if len(m.Vertices) != 2*nf {
		return fmt.Errorf("sdfcheck: mesh has %d vertices, outline extrudes to %d", len(m.Vertices), 2*nf)
	}
	for _, i := range o.Boundary() {
		for _, k := range []int{i, i + nf} {
			v := m.Vertices[k]
			if d := math.Abs(s2.Evaluate(v2.Vec{X: v.X, Y: v.Y})); d > tol {
				return fmt.Errorf("%w: boundary vertex %d %v at distance %g from outline", ErrDeviation, k, v, d)
			}
		}
	}
	s3, err := Reference(o, thickness)
	if err != nil {
		return err
	}
	dev, worst := MaxDeviation(s3, m.Vertices)
	if dev > tol {
		return fmt.Errorf("%w: vertex %d %v at distance %g", ErrDeviation, worst, m.Vertices[worst], dev)
	}
	return nil
}
