package armlink

import (
	"github.com/soypat/armlink/internal/d3"
	"github.com/soypat/armlink/mesh"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

type faces [][3]int

func (f *faces) add(a, b, c int) {
	*f = append(*f, [3]int{a, b, c})
}

// quad adds the wall below the boundary edge a→b of the top face. Back
// vertices are offset by back.
func (f *faces) quad(a, b, back int) {
	f.add(b, a, a+back)
	f.add(b, a+back, b+back)
}

// frontFaces triangulates the front sequence of o counter-clockwise.
func (o *Outline) frontFaces() faces {
	front := o.Front()
	cap0, collar, fillet, cap2 := o.Spans[ArcCap0], o.Spans[ArcCollar], o.Spans[ArcFillet], o.Spans[ArcCap2]
	var top faces
	// End caps.
	for i := 0; i < cap0.Count-1; i++ {
		top.add(cap0.At(i), cap0.At(i+1), o.Hub0)
	}
	for i := 0; i < cap2.Count-1; i++ {
		top.add(cap2.At(i), cap2.At(i+1), o.Hub2)
	}
	// Pentagons between each cap, the straight sides and the elbow arcs.
	top.add(cap0.Last(), fillet.Last(), o.Hub0)
	top.add(o.Hub0, fillet.Last(), collar.Last())
	top.add(o.Hub0, collar.Last(), cap0.First())
	top.add(fillet.First(), cap2.First(), o.Hub2)
	top.add(fillet.First(), o.Hub2, collar.First())
	top.add(collar.First(), o.Hub2, cap2.Last())
	// Band across the elbow.
	stitch(&top, front, collar, fillet)
	return top
}

// Extrude returns the closed mesh of o extruded by thickness along -z.
// Vertices are the front sequence at z=0 followed by its copy at
// z=-thickness. Front faces point toward +z, back faces toward -z and
// walls away from the outline.
func Extrude(o *Outline, thickness float64) mesh.Mesh {
	front := o.Front()
	nf := len(front)
	verts := make([]r3.Vec, 2*nf)
	for i, v := range front {
		verts[i] = d3.FromR2(v, 0)
		verts[i+nf] = d3.FromR2(v, -thickness)
	}
	cap0, collar, fillet, cap2 := o.Spans[ArcCap0], o.Spans[ArcCollar], o.Spans[ArcFillet], o.Spans[ArcCap2]

	top := o.frontFaces()
	all := make(faces, 0, 2*len(top)+2*len(o.Boundary()))
	all = append(all, top...)
	for _, t := range top {
		all.add(t[0]+nf, t[2]+nf, t[1]+nf)
	}
	// Straight side walls.
	all.quad(cap0.Last(), fillet.Last(), nf)
	all.quad(fillet.First(), cap2.First(), nf)
	all.quad(cap2.Last(), collar.First(), nf)
	all.quad(collar.Last(), cap0.First(), nf)
	// Walls along arcs. The fillet is traversed against its point order.
	for i := 0; i < cap0.Count-1; i++ {
		all.quad(cap0.At(i), cap0.At(i+1), nf)
	}
	for i := 0; i < fillet.Count-1; i++ {
		all.quad(fillet.At(i+1), fillet.At(i), nf)
	}
	for i := 0; i < cap2.Count-1; i++ {
		all.quad(cap2.At(i), cap2.At(i+1), nf)
	}
	for i := 0; i < collar.Count-1; i++ {
		all.quad(collar.At(i), collar.At(i+1), nf)
	}
	return mesh.Mesh{Vertices: verts, Faces: all}
}

// stitch triangulates the band between the left and right chains, both
// running from the P2 end toward the P0 end, advancing along whichever
// chain offers the shorter diagonal. It adds len(left)+len(right)-2
// triangles wound counter-clockwise. A chain may be a single point.
func stitch(dst *faces, pts []r2.Vec, left, right Span) {
	i, j := 0, 0
	for i < left.Count-1 || j < right.Count-1 {
		advanceLeft := j == right.Count-1
		if !advanceLeft && i < left.Count-1 {
			dl := r2.Norm2(r2.Sub(pts[left.At(i+1)], pts[right.At(j)]))
			dr := r2.Norm2(r2.Sub(pts[left.At(i)], pts[right.At(j+1)]))
			advanceLeft = dl <= dr
		}
		if advanceLeft {
			dst.add(left.At(i), left.At(i+1), right.At(j))
			i++
		} else {
			dst.add(right.At(j+1), right.At(j), left.At(i))
			j++
		}
	}
}
