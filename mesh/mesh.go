// Package mesh defines an indexed triangle mesh and audits of its topology
// and geometry.
package mesh

import (
	"errors"
	"fmt"

	"github.com/soypat/armlink/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrOpenMesh = errors.New("mesh: not closed and consistently oriented")
	ErrBadIndex = errors.New("mesh: face index out of range")
)

// Mesh is an indexed triangle mesh. Faces index into Vertices and are wound
// counter-clockwise when seen from outside.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
}

// VertexCount returns the number of vertices.
func (m Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of faces.
func (m Mesh) TriangleCount() int { return len(m.Faces) }

// IsEmpty reports whether m has no faces.
func (m Mesh) IsEmpty() bool { return len(m.Faces) == 0 }

// Triangle returns the vertices of face i.
func (m Mesh) Triangle(i int) r3.Triangle {
	f := m.Faces[i]
	return r3.Triangle{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

// Triangles returns the vertices of every face.
func (m Mesh) Triangles() []r3.Triangle {
	t := make([]r3.Triangle, len(m.Faces))
	for i := range m.Faces {
		t[i] = m.Triangle(i)
	}
	return t
}

// CheckIndices returns an error wrapping ErrBadIndex if a face refers to a
// vertex that does not exist.
func (m Mesh) CheckIndices() error {
	for i, f := range m.Faces {
		for _, v := range f {
			if v < 0 || v >= len(m.Vertices) {
				return fmt.Errorf("%w: face %d refers to vertex %d of %d", ErrBadIndex, i, v, len(m.Vertices))
			}
		}
	}
	return nil
}

type edge [2]int

// CheckClosed returns an error wrapping ErrOpenMesh unless every directed
// edge appears in exactly one face and its reverse in exactly one other,
// which makes m watertight and consistently wound.
func (m Mesh) CheckClosed() error {
	if err := m.CheckIndices(); err != nil {
		return err
	}
	directed := make(map[edge]int, 3*len(m.Faces))
	for i, f := range m.Faces {
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			return fmt.Errorf("%w: face %d repeats a vertex %v", ErrOpenMesh, i, f)
		}
		for k := 0; k < 3; k++ {
			directed[edge{f[k], f[(k+1)%3]}]++
		}
	}
	for i, f := range m.Faces {
		for k := 0; k < 3; k++ {
			e := edge{f[k], f[(k+1)%3]}
			n, rev := directed[e], directed[edge{e[1], e[0]}]
			if n != 1 || rev != 1 {
				return fmt.Errorf("%w: face %d edge %d→%d used %d times, reverse %d times", ErrOpenMesh, i, e[0], e[1], n, rev)
			}
		}
	}
	return nil
}

// SignedVolume returns the volume enclosed by m. It is positive when faces
// are wound outward and only meaningful for closed meshes.
func (m Mesh) SignedVolume() float64 {
	var sum float64
	for _, f := range m.Faces {
		sum += d3.TripleProduct(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
	}
	return sum / 6
}

// Bounds returns the bounding box of the vertices. m must not be empty.
func (m Mesh) Bounds() r3.Box {
	return r3.Box(d3.BoxOf(m.Vertices))
}
