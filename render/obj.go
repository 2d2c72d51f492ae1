package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/soypat/armlink/mesh"
)

// CreateOBJ writes m to a Wavefront OBJ file at path.
func CreateOBJ(path string, m mesh.Mesh) error {
	return createFile(path, func(w io.Writer) error {
		return WriteOBJ(w, m)
	})
}

// WriteOBJ writes m to w as a Wavefront OBJ with shared vertices. Face
// indices are 1-based as the format requires.
func WriteOBJ(w io.Writer, m mesh.Mesh) error {
	if m.IsEmpty() {
		return ErrEmptyMesh
	}
	if err := m.CheckIndices(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d faces\n", m.VertexCount(), m.TriangleCount())
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	return bw.Flush()
}
