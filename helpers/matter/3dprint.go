// Package matter compensates link meshes for the shrinkage of 3D printing
// materials.
package matter

import (
	"fmt"
	"strings"

	"github.com/soypat/armlink/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{name: "pla", shrink: 0.2e-2} // 0.2% shrinkage
)

type ViscousMaterial struct {
	name string
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
}

// Lookup returns the material with the given case insensitive name.
func Lookup(name string) (ViscousMaterial, error) {
	for _, m := range []ViscousMaterial{PLA} {
		if strings.EqualFold(m.name, name) {
			return m, nil
		}
	}
	return ViscousMaterial{}, fmt.Errorf("unknown material %q", name)
}

// String returns the name of the material.
func (m ViscousMaterial) String() string { return m.name }

// ScaleFactor is the uniform scale that makes a part the intended size once
// it cools.
func (m ViscousMaterial) ScaleFactor() float64 {
	return 1 / (1 - m.shrink)
}

// Scale returns a copy of msh enlarged about the origin so it shrinks back to
// its modeled size. Faces are shared with msh.
func (m ViscousMaterial) Scale(msh mesh.Mesh) mesh.Mesh {
	k := m.ScaleFactor()
	verts := make([]r3.Vec, len(msh.Vertices))
	for i, v := range msh.Vertices {
		verts[i] = r3.Scale(k, v)
	}
	return mesh.Mesh{Vertices: verts, Faces: msh.Faces}
}
