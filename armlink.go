// Package armlink builds closed triangle meshes of three-collar arm links.
//
// A link is drawn in the z=0 plane as three collars joined by two straight
// tapered segments. The collars at both ends are capped by half rounds, the
// left side of the middle collar follows its circle, or meets in a corner
// where the left sides cross ahead of it, and the right side of the elbow
// is rounded off by a fillet. The outline is extruded along -z.
package armlink

import (
	"errors"

	"github.com/soypat/armlink/mesh"
)

var (
	ErrInvalidParams    = errors.New("armlink: invalid parameters")
	ErrFilletOutOfRange = errors.New("armlink: fillet does not fit elbow sides")
	ErrFoldedOutline    = errors.New("armlink: outline folds over itself")
)

// BuildArmMesh returns the closed, outward oriented mesh of the link
// described by p.
func BuildArmMesh(p Params) (mesh.Mesh, error) {
	o, err := NewOutline(p)
	if err != nil {
		return mesh.Mesh{}, err
	}
	return Extrude(o, p.Thickness), nil
}
