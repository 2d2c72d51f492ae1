package render

import (
	"fmt"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/armlink/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera of a shaded preview. Positions are given in
// the space of the mesh after it is fitted into the bi-unit cube.
type View struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Near, Far float64
	// Output image size in pixels.
	Width, Height int
	// Supersample renders at this multiple of the output size before
	// downsampling for antialiasing. Values below 1 are treated as 1.
	Supersample int
}

// DefaultView looks down on the front face of a link from its lower left.
func DefaultView() View {
	return View{
		Up:          r3.Vec{Z: 1},
		Eye:         r3.Vec{X: -1.5, Y: -2.5, Z: 3},
		Near:        1,
		Far:         10,
		Width:       640,
		Height:      480,
		Supersample: 2,
	}
}

// RenderPNG returns a Phong shaded image of m seen from view.
func RenderPNG(m mesh.Mesh, view View) (image.Image, error) {
	if m.IsEmpty() {
		return nil, ErrEmptyMesh
	}
	if err := m.CheckIndices(); err != nil {
		return nil, err
	}
	if view.Width <= 0 || view.Height <= 0 {
		return nil, fmt.Errorf("render: invalid preview size %dx%d", view.Width, view.Height)
	}
	const fovy = 30 // vertical field of view in degrees
	scale := max(view.Supersample, 1)
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize() // light direction
		color  = fauxgl.HexColor("#468966")           // object color
	)
	tris := make([]*fauxgl.Triangle, m.TriangleCount())
	for i := range m.Faces {
		t := m.Triangle(i)
		tris[i] = fauxgl.NewTriangleForPoints(
			fauxgl.V(t[0].X, t[0].Y, t[0].Z),
			fauxgl.V(t[1].X, t[1].Y, t[1].Z),
			fauxgl.V(t[2].X, t[2].Y, t[2].Z),
		)
	}
	fm := fauxgl.NewTriangleMesh(tris)
	// fit mesh in a bi-unit cube centered at the origin
	fm.BiUnitCube()
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(fm)
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear)
	}
	return img, nil
}

// SavePNG renders m and writes the image to path.
func SavePNG(path string, m mesh.Mesh, view View) error {
	img, err := RenderPNG(m, view)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}
