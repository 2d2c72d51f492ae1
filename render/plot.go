package render

import (
	"image/color"
	"math"

	"github.com/soypat/armlink"
	"github.com/soypat/armlink/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	outlineFill  = color.RGBA{R: 0x46, G: 0x89, B: 0x66, A: 0x60}
	outlineEdge  = color.RGBA{R: 0x16, G: 0x39, B: 0x26, A: 0xff}
	tangentColor = color.RGBA{R: 0xb6, G: 0x49, B: 0x26, A: 0xff}
)

func xys(pts []r2.Vec) plotter.XYs {
	v := make(plotter.XYs, len(pts))
	for i, p := range pts {
		v[i].X, v[i].Y = p.X, p.Y
	}
	return v
}

// PlotOutline draws the boundary of o together with its collar centers and
// the tangency points of its straight sides. Axes share a scale.
func PlotOutline(o *armlink.Outline) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "arm link outline"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	poly, err := plotter.NewPolygon(xys(o.Polygon()))
	if err != nil {
		return nil, err
	}
	poly.Color = outlineFill
	poly.LineStyle.Color = outlineEdge
	poly.LineStyle.Width = vg.Points(1)
	p.Add(poly)

	centers, err := plotter.NewScatter(xys(o.Centers[:]))
	if err != nil {
		return nil, err
	}
	p.Add(centers)

	var tps []r2.Vec
	tps = append(tps, o.Segment0[:]...)
	tps = append(tps, o.Segment1[:]...)
	tps = append(tps, o.Fillet.Tangent0, o.Fillet.Tangent1)
	tangents, err := plotter.NewScatter(xys(tps))
	if err != nil {
		return nil, err
	}
	tangents.GlyphStyle.Color = tangentColor
	p.Add(tangents)

	// Square data range so circles are not distorted on square canvases.
	b := o.Bounds()
	sz := b.Size()
	side := math.Max(sz.X, sz.Y) + .2
	c := b.Center()
	b = d2.Box{Min: c, Max: c}.Enlarge(r2.Vec{X: side, Y: side})
	p.X.Min, p.X.Max = b.Min.X, b.Max.X
	p.Y.Min, p.Y.Max = b.Min.Y, b.Max.Y
	return p, nil
}

// SaveOutlinePlot writes the outline plot of o to path as a square image of
// the given side. The format follows the path extension (png, svg, pdf...).
func SaveOutlinePlot(path string, o *armlink.Outline, side vg.Length) error {
	p, err := PlotOutline(o)
	if err != nil {
		return err
	}
	return p.Save(side, side, path)
}
