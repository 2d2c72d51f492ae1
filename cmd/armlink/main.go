// Command armlink builds a three-collar arm link mesh from its parameters
// and exports it.
//
//	armlink -angle1 0.4 -stl link.stl -png link.png -check
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/soypat/armlink"
	"github.com/soypat/armlink/helpers/matter"
	"github.com/soypat/armlink/helpers/sdfcheck"
	"github.com/soypat/armlink/mesh"
	"github.com/soypat/armlink/render"
	"gonum.org/v1/plot/vg"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("armlink failed")
	}
}

type outputs struct {
	stl, obj, png, plot string
}

func run(args []string, stderr io.Writer) error {
	p := armlink.DefaultParams()
	var (
		out      outputs
		material string
		clamp    bool
		check    bool
		verbose  bool
	)
	fs := flag.NewFlagSet("armlink", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&p.R0, "r0", p.R0, "radius of collar 0")
	fs.Float64Var(&p.R1, "r1", p.R1, "radius of collar 1")
	fs.Float64Var(&p.R2, "r2", p.R2, "radius of collar 2")
	fs.Float64Var(&p.Angle0, "angle0", p.Angle0, "direction of the first segment in radians")
	fs.Float64Var(&p.Angle1, "angle1", p.Angle1, "clockwise direction of the second segment in radians")
	fs.Float64Var(&p.Length0, "length0", p.Length0, "length of the first segment")
	fs.Float64Var(&p.Length1, "length1", p.Length1, "length of the second segment")
	fs.Float64Var(&p.FilletOffset, "fillet", p.FilletOffset, "elbow fillet offset from the corner")
	fs.Float64Var(&p.ChordTolerance, "chord", p.ChordTolerance, "maximum chord length of arcs")
	fs.Float64Var(&p.Thickness, "thickness", p.Thickness, "extrusion thickness")
	fs.BoolVar(&clamp, "clamp", false, "clamp parameters to the designer's editing bounds (angles to [0.1, 1.5], which turns a negative angle1 into a right bend)")
	fs.StringVar(&out.stl, "stl", "", "write binary STL to `file`")
	fs.StringVar(&out.obj, "obj", "", "write Wavefront OBJ to `file`")
	fs.StringVar(&out.png, "png", "", "write shaded preview PNG to `file`")
	fs.StringVar(&out.plot, "plot", "", "write outline plot to `file` (png, svg, pdf)")
	fs.StringVar(&material, "material", "", "enlarge exported meshes to compensate print shrinkage (pla)")
	fs.BoolVar(&check, "check", false, "audit closure, volume and vertex placement")
	fs.BoolVar(&verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if clamp {
		p = p.Clamp(armlink.DefaultBounds)
	}
	log.Debug().Interface("params", p).Msg("building link")

	start := time.Now()
	o, err := armlink.NewOutline(p)
	if err != nil {
		return err
	}
	m := armlink.Extrude(o, p.Thickness)
	log.Info().
		Int("vertices", m.VertexCount()).
		Int("triangles", m.TriangleCount()).
		Dur("elapsed", time.Since(start)).
		Msg("mesh built")
	for i, s := range o.Spans {
		log.Debug().Int("arc", i).Int("start", s.Start).Int("points", s.Count).Msg("arc span")
	}
	log.Debug().Float64("radius", o.Fillet.Radius).Msg("elbow fillet")

	if check {
		if err := audit(o, m, p); err != nil {
			return err
		}
	}
	if material != "" {
		mat, err := matter.Lookup(material)
		if err != nil {
			return err
		}
		m = mat.Scale(m)
		log.Info().Stringer("material", mat).Float64("scale", mat.ScaleFactor()).Msg("shrink compensated")
	}
	return export(o, m, out)
}

func audit(o *armlink.Outline, m mesh.Mesh, p armlink.Params) error {
	if err := m.CheckClosed(); err != nil {
		return err
	}
	if pairs := mesh.CoincidentVertices(m, 1e-9); len(pairs) > 0 {
		log.Warn().Int("pairs", len(pairs)).Msg("coincident vertices")
	}
	if err := sdfcheck.Audit(o, m, p.Thickness, 1e-9); err != nil {
		return err
	}
	log.Info().Float64("volume", m.SignedVolume()).Msg("mesh closed and on surface")
	return nil
}

func export(o *armlink.Outline, m mesh.Mesh, out outputs) error {
	for _, e := range []struct {
		path string
		fn   func(string) error
	}{
		{out.stl, func(path string) error { return render.CreateSTL(path, m) }},
		{out.obj, func(path string) error { return render.CreateOBJ(path, m) }},
		{out.png, func(path string) error { return render.SavePNG(path, m, render.DefaultView()) }},
		{out.plot, func(path string) error { return render.SaveOutlinePlot(path, o, 6*vg.Inch) }},
	} {
		if e.path == "" {
			continue
		}
		if err := e.fn(e.path); err != nil {
			return fmt.Errorf("writing %s: %w", e.path, err)
		}
		log.Info().Str("path", e.path).Msg("wrote")
	}
	return nil
}
