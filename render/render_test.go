package render_test

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/armlink"
	"github.com/soypat/armlink/mesh"
	"github.com/soypat/armlink/render"
	"gonum.org/v1/plot/cmpimg"
	"gonum.org/v1/plot/vg"
)

func TestWriteEmpty(t *testing.T) {
	var b bytes.Buffer
	if err := render.WriteSTL(&b, mesh.Mesh{}); !errors.Is(err, render.ErrEmptyMesh) {
		t.Errorf("STL: got %v", err)
	}
	if err := render.WriteOBJ(&b, mesh.Mesh{}); !errors.Is(err, render.ErrEmptyMesh) {
		t.Errorf("OBJ: got %v", err)
	}
}

func TestWriteOBJ(t *testing.T) {
	m := defaultMesh(t)
	var b bytes.Buffer
	if err := render.WriteOBJ(&b, m); err != nil {
		t.Fatal(err)
	}
	var nv, nf int
	sc := bufio.NewScanner(&b)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			nv++
		case "f":
			nf++
			for _, idx := range fields[1:] {
				if idx == "0" {
					t.Fatalf("face line %q is not 1-based", sc.Text())
				}
			}
		}
	}
	if nv != m.VertexCount() || nf != m.TriangleCount() {
		t.Errorf("got %d v and %d f lines, want %d and %d", nv, nf, m.VertexCount(), m.TriangleCount())
	}
}

func TestRenderPNG(t *testing.T) {
	view := render.DefaultView()
	view.Width, view.Height = 160, 120
	img, err := render.RenderPNG(defaultMesh(t), view)
	if err != nil {
		t.Fatal(err)
	}
	if sz := img.Bounds().Size(); sz.X != 160 || sz.Y != 120 {
		t.Fatalf("image size %v", sz)
	}
	// Some pixel must differ from the background.
	bg := img.At(0, 0)
	var drawn bool
	for y := 0; y < 120 && !drawn; y++ {
		for x := 0; x < 160; x++ {
			if img.At(x, y) != bg {
				drawn = true
				break
			}
		}
	}
	if !drawn {
		t.Error("preview is blank")
	}
	view.Width = 0
	if _, err := render.RenderPNG(defaultMesh(t), view); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestPlotOutlineDeterministic(t *testing.T) {
	o, err := armlink.NewOutline(armlink.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	draw := func() []byte {
		p, err := render.PlotOutline(o)
		if err != nil {
			t.Fatal(err)
		}
		wt, err := p.WriterTo(4*vg.Inch, 4*vg.Inch, "png")
		if err != nil {
			t.Fatal(err)
		}
		var b bytes.Buffer
		if _, err := wt.WriteTo(&b); err != nil {
			t.Fatal(err)
		}
		return b.Bytes()
	}
	ok, err := cmpimg.Equal("png", draw(), draw())
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("outline plots of identical outlines differ")
	}
	path := filepath.Join(t.TempDir(), "outline.svg")
	if err := render.SaveOutlinePlot(path, o, 4*vg.Inch); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("outline plot not written: %v", err)
	}
}
