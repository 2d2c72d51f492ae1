package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/soypat/armlink"
	"github.com/soypat/armlink/render"
)

func TestRunExports(t *testing.T) {
	log.Logger = zerolog.New(io.Discard)
	dir := t.TempDir()
	stl := filepath.Join(dir, "link.stl")
	obj := filepath.Join(dir, "link.obj")
	err := run([]string{"-angle1", "0.4", "-stl", stl, "-obj", obj, "-check"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{stl, obj} {
		fi, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if fi.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
	fp, err := os.Open(stl)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	tris, err := render.ReadSTL(fp)
	if err != nil && !errors.Is(err, render.ErrNormalMismatch) {
		t.Fatal(err)
	}
	if len(tris) == 0 {
		t.Error("no triangles read back")
	}
}

func TestRunRejectsParams(t *testing.T) {
	log.Logger = zerolog.New(io.Discard)
	err := run([]string{"-r1", "-1"}, io.Discard)
	if !errors.Is(err, armlink.ErrInvalidParams) {
		t.Errorf("got %v, want ErrInvalidParams", err)
	}
	if err := run([]string{"-nosuchflag"}, io.Discard); err == nil {
		t.Error("expected flag parse error")
	}
}

func TestRunMaterial(t *testing.T) {
	log.Logger = zerolog.New(io.Discard)
	stl := filepath.Join(t.TempDir(), "link.stl")
	if err := run([]string{"-material", "PLA", "-stl", stl}, io.Discard); err != nil {
		t.Fatal(err)
	}
	if err := run([]string{"-material", "clay"}, io.Discard); err == nil {
		t.Error("expected unknown material error")
	}
}
