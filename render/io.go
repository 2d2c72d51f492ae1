// Package render exports link meshes to files and images.
package render

import (
	"bufio"
	"errors"
	"io"
	"os"
)

var ErrEmptyMesh = errors.New("render: empty mesh")

// createFile creates path and hands a buffered writer to write. The file is
// flushed and closed before returning.
func createFile(path string, write func(w io.Writer) error) (err error) {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(fp)
	if err = write(bw); err != nil {
		return err
	}
	return bw.Flush()
}
