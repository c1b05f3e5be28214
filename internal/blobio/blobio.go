// Package blobio opens weight, model and dataset files.
// Files starting with the zstd frame magic are decompressed transparently;
// files created with a ".zst" suffix are compressed.
package blobio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

var ErrTrailingData = errors.New("trailing data")

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// MapPath expands "~/" to the home directory and "./" to the executable's directory.
func MapPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		curUser, err := user.Current()
		if err != nil {
			return path
		}
		return filepath.Join(curUser.HomeDir, strings.TrimPrefix(path, "~/"))
	}
	if strings.HasPrefix(path, "./") {
		var exePath, err = os.Executable()
		if err != nil {
			return path
		}
		return filepath.Join(filepath.Dir(exePath), strings.TrimPrefix(path, "./"))
	}
	return path
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error {
	return r.close()
}

// NewReader wraps r, decompressing it if it holds a zstd stream.
// Close releases the decoder but does not close r.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	var br = bufio.NewReader(r)
	var head, err = br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if !bytes.Equal(head, zstdMagic) {
		return &readCloser{Reader: br, close: func() error { return nil }}, nil
	}
	dec, err := zstd.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return &readCloser{Reader: dec, close: func() error {
		dec.Close()
		return nil
	}}, nil
}

// Open opens path for reading, see NewReader.
func Open(path string) (io.ReadCloser, error) {
	var f, err = os.Open(MapPath(path))
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &readCloser{Reader: r, close: func() error {
		r.Close()
		return f.Close()
	}}, nil
}

type writeCloser struct {
	io.Writer
	close func() error
}

func (w *writeCloser) Close() error {
	return w.close()
}

// Create creates path for writing. The content is zstd compressed when
// the name ends with ".zst".
func Create(path string) (io.WriteCloser, error) {
	var f, err = os.Create(MapPath(path))
	if err != nil {
		return nil, err
	}
	var bw = bufio.NewWriter(f)
	if !strings.HasSuffix(path, ".zst") {
		return &writeCloser{Writer: bw, close: func() error {
			return closeAll(bw.Flush, f.Close)
		}}, nil
	}
	enc, err := zstd.NewWriter(bw)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return &writeCloser{Writer: enc, close: func() error {
		return closeAll(enc.Close, bw.Flush, f.Close)
	}}, nil
}

// closeAll runs every step and returns the first error.
func closeAll(steps ...func() error) error {
	var result error
	for _, step := range steps {
		if err := step(); err != nil && result == nil {
			result = err
		}
	}
	return result
}

// ExpectEOF fails unless r has nothing left to read.
func ExpectEOF(r io.Reader) error {
	var buf [1]byte
	n, err := io.ReadFull(r, buf[:])
	if n != 0 {
		return ErrTrailingData
	}
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
