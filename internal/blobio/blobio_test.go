package blobio

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateOpen(t *testing.T) {
	var payload = bytes.Repeat([]byte("counter"), 1000)
	for _, name := range []string{"weights.bin", "weights.bin.zst"} {
		t.Run(name, func(t *testing.T) {
			var path = filepath.Join(t.TempDir(), name)
			w, err := Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := w.Write(payload); err != nil {
				t.Fatal(err)
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}

			r, err := Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("read %v bytes, want %v", len(got), len(payload))
			}
		})
	}
}

func TestNewReaderShortInput(t *testing.T) {
	r, err := NewReader(strings.NewReader("ab"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "ab" {
		t.Errorf("got %q", got)
	}
}

func TestExpectEOF(t *testing.T) {
	if err := ExpectEOF(strings.NewReader("")); err != nil {
		t.Errorf("empty reader: %v", err)
	}
	if err := ExpectEOF(strings.NewReader("x")); !errors.Is(err, ErrTrailingData) {
		t.Errorf("got %v, want ErrTrailingData", err)
	}
}

func TestMapPath(t *testing.T) {
	if got := MapPath("/tmp/model.nn"); got != "/tmp/model.nn" {
		t.Errorf("absolute path changed: %v", got)
	}
	if got := MapPath("./model.nn"); !strings.HasSuffix(got, "model.nn") || strings.HasPrefix(got, "./") {
		t.Errorf("relative path not mapped: %v", got)
	}
}
