package eval

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func encodeWeights(t *testing.T, w *EvalWeights) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteWeights(&buf, w); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestWeightsRoundtrip(t *testing.T) {
	var data = encodeWeights(t, DefaultWeights())
	if want := 12 + 4*FeatureSize(); len(data) != want {
		t.Fatalf("blob size %v, want %v", len(data), want)
	}
	w, err := LoadWeights(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if *w != *DefaultWeights() {
		t.Error("weights changed after roundtrip")
	}
}

func TestWeightsZstd(t *testing.T) {
	var compressed bytes.Buffer
	enc, err := zstd.NewWriter(&compressed)
	if err != nil {
		t.Fatal(err)
	}
	enc.Write(encodeWeights(t, DefaultWeights()))
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	w, err := LoadWeights(&compressed)
	if err != nil {
		t.Fatal(err)
	}
	if *w != *DefaultWeights() {
		t.Error("weights changed after zstd roundtrip")
	}
}

func TestWeightsFile(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "weights.hcw.zst")
	if err := SaveWeightsFile(path, DefaultWeights()); err != nil {
		t.Fatal(err)
	}
	w, err := LoadWeightsFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if *w != *DefaultWeights() {
		t.Error("weights changed after file roundtrip")
	}
}

func TestLoadWeightsRejectsMalformed(t *testing.T) {
	var good = encodeWeights(t, DefaultWeights())

	var badMagic = bytes.Clone(good)
	badMagic[0] = 'X'

	var badCount = bytes.Clone(good)
	binary.LittleEndian.PutUint32(badCount[8:], uint32(FeatureSize()-1))

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"bad magic", badMagic, ErrBadMagic},
		{"bad count", badCount, ErrBadWeightCount},
		{"trailing byte", append(bytes.Clone(good), 0), ErrTrailingData},
		{"truncated", good[:len(good)-1], nil},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWeights(bytes.NewReader(tt.data))
			if err == nil {
				t.Fatal("malformed blob accepted")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

type failingWriter struct {
	limit int
}

var errWriteFailed = errors.New("write failed")

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		return 0, errWriteFailed
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestWriteWeightsReportsWriteErrors(t *testing.T) {
	// fail on the header and on the values
	for _, limit := range []int{0, 12} {
		if err := WriteWeights(&failingWriter{limit: limit}, DefaultWeights()); !errors.Is(err, errWriteFailed) {
			t.Errorf("limit %v: got %v", limit, err)
		}
	}
}
