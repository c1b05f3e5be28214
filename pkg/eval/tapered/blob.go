package eval

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/countereval/countereval/internal/blobio"
)

const weightsVersion = 1

var weightsMagic = [4]byte{'C', 'E', 'H', 'W'}

var (
	ErrBadMagic       = errors.New("bad magic")
	ErrBadWeightCount = errors.New("bad weight count")
	ErrTrailingData   = blobio.ErrTrailingData
)

type weightsHeader struct {
	Magic   [4]byte
	Version uint32
	Count   uint32
}

// LoadWeights reads a weight blob: the header, then one little-endian
// (mg, eg) int16 pair per entry in field order. zstd input is accepted.
func LoadWeights(r io.Reader) (*EvalWeights, error) {
	rc, err := blobio.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var header weightsHeader
	if err := binary.Read(rc, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header.Magic != weightsMagic || header.Version != weightsVersion {
		return nil, fmt.Errorf("%w: %q version %v", ErrBadMagic, header.Magic[:], header.Version)
	}
	if int(header.Count) != FeatureSize() {
		return nil, fmt.Errorf("%w: got %v, want %v", ErrBadWeightCount, header.Count, FeatureSize())
	}

	var values = make([]int16, 2*FeatureSize())
	if err := binary.Read(rc, binary.LittleEndian, values); err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}
	if err := blobio.ExpectEOF(rc); err != nil {
		return nil, err
	}

	var w = &EvalWeights{}
	eachTerm(w, func(i int, x *PhasedEval) {
		*x = PhasedEval{Mg: values[2*i], Eg: values[2*i+1]}
	})
	return w, nil
}

func WriteWeights(dst io.Writer, w *EvalWeights) error {
	var header = weightsHeader{Magic: weightsMagic, Version: weightsVersion, Count: uint32(FeatureSize())}
	if err := binary.Write(dst, binary.LittleEndian, &header); err != nil {
		return err
	}
	var values = make([]int16, 0, 2*FeatureSize())
	eachTerm(w, func(_ int, x *PhasedEval) {
		values = append(values, x.Mg, x.Eg)
	})
	return binary.Write(dst, binary.LittleEndian, values)
}

func LoadWeightsFile(path string) (*EvalWeights, error) {
	f, err := blobio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	w, err := LoadWeights(f)
	if err != nil {
		return nil, fmt.Errorf("load weights %v: %w", path, err)
	}
	return w, nil
}

func SaveWeightsFile(path string, w *EvalWeights) error {
	f, err := blobio.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWeights(f, w); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
