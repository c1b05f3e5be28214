package eval

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/countereval/countereval/internal/blobio"
	"golang.org/x/exp/slices"
)

const modelVersion = 1

// A board holds at most this many pieces, so at most this many rows are
// summed into one accumulator.
const maxActiveFeatures = 32

var modelMagic = [4]byte{'C', 'E', 'N', 'N'}

var (
	ErrBadMagic         = errors.New("bad magic")
	ErrBadTopology      = errors.New("bad topology")
	ErrAccumulatorRange = errors.New("accumulator may overflow int16")
	ErrTrailingData     = blobio.ErrTrailingData
)

type modelHeader struct {
	Magic   [4]byte
	Version uint32
	Input   uint32
	FtOut   uint32
	L1Out   uint32
}

var currentHeader = modelHeader{
	Magic:   modelMagic,
	Version: modelVersion,
	Input:   InputSize,
	FtOut:   FtOut,
	L1Out:   L1Out,
}

// LoadModel reads a model blob: the header, then little-endian feature
// transformer weights and biases, then the output layer weights and biases.
// zstd input is accepted.
func LoadModel(r io.Reader) (*Model, error) {
	rc, err := blobio.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var header modelHeader
	if err := binary.Read(rc, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header.Magic != modelMagic || header.Version != modelVersion {
		return nil, fmt.Errorf("%w: %q version %v", ErrBadMagic, header.Magic[:], header.Version)
	}
	if header != currentHeader {
		return nil, fmt.Errorf("%w: %vx%vx%v", ErrBadTopology, header.Input, header.FtOut, header.L1Out)
	}

	var m = &Model{}
	if err := binary.Read(rc, binary.LittleEndian, m); err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}
	if err := blobio.ExpectEOF(rc); err != nil {
		return nil, err
	}
	if err := checkAccumulatorRange(&m.FT); err != nil {
		return nil, err
	}
	return m, nil
}

// checkAccumulatorRange rejects models whose accumulator could leave int16
// for some board. Within range Add and Sub are exact inverses.
func checkAccumulatorRange(ft *FeatureTransformer) error {
	var column = make([]int, InputSize)
	for j := 0; j < FtOut; j++ {
		for i := range column {
			column[i] = abs(int(ft.Weights[i][j]))
		}
		slices.Sort(column)
		var bound = abs(int(ft.Biases[j]))
		for _, x := range column[InputSize-maxActiveFeatures:] {
			bound += x
		}
		if bound > math.MaxInt16 {
			return fmt.Errorf("%w: output %v bound %v", ErrAccumulatorRange, j, bound)
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// WriteTo writes m in the format read by LoadModel.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &currentHeader); err != nil {
		return 0, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, m); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

func LoadModelFile(path string) (*Model, error) {
	f, err := blobio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := LoadModel(f)
	if err != nil {
		return nil, fmt.Errorf("load model %v: %w", path, err)
	}
	return m, nil
}
