package tuner

import (
	"context"

	"github.com/countereval/countereval/internal/domain"
	"github.com/countereval/countereval/pkg/common"
)

type Sample struct {
	domain.TuneEntry
	Target float32
}

type IDatasetProvider interface {
	Load(ctx context.Context, dataset chan<- domain.DatasetItem) error
}

// ITunableEvaluator must be safe for concurrent use.
type ITunableEvaluator interface {
	FeatureSize() int
	StartingWeights() (mg, eg []float64)
	ComputeFeatures(pos *common.Position) domain.TuneEntry
}

type Config struct {
	Epochs       int
	Threads      int
	BatchSize    int
	LearningRate float64
	// ValidationSize caps the share of samples held out for validation.
	ValidationSize int
}

var DefaultConfig = Config{
	Epochs:         20,
	Threads:        1,
	BatchSize:      16384,
	LearningRate:   0.5,
	ValidationSize: 500_000,
}
