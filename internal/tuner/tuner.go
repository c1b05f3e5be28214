package tuner

import (
	"context"
	"errors"
	"runtime"

	"github.com/rs/zerolog/log"
)

var errEmptyDataset = errors.New("empty dataset")

// Run loads the dataset, computes features with tunableEvaluator and
// returns tuned midgame and endgame weight vectors.
func Run(
	ctx context.Context,
	datasetProvider IDatasetProvider,
	tunableEvaluator ITunableEvaluator,
	config Config,
) (mg, eg []float64, err error) {

	dataset, err := loadDataset(ctx, datasetProvider, tunableEvaluator, config.Threads)
	if err != nil {
		return nil, nil, err
	}
	if len(dataset) == 0 {
		return nil, nil, errEmptyDataset
	}
	log.Info().Int("size", len(dataset)).Msg("loaded dataset")
	runtime.GC()

	mg, eg = tunableEvaluator.StartingWeights()
	log.Info().Int("weights", len(mg)).Msg("num of weights")

	mg, eg = RunTuner(dataset, mg, eg, config)
	return mg, eg, nil
}
