package quality

import (
	"context"
	"math"

	"github.com/countereval/countereval/internal/dataset"
	"github.com/countereval/countereval/internal/domain"
	"github.com/countereval/countereval/internal/ml"
	"github.com/countereval/countereval/pkg/common"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// IEvaluator returns White's expected result for a position.
type IEvaluator interface {
	EvaluateProb(pos *common.Position) float64
}

type Result struct {
	Count   int
	AbsCost float64
	MSECost float64
}

// RunQuality measures an evaluator against a labelled EPD file.
func RunQuality(ctx context.Context, evaluator IEvaluator, validationPath string) (Result, error) {
	g, ctx := errgroup.WithContext(ctx)

	var items = make(chan domain.DatasetItem, 128)
	g.Go(func() error {
		defer close(items)
		var dp = &dataset.ZurichessDatasetProvider{FilePath: validationPath}
		return dp.Load(ctx, items)
	})

	var result Result
	g.Go(func() error {
		var err error
		result, err = measure(items, evaluator)
		return err
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	log.Info().
		Int("count", result.Count).
		Float64("abs cost", result.AbsCost).
		Float64("mse cost", result.MSECost).
		Msg("quality")
	return result, nil
}

func measure(items <-chan domain.DatasetItem, evaluator IEvaluator) (Result, error) {
	var absCost, mseCost = &ml.AbsCost{}, &ml.MSECost{}
	var sum, sumSq float64
	var count int
	for item := range items {
		pos, err := common.NewPositionFromFEN(item.Fen)
		if err != nil {
			return Result{}, err
		}
		var predicted = evaluator.EvaluateProb(&pos)
		sum += absCost.Cost(predicted, item.Target)
		sumSq += mseCost.Cost(predicted, item.Target)
		count++
	}
	if count == 0 {
		return Result{AbsCost: math.NaN(), MSECost: math.NaN()}, nil
	}
	return Result{
		Count:   count,
		AbsCost: sum / float64(count),
		MSECost: sumSq / float64(count),
	}, nil
}
