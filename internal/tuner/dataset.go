package tuner

import (
	"context"
	"sync"

	"github.com/countereval/countereval/internal/domain"
	"github.com/countereval/countereval/pkg/common"
	"golang.org/x/sync/errgroup"
)

func loadDataset(
	ctx context.Context,
	datasetProvider IDatasetProvider,
	e ITunableEvaluator,
	threads int,
) ([]Sample, error) {

	g, ctx := errgroup.WithContext(ctx)

	var dataset = make(chan domain.DatasetItem, 128)

	g.Go(func() error {
		defer close(dataset)
		return datasetProvider.Load(ctx, dataset)
	})

	var result []Sample
	var mu = &sync.Mutex{}

	for i := 0; i < max(1, threads); i++ {
		g.Go(func() error {
			var samples, err = processDataset(dataset, e)
			if err != nil {
				return err
			}
			mu.Lock()
			result = append(result, samples...)
			mu.Unlock()
			return nil
		})
	}

	var err = g.Wait()
	if err != nil {
		return nil, err
	}

	return result, nil
}

func processDataset(
	dataset <-chan domain.DatasetItem,
	e ITunableEvaluator,
) ([]Sample, error) {
	var result []Sample
	for item := range dataset {
		var pos, err = common.NewPositionFromFEN(item.Fen)
		if err != nil {
			return nil, err
		}
		result = append(result, Sample{
			Target:    float32(item.Target),
			TuneEntry: e.ComputeFeatures(&pos),
		})
	}
	return result, nil
}
