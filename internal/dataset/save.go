package dataset

import (
	"context"

	"github.com/countereval/countereval/internal/domain"
	"github.com/rs/zerolog/log"
)

// mergeDataset drops repeated positions and stops the pipeline once
// MaxPosCount positions have been sent.
func (dp *PgnDatasetProvider) mergeDataset(
	ctx context.Context,
	input <-chan datasetInfo,
	output chan<- domain.DatasetItem,
) error {
	var repeats = make(map[uint64]struct{})
	var positionCount int
	var repeatCount int

	defer func() {
		log.Info().
			Int("positionCount", positionCount).
			Int("repeatCount", repeatCount).
			Msg("mergeDataset")
	}()

	for info := range input {
		if _, found := repeats[info.key]; found {
			repeatCount++
			continue
		}
		repeats[info.key] = struct{}{}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case output <- domain.DatasetItem{Fen: info.fen, Target: info.target}:
		}
		positionCount++
		if dp.MaxPosCount != 0 && positionCount >= dp.MaxPosCount {
			return errDatasetReady
		}
	}
	return nil
}
