package dataset

import (
	"context"
	"errors"
	"sync"

	"github.com/countereval/countereval/internal/domain"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var errDatasetReady = errors.New("dataset ready")

type datasetInfo struct {
	fen    string
	key    uint64
	target float64
}

// PgnDatasetProvider extracts quiet positions from PGN games and labels
// them with the game result.
type PgnDatasetProvider struct {
	// GamesPath is a PGN file or a folder of them. Files may be zstd compressed.
	GamesPath   string
	MaxPosCount int
	Threads     int
	// SkipPlies ignores the opening moves of every game.
	SkipPlies int
}

func (dp *PgnDatasetProvider) Load(
	ctx context.Context,
	dataset chan<- domain.DatasetItem,
) error {
	log.Info().Str("path", dp.GamesPath).Msg("load dataset started")
	defer log.Info().Msg("load dataset finished")

	g, ctx := errgroup.WithContext(ctx)

	var games = make(chan *chess.Game, 128)
	var results = make(chan datasetInfo, 128)

	g.Go(func() error {
		defer close(games)
		return loadGames(ctx, dp.GamesPath, games)
	})

	g.Go(func() error {
		return dp.mergeDataset(ctx, results, dataset)
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < max(1, dp.Threads); i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return dp.analyzeGames(ctx, games, results)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	var err = g.Wait()
	if errors.Is(err, errDatasetReady) {
		return nil
	}
	return err
}
