package dataset

import (
	"context"
	"fmt"

	"github.com/countereval/countereval/pkg/common"
	"github.com/notnil/chess"
)

func (dp *PgnDatasetProvider) analyzeGames(
	ctx context.Context,
	games <-chan *chess.Game,
	dataset chan<- datasetInfo,
) error {
	for game := range games {
		var err = dp.analyzeGame(ctx, game, dataset)
		if err != nil {
			return fmt.Errorf("analyzeGame failed %v: %w", game.GetTagPair("Event"), err)
		}
	}
	return nil
}

func (dp *PgnDatasetProvider) analyzeGame(
	ctx context.Context,
	game *chess.Game,
	dataset chan<- datasetInfo,
) error {
	var gameResult, ok = calcGameResult(game.Outcome())
	if !ok {
		// unfinished games carry no label
		return nil
	}

	var positions = game.Positions()
	var moves = game.Moves()
	for i, move := range moves {
		if i < dp.SkipPlies || !isQuietMove(move) {
			continue
		}
		pos, err := common.NewPositionFromFEN(positions[i].String())
		if err != nil {
			return err
		}
		if pos.IsCheck() || pos.Rule50() >= 50 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case dataset <- datasetInfo{fen: pos.String(), key: pos.Key(), target: gameResult}:
		}
	}
	return nil
}

// isQuietMove reports whether the position before move can be scored
// statically: the move played neither captures nor promotes.
func isQuietMove(move *chess.Move) bool {
	return !move.HasTag(chess.Capture) &&
		!move.HasTag(chess.EnPassant) &&
		move.Promo() == chess.NoPieceType
}

func calcGameResult(outcome chess.Outcome) (float64, bool) {
	switch outcome {
	case chess.WhiteWon:
		return 1, true
	case chess.BlackWon:
		return 0, true
	case chess.Draw:
		return 0.5, true
	}
	return 0, false
}
