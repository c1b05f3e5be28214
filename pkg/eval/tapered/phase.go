package eval

import (
	. "github.com/countereval/countereval/pkg/common"
)

const MaxPhase = 256

const (
	knightPhase = 1
	bishopPhase = 1
	rookPhase   = 2
	queenPhase  = 4
	initPhase   = 2 * (2*knightPhase + 2*bishopPhase + 2*rookPhase + 1*queenPhase)
)

// GamePhase returns 0 for full material and MaxPhase once every minor and major piece is gone.
// Extra pieces from promotions saturate at 0.
func GamePhase(p *Position) int {
	var live = knightPhase*PopCount(p.Pieces(Knight)) +
		bishopPhase*PopCount(p.Pieces(Bishop)) +
		rookPhase*PopCount(p.Pieces(Rook)) +
		queenPhase*PopCount(p.Pieces(Queen))
	var phase = Max(0, initPhase-live)
	return (phase*MaxPhase + initPhase/2) / initPhase
}
