package eval

import (
	. "github.com/countereval/countereval/pkg/common"
)

var materialValues = [PIECE_NB]int{Pawn: 1, Knight: 3, Bishop: 3, Rook: 5, Queen: 8, King: 0}

// Feature returns the input index of a piece seen from perspective.
// Black sees the board flipped with the colors swapped, so both
// perspectives share the feature transformer.
func Feature(perspective, color, piece, sq int) int {
	if perspective == SideBlack {
		sq = FlipSquare(sq)
		color ^= 1
	}
	return (color*6+piece-Pawn)*64 + sq
}
