package common

import "github.com/dylhunn/dragontoothmg"

const (
	SideWhite = iota
	SideBlack
	COLOUR_NB
)

// Piece types share numbering with dragontoothmg, so Empty..King index
// both libraries' tables directly.
const (
	Empty int = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	PIECE_NB
)

const InitialPositionFen = dragontoothmg.Startpos

type Move = dragontoothmg.Move

const MoveEmpty Move = 0

const (
	pieceNames = "pnbrqk"
)

func PieceName(piece int) string {
	if piece < Pawn || piece > King {
		return "-"
	}
	return pieceNames[piece-Pawn : piece-Pawn+1]
}

func SideName(side int) string {
	if side == SideWhite {
		return "white"
	}
	return "black"
}
