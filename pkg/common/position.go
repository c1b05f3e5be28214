package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

var errIllegalMove = errors.New("illegal move")

// Position is a read-only view over a dragontoothmg board.
// The evaluators only query it; MakeMove writes into a separate child.
type Position struct {
	board dragontoothmg.Board
}

func NewPositionFromFEN(fen string) (Position, error) {
	if err := validateFen(fen); err != nil {
		return Position{}, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	var fields = strings.Fields(fen)
	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	}
	return Position{board: dragontoothmg.ParseFen(strings.Join(fields, " "))}, nil
}

func validateFen(fen string) error {
	var fields = strings.Fields(fen)
	if len(fields) != 4 && len(fields) != 6 {
		return fmt.Errorf("expected 4 or 6 fields, got %v", len(fields))
	}
	var ranks = strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %v", len(ranks))
	}
	var kings [COLOUR_NB]int
	for _, rank := range ranks {
		var files = 0
		for _, ch := range rank {
			if ch >= '1' && ch <= '8' {
				files += int(ch - '0')
				continue
			}
			switch ch {
			case 'K':
				kings[SideWhite]++
			case 'k':
				kings[SideBlack]++
			case 'P', 'N', 'B', 'R', 'Q', 'p', 'n', 'b', 'r', 'q':
			default:
				return fmt.Errorf("bad piece %q", ch)
			}
			files++
		}
		if files != 8 {
			return fmt.Errorf("rank %q has %v files", rank, files)
		}
	}
	if kings[SideWhite] != 1 || kings[SideBlack] != 1 {
		return fmt.Errorf("expected one king per side, got %v", kings)
	}
	if fields[1] != "w" && fields[1] != "b" {
		return fmt.Errorf("bad side to move %q", fields[1])
	}
	if fields[3] != "-" && ParseSquare(fields[3]) == SquareNone {
		return fmt.Errorf("bad en passant square %q", fields[3])
	}
	return nil
}

func (p *Position) String() string {
	return p.board.ToFen()
}

func (p *Position) WhiteMove() bool {
	return p.board.Wtomove
}

func (p *Position) SideToMove() int {
	return Let(p.board.Wtomove, SideWhite, SideBlack)
}

func (p *Position) Rule50() int {
	return int(p.board.Halfmoveclock)
}

func (p *Position) Key() uint64 {
	return p.board.Hash()
}

func (p *Position) IsCheck() bool {
	return p.board.OurKingInCheck()
}

func (p *Position) bitboards(side int) *dragontoothmg.Bitboards {
	if side == SideWhite {
		return &p.board.White
	}
	return &p.board.Black
}

func (p *Position) Colours(side int) uint64 {
	return p.bitboards(side).All
}

func (p *Position) AllPieces() uint64 {
	return p.board.White.All | p.board.Black.All
}

func (p *Position) PiecesByColor(side, piece int) uint64 {
	var bb = p.bitboards(side)
	switch piece {
	case Pawn:
		return bb.Pawns
	case Knight:
		return bb.Knights
	case Bishop:
		return bb.Bishops
	case Rook:
		return bb.Rooks
	case Queen:
		return bb.Queens
	case King:
		return bb.Kings
	}
	return 0
}

func (p *Position) Pieces(piece int) uint64 {
	return p.PiecesByColor(SideWhite, piece) | p.PiecesByColor(SideBlack, piece)
}

func (p *Position) KingSq(side int) int {
	return FirstOne(p.bitboards(side).Kings)
}

func (p *Position) WhatPiece(sq int) (piece, side int) {
	var b = SquareMask[sq]
	for side = SideWhite; side <= SideBlack; side++ {
		if p.Colours(side)&b == 0 {
			continue
		}
		for piece = Pawn; piece <= King; piece++ {
			if p.PiecesByColor(side, piece)&b != 0 {
				return piece, side
			}
		}
	}
	return Empty, SideWhite
}

func (p *Position) GenerateLegalMoves() []Move {
	var b = p.board
	return b.GenerateLegalMoves()
}

// MakeMove applies a legal move to a copy of the board stored in child.
func (p *Position) MakeMove(m Move, child *Position) {
	*child = *p
	child.board.Apply(m)
}

// WithSideToMove returns a copy of the position with the given side to move and nothing else changed.
func (p *Position) WithSideToMove(side int) Position {
	var child = *p
	child.board.Wtomove = side == SideWhite
	return child
}

func (p *Position) ParseMove(lan string) (Move, error) {
	for _, m := range p.GenerateLegalMoves() {
		if m.String() == lan {
			return m, nil
		}
	}
	return MoveEmpty, fmt.Errorf("%w %v in %v", errIllegalMove, lan, p.String())
}
