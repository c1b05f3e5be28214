package eval

import (
	"github.com/countereval/countereval/internal/ml"
	. "github.com/countereval/countereval/pkg/common"
)

const MaxHeight = 128

type update struct {
	side, piece, sq int
}

// Updates lists the pieces a move removes and adds, removals first.
type Updates struct {
	removed  [2]update
	added    [2]update
	nRemoved int
	nAdded   int
}

func (u *Updates) remove(side, piece, sq int) {
	u.removed[u.nRemoved] = update{side, piece, sq}
	u.nRemoved++
}

func (u *Updates) add(side, piece, sq int) {
	u.added[u.nAdded] = update{side, piece, sq}
	u.nAdded++
}

// EvaluationService keeps one State per ply. MakeMove pushes a copy of the
// current state with the move applied and UnmakeMove pops it.
type EvaluationService struct {
	model   *Model
	updates Updates
	states  [MaxHeight]State
	current int
}

func NewEvaluationService(model *Model) *EvaluationService {
	return &EvaluationService{model: model}
}

func (e *EvaluationService) Model() *Model {
	return e.model
}

func (e *EvaluationService) State() *State {
	return &e.states[e.current]
}

func (e *EvaluationService) Init(p *Position) {
	e.current = 0
	var s = &e.states[0]
	s.model = e.model
	s.Refresh(p)
}

// MakeMove must be called with the position before m is played.
// MoveEmpty is a null move. A line longer than MaxHeight-1 plies is re-rooted,
// after which only the plies made since then can be unmade.
func (e *EvaluationService) MakeMove(p *Position, m Move) {
	e.updates = Updates{}
	if m != MoveEmpty {
		collectUpdates(p, m, &e.updates)
	}

	if e.current+1 == MaxHeight {
		// re-root: the line so far can no longer be unmade
		e.states[0] = e.states[e.current]
		e.current = 0
	}
	e.current++
	var s = &e.states[e.current]
	*s = e.states[e.current-1]
	for _, u := range e.updates.removed[:e.updates.nRemoved] {
		s.Sub(u.side, u.piece, u.sq)
	}
	for _, u := range e.updates.added[:e.updates.nAdded] {
		s.Add(u.side, u.piece, u.sq)
	}
}

func (e *EvaluationService) UnmakeMove() {
	e.current--
}

func collectUpdates(p *Position, m Move, u *Updates) {
	var from, to = int(m.From()), int(m.To())
	var side = p.SideToMove()
	var movingPiece, _ = p.WhatPiece(from)

	u.remove(side, movingPiece, from)

	if capturedPiece, capturedSide := p.WhatPiece(to); capturedPiece != Empty && capturedSide != side {
		u.remove(capturedSide, capturedPiece, to)
	} else if movingPiece == Pawn && File(from) != File(to) {
		// en passant
		var capSq = Let(side == SideWhite, to-8, to+8)
		u.remove(side^1, Pawn, capSq)
	}

	var pieceAfterMove = movingPiece
	if promotion := int(m.Promote()); promotion != Empty {
		pieceAfterMove = promotion
	}
	u.add(side, pieceAfterMove, to)

	if movingPiece == King && (to-from == 2 || from-to == 2) {
		var rank = Rank(from)
		var rookFrom, rookTo = MakeSquare(FileH, rank), MakeSquare(FileF, rank)
		if to < from {
			rookFrom, rookTo = MakeSquare(FileA, rank), MakeSquare(FileD, rank)
		}
		u.remove(side, Rook, rookFrom)
		u.add(side, Rook, rookTo)
	}
}

func (e *EvaluationService) EvaluateQuick(p *Position) int {
	return e.states[e.current].Evaluate(p.SideToMove())
}

func (e *EvaluationService) Evaluate(p *Position) int {
	e.Init(p)
	return e.EvaluateQuick(p)
}

// EvaluateProb maps the score to White's expected result.
func (e *EvaluationService) EvaluateProb(p *Position) float64 {
	var centipawns = e.Evaluate(p)
	if !p.WhiteMove() {
		centipawns = -centipawns
	}
	return ml.WinProbability(centipawns)
}
