package eval

import (
	"github.com/countereval/countereval/internal/ml"
	. "github.com/countereval/countereval/pkg/common"
)

// score32 sums weights in int32 and narrows once, like Dot does.
type score32 struct {
	mg, eg int32
}

func (s *score32) add(w PhasedEval, n int16) {
	s.mg += int32(n) * int32(w.Mg)
	s.eg += int32(n) * int32(w.Eg)
}

func (s score32) narrow() PhasedEval {
	return PhasedEval{Mg: saturate16(s.mg), Eg: saturate16(s.eg)}
}

type evalContext[T TraceTarget] struct {
	pos     *Position
	weights *EvalWeights
	trace   T
	occ     uint64
	score   score32
}

func (e *evalContext[T]) evaluate() PhasedEval {
	e.occ = e.pos.AllPieces()
	e.score = score32{}
	for side := SideWhite; side <= SideBlack; side++ {
		var n = int16(1)
		if side == SideBlack {
			n = -1
		}
		e.evalPieceSquares(side, n)
		e.evalMobility(side, n)
		e.evalVirtualQueenMobility(side, n)
		e.evalPassedPawns(side, n)
		e.evalRookFiles(side, n)
		e.evalBishopPair(side, n)
	}
	return e.score.narrow()
}

func (e *evalContext[T]) evalPieceSquares(side int, n int16) {
	var king = e.pos.KingSq(side)
	for piece := Pawn; piece <= King; piece++ {
		for x := e.pos.PiecesByColor(side, piece); x != 0; x &= x - 1 {
			var sq = FirstOne(x)
			e.trace.PieceSquare(piece, side, king, sq, n)
			e.score.add(*e.weights.PieceTables.Get(piece, side, king, sq), n)
		}
	}
}

// Pseudo-mobility ignores pins and checks.
func (e *evalContext[T]) pseudoMobility(piece, side, sq int) uint64 {
	var own = e.pos.Colours(side)
	switch piece {
	case Pawn:
		return PawnPushes(sq, side, e.occ) | PawnAttacks(sq, side)&e.pos.Colours(side^1)
	case Knight:
		return KnightAttacks[sq] &^ own
	case Bishop:
		return BishopAttacks(sq, e.occ) &^ own
	case Rook:
		return RookAttacks(sq, e.occ) &^ own
	case Queen:
		return QueenAttacks(sq, e.occ) &^ own
	case King:
		return KingAttacks[sq] &^ own
	}
	return 0
}

func (e *evalContext[T]) evalMobility(side int, n int16) {
	for piece := Pawn; piece <= King; piece++ {
		var table = e.weights.Mobility.Get(piece)
		for x := e.pos.PiecesByColor(side, piece); x != 0; x &= x - 1 {
			var mobility = PopCount(e.pseudoMobility(piece, side, FirstOne(x)))
			e.trace.Mobility(piece, mobility, n)
			e.score.add(table[mobility], n)
		}
	}
}

func (e *evalContext[T]) evalVirtualQueenMobility(side int, n int16) {
	var mobility = PopCount(e.pseudoMobility(Queen, side, e.pos.KingSq(side)))
	e.trace.VirtualQueenMobility(mobility, n)
	e.score.add(e.weights.VirtualQueenMobility[mobility], n)
}

func (e *evalContext[T]) evalPassedPawns(side int, n int16) {
	var king = e.pos.KingSq(side)
	var own = e.pos.PiecesByColor(side, Pawn)
	var enemy = e.pos.PiecesByColor(side^1, Pawn)
	for x := own; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		if enemy&PassedPawnMasks[side][sq] != 0 || own&ForwardFileMasks[side][sq] != 0 {
			continue
		}
		e.trace.PassedPawn(side, king, sq, n)
		e.score.add(*e.weights.PassedPawns.Get(side, king, sq), n)
	}
}

func (e *evalContext[T]) evalRookFiles(side int, n int16) {
	var pawns = e.pos.Pieces(Pawn)
	var own = e.pos.PiecesByColor(side, Pawn)
	for x := e.pos.PiecesByColor(side, Rook); x != 0; x &= x - 1 {
		var file = FileMask[File(FirstOne(x))]
		if pawns&file == 0 {
			e.trace.RookOnOpenFile(n)
			e.score.add(e.weights.RookOnOpenFile, n)
		} else if own&file == 0 {
			e.trace.RookOnSemiopenFile(n)
			e.score.add(e.weights.RookOnSemiopenFile, n)
		}
	}
}

func (e *evalContext[T]) evalBishopPair(side int, n int16) {
	if MoreThanOne(e.pos.PiecesByColor(side, Bishop)) {
		e.trace.BishopPair(n)
		e.score.add(e.weights.BishopPair, n)
	}
}

func finalScore(p *Position, terms PhasedEval) int {
	var result = terms.Interpolate(GamePhase(p))
	if !p.WhiteMove() {
		result = -result
	}
	return result
}

// EvaluateTerms returns the White minus Black score before interpolation.
func EvaluateTerms(p *Position, w *EvalWeights) PhasedEval {
	var e = evalContext[NoTrace]{pos: p, weights: w}
	return e.evaluate()
}

// Evaluate scores p with the default weights from the side to move's point of view.
func Evaluate(p *Position) int {
	return EvaluateWithWeights(p, DefaultWeights())
}

func EvaluateWithWeights(p *Position, w *EvalWeights) int {
	return finalScore(p, EvaluateTerms(p, w))
}

// EvaluateWithTrace is Evaluate that also returns the signed count of every weight used.
func EvaluateWithTrace(p *Position, w *EvalWeights) (int, EvalTrace) {
	var e = evalContext[*RecordTrace]{pos: p, weights: w, trace: &RecordTrace{}}
	var score = finalScore(p, e.evaluate())
	return score, e.trace.Trace
}

type EvaluationService struct {
	weights *EvalWeights
}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{weights: DefaultWeights()}
}

func NewEvaluationServiceWithWeights(w *EvalWeights) *EvaluationService {
	return &EvaluationService{weights: w}
}

func (e *EvaluationService) Weights() *EvalWeights {
	return e.weights
}

func (e *EvaluationService) Evaluate(p *Position) int {
	return EvaluateWithWeights(p, e.weights)
}

// EvaluateProb maps the score to White's expected result.
func (e *EvaluationService) EvaluateProb(p *Position) float64 {
	return ml.WinProbability(EvaluateTerms(p, e.weights).Interpolate(GamePhase(p)))
}
