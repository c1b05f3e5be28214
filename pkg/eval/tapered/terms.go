package eval

import (
	. "github.com/countereval/countereval/pkg/common"
	"golang.org/x/exp/constraints"
)

const KingBuckets = 4

// Bucket of the own king after the board is made relative to its side and
// mirrored so that the king stands on files e-h.
var kingBuckets = [64]int{
	1, 1, 0, 0, 0, 0, 1, 1,
	2, 2, 2, 2, 2, 2, 2, 2,
	3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3,
}

func kingRelativeIndex(side, king, sq int) (bucket, index int) {
	if side == SideBlack {
		king = FlipSquare(king)
		sq = FlipSquare(sq)
	}
	if File(king) < FileE {
		king = MirrorSquare(king)
		sq = MirrorSquare(sq)
	}
	return kingBuckets[king], sq
}

// KingRelativePst is a piece-square table that also depends on the own king square.
type KingRelativePst[E any] [KingBuckets][64]E

// Get returns the entry for a piece of side on sq while the own king stands on king.
func (t *KingRelativePst[E]) Get(side, king, sq int) *E {
	var bucket, index = kingRelativeIndex(side, king, sq)
	return &t[bucket][index]
}

// PstEvalSet holds one king relative table per piece type, pawn first.
type PstEvalSet[E any] [King - Pawn + 1]KingRelativePst[E]

func (s *PstEvalSet[E]) Get(piece, side, king, sq int) *E {
	return s[piece-Pawn].Get(side, king, sq)
}

// Mobility tables are indexed by pseudo-mobility, so each has one entry
// more than the largest attack count of its piece.
type Mobility[E any] struct {
	Pawn   [5]E
	Knight [9]E
	Bishop [14]E
	Rook   [15]E
	Queen  [28]E
	King   [9]E
}

func (m *Mobility[E]) Get(piece int) []E {
	switch piece {
	case Pawn:
		return m.Pawn[:]
	case Knight:
		return m.Knight[:]
	case Bishop:
		return m.Bishop[:]
	case Rook:
		return m.Rook[:]
	case Queen:
		return m.Queen[:]
	case King:
		return m.King[:]
	}
	return nil
}

type EvalTerms[E any] struct {
	PieceTables          PstEvalSet[E]
	Mobility             Mobility[E]
	VirtualQueenMobility [28]E
	PassedPawns          KingRelativePst[E]
	BishopPair           E
	RookOnOpenFile       E
	RookOnSemiopenFile   E
}

// EvalTrace counts how often each weight was used, signed by side.
type EvalTrace = EvalTerms[int16]

type EvalWeights = EvalTerms[PhasedEval]

// zipTerms visits the entries of two term sets pairwise.
// The visiting order is the layout of weight blobs and tuner feature indices.
func zipTerms[A, B any](a *EvalTerms[A], b *EvalTerms[B], f func(x *A, y *B)) {
	for piece := range a.PieceTables {
		zipPst(&a.PieceTables[piece], &b.PieceTables[piece], f)
	}
	for piece := Pawn; piece <= King; piece++ {
		zipSlices(a.Mobility.Get(piece), b.Mobility.Get(piece), f)
	}
	zipSlices(a.VirtualQueenMobility[:], b.VirtualQueenMobility[:], f)
	zipPst(&a.PassedPawns, &b.PassedPawns, f)
	f(&a.BishopPair, &b.BishopPair)
	f(&a.RookOnOpenFile, &b.RookOnOpenFile)
	f(&a.RookOnSemiopenFile, &b.RookOnSemiopenFile)
}

func zipPst[A, B any](a *KingRelativePst[A], b *KingRelativePst[B], f func(x *A, y *B)) {
	for bucket := range a {
		zipSlices(a[bucket][:], b[bucket][:], f)
	}
}

func zipSlices[A, B any](a []A, b []B, f func(x *A, y *B)) {
	for i := range a {
		f(&a[i], &b[i])
	}
}

func eachTerm[E any](t *EvalTerms[E], f func(index int, x *E)) {
	var index int
	zipTerms(t, t, func(x, _ *E) {
		f(index, x)
		index++
	})
}

var featureSize = func() int {
	var size int
	eachTerm(&EvalTrace{}, func(int, *int16) { size++ })
	return size
}()

// FeatureSize is the number of entries in a term set.
func FeatureSize() int {
	return featureSize
}

// Dot replays a trace against weights. The result equals the score
// before interpolation of the position the trace was recorded on.
func Dot[T constraints.Signed](trace *EvalTerms[T], weights *EvalWeights) PhasedEval {
	var mg, eg int32
	zipTerms(trace, weights, func(n *T, w *PhasedEval) {
		if *n != 0 {
			mg += int32(*n) * int32(w.Mg)
			eg += int32(*n) * int32(w.Eg)
		}
	})
	return PhasedEval{Mg: saturate16(mg), Eg: saturate16(eg)}
}
