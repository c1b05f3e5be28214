package eval

import (
	"testing"

	. "github.com/countereval/countereval/pkg/common"
)

var testFens = []string{
	InitialPositionFen,
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"2kr3r/ppp2ppp/8/8/8/8/PPP2PPP/2KR3R b - - 0 1",
	"4k3/8/8/4P3/8/8/8/4K3 b - - 0 1",
	"1k6/8/8/8/8/8/8/QQQQKQQQ w - - 0 1",
}

func mustPosition(t *testing.T, fen string) Position {
	t.Helper()
	pos, err := NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return pos
}

func TestStartPositionIsZero(t *testing.T) {
	var pos = mustPosition(t, InitialPositionFen)
	if score := Evaluate(&pos); score != 0 {
		t.Errorf("Evaluate(startpos) = %v, want 0", score)
	}
	if terms := EvaluateTerms(&pos, DefaultWeights()); terms != (PhasedEval{}) {
		t.Errorf("EvaluateTerms(startpos) = %v, want zero", terms)
	}
}

func TestSideToMoveAntisymmetry(t *testing.T) {
	for _, fen := range testFens {
		var pos = mustPosition(t, fen)
		var flipped = pos.WithSideToMove(pos.SideToMove() ^ 1)
		if a, b := Evaluate(&pos), Evaluate(&flipped); a != -b {
			t.Errorf("%v: %v vs %v", fen, a, b)
		}
	}
}

func TestTraceMatchesWeights(t *testing.T) {
	var w = DefaultWeights()
	for _, fen := range testFens {
		var pos = mustPosition(t, fen)
		var score, trace = EvaluateWithTrace(&pos, w)
		if want := EvaluateWithWeights(&pos, w); score != want {
			t.Errorf("%v: traced score %v, want %v", fen, score, want)
		}
		if dot, want := Dot(&trace, w), EvaluateTerms(&pos, w); dot != want {
			t.Errorf("%v: dot %v, want %v", fen, dot, want)
		}
	}
}

// termSpy records which side scored passed pawns and rook file bonuses.
type termSpy struct {
	NoTrace
	passed   [COLOUR_NB][]int
	open     [COLOUR_NB]int
	semiopen [COLOUR_NB]int
}

func sideOf(n int16) int {
	if n > 0 {
		return SideWhite
	}
	return SideBlack
}

func (s *termSpy) PassedPawn(side, king, sq int, n int16) {
	s.passed[side] = append(s.passed[side], sq)
}

func (s *termSpy) RookOnOpenFile(n int16) {
	s.open[sideOf(n)]++
}

func (s *termSpy) RookOnSemiopenFile(n int16) {
	s.semiopen[sideOf(n)]++
}

func spyOn(t *testing.T, fen string) *termSpy {
	var pos = mustPosition(t, fen)
	var e = evalContext[*termSpy]{pos: &pos, weights: DefaultWeights(), trace: &termSpy{}}
	e.evaluate()
	return e.trace
}

func TestPassedPawns(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		passed bool
	}{
		{"lone pawn", "4k3/8/8/4P3/8/8/8/4K3 w - - 0 1", true},
		{"blocked ahead", "4k3/4p3/8/4P3/8/8/8/4K3 w - - 0 1", false},
		{"guarded diagonally", "4k3/8/5p2/4P3/8/8/8/4K3 w - - 0 1", false},
		{"enemy pawn behind", "4k3/8/8/4P3/8/3p4/8/4K3 w - - 0 1", true},
		{"rear doubled pawn", "4k3/8/8/4P3/8/8/4P3/4K3 w - - 0 1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spy = spyOn(t, tt.fen)
			var got = false
			for _, sq := range spy.passed[SideWhite] {
				if sq == SquareE5 {
					got = true
				}
			}
			if got != tt.passed {
				t.Errorf("e5 passed = %v, want %v", got, tt.passed)
			}
		})
	}
}

func TestDoubledPawnsOnlyFrontIsPassed(t *testing.T) {
	var spy = spyOn(t, "4k3/8/8/4P3/8/8/4P3/4K3 w - - 0 1")
	if len(spy.passed[SideWhite]) != 1 || spy.passed[SideWhite][0] != SquareE5 {
		t.Errorf("passed pawns %v, want only e5", spy.passed[SideWhite])
	}
}

func TestRookFiles(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		open     int
		semiopen int
	}{
		{"no pawns", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", 1, 0},
		{"enemy pawn", "4k3/8/p7/8/8/8/8/R3K3 w - - 0 1", 0, 1},
		{"both pawns", "4k3/8/p7/8/8/8/P7/R3K3 w - - 0 1", 0, 0},
		{"own pawn", "4k3/8/8/8/8/8/P7/R3K3 w - - 0 1", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spy = spyOn(t, tt.fen)
			if spy.open[SideWhite] != tt.open || spy.semiopen[SideWhite] != tt.semiopen {
				t.Errorf("open %v semiopen %v, want %v %v",
					spy.open[SideWhite], spy.semiopen[SideWhite], tt.open, tt.semiopen)
			}
		})
	}
}

func TestBishopPair(t *testing.T) {
	var pos = mustPosition(t, "4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1")
	var _, trace = EvaluateWithTrace(&pos, DefaultWeights())
	if trace.BishopPair != 1 {
		t.Errorf("BishopPair = %v, want 1", trace.BishopPair)
	}
	pos = mustPosition(t, "2b1kb2/8/8/8/8/8/8/2B1KB2 w - - 0 1")
	_, trace = EvaluateWithTrace(&pos, DefaultWeights())
	if trace.BishopPair != 0 {
		t.Errorf("BishopPair = %v, want 0", trace.BishopPair)
	}
}

func TestMobilityTrace(t *testing.T) {
	var pos = mustPosition(t, "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1")
	var _, trace = EvaluateWithTrace(&pos, DefaultWeights())
	if trace.Mobility.Knight[8] != 1 {
		t.Errorf("knight on d4 should have 8 moves: %v", trace.Mobility.Knight)
	}
	// a2 pawn: two pushes and a capture on b3
	pos = mustPosition(t, "4k3/8/8/8/8/1n6/P7/4K3 w - - 0 1")
	_, trace = EvaluateWithTrace(&pos, DefaultWeights())
	if trace.Mobility.Pawn[3] != 1 {
		t.Errorf("a2 pawn should have 3 moves: %v", trace.Mobility.Pawn)
	}
}

func TestEvaluationService(t *testing.T) {
	var e = NewEvaluationService()
	var pos = mustPosition(t, "4k3/8/8/8/8/8/8/R3K3 b - - 0 1")
	if score := e.Evaluate(&pos); score >= 0 {
		t.Errorf("black to move without a rook: %v", score)
	}
	if prob := e.EvaluateProb(&pos); prob <= 0.5 || prob >= 1 {
		t.Errorf("white should be winning: %v", prob)
	}
}
