package eval

import (
	. "github.com/countereval/countereval/pkg/common"
)

// State is the accumulator of one search line.
//
// It keeps no history: every piece placed on the board is announced with
// exactly one Add and every piece removed with exactly one Sub. To take a
// move back the caller replays the inverse calls in reverse order, or
// restores a copy saved before the move as EvaluationService does.
type State struct {
	model       *Model
	accumulator [COLOUR_NB][FtOut]int16
	material    int
}

func (s *State) reset(m *Model) {
	s.model = m
	m.FT.Empty(&s.accumulator[SideWhite])
	m.FT.Empty(&s.accumulator[SideBlack])
	s.material = 0
}

func (s *State) Model() *Model {
	return s.model
}

func (s *State) Accumulator() [COLOUR_NB][FtOut]int16 {
	return s.accumulator
}

func (s *State) Material() int {
	return s.material
}

func (s *State) Add(color, piece, sq int) {
	s.material += materialValues[piece]
	for perspective := SideWhite; perspective <= SideBlack; perspective++ {
		s.model.FT.Add(Feature(perspective, color, piece, sq), &s.accumulator[perspective])
	}
}

func (s *State) Sub(color, piece, sq int) {
	s.material -= materialValues[piece]
	for perspective := SideWhite; perspective <= SideBlack; perspective++ {
		s.model.FT.Sub(Feature(perspective, color, piece, sq), &s.accumulator[perspective])
	}
}

// Refresh rebuilds the accumulator from the pieces of p.
func (s *State) Refresh(p *Position) {
	s.reset(s.model)
	for side := SideWhite; side <= SideBlack; side++ {
		for piece := Pawn; piece <= King; piece++ {
			for x := p.PiecesByColor(side, piece); x != 0; x &= x - 1 {
				s.Add(side, piece, FirstOne(x))
			}
		}
	}
}

func (s *State) bucket() int {
	return Min(MaterialBuckets-1, Max(0, s.material)*MaterialBuckets/MaxMaterial)
}

// Evaluate scores the accumulated board for sideToMove.
func (s *State) Evaluate(sideToMove int) int {
	var input [L1In]int8
	clippedRelu(&s.accumulator[sideToMove], input[:FtOut])
	clippedRelu(&s.accumulator[sideToMove^1], input[FtOut:])
	var output = int64(s.model.L1.Activate(&input, s.bucket()))
	return int(output * OutputScale / WeightScale / ActivationRange)
}
