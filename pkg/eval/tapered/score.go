package eval

import (
	"fmt"
	"math"
)

// PhasedEval is a midgame/endgame score pair.
// All arithmetic widens to int32 and saturates back to int16.
type PhasedEval struct {
	Mg int16
	Eg int16
}

func S(mg, eg int) PhasedEval {
	return PhasedEval{Mg: saturate16(int32(mg)), Eg: saturate16(int32(eg))}
}

func (s PhasedEval) Add(o PhasedEval) PhasedEval {
	return PhasedEval{
		Mg: saturate16(int32(s.Mg) + int32(o.Mg)),
		Eg: saturate16(int32(s.Eg) + int32(o.Eg)),
	}
}

func (s PhasedEval) Sub(o PhasedEval) PhasedEval {
	return PhasedEval{
		Mg: saturate16(int32(s.Mg) - int32(o.Mg)),
		Eg: saturate16(int32(s.Eg) - int32(o.Eg)),
	}
}

func (s PhasedEval) Mul(n int) PhasedEval {
	return PhasedEval{
		Mg: saturate16(int32(s.Mg) * int32(n)),
		Eg: saturate16(int32(s.Eg) * int32(n)),
	}
}

func (s PhasedEval) Neg() PhasedEval {
	return PhasedEval{}.Sub(s)
}

// Interpolate blends the pair by phase: 0 is pure midgame, MaxPhase pure endgame.
func (s PhasedEval) Interpolate(phase int) int {
	var p = int32(phase)
	var v = (int32(s.Mg)*(MaxPhase-p) + int32(s.Eg)*p) / MaxPhase
	return int(saturate16(v))
}

func (s PhasedEval) String() string {
	return fmt.Sprintf("S(%d, %d)", s.Mg, s.Eg)
}

func saturate16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
