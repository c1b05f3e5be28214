package eval

import (
	"fmt"
	"math"

	"github.com/countereval/countereval/internal/domain"
	. "github.com/countereval/countereval/pkg/common"
)

// Features lists the non-zero counts of a trace, indexed in field order.
func Features(trace *EvalTrace) []domain.FeatureInfo {
	var result []domain.FeatureInfo
	eachTerm(trace, func(index int, n *int16) {
		if *n != 0 {
			result = append(result, domain.FeatureInfo{Index: int16(index), Value: *n})
		}
	})
	return result
}

// TunableEvaluator exposes the handcrafted evaluator to the linear tuner.
type TunableEvaluator struct {
	weights *EvalWeights
}

func NewTunableEvaluator(w *EvalWeights) *TunableEvaluator {
	return &TunableEvaluator{weights: w}
}

func (e *TunableEvaluator) FeatureSize() int {
	return FeatureSize()
}

func (e *TunableEvaluator) ComputeFeatures(p *Position) domain.TuneEntry {
	var _, trace = EvaluateWithTrace(p, e.weights)
	return domain.TuneEntry{
		Features: Features(&trace),
		MgPhase:  float32(MaxPhase-GamePhase(p)) / MaxPhase,
	}
}

// StartingWeights returns the current weights as midgame and endgame vectors.
func (e *TunableEvaluator) StartingWeights() (mg, eg []float64) {
	mg = make([]float64, FeatureSize())
	eg = make([]float64, FeatureSize())
	eachTerm(e.weights, func(index int, x *PhasedEval) {
		mg[index] = float64(x.Mg)
		eg[index] = float64(x.Eg)
	})
	return mg, eg
}

// WeightsFromVectors rounds tuned vectors back to weights, saturating to int16.
func WeightsFromVectors(mg, eg []float64) (*EvalWeights, error) {
	if len(mg) != FeatureSize() || len(eg) != FeatureSize() {
		return nil, fmt.Errorf("%w: got %v/%v, want %v", ErrBadWeightCount, len(mg), len(eg), FeatureSize())
	}
	var w = &EvalWeights{}
	eachTerm(w, func(index int, x *PhasedEval) {
		*x = PhasedEval{Mg: round16(mg[index]), Eg: round16(eg[index])}
	})
	return w, nil
}

func round16(v float64) int16 {
	return saturate16(int32(math.Max(math.MinInt16, math.Min(math.MaxInt16, math.Round(v)))))
}
