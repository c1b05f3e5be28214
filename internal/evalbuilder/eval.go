package evalbuilder

import (
	"fmt"

	nnue "github.com/countereval/countereval/pkg/eval/nnue"
	tapered "github.com/countereval/countereval/pkg/eval/tapered"

	"github.com/countereval/countereval/pkg/common"
	"github.com/rs/zerolog/log"
)

type Evaluator interface {
	Evaluate(p *common.Position) int
	EvaluateProb(p *common.Position) float64
}

// Get returns a constructor for the evaluator named key. Each call of the
// constructor returns a new evaluator, so every search line can own one.
// weightsPath, if set, replaces the built-in handcrafted weights.
func Get(key string, weightsPath string) (func() Evaluator, error) {
	switch key {
	case "":
		if _, err := nnue.DefaultModel(); err == nil {
			return Get("nnue", weightsPath)
		}
		log.Warn().Msg("nnue model not found, using tapered evaluation")
		return Get("tapered", weightsPath)
	case "tapered":
		var w = tapered.DefaultWeights()
		if weightsPath != "" {
			var err error
			w, err = tapered.LoadWeightsFile(weightsPath)
			if err != nil {
				return nil, err
			}
		}
		return func() Evaluator {
			return tapered.NewEvaluationServiceWithWeights(w)
		}, nil
	case "nnue":
		model, err := nnue.DefaultModel()
		if err != nil {
			return nil, err
		}
		return func() Evaluator {
			return nnue.NewEvaluationService(model)
		}, nil
	}
	return nil, fmt.Errorf("bad eval %v", key)
}
