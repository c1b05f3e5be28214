package tuner

import (
	"github.com/countereval/countereval/internal/ml"
)

const (
	Opening = 0
	Endgame = 1
)

// Model is linear in the features, separately for midgame and endgame.
// It has no bias: the evaluation is symmetric between White and Black.
type Model struct {
	activationFn ml.IActivationFn
	weights      ml.Matrix
	wGradients   ml.Gradients
	cost         ml.IModelCost
}

func NewModelHCE(mg, eg []float64, learningRate float64) *Model {
	var m = &Model{
		activationFn: &ml.SigmoidActivation{},
		weights:      ml.NewMatrix(2, len(mg)),
		wGradients:   ml.NewGradients(2, len(mg)),
		cost:         &ml.MSECost{},
	}
	m.wGradients.LearningRate = learningRate
	for i := range mg {
		m.weights.Set(Opening, i, mg[i])
		m.weights.Set(Endgame, i, eg[i])
	}
	return m
}

func (m *Model) Weights() (mg, eg []float64) {
	mg = make([]float64, m.weights.Cols)
	eg = make([]float64, m.weights.Cols)
	for i := range mg {
		mg[i] = m.weights.Get(Opening, i)
		eg[i] = m.weights.Get(Endgame, i)
	}
	return mg, eg
}

func (m *Model) ApplyGradients() {
	m.wGradients.Apply(&m.weights)
}

func (m *Model) CalcCost(sample *Sample) float64 {
	var cost float64
	m.work(sample, false, &cost)
	return cost
}

func (m *Model) Train(sample *Sample) {
	var cost float64
	m.work(sample, true, &cost)
}

func (m *Model) work(sample *Sample, train bool, cost *float64) {
	var mg, eg float64
	for _, input := range sample.Features {
		var inputIndex = int(input.Index)
		var inputValue = float64(input.Value)
		mg += m.weights.Get(Opening, inputIndex) * inputValue
		eg += m.weights.Get(Endgame, inputIndex) * inputValue
	}
	var phase = float64(sample.MgPhase)
	var mix = phase*mg + (1-phase)*eg
	var x = mix / ml.CentipawnScale
	var predicted = m.activationFn.Sigma(x)
	if !train {
		*cost = m.cost.Cost(predicted, float64(sample.Target))
		return
	}
	// back propagation
	var outputGradient = m.cost.CostPrime(predicted, float64(sample.Target)) *
		m.activationFn.SigmaPrime(x) / ml.CentipawnScale
	for _, input := range sample.Features {
		var inputIndex = int(input.Index)
		var inputValue = float64(input.Value)
		m.wGradients.Add(Opening, inputIndex, inputValue*phase*outputGradient)
		m.wGradients.Add(Endgame, inputIndex, inputValue*(1-phase)*outputGradient)
	}
}

// ThreadCopy shares the weights and owns its gradients.
func (m *Model) ThreadCopy() *Model {
	var g = ml.NewGradients(m.wGradients.Rows, m.weights.Cols)
	g.LearningRate = m.wGradients.LearningRate
	return &Model{
		activationFn: m.activationFn,
		weights:      m.weights,
		wGradients:   g,
		cost:         m.cost,
	}
}

func (m *Model) AddGradients(mainModel *Model) {
	if m == mainModel {
		return
	}
	m.wGradients.AddTo(&mainModel.wGradients)
}
