package ml

import (
	"math"
	"testing"
)

func TestWinProbability(t *testing.T) {
	if p := WinProbability(0); p != 0.5 {
		t.Errorf("WinProbability(0) = %v", p)
	}
	if p := WinProbability(400); math.Abs(p-10.0/11) > 1e-9 {
		t.Errorf("WinProbability(400) = %v, want 10/11", p)
	}
	if x := ReverseSigmoid(Sigmoid(1.25)); math.Abs(x-1.25) > 1e-9 {
		t.Errorf("ReverseSigmoid = %v", x)
	}
}

func TestGradientsApply(t *testing.T) {
	var m = NewMatrix(2, 3)
	var g = NewGradients(2, 3)
	g.LearningRate = 0.5
	g.Add(1, 2, 4)
	g.Add(0, 0, -1)
	g.Apply(&m)
	if m.Get(1, 2) >= 0 || m.Get(0, 0) <= 0 {
		t.Errorf("weights should move against the gradient: %v", m.Data)
	}
	if m.Get(0, 1) != 0 {
		t.Errorf("untouched weight changed: %v", m.Get(0, 1))
	}
	for _, x := range g.Data {
		if x.Value != 0 {
			t.Fatal("gradients not reset")
		}
	}
}

func TestGradientsAddTo(t *testing.T) {
	var parent = NewGradients(1, 2)
	var child = NewGradients(1, 2)
	child.Add(0, 1, 3)
	child.AddTo(&parent)
	if parent.Data[1].Value != 3 || child.Data[1].Value != 0 {
		t.Errorf("parent %v child %v", parent.Data, child.Data)
	}
}

func TestCosts(t *testing.T) {
	var mse = &MSECost{}
	if mse.Cost(0.75, 0.25) != 0.25 || mse.CostPrime(0.75, 0.25) != 1 {
		t.Error("bad mse")
	}
	var abs = &AbsCost{}
	if abs.Cost(0.25, 0.75) != 0.5 || abs.CostPrime(0.25, 0.75) != -1 {
		t.Error("bad abs")
	}
	var s = &SigmoidActivation{}
	if s.SigmaPrime(0) != 0.25 {
		t.Error("bad sigmoid derivative")
	}
}
