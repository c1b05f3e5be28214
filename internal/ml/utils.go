package ml

import "math"

// CentipawnScale maps centipawns to logits: 400 centipawns are 10:1 odds.
const CentipawnScale = 400 / math.Ln10

func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func ReverseSigmoid(x float64) float64 {
	return -math.Log(1/x - 1)
}

// WinProbability is the expected result for a side with the given score.
func WinProbability(centipawns int) float64 {
	return Sigmoid(float64(centipawns) / CentipawnScale)
}
