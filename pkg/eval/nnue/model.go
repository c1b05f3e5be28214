package eval

const (
	InputSize = 2 * 6 * 64
	FtOut     = 32
	L1In      = 2 * FtOut
	L1Out     = 16

	// Quantization of the trained weights. Part of the model format.
	ActivationRange = 127
	WeightScale     = 64
	OutputScale     = 203

	MaterialBuckets = L1Out
	MaxMaterial     = 76
)

// FeatureTransformer maps active features to one accumulator per perspective.
type FeatureTransformer struct {
	Weights [InputSize][FtOut]int16
	Biases  [FtOut]int16
}

// Empty resets acc to the accumulator of a board without pieces.
func (ft *FeatureTransformer) Empty(acc *[FtOut]int16) {
	*acc = ft.Biases
}

func (ft *FeatureTransformer) Add(feature int, acc *[FtOut]int16) {
	var row = &ft.Weights[feature]
	for i := range acc {
		acc[i] += row[i]
	}
}

func (ft *FeatureTransformer) Sub(feature int, acc *[FtOut]int16) {
	var row = &ft.Weights[feature]
	for i := range acc {
		acc[i] -= row[i]
	}
}

func clippedRelu(acc *[FtOut]int16, out []int8) {
	for i, x := range acc {
		if x < 0 {
			x = 0
		} else if x > ActivationRange {
			x = ActivationRange
		}
		out[i] = int8(x)
	}
}

// Linear holds one output row per material bucket.
type Linear struct {
	Weights [L1Out][L1In]int8
	Biases  [L1Out]int32
}

func (l *Linear) Activate(input *[L1In]int8, bucket int) int32 {
	var sum = int64(l.Biases[bucket])
	var row = &l.Weights[bucket]
	for i, x := range input {
		sum += int64(x) * int64(row[i])
	}
	return saturate32(sum)
}

func saturate32(v int64) int32 {
	const maxInt32, minInt32 = 1<<31 - 1, -1 << 31
	if v > maxInt32 {
		return maxInt32
	}
	if v < minInt32 {
		return minInt32
	}
	return int32(v)
}

// Model is immutable after loading and may be shared by any number of searches.
type Model struct {
	FT FeatureTransformer
	L1 Linear
}

func (m *Model) NewState() *State {
	var s = &State{}
	s.reset(m)
	return s
}
