package domain

// DatasetItem is a position with White's game result (1, 0.5 or 0).
type DatasetItem struct {
	Fen    string
	Target float64
}

// TuneEntry is the sparse trace of one position.
// MgPhase is 1 for full material and 0 once minor and major pieces are gone.
type TuneEntry struct {
	Features []FeatureInfo
	MgPhase  float32
}

type FeatureInfo struct {
	Index int16
	Value int16
}
