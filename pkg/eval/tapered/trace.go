package eval

// TraceTarget receives every weight lookup of the evaluator with the
// same index and sign the lookup used.
type TraceTarget interface {
	PieceSquare(piece, side, king, sq int, n int16)
	Mobility(piece, mobility int, n int16)
	VirtualQueenMobility(mobility int, n int16)
	PassedPawn(side, king, sq int, n int16)
	BishopPair(n int16)
	RookOnOpenFile(n int16)
	RookOnSemiopenFile(n int16)
}

// NoTrace discards everything. Being a zero-size value type it gets its
// own instantiation of the evaluator, where the calls inline to nothing.
type NoTrace struct{}

func (NoTrace) PieceSquare(piece, side, king, sq int, n int16) {}
func (NoTrace) Mobility(piece, mobility int, n int16)           {}
func (NoTrace) VirtualQueenMobility(mobility int, n int16)      {}
func (NoTrace) PassedPawn(side, king, sq int, n int16)          {}
func (NoTrace) BishopPair(n int16)                              {}
func (NoTrace) RookOnOpenFile(n int16)                          {}
func (NoTrace) RookOnSemiopenFile(n int16)                      {}

type RecordTrace struct {
	Trace EvalTrace
}

func (r *RecordTrace) PieceSquare(piece, side, king, sq int, n int16) {
	*r.Trace.PieceTables.Get(piece, side, king, sq) += n
}

func (r *RecordTrace) Mobility(piece, mobility int, n int16) {
	r.Trace.Mobility.Get(piece)[mobility] += n
}

func (r *RecordTrace) VirtualQueenMobility(mobility int, n int16) {
	r.Trace.VirtualQueenMobility[mobility] += n
}

func (r *RecordTrace) PassedPawn(side, king, sq int, n int16) {
	*r.Trace.PassedPawns.Get(side, king, sq) += n
}

func (r *RecordTrace) BishopPair(n int16) {
	r.Trace.BishopPair += n
}

func (r *RecordTrace) RookOnOpenFile(n int16) {
	r.Trace.RookOnOpenFile += n
}

func (r *RecordTrace) RookOnSemiopenFile(n int16) {
	r.Trace.RookOnSemiopenFile += n
}
