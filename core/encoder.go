package core

// Encoder is the incremental-encoder external collaborator: a
// monotonic step counter. Wraparound of the underlying hardware
// counter must not produce a false large delta within one tick —
// that is the implementation's responsibility, not the caller's.
type Encoder interface {
	Read() int32
}
