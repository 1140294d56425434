//go:build rp2040 || rp2350

// Package pio provides a PIO-based quadrature encoder implementing
// core.Encoder, one per driven wheel.
package pio

// allocations tracks which of the RP2040/RP2350's 2 PIO blocks × 4
// state machines are in use, handed out round-robin across the
// encoders that request one.
var (
	allocations = [2][4]bool{}
	nextPIONum  = uint8(0)
	nextSMNum   = uint8(0)
)

// allocate reserves the next free PIO state machine, returning
// ok=false once all 8 are in use (this robot needs exactly 3, one per
// wheel encoder).
func allocate() (pioNum, smNum uint8, ok bool) {
	for i := 0; i < 8; i++ {
		p, s := nextPIONum, nextSMNum

		nextSMNum++
		if nextSMNum >= 4 {
			nextSMNum = 0
			nextPIONum = (nextPIONum + 1) % 2
		}

		if !allocations[p][s] {
			allocations[p][s] = true
			return p, s, true
		}
	}
	return 0, 0, false
}
