//go:build rp2040 || rp2350

package pio

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// quadratureDelta maps (previous 2-bit A/B state << 2 | current 2-bit
// state) onto the step taken: +1, -1, or 0 for an invalid/bounce
// transition. Standard quadrature decode table.
var quadratureDelta = [16]int32{
	0, -1, 1, 0,
	1, 0, 0, -1,
	-1, 0, 0, 1,
	0, 1, -1, 0,
}

// buildQuadratureProgram oversamples the A/B pins into the RX FIFO;
// software in Read drains the FIFO and decodes transitions via
// quadratureDelta. Built with the assembler's wrap-target loop
// builder, repurposed from pulse generation to pin sampling.
func buildQuadratureProgram() []uint16 {
	asm := rp2pio.AssemblerV0{}
	return []uint16{
		// .wrap_target
		asm.In(rp2pio.InSrcPins, 2).Encode(), // 0: in pins, 2 (autopush@2 bits)
		// .wrap
	}
}

const quadraturePIOOrigin = 0

// QuadratureEncoder implements core.Encoder by continuously sampling
// two quadrature pins (A, B) via PIO and decoding transitions in
// software.
type QuadratureEncoder struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	pinA   machine.Pin
	pinB   machine.Pin
	offset uint8

	count    int32
	lastSamp uint32
}

// NewQuadratureEncoder allocates a PIO state machine and configures
// it to sample pinA/pinB, returning nil if no PIO resource is free
// (at most 8 state machines exist across both PIO blocks).
func NewQuadratureEncoder(pinA, pinB machine.Pin) *QuadratureEncoder {
	pioNum, smNum, ok := allocate()
	if !ok {
		return nil
	}

	var hw *rp2pio.PIO
	if pioNum == 0 {
		hw = rp2pio.PIO0
	} else {
		hw = rp2pio.PIO1
	}

	e := &QuadratureEncoder{
		pio:  hw,
		sm:   hw.StateMachine(smNum),
		pinA: pinA,
		pinB: pinB,
	}
	e.init()
	return e
}

func (e *QuadratureEncoder) init() {
	e.sm.TryClaim()

	program := buildQuadratureProgram()
	offset, err := e.pio.AddProgram(program, quadraturePIOOrigin)
	if err != nil {
		return
	}
	e.offset = offset

	e.pinA.Configure(machine.PinConfig{Mode: e.pio.PinMode()})
	e.pinB.Configure(machine.PinConfig{Mode: e.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetInPins(e.pinA) // pinB must be pinA+1 on this GPIO bank
	cfg.SetInShift(true, true, 2)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(4, 0) // oversample well above the encoder's max edge rate

	e.sm.Init(offset, cfg)
	e.sm.SetPindirsConsecutive(e.pinA, 2, false) // inputs
	e.sm.SetEnabled(true)
}

// Read drains any buffered samples, decodes each transition and
// returns the running signed step count.
func (e *QuadratureEncoder) Read() int32 {
	for !e.sm.IsRxFIFOEmpty() {
		sample := e.sm.RxGet() & 0x3
		e.count += quadratureDelta[(e.lastSamp<<2)|sample]
		e.lastSamp = sample
	}
	return e.count
}
