//go:build rp2040 || rp2350

// Package rp2040 provides the RP2040/RP2350 hardware realizations of
// the core package's external collaborator interfaces: Clock,
// MotorDriver and the PWM/GPIO drivers beneath it. The Encoder
// realization lives in package pio.
package rp2040

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040/RP2350 Timer peripheral memory map.
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08 // raw timer high word
	timerTIMERAWL = timerBase + 0x0C // raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// Clock reads the RP2040/RP2350's free-running 1MHz hardware timer,
// implementing core.Clock.
type Clock struct{}

// NowMicros reads the full 64-bit hardware timer, retrying if a
// rollover of the low word was observed mid-read.
func (Clock) NowMicros() uint64 {
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()
		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}
