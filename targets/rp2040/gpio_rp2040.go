//go:build rp2040 || rp2350

package rp2040

import (
	"machine"

	"omni3/core"
)

// GPIODriver implements core.GPIODriver over TinyGo's machine.Pin.
type GPIODriver struct{}

func (GPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	return nil
}

func (GPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machine.Pin(pin).Set(value)
	return nil
}
