//go:build rp2040 || rp2350

package rp2040

import (
	"machine"

	"omni3/core"
)

// pwmPeripheral abstracts over TinyGo's unexported *pwmGroup type so
// PWMDriver can be built and tested against a fake.
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// pwmPeriodNs is the hardware PWM period: 20kHz, a comfortable
// frequency for a DC motor driver's magnitude pin.
const pwmPeriodNs = 50_000

// PWMDriver implements core.PWMDriver over the RP2040's 8 hardware
// PWM slices (2 channels each).
type PWMDriver struct {
	peripherals map[uint8]pwmPeripheral
	channels    map[uint32]uint8
	maxValues   map[uint32]uint32
}

// NewPWMDriver constructs an empty PWMDriver.
func NewPWMDriver() *PWMDriver {
	return &PWMDriver{
		peripherals: make(map[uint8]pwmPeripheral),
		channels:    make(map[uint32]uint8),
		maxValues:   make(map[uint32]uint32),
	}
}

// ConfigurePin configures pin for PWM output, with SetDuty's value
// argument scaled against [0, max].
func (d *PWMDriver) ConfigurePin(pin core.PWMPin, max uint32) error {
	pinNum := uint32(pin)
	sliceNum := uint8((pinNum >> 1) & 0x7)

	pwm, ok := d.peripherals[sliceNum]
	if !ok {
		pwm = d.peripheralForSlice(sliceNum)
		d.peripherals[sliceNum] = pwm
		if err := pwm.Configure(machine.PWMConfig{Period: pwmPeriodNs}); err != nil {
			return err
		}
	}

	channel, err := pwm.Channel(machine.Pin(pinNum))
	if err != nil {
		return err
	}

	d.channels[pinNum] = channel
	d.maxValues[pinNum] = max
	return nil
}

// SetDuty scales value (0..the max passed to ConfigurePin) onto the
// slice's hardware duty-cycle range and applies it.
func (d *PWMDriver) SetDuty(pin core.PWMPin, value uint32) error {
	pinNum := uint32(pin)
	channel, ok := d.channels[pinNum]
	if !ok {
		return nil
	}
	sliceNum := uint8((pinNum >> 1) & 0x7)
	pwm := d.peripherals[sliceNum]

	max := d.maxValues[pinNum]
	if max == 0 {
		return nil
	}
	top := pwm.Top()
	duty := (value * top) / max
	pwm.Set(channel, duty)
	return nil
}

// peripheralForSlice returns TinyGo's global PWM0-PWM7 for the given
// slice number.
func (d *PWMDriver) peripheralForSlice(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}
