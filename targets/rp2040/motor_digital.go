//go:build rp2040 || rp2350

package rp2040

import "omni3/core"

// digitalImpl realizes core.DirectionMagnitude over one PWM pin
// (magnitude, always driven) and two digital pins A, B encoding
// direction as (0,0)=RELEASED, (1,0)=FORWARDS, (0,1)=BACKWARDS,
// (1,1)=BRAKED.
type digitalImpl struct {
	pwm    core.PWMDriver
	pwmPin core.PWMPin
	gpio   core.GPIODriver
	pinA   core.GPIOPin
	pinB   core.GPIOPin
}

func (d *digitalImpl) SetDirection(dir core.Direction) {
	switch dir {
	case core.Forwards:
		d.gpio.SetPin(d.pinA, true)
		d.gpio.SetPin(d.pinB, false)
	case core.Backwards:
		d.gpio.SetPin(d.pinA, false)
		d.gpio.SetPin(d.pinB, true)
	case core.Braked:
		d.gpio.SetPin(d.pinA, true)
		d.gpio.SetPin(d.pinB, true)
	default: // Released
		d.gpio.SetPin(d.pinA, false)
		d.gpio.SetPin(d.pinB, false)
	}
}

func (d *digitalImpl) SetMagnitude(u uint8) {
	d.pwm.SetDuty(d.pwmPin, uint32(u))
}

// NewDigitalMotorDriver constructs a core.MotorDriver for a single
// PWM magnitude pin plus two digital direction pins.
func NewDigitalMotorDriver(pwm core.PWMDriver, pwmPin core.PWMPin, gpio core.GPIODriver, pinA, pinB core.GPIOPin) (*core.MotorDriverBase, error) {
	if err := pwm.ConfigurePin(pwmPin, core.PWMMax); err != nil {
		return nil, err
	}
	if err := gpio.ConfigureOutput(pinA); err != nil {
		return nil, err
	}
	if err := gpio.ConfigureOutput(pinB); err != nil {
		return nil, err
	}
	impl := &digitalImpl{pwm: pwm, pwmPin: pwmPin, gpio: gpio, pinA: pinA, pinB: pinB}
	base := core.NewMotorDriverBase(impl)
	return &base, nil
}
