package core

// PWMPin identifies a hardware pin capable of PWM output.
type PWMPin uint32

// PWMDriver is the abstract PWM interface a MotorDriver realization
// drives its magnitude pin(s) through. Platform-specific code under
// targets/ supplies the concrete implementation (typically one shared
// driver instance per chip, fanned out across several PWMPins).
type PWMDriver interface {
	// ConfigurePin prepares a pin for PWM output at the given duty
	// cycle resolution (0..max).
	ConfigurePin(pin PWMPin, max uint32) error

	// SetDuty sets the PWM duty cycle for a pin, 0 (fully off) to the
	// max passed to ConfigurePin (fully on).
	SetDuty(pin PWMPin, value uint32) error
}
