package core

// MotorDriver is the external motor-driver contract: a signed PWM
// command in [-PWMMax, +PWMMax], plus the last applied speed for
// diagnostics.
type MotorDriver interface {
	// SetSpeed clamps speed to [-PWMMax, +PWMMax], derives direction
	// from its sign and applies it to the hardware.
	SetSpeed(speed int)

	// Speed returns the last commanded signed PWM value.
	Speed() int

	// Brake actively brakes the motor (Direction Braked), independent
	// of SetSpeed, which never produces it on its own.
	Brake()
}

// DirectionMagnitude is the pair of capabilities a concrete
// realization provides; MotorDriverBase composes them into the
// MotorDriver contract the way the reference firmware's
// motor_driver.h splits setSpeed into _setDirection/_setMagnitude.
type DirectionMagnitude interface {
	SetDirection(d Direction)
	SetMagnitude(u uint8)
}

// MotorDriverBase implements the SetSpeed/Speed/Brake contract in
// terms of a DirectionMagnitude realization. Embed it in a concrete
// driver type built over targets/-specific pins.
type MotorDriverBase struct {
	impl  DirectionMagnitude
	speed int
}

// NewMotorDriverBase wires a MotorDriverBase to its realization.
func NewMotorDriverBase(impl DirectionMagnitude) MotorDriverBase {
	return MotorDriverBase{impl: impl}
}

func (b *MotorDriverBase) SetSpeed(speed int) {
	if speed > PWMMax {
		speed = PWMMax
	}
	if speed < -PWMMax {
		speed = -PWMMax
	}
	b.speed = speed

	direction := Released
	magnitude := speed
	if speed > 0 {
		direction = Forwards
	} else if speed < 0 {
		direction = Backwards
		magnitude = -speed
	}

	b.impl.SetDirection(direction)
	b.impl.SetMagnitude(uint8(magnitude))
}

func (b *MotorDriverBase) Speed() int {
	return b.speed
}

func (b *MotorDriverBase) Brake() {
	b.speed = StillPWM
	b.impl.SetDirection(Braked)
	b.impl.SetMagnitude(0)
}
