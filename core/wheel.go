package core

import "math"

// Default PID gains.
const (
	DefaultKP = 1.4
	DefaultKI = 0.5
	DefaultKD = 0.8
)

// Wheel drives one physical wheel toward a commanded angular velocity
// using encoder feedback and a PID controller.
type Wheel struct {
	driver  MotorDriver
	encoder Encoder
	clock   Clock

	maxSpeed float64 // rad/s, 0 disables closed-loop operation (emergency stop)

	kP, kI, kD float64
	// IntegralClamp bounds the PID's cumulative error to
	// [-IntegralClamp, +IntegralClamp] when non-zero.
	// leaves this unbounded by default (known limitation); set this
	// field to opt into anti-windup clamping.
	IntegralClamp float64

	lastEncoder   int32
	lastUpdateUs  uint64
	targetPWM     int
	measuredSpeed float64
	lastError     float64
	cumError      float64
}

// NewWheel constructs a Wheel with the default PID gains and a
// stopped target.
func NewWheel(driver MotorDriver, encoder Encoder, clock Clock, maxSpeed float64) *Wheel {
	w := &Wheel{
		driver:   driver,
		encoder:  encoder,
		clock:    clock,
		maxSpeed: maxSpeed,
		kP:       DefaultKP,
		kI:       DefaultKI,
		kD:       DefaultKD,
	}
	w.SetNormalizedSpeed(0)
	return w
}

// SetPID sets the PID constants.
func (w *Wheel) SetPID(kP, kI, kD float64) {
	w.kP, w.kI, w.kD = kP, kI, kD
}

// SetDefaultPID resets the PID constants to their defaults.
func (w *Wheel) SetDefaultPID() {
	w.SetPID(DefaultKP, DefaultKI, DefaultKD)
}

// SetMaxSpeed sets the wheel's maximum angular speed. Setting it to 0
// is the emergency-stop primitive: it immediately commands STILL PWM
// and zeroes the target, and closed-loop operation stays disabled
// until a positive max speed is set again.
func (w *Wheel) SetMaxSpeed(maxSpeed float64) {
	w.maxSpeed = maxSpeed
	if maxSpeed == 0 {
		w.targetPWM = StillPWM
		w.driver.SetSpeed(StillPWM)
	}
}

// MaxSpeed returns the wheel's configured maximum angular speed.
func (w *Wheel) MaxSpeed() float64 {
	return w.maxSpeed
}

// SetSpeed converts ω (rad/s) to a normalised target and delegates to
// SetNormalizedSpeed. Fails if maxSpeed is 0 and ω is non-zero.
func (w *Wheel) SetSpeed(omega float64) bool {
	if w.maxSpeed == 0 {
		return omega == 0
	}
	return w.SetNormalizedSpeed(omega / w.maxSpeed)
}

// SetNormalizedSpeed stores the requested target as a PWM value.
// Returns false if n is non-zero while maxSpeed is 0, or if n is
// outside [-1, 1] ( corrected range check).
func (w *Wheel) SetNormalizedSpeed(n float64) bool {
	if w.maxSpeed == 0 && n != 0 {
		return false
	}
	if n > 1 || n < -1 {
		return false
	}
	pwm := roundHalfAwayFromZero(n * PWMMax)
	if pwm > PWMMax {
		pwm = PWMMax
	}
	if pwm < -PWMMax {
		pwm = -PWMMax
	}
	w.targetPWM = pwm
	return true
}

// Handle is the per-tick step: it reads the current timestamp and
// encoder, advances the PID loop, writes the resulting PWM to the
// driver (or STILL if maxSpeed is 0), and returns the angular
// displacement, in radians, since the previous call.
func (w *Wheel) Handle() float64 {
	now := w.clock.NowMicros()

	deltaUs := now - w.lastUpdateUs
	if deltaUs == 0 {
		deltaUs = 1
	}
	deltaTime := float64(deltaUs) * 1e-6

	encoderValue := w.encoder.Read()
	deltaSteps := encoderValue - w.lastEncoder
	w.measuredSpeed = StepsToRadians * float64(deltaSteps) / deltaTime
	w.lastEncoder = encoderValue

	pwm := StillPWM
	if w.maxSpeed == 0 {
		w.targetPWM = StillPWM
	} else {
		pwm = w.updatePID(deltaTime)
	}
	w.driver.SetSpeed(pwm)

	w.lastUpdateUs = now
	return StepsToRadians * float64(deltaSteps)
}

// driveOpenLoopTick commands pwm directly to the driver, bypassing the
// PID loop, and returns the measured angular speed over the elapsed
// time since the previous tick. Used only by CalibrateMaxSpeed.
func (w *Wheel) driveOpenLoopTick(pwm int) float64 {
	now := w.clock.NowMicros()
	deltaUs := now - w.lastUpdateUs
	if deltaUs == 0 {
		deltaUs = 1
	}
	deltaTime := float64(deltaUs) * 1e-6

	encoderValue := w.encoder.Read()
	deltaSteps := encoderValue - w.lastEncoder
	w.lastEncoder = encoderValue
	w.lastUpdateUs = now

	w.driver.SetSpeed(pwm)
	w.measuredSpeed = StepsToRadians * float64(deltaSteps) / deltaTime
	return w.measuredSpeed
}

// angularToPWM converts an angular speed to its theoretical PWM
// value, round(ω·PWMMax/maxSpeed). When maxSpeed is 0 it returns 0
// for ω=0, else ±PWMMax by sign.
func (w *Wheel) angularToPWM(omega float64) int {
	if w.maxSpeed == 0 {
		if omega == 0 {
			return 0
		}
		if omega > 0 {
			return PWMMax
		}
		return -PWMMax
	}
	return roundHalfAwayFromZero(omega * PWMMax / w.maxSpeed)
}

func (w *Wheel) updatePID(deltaTime float64) int {
	errVal := float64(w.targetPWM) - float64(w.angularToPWM(w.measuredSpeed))

	w.cumError += errVal * deltaTime
	if w.IntegralClamp != 0 {
		if w.cumError > w.IntegralClamp {
			w.cumError = w.IntegralClamp
		} else if w.cumError < -w.IntegralClamp {
			w.cumError = -w.IntegralClamp
		}
	}

	derivative := (errVal - w.lastError) / deltaTime
	output := w.kP*errVal + w.kI*w.cumError + w.kD*derivative
	w.lastError = errVal

	pwm := roundHalfAwayFromZero(output)
	if pwm > PWMMax {
		pwm = PWMMax
	}
	if pwm < -PWMMax {
		pwm = -PWMMax
	}
	return pwm
}

// roundHalfAwayFromZero preserves the PWM conversion's rounding
// semantics from: round-half-away-from-zero, not
// round-half-to-even. math.Round already implements this for float64.
func roundHalfAwayFromZero(v float64) int {
	return int(math.Round(v))
}
