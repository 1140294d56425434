//go:build rp2040 || rp2350

package rp2040

import "omni3/core"

// hBridgeImpl realizes core.DirectionMagnitude over a dual-PWM
// H-bridge: FORWARDS writes magnitude on A and 0 on B, BACKWARDS the
// reverse, RELEASED writes 0 on both, BRAKED writes magnitude on
// both.
type hBridgeImpl struct {
	pwm        core.PWMDriver
	pinA, pinB core.PWMPin
	direction  core.Direction
}

func (h *hBridgeImpl) SetDirection(d core.Direction) {
	h.direction = d
}

func (h *hBridgeImpl) SetMagnitude(u uint8) {
	switch h.direction {
	case core.Forwards:
		h.pwm.SetDuty(h.pinA, uint32(u))
		h.pwm.SetDuty(h.pinB, 0)
	case core.Backwards:
		h.pwm.SetDuty(h.pinA, 0)
		h.pwm.SetDuty(h.pinB, uint32(u))
	case core.Braked:
		h.pwm.SetDuty(h.pinA, uint32(u))
		h.pwm.SetDuty(h.pinB, uint32(u))
	default: // Released
		h.pwm.SetDuty(h.pinA, 0)
		h.pwm.SetDuty(h.pinB, 0)
	}
}

// NewHBridgeMotorDriver constructs a core.MotorDriver for a dual-PWM
// H-bridge on pins pinA, pinB.
func NewHBridgeMotorDriver(pwm core.PWMDriver, pinA, pinB core.PWMPin) (*core.MotorDriverBase, error) {
	if err := pwm.ConfigurePin(pinA, core.PWMMax); err != nil {
		return nil, err
	}
	if err := pwm.ConfigurePin(pinB, core.PWMMax); err != nil {
		return nil, err
	}
	impl := &hBridgeImpl{pwm: pwm, pinA: pinA, pinB: pinB}
	base := core.NewMotorDriverBase(impl)
	return &base, nil
}
