package core

import "math"

// CalibrateMaxSpeed drives each wheel open-loop at full PWM for the
// given number of ticks and records the largest angular speed
// observed, then returns the minimum across wheels — the speed no
// wheel can be relied on to exceed, and therefore a safe ω_max for
// the whole robot.
//
// The caller is responsible for re-enabling closed-loop control
// afterwards (e.g. by passing the returned value to
// Robot.SetMaxWheelSpeed); every wheel is left driven at STILL PWM on
// return.
func CalibrateMaxSpeed(wheels []*Wheel, ticks int) float64 {
	overallMin := math.Inf(1)
	for _, w := range wheels {
		wheelMax := 0.0
		for i := 0; i < ticks; i++ {
			speed := w.driveOpenLoopTick(PWMMax)
			if math.Abs(speed) > wheelMax {
				wheelMax = math.Abs(speed)
			}
		}
		w.driveOpenLoopTick(StillPWM)
		if wheelMax < overallMin {
			overallMin = wheelMax
		}
	}
	if math.IsInf(overallMin, 1) {
		return 0
	}
	return overallMin
}
