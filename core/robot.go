package core

// Robot is the top-level coordinator tying together the three Wheels,
// the kinematic transform and the movements scheduler into one
// control-loop tick.
type Robot struct {
	wheels [numWheels]*Wheel
	kin    Kinematics
	clock  Clock

	pose             Pose
	lastDisplacement Displacement
	lastTickMs       uint64

	movements *MovementsQueue
}

// NewRobot constructs a Robot around three already-constructed
// Wheels (indexed WheelRight/WheelBack/WheelLeft), a wheel/chassis
// geometry and PID/friction configuration carried in a RobotParams
// value, and a wall clock. The movements scheduler starts with Still
// as its only primitive. Callers loading params from stable storage
// should use LoadRobotParams first.
func NewRobot(right, back, left *Wheel, params RobotParams, clock Clock) *Robot {
	r := &Robot{
		wheels:    [numWheels]*Wheel{WheelRight: right, WheelBack: back, WheelLeft: left},
		kin:       NewKinematics(params.WheelRadius, params.RobotRadius),
		clock:     clock,
		movements: NewMovementsQueue(),
	}
	params.Apply(r)
	return r
}

// Movements exposes the scheduler so callers (the wire dispatcher,
// tests) can enqueue and configure primitives directly.
func (r *Robot) Movements() *MovementsQueue {
	return r.movements
}

// Pose returns the robot's current world-frame pose estimate.
func (r *Robot) Pose() Pose {
	return r.pose
}

// SetWheelRadius updates the wheel radius R and refreshes the derived
// kinematic constants.
func (r *Robot) SetWheelRadius(radius float64) {
	r.kin.R = radius
}

// SetRobotRadius updates the chassis radius L and refreshes the
// derived kinematic constants.
func (r *Robot) SetRobotRadius(radius float64) {
	r.kin.L = radius
}

// SetPIDConstants applies the given PID gains to all three wheels.
func (r *Robot) SetPIDConstants(kP, kI, kD float64) {
	for _, w := range r.wheels {
		w.SetPID(kP, kI, kD)
	}
}

// SetMaxWheelSpeed applies the given maximum angular speed to all
// three wheels. Passing 0 is equivalent to EmergencyStop.
func (r *Robot) SetMaxWheelSpeed(omega float64) {
	for _, w := range r.wheels {
		w.SetMaxSpeed(omega)
	}
}

// EmergencyStop zeroes every wheel's maximum speed. The stop is not a
// permanent latch: it stays in force until SetMaxWheelSpeed (directly,
// or through the max-speed setter or calibrate wire commands) sets a
// positive maximum speed again.
func (r *Robot) EmergencyStop() {
	for _, w := range r.wheels {
		w.SetMaxSpeed(0)
	}
}

// EmergencyStopped reports whether every wheel is currently latched
// at zero maximum speed, i.e. the robot will not move regardless of
// the commanded velocity.
func (r *Robot) EmergencyStopped() bool {
	for _, w := range r.wheels {
		if w.MaxSpeed() != 0 {
			return false
		}
	}
	return true
}

// Home resets the pose to the origin, succeeding only when the last
// recorded body displacement was exactly zero on all three axes.
func (r *Robot) Home() bool {
	if r.lastDisplacement.Forward != 0 || r.lastDisplacement.Strafe != 0 || r.lastDisplacement.Theta != 0 {
		return false
	}
	r.pose = Pose{}
	return true
}

// Handle runs one control-loop tick: it reads wheel displacements,
// updates odometry, asks the scheduler for a target velocity, drives
// it through the appropriate inverse kinematics, and emergency-stops
// on rejection.
func (r *Robot) Handle() {
	nowMs := NowMillis(r.clock)

	wheelDelta := WheelSpeeds{
		Right: r.wheels[WheelRight].Handle(),
		Back:  r.wheels[WheelBack].Handle(),
		Left:  r.wheels[WheelLeft].Handle(),
	}

	disp := r.kin.Forward(wheelDelta)
	r.pose = Odometry(r.pose, disp)
	r.lastDisplacement = disp

	deltaMs := nowMs - r.lastTickMs
	if deltaMs == 0 {
		deltaMs = 1
	}
	dtSec := float64(deltaMs) / 1000
	currentSpeed := BodyVelocity{
		Forward: disp.Forward / dtSec,
		Strafe:  disp.Strafe / dtSec,
		Theta:   disp.Theta / dtSec,
	}

	target, normalized := r.movements.Handle(r.pose, currentSpeed, nowMs)

	var ok bool
	if normalized {
		ok = r.applyNormalized(target)
	} else {
		ok = r.applyAbsolute(target)
	}
	if !ok {
		r.EmergencyStop()
	}

	r.lastTickMs = nowMs
}

func (r *Robot) applyAbsolute(target BodyVelocity) bool {
	speeds := r.kin.Inverse(target)
	okRight := r.wheels[WheelRight].SetSpeed(speeds.Right)
	okBack := r.wheels[WheelBack].SetSpeed(speeds.Back)
	okLeft := r.wheels[WheelLeft].SetSpeed(speeds.Left)
	return okRight && okBack && okLeft
}

func (r *Robot) applyNormalized(target BodyVelocity) bool {
	speeds := r.kin.NormalizedInverse(target)
	okRight := r.wheels[WheelRight].SetNormalizedSpeed(speeds.Right)
	okBack := r.wheels[WheelBack].SetNormalizedSpeed(speeds.Back)
	okLeft := r.wheels[WheelLeft].SetNormalizedSpeed(speeds.Left)
	return okRight && okBack && okLeft
}
