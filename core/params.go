package core

import (
	"encoding/binary"
	"errors"
	"math"
)

// RobotParamsSize is the encoded size, in bytes, of a RobotParams
// record: nine float64 fields.
const RobotParamsSize = 9 * 8

// RobotParams is the persistent parameter blob read from stable
// storage at start-up. Field order is fixed by the wire format and
// must not be reordered. A Robot can be built either from an
// in-memory instance of this record or by loading one from an
// EEPROM address; NewRobot takes the value directly, and
// LoadRobotParams is the loader collaborator for whichever caller
// owns the storage access.
type RobotParams struct {
	MaxWheelSpeed   float64 // rad/s
	WheelRadius     float64 // m
	RobotRadius     float64 // m
	KP, KI, KD      float64
	FrictionForward float64
	FrictionStrafe  float64
	FrictionAngular float64
}

// ErrShortParamsBuffer is returned by LoadRobotParams when buf is
// smaller than RobotParamsSize.
var ErrShortParamsBuffer = errors.New("core: params buffer too short")

// LoadRobotParams parses a RobotParams record out of buf, little
// endian, field order as declared on RobotParams.
func LoadRobotParams(buf []byte) (RobotParams, error) {
	if len(buf) < RobotParamsSize {
		return RobotParams{}, ErrShortParamsBuffer
	}
	read := func(i int) float64 {
		bits := binary.LittleEndian.Uint64(buf[i*8 : i*8+8])
		return math.Float64frombits(bits)
	}
	return RobotParams{
		MaxWheelSpeed:   read(0),
		WheelRadius:     read(1),
		RobotRadius:     read(2),
		KP:              read(3),
		KI:              read(4),
		KD:              read(5),
		FrictionForward: read(6),
		FrictionStrafe:  read(7),
		FrictionAngular: read(8),
	}, nil
}

// Encode serialises p into buf, which must be at least
// RobotParamsSize bytes long.
func (p RobotParams) Encode(buf []byte) error {
	if len(buf) < RobotParamsSize {
		return ErrShortParamsBuffer
	}
	write := func(i int, v float64) {
		binary.LittleEndian.PutUint64(buf[i*8:i*8+8], math.Float64bits(v))
	}
	write(0, p.MaxWheelSpeed)
	write(1, p.WheelRadius)
	write(2, p.RobotRadius)
	write(3, p.KP)
	write(4, p.KI)
	write(5, p.KD)
	write(6, p.FrictionForward)
	write(7, p.FrictionStrafe)
	write(8, p.FrictionAngular)
	return nil
}

// Apply pushes every field of p into r's wheels and kinematics, the
// same refresh each individual setter performs.
func (p RobotParams) Apply(r *Robot) {
	r.SetWheelRadius(p.WheelRadius)
	r.SetRobotRadius(p.RobotRadius)
	r.SetPIDConstants(p.KP, p.KI, p.KD)
	r.SetMaxWheelSpeed(p.MaxWheelSpeed)
	r.movements.Friction = Friction{
		Forward: p.FrictionForward,
		Strafe:  p.FrictionStrafe,
		Theta:   p.FrictionAngular,
	}
}
