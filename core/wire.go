package core

// Wire command byte layout, MSB→LSB:
//
//	bit 7:       movement flag (1 = Movements category)
//	bits 6..3:   Movements: primitive type 0..7
//	bits 6..5:   non-Movements only: category, Functions (00) or
//	             Testers/Setters (01)
//	bits 4..3:   non-Movements only: subtype, 0..3 within the category
//	bits 2..0:   argsLen, the number of float64 arguments that follow
//
// Movements get the full 4 bits below the flag as primitive type
// (0..15 uses 0..7); every other command packs flag(1) +
// category(2) + subtype(2) + argsLen(3) into the byte with no bit
// shared between fields, which caps each non-Movements category at 4
// subtypes. The Functions and Testers/Setters subtype assignments
// below are this module's own choice within that budget — see
// DESIGN.md.
const (
	wireMovementFlag = 0x80
	wireTypeMask     = 0x0F // bits 6..3, Movements primitive type
	wireSubtypeMask  = 0x03 // bits 4..3, non-Movements subtype
	wireArgsMask     = 0x07 // bits 2..0
)

// HandleMessage decodes and dispatches one wire command.
// It returns false without mutating any state on an unknown category,
// unknown subtype, or an argsLen mismatch against args.
func (r *Robot) HandleMessage(msgByte byte, args []float64) bool {
	argsLen := int(msgByte & wireArgsMask)
	if len(args) != argsLen {
		return false
	}

	if msgByte&wireMovementFlag != 0 {
		primitiveType := int((msgByte >> 3) & wireTypeMask)
		return r.handleMovementCommand(primitiveType, argsLen, args)
	}

	category := (msgByte >> 5) & 0x03
	subtype := int((msgByte >> 3) & wireSubtypeMask)
	switch category {
	case 0b00:
		return r.handleFunction(subtype, argsLen, args)
	case 0b01:
		return r.handleTesterSetter(subtype, argsLen, args)
	default:
		return false
	}
}

func (r *Robot) handleMovementCommand(primitiveType, argsLen int, args []float64) bool {
	switch primitiveType {
	case 0: // stop
		if argsLen != 0 {
			return false
		}
		r.movements.Stop()
		return true

	case 1: // constant speed (F, S, T)
		if argsLen != 3 {
			return false
		}
		r.movements.SetIndefinite(SpeedIndefinite{Forward: args[0], Strafe: args[1], Theta: args[2]})
		return true

	case 2: // constant normalised speed (p, theta_dir, a)
		if argsLen != 3 {
			return false
		}
		r.movements.SetIndefinite(NormSpeedIndefinite{PlanarNorm: args[0], ThetaDir: args[1], AngularNorm: args[2]})
		return true

	case 3: // target pose, time (x, y, phi, duration)
		if argsLen != 4 {
			return false
		}
		return r.movements.EnqueueFinite(&SpaceTimeLinear{X: args[0], Y: args[1], Phi: args[2], Duration: args[3]})

	case 4: // target pose, speed magnitudes (x, y, phi, planar, angular)
		if argsLen != 5 {
			return false
		}
		return r.movements.EnqueueFinite(&SpaceSpeedLinear{
			X: args[0], Y: args[1], Phi: args[2],
			PlanarSpeed: args[3], AngularSpeed: args[4],
		})

	case 5: // target pose, normalised speeds (x, y, phi, p_norm, a_norm)
		if argsLen != 5 {
			return false
		}
		pNorm, aNorm := args[3], args[4]
		if pNorm < 0 || pNorm > 1 || aNorm < 0 || aNorm > 1 {
			return false
		}
		return r.movements.EnqueueFinite(&SpaceNormSpeedLinear{
			X: args[0], Y: args[1], Phi: args[2],
			PlanarNorm: pNorm, AngularNorm: aNorm,
		})

	case 6: // speed, time (F, S, T, duration)
		if argsLen != 4 {
			return false
		}
		return r.movements.EnqueueFinite(&SpeedTimeLinear{
			Forward: args[0], Strafe: args[1], Theta: args[2], Duration: args[3],
		})

	case 7: // normalised speed, time (p, theta_dir, a, duration)
		if argsLen != 4 {
			return false
		}
		return r.movements.EnqueueFinite(&NormSpeedTimeLinear{
			PlanarNorm: args[0], ThetaDir: args[1], AngularNorm: args[2], Duration: args[3],
		})

	default:
		return false
	}
}

// handleTesterSetter implements this module's own mapping for the
// Testers (argsLen=0, boolean queries) / Setters (argsLen>0, refresh
// a derived constant) category — see the byte layout comment at the
// top of this file. The
// 2-bit subtype field leaves room for exactly four operations, so
// wheel and chassis radius share one "geometry" subtype.
func (r *Robot) handleTesterSetter(subtype, argsLen int, args []float64) bool {
	isSetter := argsLen > 0
	switch subtype {
	case 0: // geometry: wheel radius, robot radius
		if !isSetter {
			return true
		}
		if argsLen != 2 {
			return false
		}
		r.SetWheelRadius(args[0])
		r.SetRobotRadius(args[1])
		return true

	case 1: // PID constants
		if !isSetter {
			return true
		}
		if argsLen != 3 {
			return false
		}
		r.SetPIDConstants(args[0], args[1], args[2])
		return true

	case 2: // max wheel speed
		if !isSetter {
			return r.wheels[WheelRight].MaxSpeed() != 0
		}
		if argsLen != 1 {
			return false
		}
		r.SetMaxWheelSpeed(args[0])
		return true

	case 3: // friction coefficients
		if !isSetter {
			return true
		}
		if argsLen != 3 {
			return false
		}
		r.movements.Friction = Friction{Forward: args[0], Strafe: args[1], Theta: args[2]}
		return true

	default:
		return false
	}
}

// handleFunction implements this module's own mapping for the
// Functions category: zero-or-more-argument operations that are
// neither movements nor constant refreshes.
func (r *Robot) handleFunction(subtype, argsLen int, args []float64) bool {
	switch subtype {
	case 0: // home
		if argsLen != 0 {
			return false
		}
		return r.Home()

	case 1: // emergency stop
		if argsLen != 0 {
			return false
		}
		r.EmergencyStop()
		return true

	case 2: // calibrate max speed (open-loop ticks)
		if argsLen != 1 {
			return false
		}
		ticks := int(args[0])
		if ticks <= 0 {
			return false
		}
		omega := CalibrateMaxSpeed(r.wheels[:], ticks)
		r.SetMaxWheelSpeed(omega)
		return true

	case 3: // queue full?
		if argsLen != 0 {
			return false
		}
		return r.movements.Len() >= MaxMovements

	default:
		return false
	}
}
