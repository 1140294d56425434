// Command omni3-host is an interactive CLI for driving the robot over
// its serial wire protocol: a flag-parsed connection target plus a
// scanner-driven command loop.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"omni3/host/link"
	"omni3/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate")
	verbose = flag.Bool("verbose", false, "Enable verbose output")
)

// Movement primitive type numbers.
const (
	movStop                 = 0
	movSpeedIndefinite      = 1
	movNormSpeedIndefinite  = 2
	movSpaceTimeLinear      = 3
	movSpaceSpeedLinear     = 4
	movSpaceNormSpeedLinear = 5
	movSpeedTimeLinear      = 6
	movNormSpeedTimeLinear  = 7
)

func movementByte(primitiveType int, argsLen int) byte {
	return 0x80 | byte(primitiveType&0x0F)<<3 | byte(argsLen&0x07)
}

// Non-movement category/subtype numbers, this module's own mapping
// (see DESIGN.md): flag(0)|category(2 bits)|subtype(2 bits)|argsLen(3 bits).
const (
	categoryFunctions    = 0
	categoryTesterSetter = 1

	subtypeHome      = 0 // Functions
	subtypeEstop     = 1
	subtypeCalibrate = 2
	subtypeQueueFull = 3

	subtypeGeometry = 0 // Testers/Setters
	subtypePID      = 1
	subtypeMaxSpeed = 2
	subtypeFriction = 3
)

func nonMovementByte(category, subtype, argsLen int) byte {
	return byte(category&0x03)<<5 | byte(subtype&0x03)<<3 | byte(argsLen&0x07)
}

func main() {
	flag.Parse()

	fmt.Println("omni3-host — robot motion control link")
	fmt.Println("========================================")

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	if *verbose {
		fmt.Printf("Connecting to %s at %d baud...\n", cfg.Device, cfg.Baud)
	}

	l, err := link.OpenWithConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer l.Close()
	fmt.Println("Connected.")

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		if err := dispatch(l, fields); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else if *verbose {
			fmt.Printf("sent: %s\n", strings.Join(fields, " "))
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func dispatch(l *link.Link, fields []string) error {
	switch fields[0] {
	case "quit", "exit", "q":
		fmt.Println("Goodbye!")
		os.Exit(0)

	case "help", "?":
		printHelp()

	case "stop":
		return l.Send(movementByte(movStop, 0), nil)

	case "speed":
		args, err := floats(fields[1:], 3)
		if err != nil {
			return err
		}
		return l.Send(movementByte(movSpeedIndefinite, 3), args)

	case "normspeed":
		args, err := floats(fields[1:], 3)
		if err != nil {
			return err
		}
		return l.Send(movementByte(movNormSpeedIndefinite, 3), args)

	case "spacetime":
		args, err := floats(fields[1:], 4)
		if err != nil {
			return err
		}
		return l.Send(movementByte(movSpaceTimeLinear, 4), args)

	case "spacespeed":
		args, err := floats(fields[1:], 5)
		if err != nil {
			return err
		}
		return l.Send(movementByte(movSpaceSpeedLinear, 5), args)

	case "spacenormspeed":
		args, err := floats(fields[1:], 5)
		if err != nil {
			return err
		}
		return l.Send(movementByte(movSpaceNormSpeedLinear, 5), args)

	case "speedtime":
		args, err := floats(fields[1:], 4)
		if err != nil {
			return err
		}
		return l.Send(movementByte(movSpeedTimeLinear, 4), args)

	case "normspeedtime":
		args, err := floats(fields[1:], 4)
		if err != nil {
			return err
		}
		return l.Send(movementByte(movNormSpeedTimeLinear, 4), args)

	case "home":
		return l.Send(nonMovementByte(categoryFunctions, subtypeHome, 0), nil)

	case "estop":
		return l.Send(nonMovementByte(categoryFunctions, subtypeEstop, 0), nil)

	case "calibrate":
		args, err := floats(fields[1:], 1)
		if err != nil {
			return err
		}
		return l.Send(nonMovementByte(categoryFunctions, subtypeCalibrate, 1), args)

	case "queuefull":
		return l.Send(nonMovementByte(categoryFunctions, subtypeQueueFull, 0), nil)

	case "geometry":
		args, err := floats(fields[1:], 2)
		if err != nil {
			return err
		}
		return l.Send(nonMovementByte(categoryTesterSetter, subtypeGeometry, 2), args)

	case "pid":
		args, err := floats(fields[1:], 3)
		if err != nil {
			return err
		}
		return l.Send(nonMovementByte(categoryTesterSetter, subtypePID, 3), args)

	case "maxspeed":
		args, err := floats(fields[1:], 1)
		if err != nil {
			return err
		}
		return l.Send(nonMovementByte(categoryTesterSetter, subtypeMaxSpeed, 1), args)

	case "friction":
		args, err := floats(fields[1:], 3)
		if err != nil {
			return err
		}
		return l.Send(nonMovementByte(categoryTesterSetter, subtypeFriction, 3), args)

	default:
		fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", fields[0])
	}
	return nil
}

func floats(fields []string, want int) ([]float64, error) {
	if len(fields) != want {
		return nil, fmt.Errorf("expected %d argument(s), got %d", want, len(fields))
	}
	out := make([]float64, want)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func printHelp() {
	fmt.Println(`
Available commands:
  stop                                       install Still
  speed F S T                                constant absolute body velocity
  normspeed p theta_dir a                    constant normalised body velocity
  spacetime x y phi duration                 drive to pose over duration
  spacespeed x y phi planar angular          drive to pose at given speeds
  spacenormspeed x y phi p_norm a_norm        drive to pose at normalised speeds
  speedtime F S T duration                   constant velocity for duration
  normspeedtime p theta_dir a duration       constant normalised velocity for duration
  home                                        reset pose (only while stopped)
  estop                                       emergency stop
  calibrate ticks                             drive each wheel open-loop, set max speed
  queuefull                                    query whether the movement queue is full
  geometry wheelRadius robotRadius            set chassis geometry
  pid kP kI kD                                set wheel PID constants
  maxspeed omega                              set max wheel angular speed
  friction fwd strafe theta                   set braking-space friction coefficients
  quit/exit/q                                 exit the program`)
}
