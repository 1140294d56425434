package core

import (
	"math"
	"testing"
)

func TestOdometryPhiStaysInRange(t *testing.T) {
	pose := Pose{Phi: 6.2}
	next := Odometry(pose, Displacement{Theta: 0.3})

	if next.Phi < 0 || next.Phi >= twoPi {
		t.Fatalf("Phi = %v, want within [0, 2π)", next.Phi)
	}
	want := wrapPhi(6.2 + 0.3)
	if !approxEqual(next.Phi, want, 1e-9) {
		t.Errorf("Phi = %v, want %v", next.Phi, want)
	}
}

func TestOdometryNegativeThetaWraps(t *testing.T) {
	pose := Pose{Phi: 0.1}
	next := Odometry(pose, Displacement{Theta: -0.3})

	if next.Phi < 0 || next.Phi >= twoPi {
		t.Fatalf("Phi = %v, want within [0, 2π)", next.Phi)
	}
}

func TestOdometryPureForwardAtZeroHeading(t *testing.T) {
	pose := Pose{}
	next := Odometry(pose, Displacement{Forward: 1, Strafe: 0, Theta: 0})

	if !approxEqual(next.X, 1, 1e-12) || !approxEqual(next.Y, 0, 1e-12) {
		t.Errorf("pose = %+v, want X=1,Y=0", next)
	}
}

func TestOdometryUsesMidpointHeading(t *testing.T) {
	// A quarter turn while also moving forward should land the
	// position using the average of the start and end heading, not
	// either endpoint alone.
	pose := Pose{Phi: 0}
	d := Displacement{Forward: 1, Strafe: 0, Theta: math.Pi / 2}
	next := Odometry(pose, d)

	alpha := math.Pi / 4
	wantX := math.Cos(alpha)
	wantY := math.Sin(alpha)

	if !approxEqual(next.X, wantX, 1e-9) || !approxEqual(next.Y, wantY, 1e-9) {
		t.Errorf("pose = %+v, want X=%v,Y=%v", next, wantX, wantY)
	}
}

func TestWrapPhiHandlesLargeMultiples(t *testing.T) {
	got := wrapPhi(10 * math.Pi)
	if !approxEqual(got, 0, 1e-9) {
		t.Errorf("wrapPhi(10π) = %v, want ~0", got)
	}

	got = wrapPhi(-0.5)
	want := twoPi - 0.5
	if !approxEqual(got, want, 1e-9) {
		t.Errorf("wrapPhi(-0.5) = %v, want %v", got, want)
	}
}
