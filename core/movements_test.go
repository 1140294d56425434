package core

import (
	"math"
	"testing"
)

func TestRebalanceMagnitudeBoundsSum(t *testing.T) {
	cases := []struct{ m, m0 float64 }{
		{1, 0}, {0, 1}, {0.5, 0.5}, {1, 1}, {0.3, 0.9},
	}
	for _, tc := range cases {
		p := rebalanceMagnitude(tc.m, tc.m0)
		a := rebalanceMagnitude(tc.m0, tc.m)
		if p+a > 1+1e-12 {
			t.Errorf("rebalanceMagnitude(%v,%v)+rebalanceMagnitude(%v,%v) = %v, want <= 1", tc.m, tc.m0, tc.m0, tc.m, p+a)
		}
	}
}

func TestRebalanceMagnitudeZeroInputs(t *testing.T) {
	if got := rebalanceMagnitude(0, 0); got != 0 {
		t.Errorf("rebalanceMagnitude(0,0) = %v, want 0", got)
	}
}

func TestRebalanceSignedPreservesSign(t *testing.T) {
	if got := rebalanceSigned(-0.5, 0.3); got >= 0 {
		t.Errorf("rebalanceSigned(-0.5, 0.3) = %v, want negative", got)
	}
	if got := rebalanceSigned(0.5, 0.3); got <= 0 {
		t.Errorf("rebalanceSigned(0.5, 0.3) = %v, want positive", got)
	}
}

func TestStillIsAlwaysZeroAndNormalized(t *testing.T) {
	v, normalized := Still{}.Velocity(12345)
	if v != (BodyVelocity{}) {
		t.Errorf("Still.Velocity = %+v, want zero", v)
	}
	if !normalized {
		t.Error("Still.Velocity should report normalized=true")
	}
}

func TestTargetTimeMsSubstitutesZeroSentinel(t *testing.T) {
	got := targetTimeMs(0, 0)
	if got != 1 {
		t.Errorf("targetTimeMs(0,0) = %v, want 1 (sentinel)", got)
	}
}

func TestAxisDoneUsesMaxOfBrakingAndTolerance(t *testing.T) {
	if !axisDone(0.005, 0, linearTolerance) {
		t.Error("0.005 should be within linearTolerance with zero braking space")
	}
	if axisDone(0.05, 0, linearTolerance) {
		t.Error("0.05 should exceed linearTolerance with zero braking space")
	}
	if !axisDone(0.05, 0.06, linearTolerance) {
		t.Error("0.05 should be within a larger braking space bound")
	}
}

func TestMovementsQueueBoundsCapacity(t *testing.T) {
	q := NewMovementsQueue()
	for i := 0; i < MaxMovements; i++ {
		if !q.EnqueueFinite(&SpeedTimeLinear{Duration: 1}) {
			t.Fatalf("EnqueueFinite #%d should succeed, queue not yet full", i)
		}
	}
	if q.Len() != MaxMovements {
		t.Fatalf("Len() = %v, want %v", q.Len(), MaxMovements)
	}
	if q.EnqueueFinite(&SpeedTimeLinear{Duration: 1}) {
		t.Error("EnqueueFinite should fail once queue is full")
	}
	if q.Len() != MaxMovements {
		t.Error("a failed EnqueueFinite must not mutate the queue")
	}
}

func TestMovementsQueueFallsBackToIndefiniteWhenEmpty(t *testing.T) {
	q := NewMovementsQueue()
	v, normalized := q.Handle(Pose{}, BodyVelocity{}, 1)
	if v != (BodyVelocity{}) || !normalized {
		t.Errorf("empty queue should fall back to Still, got v=%+v normalized=%v", v, normalized)
	}
}

func TestMovementsQueueDequeuesFinishedHead(t *testing.T) {
	q := NewMovementsQueue()
	q.EnqueueFinite(&SpeedTimeLinear{Forward: 1, Duration: 0})
	q.EnqueueFinite(&SpeedTimeLinear{Forward: 2, Duration: 10})

	// First tick latches startTimeMs=1 for the head movement, with
	// Duration=0 meaning it should finish immediately at the same tick.
	v, _ := q.Handle(Pose{}, BodyVelocity{}, 1)
	if q.Len() != 1 {
		t.Fatalf("Len() = %v after first finished movement, want 1", q.Len())
	}
	if v.Forward != 2 {
		t.Errorf("Velocity.Forward = %v, want 2 (second movement now head)", v.Forward)
	}
}

func TestMovementsQueueStopReinstallsStill(t *testing.T) {
	q := NewMovementsQueue()
	q.SetIndefinite(SpeedIndefinite{Forward: 1})
	q.Stop()
	v, normalized := q.Handle(Pose{}, BodyVelocity{}, 1)
	if v != (BodyVelocity{}) || !normalized {
		t.Errorf("Stop should reinstall Still, got v=%+v normalized=%v", v, normalized)
	}
}

func TestEnqueueFiniteClearsIndefinite(t *testing.T) {
	q := NewMovementsQueue()
	q.SetIndefinite(SpeedIndefinite{Forward: 5})
	q.EnqueueFinite(&SpeedTimeLinear{Forward: 1, Duration: 10})

	v, _ := q.Handle(Pose{}, BodyVelocity{}, 1)
	if v.Forward != 1 {
		t.Errorf("Velocity.Forward = %v, want 1 from the finite movement, not the cleared indefinite one", v.Forward)
	}
}

func TestSpaceSpeedLinearCompletesWhenWithinTolerance(t *testing.T) {
	m := &SpaceSpeedLinear{X: 0, Y: 0, Phi: 0, PlanarSpeed: 1, AngularSpeed: 1}
	done := m.IsFinished(Pose{X: 0, Y: 0, Phi: 0}, Displacement{}, 1)
	if !done {
		t.Error("SpaceSpeedLinear at its target pose should report finished")
	}
}

func TestSpaceSpeedLinearVelocityPointsTowardTarget(t *testing.T) {
	m := &SpaceSpeedLinear{X: 1, Y: 0, Phi: 0, PlanarSpeed: 2, AngularSpeed: 1}
	m.IsFinished(Pose{X: 0, Y: 0, Phi: 0}, Displacement{}, 1)
	v, normalized := m.Velocity(1)
	if normalized {
		t.Error("SpaceSpeedLinear.Velocity should not report normalized")
	}
	if !approxEqual(math.Hypot(v.Forward, v.Strafe), 2, 1e-9) {
		t.Errorf("planar speed magnitude = %v, want 2", math.Hypot(v.Forward, v.Strafe))
	}
}

func TestSpaceNormSpeedLinearReportsNormalized(t *testing.T) {
	m := &SpaceNormSpeedLinear{X: 1, Y: 0, Phi: 0, PlanarNorm: 0.5, AngularNorm: 0.3}
	m.IsFinished(Pose{X: 0, Y: 0, Phi: 0}, Displacement{}, 1)
	_, normalized := m.Velocity(1)
	if !normalized {
		t.Error("SpaceNormSpeedLinear.Velocity should report normalized=true")
	}
}

func TestSpeedTimeLinearFinishesAfterDuration(t *testing.T) {
	m := &SpeedTimeLinear{Forward: 1, Duration: 0.5}
	if m.IsFinished(Pose{}, Displacement{}, 1000) {
		t.Fatal("should not be finished on the first tick")
	}
	if !m.IsFinished(Pose{}, Displacement{}, 1600) {
		t.Error("should be finished 600ms after a 500ms duration started at t=1000")
	}
}

func TestSpeedTimeLinearStartingAtZeroTickDoesNotRelatch(t *testing.T) {
	m := &SpeedTimeLinear{Forward: 1, Duration: 0.5}
	m.IsFinished(Pose{}, Displacement{}, 0)
	if m.startTimeMs != 1 {
		t.Fatalf("startTimeMs = %v, want 1 (zero-tick sentinel)", m.startTimeMs)
	}
	wantTarget := m.targetMs
	// A second tick, still reading 0 from a truncating clock, must not
	// re-latch startTimeMs and push the deadline later.
	m.IsFinished(Pose{}, Displacement{}, 0)
	if m.targetMs != wantTarget {
		t.Errorf("targetMs changed on a repeat zero tick: got %v, want %v", m.targetMs, wantTarget)
	}
}

func TestSpaceTimeLinearStartingAtZeroTickDoesNotRelatch(t *testing.T) {
	m := &SpaceTimeLinear{Duration: 0.5}
	m.IsFinished(Pose{}, Displacement{}, 0)
	if m.startTimeMs != 1 {
		t.Fatalf("startTimeMs = %v, want 1 (zero-tick sentinel)", m.startTimeMs)
	}
}

func TestNormSpeedTimeLinearStartingAtZeroTickDoesNotRelatch(t *testing.T) {
	m := &NormSpeedTimeLinear{Duration: 0.5}
	m.IsFinished(Pose{}, Displacement{}, 0)
	if m.startTimeMs != 1 {
		t.Fatalf("startTimeMs = %v, want 1 (zero-tick sentinel)", m.startTimeMs)
	}
}
