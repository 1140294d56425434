package core

import "testing"

func TestHandleMessageRejectsArgsLenMismatch(t *testing.T) {
	r, _, _ := newTestRobot(10)
	// Stop (primitive type 0) declares argsLen=0 in its low 3 bits, but
	// we pass one argument.
	if r.HandleMessage(0x80, []float64{1}) {
		t.Error("HandleMessage should reject an argsLen mismatch")
	}
	if r.Movements().Len() != 0 {
		t.Error("a rejected command must not mutate the queue")
	}
}

func TestHandleMessageStopClearsIndefinite(t *testing.T) {
	r, _, _ := newTestRobot(10)
	r.Movements().SetIndefinite(SpeedIndefinite{Forward: 5})

	if !r.HandleMessage(0x80, nil) {
		t.Fatal("stop command should succeed")
	}
	v, normalized := r.Movements().Handle(Pose{}, BodyVelocity{}, 1)
	if v != (BodyVelocity{}) || !normalized {
		t.Errorf("after stop, queue should emit Still, got v=%+v normalized=%v", v, normalized)
	}
}

func TestHandleMessageSpeedIndefinite(t *testing.T) {
	r, _, _ := newTestRobot(10)
	// movement flag + primitiveType=1 + argsLen=3: 0b1_0001_011 = 0x8B
	if !r.HandleMessage(0x8B, []float64{0.5, 0.1, 0.2}) {
		t.Fatal("SpeedIndefinite command should succeed")
	}
	v, normalized := r.Movements().Handle(Pose{}, BodyVelocity{}, 1)
	if normalized {
		t.Error("SpeedIndefinite target should not be normalized")
	}
	if v.Forward != 0.5 || v.Strafe != 0.1 || v.Theta != 0.2 {
		t.Errorf("Velocity = %+v, want {0.5 0.1 0.2}", v)
	}
}

func TestHandleMessageSpaceNormSpeedLinearRejectsOutOfRangeNorms(t *testing.T) {
	r, _, _ := newTestRobot(10)
	// movement flag + primitiveType=5 + argsLen=5: 0b1_0101_101 = 0xAD
	if r.HandleMessage(0xAD, []float64{1, 2, 3, 1.5, 0.5}) {
		t.Error("p_norm=1.5 should be rejected")
	}
	if r.Movements().Len() != 0 {
		t.Error("a rejected command must not enqueue anything")
	}
}

func TestHandleMessageGeometrySetterRejectsWrongArgsLen(t *testing.T) {
	r, _, _ := newTestRobot(10)
	// Testers/Setters category (bits 6..5 = 01), subtype 0 (geometry),
	// argsLen=1 (wrong, geometry needs 2): 0b0_01_00_001 = 0x21
	if r.HandleMessage(0x21, []float64{0.05}) {
		t.Error("geometry setter should reject a wrong argsLen")
	}
}

func TestHandleMessageHomeFunction(t *testing.T) {
	r, _, _ := newTestRobot(10)
	if !r.HandleMessage(0x00, nil) {
		t.Error("home with zero prior displacement should succeed")
	}
}

func TestHandleMessageEmergencyStopFunction(t *testing.T) {
	r, _, _ := newTestRobot(10)
	if !r.HandleMessage(0x08, nil) {
		t.Fatal("emergency-stop function should succeed")
	}
	for _, w := range r.wheels {
		if w.MaxSpeed() != 0 {
			t.Error("emergency-stop function should zero every wheel's max speed")
		}
	}
}

func TestHandleMessageMaxSpeedSetterAndTester(t *testing.T) {
	r, _, _ := newTestRobot(10)
	// Testers/Setters category (bits 6..5 = 01), subtype 2 (max wheel
	// speed), argsLen=1: 0b0_01_10_001 = 0x31
	if !r.HandleMessage(0x31, []float64{20}) {
		t.Fatal("max speed setter should succeed")
	}
	for _, w := range r.wheels {
		if w.MaxSpeed() != 20 {
			t.Errorf("MaxSpeed = %v, want 20", w.MaxSpeed())
		}
	}

	// Same subtype with argsLen=0 is the tester: 0b0_01_10_000 = 0x30
	if !r.HandleMessage(0x30, nil) {
		t.Error("max speed tester should report true once max speed is non-zero")
	}
}

func TestHandleMessageGeometrySetter(t *testing.T) {
	r, _, _ := newTestRobot(10)
	// Testers/Setters category, subtype 0 (geometry), argsLen=2:
	// 0b0_01_00_010 = 0x22
	if !r.HandleMessage(0x22, []float64{0.04, 0.18}) {
		t.Fatal("geometry setter should succeed")
	}
	if r.kin.R != 0.04 || r.kin.L != 0.18 {
		t.Errorf("kin = {R:%v L:%v}, want {R:0.04 L:0.18}", r.kin.R, r.kin.L)
	}
}

func TestHandleMessageQueueFullTester(t *testing.T) {
	r, _, _ := newTestRobot(10)
	for i := 0; i < MaxMovements; i++ {
		r.Movements().EnqueueFinite(&SpeedTimeLinear{Duration: 1})
	}
	// Functions category, subtype 3 (queue full), argsLen 0:
	// 0b0_00_11_000 = 0x18
	if !r.HandleMessage(0x18, nil) {
		t.Error("queue-full tester should report true once MaxMovements are queued")
	}
}
