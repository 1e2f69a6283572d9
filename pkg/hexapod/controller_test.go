package hexapod

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// mockActuator records all hardware calls for testing.
type mockActuator struct {
	mu         sync.Mutex
	gaitCalls  []GaitParams
	poseCalls  [][3]int
	servoCalls []struct{ port, angle int }
	relaxCalls int
	failGait   error
}

func (m *mockActuator) ExecuteGaitStep(p GaitParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGait != nil {
		return m.failGait
	}
	m.gaitCalls = append(m.gaitCalls, p)
	return nil
}

func (m *mockActuator) MoveToPose(x, y, z int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.poseCalls = append(m.poseCalls, [3]int{x, y, z})
	return nil
}

func (m *mockActuator) SetServoAngle(port, angle int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.servoCalls = append(m.servoCalls, struct{ port, angle int }{port, angle})
	return nil
}

func (m *mockActuator) Relax() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relaxCalls++
	return nil
}

func (m *mockActuator) gaitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.gaitCalls)
}

func (m *mockActuator) lastGait() GaitParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gaitCalls[len(m.gaitCalls)-1]
}

func (m *mockActuator) poseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.poseCalls)
}

func (m *mockActuator) relaxCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.relaxCalls
}

func newTestController(act Actuator) *Controller {
	return New(act, Options{Tick: time.Millisecond})
}

func TestLatestCommandWins(t *testing.T) {
	mock := &mockActuator{}
	ctrl := newTestController(mock)

	ctrl.SetCommand("forward")
	ctrl.SetCommand("strafe-left")

	ctrl.tick()

	if mock.gaitCount() != 1 {
		t.Fatalf("expected 1 gait call, got %d", mock.gaitCount())
	}
	want, _ := LookupCommand("strafe-left")
	if got := mock.lastGait(); got != want.Gait {
		t.Errorf("executed gait %+v, want strafe-left %+v", got, want.Gait)
	}
}

func TestUnknownCommandRejected(t *testing.T) {
	mock := &mockActuator{}
	ctrl := newTestController(mock)

	_, _, err := ctrl.SetCommand("moonwalk")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}

	ctrl.tick()
	if mock.gaitCount() != 0 || mock.poseCount() != 0 {
		t.Error("rejected command must not reach the actuator")
	}
	if snap := ctrl.Snapshot(); snap.Command != "" {
		t.Errorf("rejected command must not enter the slot, got %q", snap.Command)
	}
}

func TestSlotClearedAfterExecution(t *testing.T) {
	mock := &mockActuator{}
	ctrl := newTestController(mock)

	ctrl.SetCommand("forward")
	ctrl.tick()

	if snap := ctrl.Snapshot(); snap.Command != "" {
		t.Errorf("slot should be empty after execution, holds %q", snap.Command)
	}

	// A second tick with an empty slot is an idle tick.
	ctrl.tick()
	if mock.gaitCount() != 1 {
		t.Errorf("idle tick must not re-execute, got %d gait calls", mock.gaitCount())
	}
}

func TestHeightRelativeClampsToMax(t *testing.T) {
	mock := &mockActuator{}
	ctrl := newTestController(mock)

	snap, _ := ctrl.SetHeightRelative(1000)
	if snap.BodyZ != MaxZ {
		t.Errorf("body_z = %d, want %d", snap.BodyZ, MaxZ)
	}
	if mock.poseCount() != 1 {
		t.Fatalf("expected exactly 1 pose move, got %d", mock.poseCount())
	}
	if mock.poseCalls[0] != [3]int{0, 0, MaxZ} {
		t.Errorf("pose call = %v, want [0 0 %d]", mock.poseCalls[0], MaxZ)
	}
}

func TestHeightStepsAccumulate(t *testing.T) {
	mock := &mockActuator{}
	ctrl := newTestController(mock)

	// z starts at the reset pose, 15.
	for i := 0; i < 5; i++ {
		ctrl.SetHeightRelative(2)
	}

	snap := ctrl.Snapshot()
	if snap.BodyZ != 25 {
		t.Errorf("body_z = %d, want 25", snap.BodyZ)
	}
	if mock.poseCount() != 5 {
		t.Fatalf("expected 5 pose moves, got %d", mock.poseCount())
	}
	for i, want := range []int{17, 19, 21, 23, 25} {
		if mock.poseCalls[i] != [3]int{0, 0, want} {
			t.Errorf("call %d = %v, want [0 0 %d]", i, mock.poseCalls[i], want)
		}
	}
}

func TestRaiseCommandClampsAtTick(t *testing.T) {
	mock := &mockActuator{}
	ctrl := newTestController(mock)

	ctrl.SetHeightAbsolute(MaxZ)
	mock.mu.Lock()
	mock.poseCalls = nil
	mock.mu.Unlock()

	ctrl.SetCommand("raise")
	ctrl.tick()

	snap := ctrl.Snapshot()
	if snap.BodyZ != MaxZ {
		t.Errorf("body_z = %d, want clamped %d", snap.BodyZ, MaxZ)
	}
	if mock.poseCount() != 1 {
		t.Fatalf("expected 1 pose move, got %d", mock.poseCount())
	}
}

func TestPanFloorsAtMin(t *testing.T) {
	mock := &mockActuator{}
	ctrl := New(mock, Options{Tick: time.Millisecond, Bounds: Bounds{PanMin: 0, PanMax: 180, TiltMin: 0, TiltMax: 180}})

	// Drive pan to 2, then keep panning left with step 5.
	two := 2
	if err := ctrl.PointRig(RigPhone, &two, nil); err != nil {
		t.Fatalf("PointRig: %v", err)
	}
	for i := 0; i < 3; i++ {
		snap, _, err := ctrl.SetPanTilt(RigPhone, ActionPanLeft, 5)
		if err != nil {
			t.Fatalf("SetPanTilt: %v", err)
		}
		if snap.Rigs[RigPhone].Pan != 0 {
			t.Errorf("iteration %d: pan = %d, want floor 0", i, snap.Rigs[RigPhone].Pan)
		}
	}
}

func TestPanTiltUnknownRigAndAction(t *testing.T) {
	ctrl := newTestController(&mockActuator{})

	if _, _, err := ctrl.SetPanTilt("tail", ActionPanLeft, 3); !errors.Is(err, ErrUnknownRig) {
		t.Errorf("expected ErrUnknownRig, got %v", err)
	}
	if _, _, err := ctrl.SetPanTilt(RigPhone, "wiggle", 3); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
	// The head rig has no relax action.
	if _, _, err := ctrl.SetPanTilt(RigHead, ActionRelax, 3); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction for head relax, got %v", err)
	}
}

func TestStopAllIdempotent(t *testing.T) {
	mock := &mockActuator{}
	ctrl := newTestController(mock)

	ctrl.SetCommand("forward")
	ctrl.BeginPreset("demo1", "tok")

	first, _ := ctrl.StopAll()
	second, _ := ctrl.StopAll()

	for i, snap := range []Snapshot{first, second} {
		if !snap.StopAll {
			t.Errorf("call %d: stop not engaged", i+1)
		}
		if snap.Command != "" {
			t.Errorf("call %d: slot not empty, holds %q", i+1, snap.Command)
		}
		if snap.ActivePreset != "" {
			t.Errorf("call %d: active preset not cleared, holds %q", i+1, snap.ActivePreset)
		}
	}
	if first.BodyZ != second.BodyZ || len(first.Rigs) != len(second.Rigs) {
		t.Error("second StopAll changed observable state")
	}
}

func TestResumeAfterStop(t *testing.T) {
	mock := &mockActuator{}
	ctrl := newTestController(mock)

	ctrl.StopAll()
	snap, _, err := ctrl.SetCommand("forward")
	if err != nil {
		t.Fatalf("SetCommand: %v", err)
	}
	if snap.StopAll {
		t.Error("new command must clear the stop gate")
	}

	ctrl.tick()
	if mock.gaitCount() != 1 {
		t.Errorf("expected forward to execute after resume, got %d gait calls", mock.gaitCount())
	}
}

func TestStopBeforeTickSuppressesCommand(t *testing.T) {
	mock := &mockActuator{}
	ctrl := newTestController(mock)

	ctrl.SetCommand("forward")
	ctrl.StopAll() // before any tick

	if mock.relaxCount() == 0 {
		t.Error("StopAll must relax before returning")
	}

	ctrl.tick()
	if mock.gaitCount() != 0 {
		t.Error("forward must never execute after StopAll")
	}
}

func TestStoppedTickRelaxesAndKeepsGate(t *testing.T) {
	mock := &mockActuator{}
	ctrl := newTestController(mock)

	ctrl.StopAll()
	before := mock.relaxCount()
	ctrl.tick()

	if mock.relaxCount() != before+1 {
		t.Error("stopped tick should relax")
	}
	if !ctrl.StopEngaged() {
		t.Error("worker must not clear the stop gate itself")
	}
}

func TestWorkerSurvivesActuatorError(t *testing.T) {
	mock := &mockActuator{failGait: errors.New("servo bus fault")}
	ctrl := newTestController(mock)

	ctrl.SetCommand("forward")
	ctrl.tick()

	// Failure is a skipped tick: slot cleared, worker ready for more.
	if snap := ctrl.Snapshot(); snap.Command != "" {
		t.Errorf("slot should be cleared after failed execution, holds %q", snap.Command)
	}

	mock.mu.Lock()
	mock.failGait = nil
	mock.mu.Unlock()

	ctrl.SetCommand("forward")
	ctrl.tick()
	if mock.gaitCount() != 1 {
		t.Errorf("worker should keep executing after an error, got %d gait calls", mock.gaitCount())
	}
}

func TestGatedActuatorDropsServoWrites(t *testing.T) {
	mock := &mockActuator{}
	ctrl := newTestController(mock)

	ctrl.StopAll()
	if err := ctrl.PointRig(RigPhone, intPtr(60), nil); err != nil {
		t.Fatalf("PointRig: %v", err)
	}

	mock.mu.Lock()
	writes := len(mock.servoCalls)
	mock.mu.Unlock()
	if writes != 0 {
		t.Errorf("servo writes must be dropped while stopped, saw %d", writes)
	}
}

func TestRunStop(t *testing.T) {
	mock := &mockActuator{}
	ctrl := New(mock, Options{Tick: 2 * time.Millisecond})

	done := make(chan struct{})
	go func() {
		ctrl.Run()
		close(done)
	}()

	ctrl.SetCommand("forward")
	time.Sleep(20 * time.Millisecond)
	ctrl.Shutdown()

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("worker did not stop within timeout")
	}

	if mock.gaitCount() != 1 {
		t.Errorf("one queued command should execute exactly once, got %d", mock.gaitCount())
	}
	snap := ctrl.Snapshot()
	if snap.Running {
		t.Error("running flag must be false after shutdown")
	}
	if !snap.StopAll {
		t.Error("shutdown must force the stop gate")
	}
}

func TestSnapshotThreadSafe(t *testing.T) {
	ctrl := newTestController(&mockActuator{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ctrl.SetCommand("forward")
				ctrl.tick()
				_ = ctrl.Snapshot()
			}
		}()
	}
	wg.Wait()
}

func intPtr(v int) *int { return &v }
