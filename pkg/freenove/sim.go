package freenove

import (
	"sync"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/log"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/pkg/hexapod"
)

// Simulator is a no-hardware stand-in for the daemon. It tracks the last
// commanded state and answers sensor reads with fixed values, so the full
// stack can run on a dev machine.
type Simulator struct {
	mu      sync.Mutex
	pose    [3]int
	servos  map[int]int
	relaxed bool
	color   [3]int
	buzzer  bool

	// Canned sensor readings.
	DistanceCM float64
	VoltageV   float64
}

// NewSimulator creates a simulator with plausible sensor readings.
func NewSimulator() *Simulator {
	return &Simulator{
		servos:     make(map[int]int),
		DistanceCM: 75,
		VoltageV:   7.8,
	}
}

// ExecuteGaitStep logs the step and marks the servos active.
func (s *Simulator) ExecuteGaitStep(p hexapod.GaitParams) error {
	s.mu.Lock()
	s.relaxed = false
	s.mu.Unlock()
	log.Debug("sim gait step", "mode", p.Mode, "lateral", p.Lateral, "direction", p.Direction, "turn", p.TurnRate)
	return nil
}

// MoveToPose records the commanded pose.
func (s *Simulator) MoveToPose(x, y, z int) error {
	s.mu.Lock()
	s.pose = [3]int{x, y, z}
	s.relaxed = false
	s.mu.Unlock()
	log.Debug("sim pose", "x", x, "y", y, "z", z)
	return nil
}

// SetServoAngle records the commanded angle.
func (s *Simulator) SetServoAngle(port, angle int) error {
	s.mu.Lock()
	s.servos[port] = angle
	s.relaxed = false
	s.mu.Unlock()
	return nil
}

// Relax marks all servos unpowered.
func (s *Simulator) Relax() error {
	s.mu.Lock()
	s.relaxed = true
	s.mu.Unlock()
	return nil
}

// SetColor records the LED color.
func (s *Simulator) SetColor(r, g, b int) error {
	s.mu.Lock()
	s.color = [3]int{r, g, b}
	s.mu.Unlock()
	return nil
}

// Off clears the LED color.
func (s *Simulator) Off() error {
	return s.SetColor(0, 0, 0)
}

// SetState records the buzzer state.
func (s *Simulator) SetState(on bool) error {
	s.mu.Lock()
	s.buzzer = on
	s.mu.Unlock()
	return nil
}

// Distance returns the canned ultrasonic reading.
func (s *Simulator) Distance() (float64, error) {
	return s.DistanceCM, nil
}

// Voltage returns the canned battery reading.
func (s *Simulator) Voltage() (float64, error) {
	return s.VoltageV, nil
}

// Pose returns the last commanded body pose.
func (s *Simulator) Pose() (x, y, z int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose[0], s.pose[1], s.pose[2]
}

// ServoAngle returns the last commanded angle for a port.
func (s *Simulator) ServoAngle(port int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.servos[port]
	return a, ok
}

// Relaxed reports whether the last actuation was a relax.
func (s *Simulator) Relaxed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.relaxed
}

var _ hexapod.Actuator = (*Simulator)(nil)
var _ hexapod.LightStrip = (*Simulator)(nil)
var _ hexapod.Sounder = (*Simulator)(nil)
var _ hexapod.RangeFinder = (*Simulator)(nil)
var _ hexapod.BatteryMonitor = (*Simulator)(nil)
