// Package hexapod implements the motion-command supervisor for a six-legged
// robot: a latest-wins command slot drained by a fixed-tick worker, a global
// soft emergency stop that gates all servo writes, and the shared state the
// web layer and effect sequencers operate on.
//
// The package follows the Interface Segregation Principle (ISP) by defining
// small, focused hardware interfaces that can be composed as needed. The
// gait engine, servo driver, and peripherals live behind these interfaces;
// this package owns no knowledge of how a gait is computed.
package hexapod

// GaitParams parameterize one walking-cycle increment, in the wire format
// the Freenove gait engine expects.
type GaitParams struct {
	Mode       int // gait mode (1 = tripod, 2 = wave)
	Lateral    int // sideways offset in mm
	Direction  int // forward/backward offset in mm
	StepHeight int // leg lift height in mm
	TurnRate   int // body rotation per cycle in degrees
}

// GaitStepper executes one parameterized gait step.
type GaitStepper interface {
	ExecuteGaitStep(p GaitParams) error
}

// PoseMover moves the body to an absolute (x, y, z) pose.
type PoseMover interface {
	MoveToPose(x, y, z int) error
}

// ServoWriter sets a single servo angle. All angle writes from the worker,
// the pan/tilt handlers, and the effect sequencers pass through the stop
// gate before reaching a real implementation.
type ServoWriter interface {
	SetServoAngle(port, angle int) error
}

// Relaxer drops PWM on every servo.
type Relaxer interface {
	Relax() error
}

// Actuator is the composite interface for full leg and servo control.
type Actuator interface {
	GaitStepper
	PoseMover
	ServoWriter
	Relaxer
}

// LightStrip drives the onboard LED strip.
type LightStrip interface {
	SetColor(r, g, b int) error
	Off() error
}

// Sounder drives the onboard buzzer.
type Sounder interface {
	SetState(on bool) error
}

// RangeFinder reads the ultrasonic distance sensor in centimeters.
type RangeFinder interface {
	Distance() (float64, error)
}

// BatteryMonitor reads the battery voltage in volts.
type BatteryMonitor interface {
	Voltage() (float64, error)
}
