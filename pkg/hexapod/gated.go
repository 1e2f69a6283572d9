package hexapod

// StopGate reports whether the soft emergency stop is engaged.
type StopGate interface {
	StopEngaged() bool
}

// GatedActuator wraps a real Actuator and silently drops servo-angle writes
// while the stop gate is engaged. It is composed at construction time so
// the motion worker, the pan/tilt handlers, and the effect sequencers all
// go through the same gate.
//
// Gait steps and pose moves are not gated here: the worker refuses to
// execute them itself while stopped, and Relax must always reach the
// hardware so an engaged stop can actually drop PWM.
type GatedActuator struct {
	inner Actuator
	gate  StopGate
}

// NewGatedActuator wraps inner with the given stop gate.
func NewGatedActuator(inner Actuator, gate StopGate) *GatedActuator {
	return &GatedActuator{inner: inner, gate: gate}
}

// ExecuteGaitStep delegates to the wrapped actuator.
func (g *GatedActuator) ExecuteGaitStep(p GaitParams) error {
	return g.inner.ExecuteGaitStep(p)
}

// MoveToPose delegates to the wrapped actuator.
func (g *GatedActuator) MoveToPose(x, y, z int) error {
	return g.inner.MoveToPose(x, y, z)
}

// SetServoAngle forwards the write unless the stop gate is engaged.
func (g *GatedActuator) SetServoAngle(port, angle int) error {
	if g.gate.StopEngaged() {
		return nil
	}
	return g.inner.SetServoAngle(port, angle)
}

// Relax delegates to the wrapped actuator.
func (g *GatedActuator) Relax() error {
	return g.inner.Relax()
}

var _ Actuator = (*GatedActuator)(nil)
