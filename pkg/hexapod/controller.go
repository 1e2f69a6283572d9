package hexapod

import (
	"fmt"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/log"
)

// Pan/tilt actions accepted by SetPanTilt.
const (
	ActionPanLeft  = "pan-left"
	ActionPanRight = "pan-right"
	ActionTiltUp   = "tilt-up"
	ActionTiltDown = "tilt-down"
	ActionCenter   = "center"
	ActionRelax    = "relax"
)

// SetCommand overwrites the command slot with the named movement command.
// There is no queue: an unconsumed prior command is discarded. Issuing a
// movement command is an implicit resume, so the stop gate is cleared.
// Unknown names are rejected without mutating any state.
func (c *Controller) SetCommand(name string) (Snapshot, string, error) {
	cmd, err := LookupCommand(name)
	if err != nil {
		return c.Snapshot(), "unknown hexapod command", err
	}

	c.mu.Lock()
	c.stopAll = false
	inst := cmd
	c.slot = &inst
	snap := c.snapshotLocked()
	c.mu.Unlock()

	return snap, cmd.label(), nil
}

// PushCommand overwrites the command slot without touching the stop gate.
// Scripted preset sequences use it: they poll the gate themselves before
// every step, and must not resurrect motion after a StopAll.
func (c *Controller) PushCommand(name string) error {
	cmd, err := LookupCommand(name)
	if err != nil {
		return err
	}
	c.mu.Lock()
	inst := cmd
	c.slot = &inst
	c.mu.Unlock()
	return nil
}

// StopAll engages the soft emergency stop: the gate is set, the servos are
// relaxed, the command slot is emptied, and any active preset id is
// cleared, all before returning. The flag stays set until a new movement
// or pan/tilt request clears it; no timer ever does.
//
// Relax is issued inside the critical section so that once StopAll
// returns, no command queued before the call can still be picked up by the
// worker. A gait step already in flight cannot be interrupted (cancellation
// is cooperative); it completes and the next tick observes the gate.
func (c *Controller) StopAll() (Snapshot, string) {
	c.mu.Lock()
	c.stopAll = true
	c.slot = nil
	c.activePreset = ""
	c.presetToken = ""
	err := c.act.Relax()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if err != nil {
		log.Warn("relax failed during stop-all", "error", err)
	}
	return snap, "All servos relaxed (legs + pan/tilt)"
}

// SetHeightAbsolute moves the body to height z, clamped into [MinZ, MaxZ].
// Exactly one pose move is issued per call.
func (c *Controller) SetHeightAbsolute(z int) (Snapshot, string) {
	return c.setHeight(func(int) int { return z })
}

// SetHeightRelative adjusts the body height by delta, clamped into
// [MinZ, MaxZ]. Exactly one pose move is issued per call.
func (c *Controller) SetHeightRelative(delta int) (Snapshot, string) {
	return c.setHeight(func(cur int) int { return cur + delta })
}

func (c *Controller) setHeight(next func(cur int) int) (Snapshot, string) {
	c.mu.Lock()
	c.stopAll = false
	z := clamp(next(c.bodyZ), MinZ, MaxZ)
	c.bodyZ = z
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if err := c.act.MoveToPose(0, 0, z); err != nil {
		log.Warn("pose move failed", "z", z, "error", err)
	}
	return snap, fmt.Sprintf("Body height z=%d", z)
}

// SetPanTilt applies one pan/tilt action to the named rig. Angles are
// clamped into the configured bounds; out-of-range is never an error. The
// head rig has no relax action. A valid request clears the stop gate.
// Unknown rigs or actions are rejected without mutating any state.
func (c *Controller) SetPanTilt(rigName, action string, step int) (Snapshot, string, error) {
	if step <= 0 {
		step = DefaultPanTiltStep
	}

	c.mu.Lock()
	r, ok := c.rigs[rigName]
	if !ok {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, "unknown rig", fmt.Errorf("%w: %q", ErrUnknownRig, rigName)
	}

	pan, tilt := r.pan, r.tilt
	relax := false
	switch action {
	case ActionCenter:
		pan, tilt = CenterAngle, CenterAngle
	case ActionPanLeft:
		pan = clamp(pan-step, c.bounds.PanMin, c.bounds.PanMax)
	case ActionPanRight:
		pan = clamp(pan+step, c.bounds.PanMin, c.bounds.PanMax)
	case ActionTiltUp:
		tilt = clamp(tilt-step, c.bounds.TiltMin, c.bounds.TiltMax)
	case ActionTiltDown:
		tilt = clamp(tilt+step, c.bounds.TiltMin, c.bounds.TiltMax)
	case ActionRelax:
		if !r.hasRelax {
			snap := c.snapshotLocked()
			c.mu.Unlock()
			return snap, "rig has no relax", fmt.Errorf("%w: %q for rig %q", ErrUnknownAction, action, rigName)
		}
		relax = true
	default:
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, "unknown pan/tilt action", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	// A pan/tilt request is motion: clear the stop gate so the writes
	// below pass it.
	c.stopAll = false
	r.pan, r.tilt = pan, tilt
	panAngle := c.offset(r.panPort, pan)
	tiltAngle := c.offset(r.tiltPort, tilt)
	panPort, tiltPort := r.panPort, r.tiltPort
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if relax {
		if err := c.act.Relax(); err != nil {
			log.Warn("relax failed", "rig", rigName, "error", err)
		}
		return snap, "PWM off", nil
	}

	if err := c.act.SetServoAngle(panPort, panAngle); err != nil {
		log.Warn("pan write failed", "rig", rigName, "error", err)
	}
	if err := c.act.SetServoAngle(tiltPort, tiltAngle); err != nil {
		log.Warn("tilt write failed", "rig", rigName, "error", err)
	}
	return snap, fmt.Sprintf("pan=%d tilt=%d", pan, tilt), nil
}

// PointRig aims the named rig at absolute angles. A nil pan or tilt leaves
// that axis unchanged. Preset timelines use it for scripted scanning; the
// stop gate is left alone, so while stopped the writes are dropped by the
// GatedActuator.
func (c *Controller) PointRig(rigName string, pan, tilt *int) error {
	c.mu.Lock()
	r, ok := c.rigs[rigName]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownRig, rigName)
	}
	if pan != nil {
		r.pan = clamp(*pan, c.bounds.PanMin, c.bounds.PanMax)
	}
	if tilt != nil {
		r.tilt = clamp(*tilt, c.bounds.TiltMin, c.bounds.TiltMax)
	}
	panAngle := c.offset(r.panPort, r.pan)
	tiltAngle := c.offset(r.tiltPort, r.tilt)
	panPort, tiltPort := r.panPort, r.tiltPort
	c.mu.Unlock()

	if err := c.act.SetServoAngle(panPort, panAngle); err != nil {
		return err
	}
	return c.act.SetServoAngle(tiltPort, tiltAngle)
}

// BeginPreset records the active preset and clears the stop gate so the
// scripted timeline is allowed to move. The token identifies this run;
// EndPreset with a stale token is a no-op.
func (c *Controller) BeginPreset(name, token string) {
	c.mu.Lock()
	c.activePreset = name
	c.presetToken = token
	c.stopAll = false
	c.mu.Unlock()
}

// EndPreset clears the active preset if token still identifies the
// current run. StopAll or a newer preset may already have superseded it.
func (c *Controller) EndPreset(token string) {
	c.mu.Lock()
	if c.presetToken == token {
		c.activePreset = ""
		c.presetToken = ""
	}
	c.mu.Unlock()
}

// Home drives the robot to its startup posture: reset walking height and
// both rigs centered. Called once at process start.
func (c *Controller) Home() error {
	c.SetHeightAbsolute(ResetZ)
	for _, rigName := range []string{RigPhone, RigHead} {
		center := CenterAngle
		if err := c.PointRig(rigName, &center, &center); err != nil {
			return fmt.Errorf("center %s rig: %w", rigName, err)
		}
	}
	return nil
}

// Shutdown stops the worker loop, forces the stop gate, and relaxes the
// servos. In-flight effect sequencers are not joined; their next gate poll
// aborts them.
func (c *Controller) Shutdown() {
	c.stopOnce.Do(func() { close(c.stopCh) })

	c.mu.Lock()
	c.running = false
	c.stopAll = true
	c.slot = nil
	c.activePreset = ""
	c.presetToken = ""
	err := c.act.Relax()
	c.mu.Unlock()

	if err != nil {
		log.Warn("final relax failed", "error", err)
	}
	log.Info("controller shut down")
}

// label returns the human-readable status string for a command.
func (cmd Command) label() string {
	switch cmd.Name {
	case "forward":
		return "Forward"
	case "backward":
		return "Backward"
	case "strafe-left":
		return "Sidestep Left"
	case "strafe-right":
		return "Sidestep Right"
	case "turn-left":
		return "Turn Left"
	case "turn-right":
		return "Turn Right"
	case "raise":
		return "Raise body"
	case "lower":
		return "Lower body"
	case "tabletop-pose":
		return "Tabletop pose"
	case "reset-pose":
		return "Reset pose"
	default:
		return cmd.Name
	}
}
