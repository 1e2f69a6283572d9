package hexapod

import (
	"sync"
	"sync/atomic"
	"time"
)

// Rig names for the two pan/tilt servo pairs.
const (
	RigPhone = "phone" // auxiliary phone mount, ports 24/25
	RigHead  = "head"  // built-in Freenove head, ports 6/7
)

// Servo ports for the pan/tilt rigs.
const (
	PhonePanPort  = 24
	PhoneTiltPort = 25
	HeadPanPort   = 6
	HeadTiltPort  = 7
)

// CenterAngle is the neutral pan/tilt position.
const CenterAngle = 90

// DefaultTick is the motion worker period.
const DefaultTick = 10 * time.Millisecond

// DefaultPanTiltStep is the per-request angle change when the caller gives
// no step size.
const DefaultPanTiltStep = 3

// Bounds are the configured pan/tilt clamp limits in degrees.
type Bounds struct {
	PanMin, PanMax   int
	TiltMin, TiltMax int
}

// FullRange returns the unrestricted servo bounds.
func FullRange() Bounds {
	return Bounds{PanMin: 0, PanMax: 180, TiltMin: 0, TiltMax: 180}
}

// OffsetFunc applies a per-port calibration offset to an angle. It is
// produced by the config loader; the core never parses offset files.
type OffsetFunc func(port, angle int) int

type rig struct {
	panPort, tiltPort int
	pan, tilt         int
	hasRelax          bool
}

// Options configure a Controller. Zero values select sensible defaults.
type Options struct {
	Tick    time.Duration // worker tick period, default DefaultTick
	Bounds  Bounds        // pan/tilt clamps, default FullRange
	Offset  OffsetFunc    // servo calibration, default no offset
	Battery BatteryMonitor
	Range   RangeFinder
}

// Controller owns the robot's shared control state: body height, per-rig
// pan/tilt angles, the latest-wins command slot, the stop gate, and the
// active preset id. One mutex guards all of it. Request handlers mutate
// the state; the motion worker drains the slot. Angle computation happens
// under the lock, hardware calls happen after it is released.
type Controller struct {
	act      Actuator // gate-wrapped at construction
	battery  BatteryMonitor
	rng      RangeFinder
	tickRate time.Duration
	bounds   Bounds
	offset   OffsetFunc

	mu           sync.Mutex
	bodyZ        int
	rigs         map[string]*rig
	slot         *Command
	stopAll      bool
	activePreset string
	presetToken  string
	running      bool

	stopCh   chan struct{}
	stopOnce sync.Once

	// Worker diagnostics.
	tickCount  atomic.Uint64
	errorCount atomic.Uint64
}

// New creates a Controller around the given actuator. The actuator is
// wrapped in a GatedActuator bound to this controller's stop flag, so every
// servo write issued through the returned controller observes the gate.
func New(act Actuator, opts Options) *Controller {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.Bounds == (Bounds{}) {
		opts.Bounds = FullRange()
	}
	if opts.Offset == nil {
		opts.Offset = func(port, angle int) int { return clamp(angle, 0, 180) }
	}

	c := &Controller{
		battery:  opts.Battery,
		rng:      opts.Range,
		tickRate: opts.Tick,
		bounds:   opts.Bounds,
		offset:   opts.Offset,
		bodyZ:    ResetZ,
		rigs: map[string]*rig{
			RigPhone: {panPort: PhonePanPort, tiltPort: PhoneTiltPort, pan: CenterAngle, tilt: CenterAngle, hasRelax: true},
			RigHead:  {panPort: HeadPanPort, tiltPort: HeadTiltPort, pan: CenterAngle, tilt: CenterAngle},
		},
		stopCh: make(chan struct{}),
	}
	c.act = NewGatedActuator(act, c)
	return c
}

// StopEngaged reports whether the soft emergency stop is set. It is the
// gate consulted by the GatedActuator and by every effect sequencer step.
func (c *Controller) StopEngaged() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopAll
}

// ActivePreset returns the id of the running preset, or "".
func (c *Controller) ActivePreset() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activePreset
}

// Actuator returns the gate-wrapped actuator. Effect sequencers drive
// servos through it so their writes observe the stop gate too.
func (c *Controller) Actuator() Actuator {
	return c.act
}

// RigSnapshot is one rig's current angles.
type RigSnapshot struct {
	Pan  int `json:"pan"`
	Tilt int `json:"tilt"`
}

// Snapshot is a point-in-time copy of the shared state, returned by every
// inbound operation and broadcast to the dashboard.
type Snapshot struct {
	BodyZ        int                    `json:"body_z"`
	StopAll      bool                   `json:"stop_all"`
	Command      string                 `json:"command,omitempty"`
	ActivePreset string                 `json:"active_preset,omitempty"`
	Running      bool                   `json:"running"`
	Rigs         map[string]RigSnapshot `json:"rigs"`
}

// Snapshot returns a copy of the current shared state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		BodyZ:        c.bodyZ,
		StopAll:      c.stopAll,
		ActivePreset: c.activePreset,
		Running:      c.running,
		Rigs:         make(map[string]RigSnapshot, len(c.rigs)),
	}
	if c.slot != nil {
		s.Command = c.slot.Name
	}
	for name, r := range c.rigs {
		s.Rigs[name] = RigSnapshot{Pan: r.pan, Tilt: r.tilt}
	}
	return s
}
