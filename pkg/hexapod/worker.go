package hexapod

import (
	"time"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/log"
)

// Run starts the motion worker: an unbounded loop that drains the command
// slot at a fixed tick, performing at most one physical action per cycle.
// Blocks until Shutdown is called. Actuator failures are logged and
// treated as a skipped tick; the worker never terminates on one.
func (c *Controller) Run() {
	ticker := time.NewTicker(c.tickRate)
	defer ticker.Stop()

	c.mu.Lock()
	c.running = true
	c.mu.Unlock()
	log.Info("motion worker started", "tick", c.tickRate)

	for {
		select {
		case <-c.stopCh:
			c.mu.Lock()
			c.running = false
			c.mu.Unlock()
			log.Info("motion worker stopped", "ticks", c.tickCount.Load(), "errors", c.errorCount.Load())
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

// tick executes one worker cycle:
//
//  1. stop engaged: relax, clear the slot, done. The flag itself is left
//     set; only a new movement request clears it.
//  2. empty slot: idle.
//  3. otherwise map the command to exactly one actuator call. Height and
//     pose commands recompute body_z with clamping under the lock before
//     the call; gait commands carry fixed parameters.
//  4. clear the slot only if it still holds the executed instance; a
//     writer may have overwritten it mid-execution, and the newer command
//     must survive to the next tick.
func (c *Controller) tick() {
	c.mu.Lock()
	if c.stopAll {
		c.slot = nil
		err := c.act.Relax()
		c.mu.Unlock()
		if err != nil {
			log.Warn("relax failed while stopped", "error", err)
		}
		return
	}

	cmd := c.slot
	if cmd == nil {
		c.mu.Unlock()
		return
	}

	var exec func() error
	switch cmd.Kind {
	case KindGait:
		p := cmd.Gait
		exec = func() error { return c.act.ExecuteGaitStep(p) }
	case KindHeight:
		z := clamp(c.bodyZ+cmd.DeltaZ, MinZ, MaxZ)
		c.bodyZ = z
		exec = func() error { return c.act.MoveToPose(0, 0, z) }
	case KindPose:
		z := clamp(cmd.ZTo, MinZ, MaxZ)
		c.bodyZ = z
		exec = func() error { return c.act.MoveToPose(0, 0, z) }
	}
	c.mu.Unlock()

	c.tickCount.Add(1)
	if err := exec(); err != nil {
		c.errorCount.Add(1)
		log.Warn("actuator call failed, tick skipped", "command", cmd.Name, "error", err)
	}

	c.mu.Lock()
	if c.slot == cmd {
		c.slot = nil
	}
	c.mu.Unlock()
}
