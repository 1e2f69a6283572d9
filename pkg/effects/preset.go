package effects

import (
	"context"
	"fmt"
	"time"
)

// Preset names in the registry.
const (
	PresetPatrol = "demo1"
	PresetGuard  = "demo2"
	PresetParty  = "demo3"
)

// phoneRig is the rig the preset timelines scan with.
const phoneRig = "phone"

// PresetNames returns the known preset names.
func PresetNames() []string {
	return []string{PresetPatrol, PresetGuard, PresetParty}
}

// TriggerPreset starts the named demo timeline. A running preset is
// cancelled first; the new run's id is recorded as the active preset token
// and cleared again on completion or abort.
func (e *Engine) TriggerPreset(name string) (string, string, error) {
	switch name {
	case PresetPatrol, PresetGuard, PresetParty:
	default:
		return "", "unknown preset", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	id := e.runner.Start(KindPreset, func(ctx context.Context, token string) {
		e.runPreset(ctx, name, token)
	})
	return id, "Running " + name, nil
}

// runPreset executes one scripted timeline. Every step polls the stop
// gate; StopAll aborts the sequence within one polling interval and the
// deferred EndPreset leaves the active-preset id consistent.
func (e *Engine) runPreset(ctx context.Context, name, token string) {
	e.motion.BeginPreset(name, token)
	defer e.motion.EndPreset(token)

	go e.pulse(ctx, 150*time.Millisecond)
	if !wait(ctx, 100*time.Millisecond) {
		return
	}

	switch name {
	case PresetPatrol:
		e.demoPatrol(ctx)
	case PresetGuard:
		e.demoGuard(ctx)
	case PresetParty:
		e.demoParty(ctx)
	}
}

// demoPatrol walks forward with a scanning pan, cyan LEDs, and little
// beeps.
func (e *Engine) demoPatrol(ctx context.Context) {
	cyan := Color{G: 200, B: 255}
	e.setColor(cyan)
	e.pushCmd("raise")
	if !wait(ctx, 600*time.Millisecond) {
		return
	}

	for step := 0; step < 4 && e.proceed(ctx); step++ {
		e.pushCmd("forward")
		if !wait(ctx, 600*time.Millisecond) {
			return
		}
		e.aimPan(60)
		if !wait(ctx, 300*time.Millisecond) {
			return
		}
		e.aimPan(120)
		if !wait(ctx, 300*time.Millisecond) {
			return
		}
		if step == 1 || step == 3 {
			go e.pulse(ctx, 100*time.Millisecond)
		}
	}

	e.aimPanTilt(90, 90)
	e.pushCmd("reset-pose")
	if !wait(ctx, 800*time.Millisecond) {
		return
	}
	e.breathe(ctx, cyan, 1)
}

// demoGuard raises to the tabletop pose and turns slowly while the pan rig
// sweeps, red LEDs, short beeps.
func (e *Engine) demoGuard(ctx context.Context) {
	red := Color{R: 255, G: 50, B: 50}
	e.setColor(red)
	e.pushCmd("tabletop-pose")
	if !wait(ctx, time.Second) {
		return
	}

	for i := 0; i < 3 && e.proceed(ctx); i++ {
		e.pushCmd("turn-left")
		if !wait(ctx, 700*time.Millisecond) {
			return
		}
		for _, p := range []int{60, 120, 90} {
			if !e.proceed(ctx) {
				return
			}
			e.aimPan(p)
			if !wait(ctx, 300*time.Millisecond) {
				return
			}
		}
		go e.pulse(ctx, 80*time.Millisecond)
	}

	e.pushCmd("reset-pose")
	if !wait(ctx, 800*time.Millisecond) {
		return
	}
	e.breathe(ctx, red, 1)
}

// demoParty cycles rainbow LEDs through an alternating movement sequence
// with a burst of beeps.
func (e *Engine) demoParty(ctx context.Context) {
	defer e.setOff()
	go e.rainbow(ctx, 1, 60)

	e.pushCmd("raise")
	if !wait(ctx, 600*time.Millisecond) {
		return
	}
	for _, cmd := range []string{"forward", "strafe-right", "backward", "strafe-left", "turn-left", "turn-right"} {
		if !e.proceed(ctx) {
			return
		}
		e.pushCmd(cmd)
		if !wait(ctx, 700*time.Millisecond) {
			return
		}
	}
	for i := 0; i < 3 && e.proceed(ctx); i++ {
		go e.pulse(ctx, 70*time.Millisecond)
		if !wait(ctx, 150*time.Millisecond) {
			return
		}
	}
	e.pushCmd("reset-pose")
	wait(ctx, 800*time.Millisecond)
}

func (e *Engine) pushCmd(name string) {
	// Registry names only; an error here would be a programming mistake,
	// and a rejected push is harmless anyway.
	_ = e.motion.PushCommand(name)
}

func (e *Engine) aimPan(pan int) {
	_ = e.motion.PointRig(phoneRig, &pan, nil)
}

func (e *Engine) aimPanTilt(pan, tilt int) {
	_ = e.motion.PointRig(phoneRig, &pan, &tilt)
}
