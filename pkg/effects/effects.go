// Package effects implements the concurrent effect sequencers: LED
// patterns, buzzer pulses, and multi-step preset demos. Each triggered
// effect is a short-lived, time-paced sequence of actuator calls that runs
// alongside the motion worker and polls the stop gate before every step.
//
// Effects of the same kind are supervised by a Runner: triggering a new
// one requests cancellation of the previous run instead of letting the two
// interleave and fight over hardware state.
package effects

import (
	"context"
	"sync"
	"time"
)

// MotionDriver is what a preset timeline needs from the motion supervisor.
// *hexapod.Controller satisfies it.
type MotionDriver interface {
	// PushCommand overwrites the command slot without clearing the stop
	// gate.
	PushCommand(name string) error

	// PointRig aims a pan/tilt rig at absolute angles; nil leaves an axis
	// unchanged.
	PointRig(rig string, pan, tilt *int) error

	// BeginPreset and EndPreset bracket a preset run for observability
	// and cancellation.
	BeginPreset(name, token string)
	EndPreset(token string)

	// StopEngaged reports the stop gate; every sequence step polls it.
	StopEngaged() bool
}

// LightStrip drives the LED strip (mirrors hexapod.LightStrip).
type LightStrip interface {
	SetColor(r, g, b int) error
	Off() error
}

// Sounder drives the buzzer (mirrors hexapod.Sounder).
type Sounder interface {
	SetState(on bool) error
}

// Color is an RGB triple, each channel 0..255.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Clamp returns the color with each channel restricted to 0..255.
func (c Color) Clamp() Color {
	cl := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	return Color{R: cl(c.R), G: cl(c.G), B: cl(c.B)}
}

// Engine owns the peripherals and spawns effect sequences.
type Engine struct {
	leds   LightStrip
	buzzer Sounder
	motion MotionDriver
	runner *Runner

	mu        sync.Mutex
	lastColor Color
}

// New creates an effect engine over the given peripherals and motion
// supervisor.
func New(leds LightStrip, buzzer Sounder, motion MotionDriver) *Engine {
	return &Engine{
		leds:   leds,
		buzzer: buzzer,
		motion: motion,
		runner: NewRunner(),
	}
}

// LastColor returns the most recently applied LED color.
func (e *Engine) LastColor() Color {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastColor
}

// Quiesce cancels every running effect and forces LEDs and buzzer off.
// Called on shutdown.
func (e *Engine) Quiesce() {
	e.runner.CancelAll()
	e.setOff()
	e.buzzerState(false)
}

// proceed reports whether a sequence may take its next step: the run is
// not cancelled and the stop gate is not engaged.
func (e *Engine) proceed(ctx context.Context) bool {
	return ctx.Err() == nil && !e.motion.StopEngaged()
}

// wait sleeps for d, returning false if the run is cancelled meanwhile.
func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
