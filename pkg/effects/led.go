package effects

import (
	"context"
	"fmt"
	"time"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/log"
)

// LED modes accepted by TriggerLed.
const (
	LedOff     = "off"
	LedSolid   = "solid"
	LedBlink   = "blink"
	LedBreathe = "breathe"
	LedPolice  = "police"
	LedRainbow = "rainbow"
)

// TriggerLed applies an LED mode. Solid and off take effect synchronously,
// first cancelling and joining any running pattern so the requested state
// sticks; the pattern modes spawn a sequencer that drives the LEDs off and
// exits as soon as the stop gate is engaged or a newer LED effect
// supersedes it. The returned id is non-empty for the spawned modes.
func (e *Engine) TriggerLed(mode string, color Color) (string, string, error) {
	color = color.Clamp()

	switch mode {
	case LedOff:
		e.runner.Cancel(KindLED)
		e.setOff()
		return "", "LEDs off", nil
	case LedSolid:
		e.runner.Cancel(KindLED)
		e.setColor(color)
		return "", fmt.Sprintf("LED solid (%d,%d,%d)", color.R, color.G, color.B), nil
	case LedBlink:
		id := e.runner.Start(KindLED, func(ctx context.Context, _ string) {
			e.blink(ctx, color, 3, 200*time.Millisecond, 150*time.Millisecond)
		})
		return id, fmt.Sprintf("LED blink (%d,%d,%d)", color.R, color.G, color.B), nil
	case LedBreathe:
		id := e.runner.Start(KindLED, func(ctx context.Context, _ string) {
			e.breathe(ctx, color, 2)
		})
		return id, fmt.Sprintf("LED breathe (%d,%d,%d)", color.R, color.G, color.B), nil
	case LedPolice:
		id := e.runner.Start(KindLED, func(ctx context.Context, _ string) {
			e.police(ctx, 6)
		})
		return id, "LED police pattern", nil
	case LedRainbow:
		id := e.runner.Start(KindLED, func(ctx context.Context, _ string) {
			e.rainbow(ctx, 1, 60)
		})
		return id, "LED rainbow", nil
	default:
		return "", "unknown LED mode", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// setColor applies a color and records it as the last one shown. Hardware
// failures are logged and otherwise ignored.
func (e *Engine) setColor(c Color) {
	e.mu.Lock()
	e.lastColor = c
	e.mu.Unlock()
	if err := e.leds.SetColor(c.R, c.G, c.B); err != nil {
		log.Warn("led write failed", "error", err)
	}
}

func (e *Engine) setOff() {
	e.mu.Lock()
	e.lastColor = Color{}
	e.mu.Unlock()
	if err := e.leds.Off(); err != nil {
		log.Warn("led off failed", "error", err)
	}
}

func (e *Engine) blink(ctx context.Context, c Color, times int, onT, offT time.Duration) {
	defer e.setOff()
	for i := 0; i < times && e.proceed(ctx); i++ {
		e.setColor(c)
		if !wait(ctx, onT) {
			return
		}
		e.setOff()
		if !wait(ctx, offT) {
			return
		}
	}
}

func (e *Engine) breathe(ctx context.Context, c Color, cycles int) {
	defer e.setOff()
	for i := 0; i < cycles && e.proceed(ctx); i++ {
		for _, lvl := range breatheLevels() {
			if !e.proceed(ctx) {
				return
			}
			scale := float64(lvl) / 20.0
			e.setColor(Color{
				R: int(float64(c.R) * scale),
				G: int(float64(c.G) * scale),
				B: int(float64(c.B) * scale),
			})
			if !wait(ctx, 60*time.Millisecond) {
				return
			}
		}
	}
}

// breatheLevels ramps brightness 0..20 and back down.
func breatheLevels() []int {
	levels := make([]int, 0, 42)
	for lvl := 0; lvl <= 20; lvl++ {
		levels = append(levels, lvl)
	}
	for lvl := 20; lvl >= 0; lvl-- {
		levels = append(levels, lvl)
	}
	return levels
}

func (e *Engine) police(ctx context.Context, cycles int) {
	defer e.setOff()
	for i := 0; i < cycles && e.proceed(ctx); i++ {
		e.setColor(Color{R: 255})
		if !wait(ctx, 120*time.Millisecond) {
			return
		}
		e.setOff()
		if !wait(ctx, 50*time.Millisecond) {
			return
		}
		e.setColor(Color{B: 255})
		if !wait(ctx, 120*time.Millisecond) {
			return
		}
		e.setOff()
		if !wait(ctx, 50*time.Millisecond) {
			return
		}
	}
}

func (e *Engine) rainbow(ctx context.Context, cycles, steps int) {
	defer e.setOff()
	for i := 0; i < cycles; i++ {
		for k := 0; k < steps; k++ {
			if !e.proceed(ctx) {
				return
			}
			e.setColor(hueToColor(float64(k) / float64(steps)))
			if !wait(ctx, 50*time.Millisecond) {
				return
			}
		}
	}
}

// hueToColor maps a hue in [0,1) to a fully saturated RGB color.
func hueToColor(h float64) Color {
	h *= 6
	i := int(h)
	f := h - float64(i)
	q := int(255 * (1 - f))
	t := int(255 * f)
	switch i {
	case 0:
		return Color{R: 255, G: t}
	case 1:
		return Color{R: q, G: 255}
	case 2:
		return Color{G: 255, B: t}
	case 3:
		return Color{G: q, B: 255}
	case 4:
		return Color{R: t, B: 255}
	default:
		return Color{R: 255, B: q}
	}
}
