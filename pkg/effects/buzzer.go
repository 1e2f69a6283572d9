package effects

import (
	"context"
	"fmt"
	"time"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/log"
)

// Buzzer modes accepted by TriggerBuzzer.
const (
	BuzzPulse  = "pulse"
	BuzzLong   = "long"
	BuzzTriple = "triple"
	BuzzOn     = "on"
	BuzzOff    = "off"
)

// TriggerBuzzer sounds the buzzer. On and off are synchronous, cancelling
// and joining any running pulse sequence first; the pulse modes spawn a
// sequencer. A pulse always ends with the buzzer off, even when cancelled
// mid-beep.
func (e *Engine) TriggerBuzzer(mode string) (string, string, error) {
	switch mode {
	case BuzzOn:
		e.runner.Cancel(KindBuzzer)
		e.buzzerState(true)
		return "", "Buzzer on", nil
	case BuzzOff:
		e.runner.Cancel(KindBuzzer)
		e.buzzerState(false)
		return "", "Buzzer off", nil
	case BuzzPulse:
		id := e.runner.Start(KindBuzzer, func(ctx context.Context, _ string) {
			e.pulse(ctx, 150*time.Millisecond)
		})
		return id, "Beep pulse triggered", nil
	case BuzzLong:
		id := e.runner.Start(KindBuzzer, func(ctx context.Context, _ string) {
			e.pulse(ctx, 500*time.Millisecond)
		})
		return id, "Long beep", nil
	case BuzzTriple:
		id := e.runner.Start(KindBuzzer, func(ctx context.Context, _ string) {
			for i := 0; i < 3 && e.proceed(ctx); i++ {
				e.pulse(ctx, 150*time.Millisecond)
				if !wait(ctx, 150*time.Millisecond) {
					return
				}
			}
		})
		return id, "Triple beep", nil
	default:
		return "", "unknown buzzer mode", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// pulse sounds the buzzer for d. The trailing off-write is unconditional
// so cancellation can never leave the buzzer screaming.
func (e *Engine) pulse(ctx context.Context, d time.Duration) {
	e.buzzerState(true)
	wait(ctx, d)
	e.buzzerState(false)
}

func (e *Engine) buzzerState(on bool) {
	if err := e.buzzer.SetState(on); err != nil {
		log.Warn("buzzer write failed", "on", on, "error", err)
	}
}
