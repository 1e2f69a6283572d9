package effects

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/log"
)

// Kind groups effects for supervision: at most one run per kind is
// considered current, and starting a new run cancels the previous one.
type Kind string

const (
	KindLED    Kind = "led"
	KindBuzzer Kind = "buzzer"
	KindPreset Kind = "preset"
)

type run struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
}

// Runner is a supervised registry of in-flight effect runs keyed by kind.
// Cancellation is cooperative: a superseded run aborts at its next step
// check, so a single in-flight hardware call may still land after Start
// returns.
type Runner struct {
	mu     sync.Mutex
	active map[Kind]*run
}

// NewRunner creates an empty runner.
func NewRunner() *Runner {
	return &Runner{active: make(map[Kind]*run)}
}

// Start launches fn as the current run of its kind, cancelling any prior
// same-kind run first. The returned id identifies this run; fn receives it
// along with a context that is cancelled when the run is superseded.
//
// The new run does not begin until the superseded one has fully finished,
// so a cancelled sequence's trailing cleanup writes can never land on top
// of its successor's output.
func (r *Runner) Start(kind Kind, fn func(ctx context.Context, id string)) string {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	rn := &run{id: id, cancel: cancel, done: make(chan struct{})}

	r.mu.Lock()
	prev := r.active[kind]
	if prev != nil {
		log.Debug("cancelling superseded effect", "kind", kind, "id", prev.id)
		prev.cancel()
	}
	r.active[kind] = rn
	r.mu.Unlock()

	go func() {
		defer close(rn.done)
		defer r.finish(kind, rn)
		defer cancel()
		if prev != nil {
			<-prev.done
		}
		fn(ctx, id)
	}()
	return id
}

// Cancel stops the current run of the given kind, if any, and waits for it
// to finish. The synchronous effect modes use it so their write is the last
// one to reach the hardware.
func (r *Runner) Cancel(kind Kind) {
	r.mu.Lock()
	rn := r.active[kind]
	if rn != nil {
		rn.cancel()
	}
	r.mu.Unlock()

	if rn != nil {
		<-rn.done
	}
}

// Running reports whether a run of the given kind is current.
func (r *Runner) Running(kind Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active[kind] != nil
}

// CancelAll requests cancellation of every current run and waits for them
// to finish.
func (r *Runner) CancelAll() {
	r.mu.Lock()
	runs := make([]*run, 0, len(r.active))
	for _, rn := range r.active {
		rn.cancel()
		runs = append(runs, rn)
	}
	r.mu.Unlock()

	for _, rn := range runs {
		<-rn.done
	}
}

func (r *Runner) finish(kind Kind, rn *run) {
	r.mu.Lock()
	if r.active[kind] == rn {
		delete(r.active, kind)
	}
	r.mu.Unlock()
}
