package instrument

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/matt-usurp/onion/pkg/onion/core"
)

type Phase string

const (
	PhaseEnter Phase = "enter"
	PhaseExit  Phase = "exit"
)

// Event is one stage entry or exit seen by a Recorder.
type Event struct {
	Phase      Phase
	Stage      core.Stage
	Invocation uuid.UUID
	// Tag and Err are only set on exit.
	Tag string
	Err error
}

// Recorder keeps every stage entry and exit in call order. It is safe for
// concurrent invocations.
type Recorder[I, O any] struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder[I, O any]() *Recorder[I, O] {
	return &Recorder[I, O]{}
}

func (r *Recorder[I, O]) Instrument() core.Instrument[I, O] {
	return func(stage core.Stage, call core.Handler[I, O]) core.Handler[I, O] {
		return func(ctx context.Context, in I) (O, error) {
			id, _ := core.InvocationID(ctx)
			r.add(Event{Phase: PhaseEnter, Stage: stage, Invocation: id})

			out, err := call(ctx, in)

			exit := Event{Phase: PhaseExit, Stage: stage, Invocation: id, Err: err}
			if err == nil {
				exit.Tag, _ = core.TagOf(out)
			}
			r.add(exit)
			return out, err
		}
	}
}

func (r *Recorder[I, O]) add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder[I, O]) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Order renders the events as "phase:stage name".
func (r *Recorder[I, O]) Order() []string {
	events := r.Events()
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, string(e.Phase)+":"+e.Stage.Name())
	}
	return out
}

func (r *Recorder[I, O]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
