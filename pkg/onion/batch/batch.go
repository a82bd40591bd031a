package batch

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/matt-usurp/onion/pkg/onion/core"
)

// Indexed is an input tagged with its position in the batch.
type Indexed[I any] struct {
	Seq   int
	Value I
}

// Result is the outcome of one invocation.
type Result[I, O any] struct {
	Seq    int
	Input  I
	Output O
	Err    error
}

// FromSlice feeds values into a channel until they run out or ctx is done.
func FromSlice[I any](ctx context.Context, values []I) <-chan Indexed[I] {
	in := make(chan Indexed[I])

	go func() {
		defer close(in)

		for i, v := range values {
			select {
			case in <- Indexed[I]{Seq: i, Value: v}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return in
}

// Run starts lines workers invoking h for every input. The returned channel
// closes once inputs is drained or ctx is done; results finished after ctx
// is done are dropped.
func Run[I, O any](ctx context.Context, h core.Handler[I, O], inputs <-chan Indexed[I], lines int) <-chan Result[I, O] {
	if lines < 1 {
		lines = 1
	}

	out := make(chan Result[I, O])
	wg := &sync.WaitGroup{}

	for range lines {
		wg.Add(1)
		go worker(ctx, h, inputs, out, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func worker[I, O any](ctx context.Context, h core.Handler[I, O], inputs <-chan Indexed[I],
	out chan<- Result[I, O], wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-inputs:
			if !ok {
				return
			}

			o, err := h(ctx, in.Value)
			select {
			case <-ctx.Done():
				return
			case out <- Result[I, O]{Seq: in.Seq, Input: in.Value, Output: o, Err: err}:
			}
		}
	}
}

// Collect drains results until the channel closes or ctx is done and
// returns them ordered by Seq.
func Collect[I, O any](ctx context.Context, results <-chan Result[I, O]) []Result[I, O] {
	res := make([]Result[I, O], 0)

loop:
	for {
		select {
		case r, ok := <-results:
			if !ok {
				break loop
			}
			res = append(res, r)
		case <-ctx.Done():
			break loop
		}
	}

	slices.SortFunc(res, func(a, b Result[I, O]) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return res
}

// RunSlice runs h over values and waits for every result. The worker count
// from WithWorkers takes precedence over lines.
func RunSlice[I, O any](ctx context.Context, h core.Handler[I, O], values []I, lines int) []Result[I, O] {
	return Collect(ctx, Run(ctx, h, FromSlice(ctx, values), Workers(ctx, lines)))
}
