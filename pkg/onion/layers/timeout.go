package layers

import (
	"context"
	"time"

	"github.com/matt-usurp/onion/pkg/onion"
)

type result struct {
	out      onion.Output
	err      error
	panicked any
}

// Timeout runs the rest of the chain with a deadline of d. If the deadline
// passes first, it returns Output{timeoutType, d} and the inner chain keeps
// running on a cancelled context until it notices. Cancellation of the
// caller's context is returned as its error. A panic further inside is raised
// again on the caller's goroutine so enclosing layers still see it.
func Timeout(d time.Duration, timeoutType string) onion.Layer {
	return named("timeout", func(ctx context.Context, in onion.Input, next onion.Handler) (onion.Output, error) {
		tctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		done := make(chan result, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					done <- result{panicked: r}
				}
			}()
			out, err := next(tctx, in)
			done <- result{out: out, err: err}
		}()

		select {
		case r := <-done:
			if r.panicked != nil {
				panic(r.panicked)
			}
			if onion.IsCancellationError(r.err) && tctx.Err() != nil && ctx.Err() == nil {
				return onion.NewOutput(timeoutType, d), nil
			}
			return r.out, r.err
		case <-tctx.Done():
			if err := ctx.Err(); err != nil {
				return onion.Output{}, err
			}
			return onion.NewOutput(timeoutType, d), nil
		}
	})
}
