package layers

import (
	"context"
	"fmt"

	"github.com/matt-usurp/onion/pkg/onion"
)

// Recover converts a panic further inside into an error wrapping
// onion.ErrPanic. Panics under Timeout reach it as well.
func Recover() onion.Layer {
	return named("recover", func(ctx context.Context, in onion.Input, next onion.Handler) (out onion.Output, err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			out = onion.Output{}
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", onion.ErrPanic, e)
				return
			}
			err = fmt.Errorf("%w: %v", onion.ErrPanic, r)
		}()
		return next(ctx, in)
	})
}
