package instrument

import (
	"context"
	"fmt"

	"github.com/matt-usurp/onion/pkg/onion"
	"github.com/matt-usurp/onion/pkg/onion/core"
)

// PassthroughGuard fails any stage whose output carries
// onion.PassthroughType. The marker describes intent only and must never
// show up in a runtime value.
func PassthroughGuard() onion.Instrument {
	return func(stage core.Stage, call onion.Handler) onion.Handler {
		return func(ctx context.Context, in onion.Input) (onion.Output, error) {
			out, err := call(ctx, in)
			if err == nil && out.Is(onion.PassthroughType) {
				return onion.Output{}, fmt.Errorf("%w: %s", onion.ErrPassthroughLeak, stage)
			}
			return out, err
		}
	}
}
