package layers

import (
	"context"

	"github.com/matt-usurp/onion/pkg/onion"
)

type layer struct {
	name string
	fn   onion.LayerFunc
}

func (l *layer) Invoke(ctx context.Context, in onion.Input, next onion.Handler) (onion.Output, error) {
	return l.fn(ctx, in, next)
}

func (l *layer) StageName() string {
	return l.name
}

func named(name string, fn onion.LayerFunc) onion.Layer {
	return &layer{name: name, fn: fn}
}

// Enrich merges fields into the input; fields win on collision.
func Enrich(fields onion.Input) onion.Layer {
	return named("enrich", func(ctx context.Context, in onion.Input, next onion.Handler) (onion.Output, error) {
		return next(ctx, in.Merge(fields))
	})
}

// EnrichFunc merges the fields computed by enrich.
func EnrichFunc(enrich func(ctx context.Context, in onion.Input) onion.Input) onion.Layer {
	return named("enrich", func(ctx context.Context, in onion.Input, next onion.Handler) (onion.Output, error) {
		return next(ctx, in.Merge(enrich(ctx, in)))
	})
}

// Try merges the fields computed by fn. An error stops the chain and is
// returned as is.
func Try(fn func(ctx context.Context, in onion.Input) (onion.Input, error)) onion.Layer {
	return named("try", func(ctx context.Context, in onion.Input, next onion.Handler) (onion.Output, error) {
		fields, err := fn(ctx, in)
		if err != nil {
			return onion.Output{}, err
		}
		return next(ctx, in.Merge(fields))
	})
}

// Validate short-circuits with Output{rejectType, errMsg} when validate
// reports the input invalid.
func Validate(validate func(ctx context.Context, in onion.Input) (valid bool, errMsg string), rejectType string) onion.Layer {
	return named("validate", func(ctx context.Context, in onion.Input, next onion.Handler) (onion.Output, error) {
		if valid, errMsg := validate(ctx, in); !valid {
			return onion.NewOutput(rejectType, errMsg), nil
		}
		return next(ctx, in)
	})
}

// Guard returns check's output without calling next when check says so.
func Guard(check func(ctx context.Context, in onion.Input) (out onion.Output, stop bool)) onion.Layer {
	return named("guard", func(ctx context.Context, in onion.Input, next onion.Handler) (onion.Output, error) {
		if out, stop := check(ctx, in); stop {
			return out, nil
		}
		return next(ctx, in)
	})
}

// Map rewrites successful outputs tagged typ. Other tags and failures pass
// through unchanged.
func Map(typ string, fn func(ctx context.Context, value any) onion.Output) onion.Layer {
	return named("map:"+typ, func(ctx context.Context, in onion.Input, next onion.Handler) (onion.Output, error) {
		out, err := next(ctx, in)
		if err != nil || !out.Is(typ) {
			return out, err
		}
		return fn(ctx, out.Value), nil
	})
}

// Tee calls sideEffect with whatever the inner chain produced and returns it
// verbatim.
func Tee(sideEffect func(ctx context.Context, in onion.Input, out onion.Output, err error)) onion.Layer {
	return named("tee", func(ctx context.Context, in onion.Input, next onion.Handler) (onion.Output, error) {
		out, err := next(ctx, in)
		sideEffect(ctx, in, out, err)
		return out, err
	})
}

// Passthrough forwards input and output untouched.
func Passthrough(name string) onion.Layer {
	return named(name, func(ctx context.Context, in onion.Input, next onion.Handler) (onion.Output, error) {
		return next(ctx, in)
	})
}

// Catch hands inner failures to handle, which may turn them into an output.
func Catch(handle func(ctx context.Context, in onion.Input, err error) (onion.Output, error)) onion.Layer {
	return named("catch", func(ctx context.Context, in onion.Input, next onion.Handler) (onion.Output, error) {
		out, err := next(ctx, in)
		if err != nil {
			return handle(ctx, in, err)
		}
		return out, nil
	})
}
