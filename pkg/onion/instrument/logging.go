package instrument

import (
	"context"
	"log/slog"
	"time"

	"github.com/matt-usurp/onion/pkg/onion"
	"github.com/matt-usurp/onion/pkg/onion/core"
)

// Logging logs the start and end of every stage at level. A nil logger uses
// slog.Default. Failures built with errors.Join also log each cause.
func Logging[I, O any](logger *slog.Logger, level slog.Level) core.Instrument[I, O] {
	if logger == nil {
		logger = slog.Default()
	}

	return func(stage core.Stage, call core.Handler[I, O]) core.Handler[I, O] {
		return func(ctx context.Context, in I) (O, error) {
			if !logger.Enabled(ctx, level) {
				return call(ctx, in)
			}

			attrs := []slog.Attr{
				slog.String("stage", stage.Name()),
				slog.Int("position", stage.Position),
				slog.String("kind", stage.Kind.String()),
			}
			if id, ok := core.InvocationID(ctx); ok {
				attrs = append(attrs, slog.String("invocation", id.String()))
			}
			logger.LogAttrs(ctx, level, "stage started", attrs...)

			start := time.Now()
			out, err := call(ctx, in)
			attrs = append(attrs, slog.Duration("duration", time.Since(start)))

			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
				if errs := onion.GetErrors(err); len(errs) > 1 {
					causes := make([]string, len(errs))
					for i, e := range errs {
						causes[i] = e.Error()
					}
					attrs = append(attrs, slog.Any("causes", causes))
				}
				logger.LogAttrs(ctx, level, "stage failed", attrs...)
				return out, err
			}
			if tag, ok := core.TagOf(out); ok {
				attrs = append(attrs, slog.String("output", tag))
			}
			logger.LogAttrs(ctx, level, "stage finished", attrs...)
			return out, nil
		}
	}
}
