package instrument

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matt-usurp/onion/pkg/onion/core"
)

const TracerName = "github.com/matt-usurp/onion"

// Tracing starts one span per stage. Inner stages get child spans because the
// span context flows through ctx. A nil tracer uses the global provider.
func Tracing[I, O any](tracer trace.Tracer) core.Instrument[I, O] {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}

	return func(stage core.Stage, call core.Handler[I, O]) core.Handler[I, O] {
		return func(ctx context.Context, in I) (O, error) {
			ctx, span := tracer.Start(ctx, "onion.stage "+stage.Name(),
				trace.WithAttributes(
					attribute.String("onion.stage.name", stage.Name()),
					attribute.Int("onion.stage.position", stage.Position),
					attribute.String("onion.stage.kind", stage.Kind.String()),
				))
			defer span.End()

			if id, ok := core.InvocationID(ctx); ok {
				span.SetAttributes(attribute.String("onion.invocation.id", id.String()))
			}

			out, err := call(ctx, in)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return out, err
			}
			if tag, ok := core.TagOf(out); ok {
				span.SetAttributes(attribute.String("onion.output.type", tag))
			}
			return out, nil
		}
	}
}
