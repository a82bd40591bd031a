package core

import "context"

// Composition is a finished pipeline. It is immutable and safe for
// concurrent use as long as its stages are.
type Composition[I, O any] struct {
	layers   []Layer[I, O]
	terminus Terminus[I, O]
	invoke   Handler[I, O]
}

// Layers returns a copy of the registered layers, outermost first.
func (c *Composition[I, O]) Layers() []Layer[I, O] {
	out := make([]Layer[I, O], len(c.layers))
	copy(out, c.layers)
	return out
}

// Terminus returns the terminus bound by End.
func (c *Composition[I, O]) Terminus() Terminus[I, O] {
	return c.terminus
}

// Invoke runs the chain built by End, without instrumentation.
func (c *Composition[I, O]) Invoke(ctx context.Context, in I) (O, error) {
	return c.invoke(ctx, in)
}

// Handler returns the chain built by End as a value.
func (c *Composition[I, O]) Handler() Handler[I, O] {
	return c.invoke
}

// Build produces a fresh chain. With no instruments the result calls the
// stages directly; otherwise every stage, the terminus included, is invoked
// through the combined instrument.
func (c *Composition[I, O]) Build(instruments ...Instrument[I, O]) Handler[I, O] {
	instrument := ChainInstruments(instruments...)
	if instrument == nil {
		return c.fold()
	}

	chain := c.foldInstrumented(instrument)
	return func(ctx context.Context, in I) (O, error) {
		ctx, _ = EnsureInvocationID(ctx)
		return chain(ctx, in)
	}
}

// fold binds the layers right to left around the terminus. An empty
// pipeline is the terminus itself.
func (c *Composition[I, O]) fold() Handler[I, O] {
	var next Handler[I, O] = c.terminus.Invoke
	for i := len(c.layers) - 1; i >= 0; i-- {
		next = bind[I, O](c.layers[i].Invoke, next)
	}
	return next
}

func (c *Composition[I, O]) foldInstrumented(instrument Instrument[I, O]) Handler[I, O] {
	n := len(c.layers)
	next := observe[I, O](instrument, Stage{Position: n, Kind: KindTerminus, Value: c.terminus}, c.terminus.Invoke)
	for i := n - 1; i >= 0; i-- {
		stage := Stage{Position: i, Kind: KindLayer, Value: c.layers[i]}
		next = observe[I, O](instrument, stage, bind[I, O](c.layers[i].Invoke, next))
	}
	return next
}

func bind[I, O any](invoke func(context.Context, I, Handler[I, O]) (O, error), next Handler[I, O]) Handler[I, O] {
	return func(ctx context.Context, in I) (O, error) {
		return invoke(ctx, in, next)
	}
}

// observe defers the instrument call to invocation time so it runs once per
// stage per invocation.
func observe[I, O any](instrument Instrument[I, O], stage Stage, call Handler[I, O]) Handler[I, O] {
	return func(ctx context.Context, in I) (O, error) {
		h := instrument(stage, call)
		if h == nil {
			return call(ctx, in)
		}
		return h(ctx, in)
	}
}
