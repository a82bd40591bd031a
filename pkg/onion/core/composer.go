package core

import (
	"context"
	"slices"
)

// Composer accumulates layers in execution order, outermost first. It is not
// safe for concurrent use and is consumed by End.
type Composer[I, O any] struct {
	layers []Layer[I, O]
	ended  bool
}

// Create starts an empty pipeline.
func Create[I, O any]() *Composer[I, O] {
	return &Composer[I, O]{}
}

// Use appends layer and returns the composer for chaining.
func (c *Composer[I, O]) Use(layer Layer[I, O]) *Composer[I, O] {
	if c.ended {
		panic(ErrComposerSealed)
	}
	if IsNil(layer) {
		panic(ErrNilStage)
	}
	c.layers = append(c.layers, layer)
	return c
}

// UseFunc registers fn as the next layer inward.
func (c *Composer[I, O]) UseFunc(fn func(ctx context.Context, in I, next Handler[I, O]) (O, error)) *Composer[I, O] {
	return c.Use(LayerFunc[I, O](fn))
}

// Len returns the number of layers registered so far.
func (c *Composer[I, O]) Len() int {
	return len(c.layers)
}

// End binds the terminus and freezes the layers into a Composition. The
// composer cannot be used afterwards.
func (c *Composer[I, O]) End(terminus Terminus[I, O]) *Composition[I, O] {
	if c.ended {
		panic(ErrComposerSealed)
	}
	if IsNil(terminus) {
		panic(ErrNilStage)
	}
	c.ended = true

	comp := &Composition[I, O]{
		layers:   slices.Clone(c.layers),
		terminus: terminus,
	}
	comp.invoke = comp.Build()
	return comp
}

// EndFunc is End for a plain function terminus.
func (c *Composer[I, O]) EndFunc(fn func(ctx context.Context, in I) (O, error)) *Composition[I, O] {
	return c.End(TerminusFunc[I, O](fn))
}
