// Package onion composes middleware pipelines over an open field map (Input)
// and a tagged result value (Output).
//
// A pipeline is built from layers, registered outermost first, and one
// terminus:
//
//	comp := onion.Create().
//		Use(layers.Enrich(onion.Input{"role": "admin"})).
//		EndFunc(func(ctx context.Context, in onion.Input) (onion.Output, error) {
//			return onion.NewOutput("status", 200), nil
//		})
//	out, err := comp.Invoke(ctx, onion.Input{"id": "x"})
//
// The engine lives in package core and is generic; this package instantiates
// it and provides the Input and Output helpers. Ready-made layers are in
// package layers, instruments in package instrument.
package onion
