package core

import (
	"context"
	"fmt"
)

// Handler is one invocable step of a built chain. A returned error is the
// failed result of the step; the output is ignored in that case.
type Handler[I, O any] func(ctx context.Context, in I) (O, error)

// Terminus is the innermost stage. It has no continuation.
type Terminus[I, O any] interface {
	Invoke(ctx context.Context, in I) (O, error)
}

// Layer wraps everything registered after it. It may extend the input before
// calling next, call next at most once (zero times short-circuits), and
// return next's output verbatim or a new one.
type Layer[I, O any] interface {
	Invoke(ctx context.Context, in I, next Handler[I, O]) (O, error)
}

// TerminusFunc adapts a plain function to Terminus.
type TerminusFunc[I, O any] func(ctx context.Context, in I) (O, error)

func (f TerminusFunc[I, O]) Invoke(ctx context.Context, in I) (O, error) {
	return f(ctx, in)
}

// LayerFunc adapts a plain function to Layer.
type LayerFunc[I, O any] func(ctx context.Context, in I, next Handler[I, O]) (O, error)

func (f LayerFunc[I, O]) Invoke(ctx context.Context, in I, next Handler[I, O]) (O, error) {
	return f(ctx, in, next)
}

// Named is implemented by stages that want a readable name in instruments.
type Named interface {
	StageName() string
}

// Tagged is implemented by outputs that carry a discriminating tag.
type Tagged interface {
	OutputTag() string
}

// Kind tells layers and the terminus apart.
type Kind int

const (
	KindLayer Kind = iota
	KindTerminus
)

func (k Kind) String() string {
	switch k {
	case KindLayer:
		return "layer"
	case KindTerminus:
		return "terminus"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Stage describes one stage of a composition to an Instrument.
type Stage struct {
	// Position is 0 for the outermost layer; the terminus sits at len(layers).
	Position int
	Kind     Kind
	// Value is the raw layer or terminus as registered.
	Value any
}

// Name returns the stage's StageName when it has one, its Go type otherwise.
func (s Stage) Name() string {
	if n, ok := s.Value.(Named); ok {
		if name := n.StageName(); name != "" {
			return name
		}
	}
	return fmt.Sprintf("%T", s.Value)
}

func (s Stage) String() string {
	return fmt.Sprintf("%s#%d(%s)", s.Kind, s.Position, s.Name())
}

// TagOf returns the tag of out when it implements Tagged.
func TagOf(out any) (string, bool) {
	t, ok := out.(Tagged)
	if !ok {
		return "", false
	}
	return t.OutputTag(), true
}
