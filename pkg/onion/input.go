package onion

import (
	"maps"
	"slices"
)

// Input is the open set of named fields flowing inward. Helpers never mutate
// the receiver, so fields seen by outer stages stay intact.
type Input map[string]any

// With returns a copy of in with key set to value.
func (in Input) With(key string, value any) Input {
	out := in.Clone()
	out[key] = value
	return out
}

// Merge returns the union of in and fields, fields winning on collision.
func (in Input) Merge(fields Input) Input {
	out := make(Input, len(in)+len(fields))
	maps.Copy(out, in)
	maps.Copy(out, fields)
	return out
}

func (in Input) Has(key string) bool {
	_, ok := in[key]
	return ok
}

// Clone returns a shallow copy. It is never nil.
func (in Input) Clone() Input {
	out := make(Input, len(in))
	maps.Copy(out, in)
	return out
}

// Keys returns the field names in sorted order.
func (in Input) Keys() []string {
	return slices.Sorted(maps.Keys(in))
}

// Field reads key as a T.
func Field[T any](in Input, key string) (T, bool) {
	var zero T
	raw, ok := in[key]
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
