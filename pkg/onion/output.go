package onion

// PassthroughType is the reserved tag of a stage that does not produce the
// final answer. It only documents intent: at runtime a pass-through layer
// returns the inner Output verbatim, and an Output carrying this tag must
// never reach a caller.
const PassthroughType = "onion.passthrough"

// Output is the tagged result of every stage. Type identifies the shape of
// Value within a pipeline.
type Output struct {
	Type  string
	Value any
}

// NewOutput tags value with typ.
func NewOutput(typ string, value any) Output {
	return Output{Type: typ, Value: value}
}

// Is reports whether the output carries tag typ.
func (o Output) Is(typ string) bool {
	return o.Type == typ
}

// IsZero reports an output without tag and value, as returned next to errors.
func (o Output) IsZero() bool {
	return o.Type == "" && o.Value == nil
}

// OutputTag implements core.Tagged.
func (o Output) OutputTag() string {
	return o.Type
}

// IsOutputType is the function form of Output.Is.
func IsOutputType(o Output, typ string) bool {
	return o.Is(typ)
}

// ValueAs narrows o to a value of type V when its tag is typ.
func ValueAs[V any](o Output, typ string) (V, bool) {
	var zero V
	if o.Type != typ {
		return zero, false
	}
	v, ok := o.Value.(V)
	if !ok {
		return zero, false
	}
	return v, true
}
