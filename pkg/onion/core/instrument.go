package core

// Instrument wraps the invocation of one stage. call is the stage already
// bound to its continuation; the returned Handler must have the same
// contract. It is called once per stage per invocation of the chain.
type Instrument[I, O any] func(stage Stage, call Handler[I, O]) Handler[I, O]

// ChainInstruments combines instruments, the first being outermost. Nil
// entries are skipped; nil is returned when nothing is left.
func ChainInstruments[I, O any](instruments ...Instrument[I, O]) Instrument[I, O] {
	live := make([]Instrument[I, O], 0, len(instruments))
	for _, in := range instruments {
		if in != nil {
			live = append(live, in)
		}
	}

	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}

	return func(stage Stage, call Handler[I, O]) Handler[I, O] {
		h := call
		for i := len(live) - 1; i >= 0; i-- {
			if wrapped := live[i](stage, h); wrapped != nil {
				h = wrapped
			}
		}
		return h
	}
}
