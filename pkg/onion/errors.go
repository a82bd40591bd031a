package onion

import "errors"

var (
	// ErrPassthroughLeak is reported when an Output tagged PassthroughType
	// is produced at runtime.
	ErrPassthroughLeak = errors.New("onion: passthrough marker leaked into a runtime output")
	// ErrPanic wraps panics recovered by layers.Recover.
	ErrPanic = errors.New("onion: stage panicked")
)
