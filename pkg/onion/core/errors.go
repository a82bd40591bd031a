package core

import "errors"

var (
	// ErrNilStage is the panic value when a nil layer or terminus is registered.
	ErrNilStage = errors.New("onion: nil stage")
	// ErrComposerSealed is the panic value when a composer is used after End.
	ErrComposerSealed = errors.New("onion: composer already ended")
)
