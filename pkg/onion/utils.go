package onion

import (
	"context"
	"errors"

	"github.com/matt-usurp/onion/pkg/onion/core"
)

// GetErrors flattens an errors.Join result. A nil error gives an empty slice.
func GetErrors(err error) []error {
	if core.IsNil(err) {
		return []error{}
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		return e.Unwrap()
	}

	return []error{err}
}

// IsCancellationError reports whether err comes from a cancelled or expired
// context.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
