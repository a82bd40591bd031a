package core

import (
	"context"

	"github.com/google/uuid"
)

type OptionKey string

const InvocationIDKey OptionKey = "invocation_id"

func WithInvocationID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, InvocationIDKey, id)
}

// InvocationID reports the id stamped by an instrumented chain, if any.
func InvocationID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(InvocationIDKey).(uuid.UUID)
	return id, ok
}

// EnsureInvocationID keeps an existing id or stamps a fresh one.
func EnsureInvocationID(ctx context.Context) (context.Context, uuid.UUID) {
	if id, ok := InvocationID(ctx); ok {
		return ctx, id
	}
	id := uuid.New()
	return WithInvocationID(ctx, id), id
}
