package batch

import "context"

type OptionKey string

const WorkerOptionKey OptionKey = "worker_options"

type WorkerOptions struct {
	MaxCount int
}

func WithWorkers(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxCount: maxWorkers})
}

// Workers returns the worker count set with WithWorkers, or defaultMaxWorkers.
func Workers(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok && options.MaxCount > 0 {
		return options.MaxCount
	}
	return defaultMaxWorkers
}
