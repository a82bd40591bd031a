package instrument

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matt-usurp/onion/pkg/onion/core"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// StageMetrics holds the collectors shared by every chain measured with it.
type StageMetrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewStageMetrics registers the stage collectors on reg, or on the default
// registerer when reg is nil. Collectors already registered under the same
// names are reused.
func NewStageMetrics(reg prometheus.Registerer, namespace string) (*StageMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	invocations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "onion",
		Name:      "stage_invocations_total",
		Help:      "Stage invocations by stage, kind and outcome.",
	}, []string{"stage", "kind", "outcome"}))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "onion",
		Name:      "stage_duration_seconds",
		Help:      "Stage duration including everything inside it.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage", "kind"}))
	if err != nil {
		return nil, err
	}

	return &StageMetrics{invocations: invocations, duration: duration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// Measure counts and times every stage.
func Measure[I, O any](m *StageMetrics) core.Instrument[I, O] {
	return func(stage core.Stage, call core.Handler[I, O]) core.Handler[I, O] {
		name, kind := stage.Name(), stage.Kind.String()
		return func(ctx context.Context, in I) (O, error) {
			start := time.Now()
			out, err := call(ctx, in)
			m.duration.WithLabelValues(name, kind).Observe(time.Since(start).Seconds())

			outcome := OutcomeOK
			if err != nil {
				outcome = OutcomeError
			}
			m.invocations.WithLabelValues(name, kind, outcome).Inc()
			return out, err
		}
	}
}

// Metrics is NewStageMetrics followed by Measure.
func Metrics[I, O any](reg prometheus.Registerer, namespace string) (core.Instrument[I, O], error) {
	m, err := NewStageMetrics(reg, namespace)
	if err != nil {
		return nil, err
	}
	return Measure[I, O](m), nil
}
