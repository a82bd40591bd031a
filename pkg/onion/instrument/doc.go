// Package instrument provides core.Instrument implementations: an in-memory
// Recorder, slog logging, OpenTelemetry tracing, Prometheus metrics, and a
// guard against leaked passthrough markers. Combine several with
// core.ChainInstruments or by passing them all to Composition.Build.
package instrument
