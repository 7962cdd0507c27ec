// Package telemetry provides structured event capture for the probe.
//
// The probe's purpose is to generate a benign, observable pattern of
// memory-protection changes; the event stream defined here is that pattern
// in machine-readable form. Every protocol step emits one Event, and
// validation harnesses consume the stream to check what their
// instrumentation observed.
//
// # Basic Usage
//
// Callers configure capture by providing a Logger implementation:
//
//	// Human-readable progress lines on stdout
//	cfg.Logger = telemetry.NewConsoleLogger(os.Stdout)
//
//	// In-memory capture for a validation harness
//	rec := &telemetry.Recorder{}
//	cfg.Logger = rec
//
//	// Both at once
//	cfg.Logger = telemetry.NewMultiLogger(
//	    telemetry.NewConsoleLogger(os.Stdout),
//	    rec,
//	)
//
// # Event Types
//
// Each event carries the probe step (acquire, populate, protect, release)
// and one category-specific payload: RegionEvent for lifecycle steps,
// WriteEvent for data population, TransitionEvent for protection changes
// and ErrorEvent for failures.
//
// # Interchange Format
//
// EncodeEvent/DecodeEvent serialize events as canonical CBOR with integer
// keys for compact interchange between a probe embedder and its analysis
// tooling. The standalone probe binary itself writes nothing but console
// lines.
package telemetry
