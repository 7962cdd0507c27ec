package telemetry

import (
	"time"
)

// Event represents one observable probe occurrence.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID uniquely identifies the probe run (UUID).
	RunID string `cbor:"2,keyasint"`

	// Step is the protocol step that produced the event.
	Step Step `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	Region     *RegionEvent     `cbor:"5,keyasint,omitempty"` // Acquire/release lifecycle
	Write      *WriteEvent      `cbor:"6,keyasint,omitempty"` // Data population
	Transition *TransitionEvent `cbor:"7,keyasint,omitempty"` // Protection change
	Error      *ErrorEvent      `cbor:"8,keyasint,omitempty"` // Failures at any step

	// Note is free-form text for events without a structured payload,
	// such as the unsupported-platform notice.
	Note string `cbor:"9,keyasint,omitempty"`

	// Version is the probe version that produced the event, so stream
	// consumers can check compatibility.
	Version string `cbor:"10,keyasint,omitempty"`
}

// Step identifies the protocol step an event belongs to.
type Step uint8

const (
	// StepNone indicates an event outside any protocol step,
	// such as the unsupported-platform notice.
	StepNone Step = 0
	// StepAcquire is the reserve+commit allocation step.
	StepAcquire Step = 1
	// StepPopulate is the benign-data write step.
	StepPopulate Step = 2
	// StepProtect is a protection-transition step.
	StepProtect Step = 3
	// StepRelease is the final release step.
	StepRelease Step = 4
)

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepNone:
		return "NONE"
	case StepAcquire:
		return "ACQUIRE"
	case StepPopulate:
		return "POPULATE"
	case StepProtect:
		return "PROTECT"
	case StepRelease:
		return "RELEASE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryLifecycle indicates a region acquisition or release.
	CategoryLifecycle Category = 0
	// CategoryData indicates a data write into the region.
	CategoryData Category = 1
	// CategoryTransition indicates a protection change.
	CategoryTransition Category = 2
	// CategoryError indicates a failed step.
	CategoryError Category = 3
	// CategorySkip indicates the unsupported-platform no-op path.
	CategorySkip Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryLifecycle:
		return "LIFECYCLE"
	case CategoryData:
		return "DATA"
	case CategoryTransition:
		return "TRANSITION"
	case CategoryError:
		return "ERROR"
	case CategorySkip:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// RegionEvent captures region lifecycle data (acquire and release).
type RegionEvent struct {
	// Base is the OS-assigned base address of the region.
	Base uint64 `cbor:"1,keyasint"`

	// Size is the committed size in bytes.
	Size int `cbor:"2,keyasint"`

	// Mode is the protection/lifecycle mode after the step.
	Mode string `cbor:"3,keyasint"`
}

// WriteEvent captures a data-population step.
type WriteEvent struct {
	// Length is the number of bytes written.
	Length int `cbor:"1,keyasint"`
}

// TransitionEvent captures a protection change.
type TransitionEvent struct {
	// OldMode is the mode in force before the transition.
	OldMode string `cbor:"1,keyasint"`

	// NewMode is the mode in force after the transition.
	NewMode string `cbor:"2,keyasint"`

	// OSPrevious is the raw previous-protection value reported by the OS.
	OSPrevious uint32 `cbor:"3,keyasint"`
}

// ErrorEvent captures a failed step.
type ErrorEvent struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what the probe was doing, e.g. "cleanup release".
	Context string `cbor:"2,keyasint,omitempty"`
}
