package telemetry

import (
	"testing"
	"time"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	// Should not panic with any event type
	event := Event{
		Timestamp: time.Now(),
		RunID:     "test-run",
		Step:      StepAcquire,
		Category:  CategoryLifecycle,
	}

	// Test with nil payloads
	logger.Log(event)

	// Test with region payload
	event.Region = &RegionEvent{Base: 0x1000, Size: 4096, Mode: "RW"}
	logger.Log(event)

	// Test with write payload
	event.Region = nil
	event.Write = &WriteEvent{Length: 64}
	logger.Log(event)

	// Test with transition payload
	event.Write = nil
	event.Transition = &TransitionEvent{OldMode: "RW", NewMode: "RX"}
	logger.Log(event)

	// Test with error payload
	event.Transition = nil
	event.Error = &ErrorEvent{Message: "denied"}
	logger.Log(event)
}

func TestStepString(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{StepNone, "NONE"},
		{StepAcquire, "ACQUIRE"},
		{StepPopulate, "POPULATE"},
		{StepProtect, "PROTECT"},
		{StepRelease, "RELEASE"},
		{Step(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.step.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryLifecycle, "LIFECYCLE"},
		{CategoryData, "DATA"},
		{CategoryTransition, "TRANSITION"},
		{CategoryError, "ERROR"},
		{CategorySkip, "SKIP"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.cat.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
