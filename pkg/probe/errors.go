package probe

import (
	"errors"
	"fmt"

	"github.com/wxprobe/wxprobe-go/pkg/vmem"
)

// Driver errors.
var (
	// ErrAllocationFailed indicates the OS denied the reserve+commit
	// allocation. Nothing was acquired, so no cleanup runs.
	ErrAllocationFailed = errors.New("allocation failed")

	// ErrPopulateFailed indicates the benign-data write into the region
	// failed. Handled like a transition failure: cleanup, then propagate.
	ErrPopulateFailed = errors.New("populate failed")

	// ErrReleaseFailed indicates the OS denied the release. Terminal:
	// release is itself the cleanup, so no further cleanup is possible.
	ErrReleaseFailed = errors.New("release failed")
)

// TransitionError indicates the OS denied a protection change. The driver
// attempts a cleanup release before propagating one of these.
type TransitionError struct {
	// From is the mode in force when the transition was requested.
	From vmem.Mode

	// To is the denied target mode.
	To vmem.Mode

	// Err is the underlying OS error.
	Err error
}

// Error returns a description naming both modes.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("protection change %s -> %s failed: %v", e.From, e.To, e.Err)
}

// Unwrap returns the underlying OS error.
func (e *TransitionError) Unwrap() error {
	return e.Err
}
