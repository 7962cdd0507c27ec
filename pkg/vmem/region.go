package vmem

import (
	"errors"
	"fmt"
)

// Region errors.
var (
	// ErrUnsupported indicates the platform lacks the required
	// virtual-memory API.
	ErrUnsupported = errors.New("virtual-memory API not supported on this platform")

	// ErrInvalidSize indicates a non-positive allocation size.
	ErrInvalidSize = errors.New("region size must be positive")

	// ErrRegionReleased indicates an operation on an already-released region.
	ErrRegionReleased = errors.New("region has been released")

	// ErrWriteBounds indicates a write larger than the committed region.
	ErrWriteBounds = errors.New("write exceeds region size")

	// ErrBadTransition indicates a protection transition the region's
	// lifecycle does not permit.
	ErrBadTransition = errors.New("invalid protection transition")
)

// Mode is the protection/lifecycle state of a region.
type Mode uint8

const (
	// ModeUnallocated indicates no region has been acquired yet.
	ModeUnallocated Mode = iota

	// ModeReadWrite indicates read-write protection.
	ModeReadWrite

	// ModeReadExecute indicates read-execute protection.
	ModeReadExecute

	// ModeReleased indicates the region has been returned to the OS.
	ModeReleased
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeUnallocated:
		return "UNALLOCATED"
	case ModeReadWrite:
		return "RW"
	case ModeReadExecute:
		return "RX"
	case ModeReleased:
		return "RELEASED"
	default:
		return "UNKNOWN"
	}
}

// live reports whether a region in this mode still holds OS memory.
func (m Mode) live() bool {
	return m == ModeReadWrite || m == ModeReadExecute
}

// Handle is an opaque token for an OS-allocated region. It carries the base
// address for display purposes only; no dereference is possible through it.
type Handle struct {
	base uintptr
	size int
}

// NewHandle constructs a handle from an OS-assigned base address and size.
// For use by Allocator implementations only.
func NewHandle(base uintptr, size int) Handle {
	return Handle{base: base, size: size}
}

// Base returns the OS-assigned base address. Display only.
func (h Handle) Base() uintptr { return h.base }

// Size returns the committed size in bytes.
func (h Handle) Size() int { return h.size }

// Allocator is the raw OS seam for region operations. Implementations are
// the platform allocator (OSAllocator) and test fakes.
type Allocator interface {
	// Supported reports whether the platform provides the required
	// virtual-memory API. When false, every other method fails with
	// ErrUnsupported.
	Supported() bool

	// Alloc reserves and commits size bytes with read-write protection.
	Alloc(size int) (Handle, error)

	// Write copies data into the start of the region. len(data) must not
	// exceed the handle size; bounds are checked by Region before this
	// is called.
	Write(h Handle, data []byte) error

	// Protect changes the region protection to mode and returns the
	// OS-reported previous protection value.
	Protect(h Handle, mode Mode) (prev uint32, err error)

	// Free returns the region to the OS. The handle is invalid afterwards.
	Free(h Handle) error
}

// Region is a single allocated memory region with lifecycle enforcement.
// A Region is not safe for concurrent use; the probe is single-threaded by
// design and every region has exactly one owner.
type Region struct {
	alloc Allocator
	h     Handle
	mode  Mode
	prev  Mode
}

// Acquire reserves and commits a fresh region of size bytes in read-write
// mode from the given allocator.
func Acquire(a Allocator, size int) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	h, err := a.Alloc(size)
	if err != nil {
		return nil, err
	}

	return &Region{
		alloc: a,
		h:     h,
		mode:  ModeReadWrite,
		prev:  ModeUnallocated,
	}, nil
}

// Populate writes data into the start of the region. The protection mode is
// unchanged. Fails if the region is no longer live or data does not fit.
func (r *Region) Populate(data []byte) error {
	if !r.mode.live() {
		return ErrRegionReleased
	}
	if len(data) > r.h.Size() {
		return fmt.Errorf("%w: %d > %d", ErrWriteBounds, len(data), r.h.Size())
	}
	return r.alloc.Write(r.h, data)
}

// Transition changes the region protection to target, recording the prior
// mode. Only read-write and read-execute are valid targets, and the target
// must differ from the current mode. Returns the OS-reported previous
// protection value.
func (r *Region) Transition(target Mode) (uint32, error) {
	if !r.mode.live() {
		return 0, ErrRegionReleased
	}
	if !target.live() || target == r.mode {
		return 0, fmt.Errorf("%w: %s -> %s", ErrBadTransition, r.mode, target)
	}

	prev, err := r.alloc.Protect(r.h, target)
	if err != nil {
		return 0, err
	}

	r.prev = r.mode
	r.mode = target
	return prev, nil
}

// Release returns the region to the OS. On success the handle is invalid
// and every further operation fails with ErrRegionReleased.
func (r *Region) Release() error {
	if !r.mode.live() {
		return ErrRegionReleased
	}

	if err := r.alloc.Free(r.h); err != nil {
		return err
	}

	r.prev = r.mode
	r.mode = ModeReleased
	return nil
}

// Mode returns the current protection/lifecycle mode.
func (r *Region) Mode() Mode { return r.mode }

// Previous returns the mode in force before the last transition.
// Informational only.
func (r *Region) Previous() Mode { return r.prev }

// Handle returns the region's opaque handle for display.
func (r *Region) Handle() Handle { return r.h }
