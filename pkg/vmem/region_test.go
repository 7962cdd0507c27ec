package vmem_test

import (
	"errors"
	"testing"

	"github.com/wxprobe/wxprobe-go/internal/probetest"
	"github.com/wxprobe/wxprobe-go/pkg/vmem"
)

func TestModeString(t *testing.T) {
	tests := []struct {
		mode vmem.Mode
		want string
	}{
		{vmem.ModeUnallocated, "UNALLOCATED"},
		{vmem.ModeReadWrite, "RW"},
		{vmem.ModeReadExecute, "RX"},
		{vmem.ModeReleased, "RELEASED"},
		{vmem.Mode(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAcquireInvalidSize(t *testing.T) {
	alloc := &probetest.FakeAllocator{}

	for _, size := range []int{0, -1, -4096} {
		if _, err := vmem.Acquire(alloc, size); !errors.Is(err, vmem.ErrInvalidSize) {
			t.Errorf("Acquire(%d) error = %v, want ErrInvalidSize", size, err)
		}
	}
	if len(alloc.Calls) != 0 {
		t.Errorf("invalid sizes must not reach the allocator, got calls %v", alloc.Calls)
	}
}

func TestAcquireStartsReadWrite(t *testing.T) {
	alloc := &probetest.FakeAllocator{}

	r, err := vmem.Acquire(alloc, 4096)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if r.Mode() != vmem.ModeReadWrite {
		t.Errorf("Mode = %v, want RW", r.Mode())
	}
	if r.Previous() != vmem.ModeUnallocated {
		t.Errorf("Previous = %v, want UNALLOCATED", r.Previous())
	}
	if r.Handle().Size() != 4096 {
		t.Errorf("Size = %d, want 4096", r.Handle().Size())
	}
	if r.Handle().Base() == 0 {
		t.Error("Base is zero")
	}
}

func TestAcquirePropagatesAllocError(t *testing.T) {
	denied := errors.New("commit denied")
	alloc := &probetest.FakeAllocator{AllocErr: denied}

	if _, err := vmem.Acquire(alloc, 4096); !errors.Is(err, denied) {
		t.Errorf("Acquire error = %v, want %v", err, denied)
	}
}

func TestPopulateBounds(t *testing.T) {
	alloc := &probetest.FakeAllocator{}
	r := mustAcquire(t, alloc, 4096)

	if err := r.Populate(make([]byte, 4097)); !errors.Is(err, vmem.ErrWriteBounds) {
		t.Errorf("oversized Populate error = %v, want ErrWriteBounds", err)
	}
	if alloc.CallCount("write") != 0 {
		t.Error("oversized write must not reach the allocator")
	}

	// Exactly region-sized writes are allowed.
	if err := r.Populate(make([]byte, 4096)); err != nil {
		t.Errorf("full-size Populate failed: %v", err)
	}
}

func TestTransitionRecordsPrevious(t *testing.T) {
	alloc := &probetest.FakeAllocator{}
	r := mustAcquire(t, alloc, 4096)

	prev, err := r.Transition(vmem.ModeReadExecute)
	if err != nil {
		t.Fatalf("Transition RW->RX failed: %v", err)
	}
	if prev != 0x04 {
		t.Errorf("OS previous = %#x, want 0x04 (RW)", prev)
	}
	if r.Mode() != vmem.ModeReadExecute {
		t.Errorf("Mode = %v, want RX", r.Mode())
	}
	if r.Previous() != vmem.ModeReadWrite {
		t.Errorf("Previous = %v, want RW", r.Previous())
	}

	prev, err = r.Transition(vmem.ModeReadWrite)
	if err != nil {
		t.Fatalf("Transition RX->RW failed: %v", err)
	}
	if prev != 0x20 {
		t.Errorf("OS previous = %#x, want 0x20 (RX)", prev)
	}
	if r.Previous() != vmem.ModeReadExecute {
		t.Errorf("Previous = %v, want RX", r.Previous())
	}
}

func TestTransitionRejectsInvalidTargets(t *testing.T) {
	alloc := &probetest.FakeAllocator{}
	r := mustAcquire(t, alloc, 4096)

	tests := []struct {
		name   string
		target vmem.Mode
	}{
		{"same mode", vmem.ModeReadWrite},
		{"released", vmem.ModeReleased},
		{"unallocated", vmem.ModeUnallocated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Transition(tt.target); !errors.Is(err, vmem.ErrBadTransition) {
				t.Errorf("Transition(%v) error = %v, want ErrBadTransition", tt.target, err)
			}
		})
	}
	if alloc.CallCount("protect") != 0 {
		t.Error("invalid targets must not reach the allocator")
	}
}

func TestTransitionFailureKeepsMode(t *testing.T) {
	denied := errors.New("protect denied")
	alloc := &probetest.FakeAllocator{
		ProtectErr: map[vmem.Mode]error{vmem.ModeReadExecute: denied},
	}
	r := mustAcquire(t, alloc, 4096)

	if _, err := r.Transition(vmem.ModeReadExecute); !errors.Is(err, denied) {
		t.Fatalf("Transition error = %v, want %v", err, denied)
	}
	if r.Mode() != vmem.ModeReadWrite {
		t.Errorf("Mode after denied transition = %v, want RW", r.Mode())
	}
}

func TestReleasedRegionRejectsEverything(t *testing.T) {
	alloc := &probetest.FakeAllocator{}
	r := mustAcquire(t, alloc, 4096)

	if err := r.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if r.Mode() != vmem.ModeReleased {
		t.Fatalf("Mode = %v, want RELEASED", r.Mode())
	}

	if err := r.Populate([]byte("x")); !errors.Is(err, vmem.ErrRegionReleased) {
		t.Errorf("Populate after release error = %v, want ErrRegionReleased", err)
	}
	if _, err := r.Transition(vmem.ModeReadExecute); !errors.Is(err, vmem.ErrRegionReleased) {
		t.Errorf("Transition after release error = %v, want ErrRegionReleased", err)
	}
	if err := r.Release(); !errors.Is(err, vmem.ErrRegionReleased) {
		t.Errorf("double Release error = %v, want ErrRegionReleased", err)
	}

	// Only the one successful free reached the allocator.
	if alloc.CallCount("free") != 1 {
		t.Errorf("free calls = %d, want 1", alloc.CallCount("free"))
	}
}

func TestReleaseFailureKeepsRegionLive(t *testing.T) {
	denied := errors.New("free denied")
	alloc := &probetest.FakeAllocator{FreeErr: denied}
	r := mustAcquire(t, alloc, 4096)

	if err := r.Release(); !errors.Is(err, denied) {
		t.Fatalf("Release error = %v, want %v", err, denied)
	}
	// A failed release leaves the region live, not half-dead.
	if r.Mode() != vmem.ModeReadWrite {
		t.Errorf("Mode after failed release = %v, want RW", r.Mode())
	}
}

func mustAcquire(t *testing.T, a vmem.Allocator, size int) *vmem.Region {
	t.Helper()
	r, err := vmem.Acquire(a, size)
	if err != nil {
		t.Fatalf("Acquire(%d) failed: %v", size, err)
	}
	return r
}
