// Package probetest provides a scriptable fake allocator for testing the
// probe without touching real OS memory.
package probetest

import (
	"sync"

	"github.com/wxprobe/wxprobe-go/pkg/vmem"
)

// Simulated Windows protection constants, so the fake can report plausible
// previous-protection values the way VirtualProtect does.
const (
	protReadWrite   uint32 = 0x04
	protReadExecute uint32 = 0x20
)

// FakeAllocator implements vmem.Allocator with scriptable failures and a
// full call trace.
type FakeAllocator struct {
	// Unsupported makes Supported() report false.
	Unsupported bool

	// AllocErr, if set, is returned by Alloc.
	AllocErr error

	// WriteErr, if set, is returned by Write.
	WriteErr error

	// ProtectErr maps a target mode to an error returned when a Protect
	// call requests that mode.
	ProtectErr map[vmem.Mode]error

	// FreeErr, if set, is returned by Free.
	FreeErr error

	mu sync.Mutex

	// Calls is the ordered list of operations attempted: "alloc", "write",
	// "protect", "free".
	Calls []string

	// Protects is the ordered list of modes requested via Protect,
	// including denied requests.
	Protects []vmem.Mode

	// Written is the data passed to the last successful Write.
	Written []byte

	// Freed reports whether Free succeeded.
	Freed bool

	// cur is the simulated current OS protection constant.
	cur uint32
}

var _ vmem.Allocator = (*FakeAllocator)(nil)

// fakeBase is an arbitrary non-null base address for minted handles.
// Nothing ever dereferences it.
const fakeBase = uintptr(0x7f0000)

// Supported reports the scripted platform capability.
func (f *FakeAllocator) Supported() bool { return !f.Unsupported }

// Alloc mints a handle unless AllocErr is scripted.
func (f *FakeAllocator) Alloc(size int) (vmem.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, "alloc")
	if f.AllocErr != nil {
		return vmem.Handle{}, f.AllocErr
	}
	f.cur = protReadWrite
	return vmem.NewHandle(fakeBase, size), nil
}

// Write records the written data unless WriteErr is scripted.
func (f *FakeAllocator) Write(_ vmem.Handle, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, "write")
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.Written = append([]byte(nil), data...)
	return nil
}

// Protect records the requested mode and simulates the OS previous-protection
// return value.
func (f *FakeAllocator) Protect(_ vmem.Handle, mode vmem.Mode) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, "protect")
	f.Protects = append(f.Protects, mode)
	if err := f.ProtectErr[mode]; err != nil {
		return 0, err
	}

	prev := f.cur
	switch mode {
	case vmem.ModeReadWrite:
		f.cur = protReadWrite
	case vmem.ModeReadExecute:
		f.cur = protReadExecute
	}
	return prev, nil
}

// Free records the release unless FreeErr is scripted.
func (f *FakeAllocator) Free(vmem.Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, "free")
	if f.FreeErr != nil {
		return f.FreeErr
	}
	f.Freed = true
	return nil
}

// CallCount returns how many times the named operation was attempted.
func (f *FakeAllocator) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.Calls {
		if c == op {
			n++
		}
	}
	return n
}
