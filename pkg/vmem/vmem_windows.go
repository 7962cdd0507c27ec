//go:build windows

package vmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// modeToProt maps region modes to Windows memory-protection constants.
// https://learn.microsoft.com/en-us/windows/win32/memory/memory-protection-constants
var modeToProt = map[Mode]uint32{
	ModeReadWrite:   windows.PAGE_READWRITE,
	ModeReadExecute: windows.PAGE_EXECUTE_READ,
}

// osAllocator backs regions with VirtualAlloc, VirtualProtect and
// VirtualFree. All raw-address handling in the module lives here.
type osAllocator struct{}

// OSAllocator returns the platform allocator.
func OSAllocator() Allocator { return osAllocator{} }

// Supported reports true: the Windows virtual-memory API is always present.
func (osAllocator) Supported() bool { return true }

// Alloc reserves and commits size bytes with PAGE_READWRITE protection,
// letting the OS choose the base address.
func (osAllocator) Alloc(size int) (Handle, error) {
	base, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if base == 0 {
		return Handle{}, fmt.Errorf("VirtualAlloc(%d): %w", size, err)
	}
	return Handle{base: base, size: size}, nil
}

// Write copies data into the committed range.
func (osAllocator) Write(h Handle, data []byte) error {
	buf := unsafe.Slice((*byte)(unsafe.Pointer(h.base)), h.size)
	copy(buf, data)
	return nil
}

// Protect changes the region protection, returning the previous protection
// constant reported by the OS.
func (osAllocator) Protect(h Handle, mode Mode) (uint32, error) {
	prot, ok := modeToProt[mode]
	if !ok {
		return 0, fmt.Errorf("%w: no OS protection for %s", ErrBadTransition, mode)
	}

	var prev uint32
	if err := windows.VirtualProtect(h.base, uintptr(h.size), prot, &prev); err != nil {
		return 0, fmt.Errorf("VirtualProtect(%s): %w", mode, err)
	}
	return prev, nil
}

// Free releases the full reserved range. Size must be zero with MEM_RELEASE.
func (osAllocator) Free(h Handle) error {
	if err := windows.VirtualFree(h.base, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("VirtualFree: %w", err)
	}
	return nil
}
