//go:build !windows

package vmem

// osAllocator is the stub for platforms without the required
// virtual-memory API. Every operation fails with ErrUnsupported.
type osAllocator struct{}

// OSAllocator returns the platform allocator.
func OSAllocator() Allocator { return osAllocator{} }

// Supported reports false: only Windows is a supported target.
func (osAllocator) Supported() bool { return false }

func (osAllocator) Alloc(int) (Handle, error) { return Handle{}, ErrUnsupported }

func (osAllocator) Write(Handle, []byte) error { return ErrUnsupported }

func (osAllocator) Protect(Handle, Mode) (uint32, error) { return 0, ErrUnsupported }

func (osAllocator) Free(Handle) error { return ErrUnsupported }
