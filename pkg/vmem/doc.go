// Package vmem provides the single-region virtual-memory abstraction used by
// the probe.
//
// This package handles:
//   - Reserve+commit allocation of one page-granular region
//   - Protection transitions between read-write and read-execute
//   - Release of the region back to the operating system
//   - Lifecycle enforcement (no operation on a released region)
//
// # Ownership
//
// A Region exclusively owns its OS handle. The handle is an opaque token:
// nothing outside the platform allocator dereferences it, and no caller can
// obtain a pointer into the region. Once released, every further operation
// fails with ErrRegionReleased.
//
// # W^X
//
// Mode has no member granting write and execute simultaneously, so a
// writable-and-executable protection state cannot be requested through this
// package at all.
//
// # Platform Support
//
// Only Windows is supported. OSAllocator on other platforms reports
// Supported() == false and fails every operation with ErrUnsupported, so
// callers can take a graceful no-op path.
package vmem
