// Package probe implements the protection-transition driver.
//
// The driver executes one fixed five-step protocol over a single memory
// region:
//
//	Acquire(4096)          -> RW
//	Populate(64 bytes)
//	Transition             RW -> RX
//	Transition             RX -> RW   (no code ever runs)
//	Release
//
// The sequence is a telemetry probe: it produces the protection-change
// pattern that "RWX-like" detection logic keys on, while no byte of the
// region is ever executed. There is no retry, no timeout and no
// concurrency; a run either completes or fails fatally.
//
// # Cleanup Discipline
//
// Any failure after acquisition triggers a best-effort release before the
// error propagates, so a failed run never exits holding live OS memory.
// If that cleanup release itself fails, both conditions are reported with
// the triggering error as primary.
//
// # Unsupported Platforms
//
// When the platform allocator reports Supported() == false, Run performs
// zero memory operations and returns a skipped result, letting the binary
// exit cleanly.
package probe
