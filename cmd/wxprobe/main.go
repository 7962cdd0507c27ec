// Command wxprobe is a benign memory-protection transition probe.
//
// It allocates one read-write page, writes printable filler bytes, flips
// the page to read-execute, flips it back to read-write and releases it.
// No code is ever executed from the page. The point of the exercise is the
// protection-change pattern itself: security instrumentation watching for
// "RWX-like" transitions should observe exactly this sequence, making the
// tool useful for validating detection logic against a known-harmless
// source.
//
// Usage:
//
//	wxprobe
//
// The probe takes no arguments and reads no configuration. It prints one
// progress line per successful step and exits 0, or prints a descriptive
// error and exits 1 on the first failure. On platforms without the required
// virtual-memory API (anything but Windows) it prints a single explanatory
// line and exits 0 without touching memory.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wxprobe/wxprobe-go/pkg/probe"
	"github.com/wxprobe/wxprobe-go/pkg/telemetry"
	"github.com/wxprobe/wxprobe-go/pkg/vmem"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, vmem.OSAllocator()))
}

// run wires the driver and maps the outcome to an exit code. Split from
// main so tests can substitute writers and allocator.
func run(stdout, stderr io.Writer, alloc vmem.Allocator) int {
	driver := probe.New(probe.Config{
		Allocator: alloc,
		Logger:    telemetry.NewConsoleLogger(stdout),
	})

	if _, err := driver.Run(); err != nil {
		fmt.Fprintf(stderr, "wxprobe: %v\n", err)
		return 1
	}
	return 0
}
