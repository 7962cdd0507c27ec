package telemetry

import (
	"fmt"
	"io"
	"sync"
)

// ConsoleLogger renders one human-readable line per event to a writer.
// This is what the probe binary attaches to stdout for its progress lines.
type ConsoleLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleLogger creates a ConsoleLogger writing to w.
func NewConsoleLogger(w io.Writer) *ConsoleLogger {
	return &ConsoleLogger{w: w}
}

// Log writes the event as a single line.
func (c *ConsoleLogger) Log(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case event.Category == CategorySkip:
		fmt.Fprintf(c.w, "[*] %s\n", event.Note)
	case event.Error != nil:
		if event.Error.Context != "" {
			fmt.Fprintf(c.w, "[!] %s: %s (%s)\n", event.Step, event.Error.Message, event.Error.Context)
		} else {
			fmt.Fprintf(c.w, "[!] %s: %s\n", event.Step, event.Error.Message)
		}
	case event.Region != nil && event.Step == StepAcquire:
		fmt.Fprintf(c.w, "[+] allocated %d bytes at %#x (%s)\n",
			event.Region.Size, event.Region.Base, event.Region.Mode)
	case event.Region != nil && event.Step == StepRelease:
		fmt.Fprintf(c.w, "[+] released %d bytes at %#x\n",
			event.Region.Size, event.Region.Base)
	case event.Write != nil:
		fmt.Fprintf(c.w, "[+] wrote %d bytes of benign data\n", event.Write.Length)
	case event.Transition != nil:
		fmt.Fprintf(c.w, "[+] protection changed %s -> %s (os previous=%#x)\n",
			event.Transition.OldMode, event.Transition.NewMode, event.Transition.OSPrevious)
	default:
		fmt.Fprintf(c.w, "[+] %s %s\n", event.Step, event.Category)
	}
}

// Compile-time interface satisfaction check.
var _ Logger = (*ConsoleLogger)(nil)
