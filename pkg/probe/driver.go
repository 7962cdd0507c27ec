package probe

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wxprobe/wxprobe-go/pkg/telemetry"
	"github.com/wxprobe/wxprobe-go/pkg/version"
	"github.com/wxprobe/wxprobe-go/pkg/vmem"
)

// Protocol constants. The probe is deliberately not configurable; the
// binary always runs with these values.
const (
	// RegionSize is the size of the probed region in bytes (one page).
	RegionSize = 4096

	// WriteLen is the number of benign bytes written into the region.
	WriteLen = 64
)

// skipNote is the single explanatory line emitted on unsupported platforms.
const skipNote = "platform lacks the required virtual-memory API; nothing to do"

// Config holds driver dependencies. Zero-value fields get defaults: the
// platform allocator, a NoopLogger, RegionSize and WriteLen. The fields
// exist for embedders and fault-injecting tests, not for end users.
type Config struct {
	// Allocator is the raw OS seam for region operations.
	Allocator vmem.Allocator

	// Logger receives one event per step.
	Logger telemetry.Logger

	// Size is the region size in bytes.
	Size int

	// WriteLen is the benign-write length in bytes.
	WriteLen int
}

// Driver executes the protection-transition protocol.
type Driver struct {
	alloc    vmem.Allocator
	logger   telemetry.Logger
	size     int
	writeLen int
}

// New creates a driver, applying defaults for zero-value config fields.
func New(cfg Config) *Driver {
	if cfg.Allocator == nil {
		cfg.Allocator = vmem.OSAllocator()
	}
	if cfg.Logger == nil {
		cfg.Logger = telemetry.NoopLogger{}
	}
	if cfg.Size <= 0 {
		cfg.Size = RegionSize
	}
	if cfg.WriteLen <= 0 {
		cfg.WriteLen = WriteLen
	}

	return &Driver{
		alloc:    cfg.Allocator,
		logger:   cfg.Logger,
		size:     cfg.Size,
		writeLen: cfg.WriteLen,
	}
}

// Result is the outcome of one probe run.
type Result struct {
	// RunID uniquely identifies the run (UUID).
	RunID string

	// Skipped reports the unsupported-platform no-op path was taken.
	Skipped bool

	// Trace is the observed mode sequence. A successful run records
	// exactly [RW, RX, RW, RELEASED].
	Trace []vmem.Mode
}

// Pattern returns n benign bytes: printable ASCII cycling 'A' through 'Z'.
func Pattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = 'A' + byte(i%26)
	}
	return data
}

// Run executes the five-step protocol. All-or-nothing from the caller's
// perspective: either the full sequence completes and the region is
// released, or an error surfaces with the region guaranteed released
// (best-effort) first.
func (d *Driver) Run() (Result, error) {
	res := Result{RunID: uuid.New().String()}

	if !d.alloc.Supported() {
		res.Skipped = true
		d.log(telemetry.Event{
			RunID:    res.RunID,
			Step:     telemetry.StepNone,
			Category: telemetry.CategorySkip,
			Note:     skipNote,
		})
		return res, nil
	}

	// 1) Reserve+commit, RW
	region, err := vmem.Acquire(d.alloc, d.size)
	if err != nil {
		werr := fmt.Errorf("%w: %v", ErrAllocationFailed, err)
		d.logError(res.RunID, telemetry.StepAcquire, werr.Error(), "")
		return res, werr
	}
	res.Trace = append(res.Trace, region.Mode())
	d.logRegion(res.RunID, telemetry.StepAcquire, region)

	// 2) Write benign data (printable, never executed)
	if err := region.Populate(Pattern(d.writeLen)); err != nil {
		werr := fmt.Errorf("%w: %v", ErrPopulateFailed, err)
		return res, d.fail(&res, region, telemetry.StepPopulate, werr)
	}
	d.log(telemetry.Event{
		RunID:    res.RunID,
		Step:     telemetry.StepPopulate,
		Category: telemetry.CategoryData,
		Write:    &telemetry.WriteEvent{Length: d.writeLen},
	})

	// 3) RW -> RX: the transition that detection logic keys on
	if err := d.transition(&res, region, vmem.ModeReadExecute); err != nil {
		return res, err
	}

	// 4) RX -> RW: revert before anything could run
	if err := d.transition(&res, region, vmem.ModeReadWrite); err != nil {
		return res, err
	}

	// 5) Release
	if err := region.Release(); err != nil {
		werr := fmt.Errorf("%w: %v", ErrReleaseFailed, err)
		d.logError(res.RunID, telemetry.StepRelease, werr.Error(), "")
		return res, werr
	}
	res.Trace = append(res.Trace, region.Mode())
	d.logRegion(res.RunID, telemetry.StepRelease, region)

	return res, nil
}

// transition performs one protection change, recording the trace entry and
// telemetry, and routes failures through the cleanup path.
func (d *Driver) transition(res *Result, region *vmem.Region, target vmem.Mode) error {
	from := region.Mode()
	prev, err := region.Transition(target)
	if err != nil {
		terr := &TransitionError{From: from, To: target, Err: err}
		return d.fail(res, region, telemetry.StepProtect, terr)
	}

	res.Trace = append(res.Trace, region.Mode())
	d.log(telemetry.Event{
		RunID:    res.RunID,
		Step:     telemetry.StepProtect,
		Category: telemetry.CategoryTransition,
		Transition: &telemetry.TransitionEvent{
			OldMode:    from.String(),
			NewMode:    target.String(),
			OSPrevious: prev,
		},
	})
	return nil
}

// fail handles any post-acquisition failure: emit the error event, attempt
// the cleanup release, and report both conditions if the release also
// fails. The triggering error stays primary.
func (d *Driver) fail(res *Result, region *vmem.Region, step telemetry.Step, primary error) error {
	d.logError(res.RunID, step, primary.Error(), "")

	if relErr := region.Release(); relErr != nil {
		d.logError(res.RunID, telemetry.StepRelease, relErr.Error(), "cleanup release")
		return fmt.Errorf("%w (cleanup %v: %v)", primary, ErrReleaseFailed, relErr)
	}

	res.Trace = append(res.Trace, region.Mode())
	return primary
}

// log stamps the common fields and forwards to the configured logger.
func (d *Driver) log(e telemetry.Event) {
	e.Timestamp = time.Now()
	e.Version = version.Current
	d.logger.Log(e)
}

func (d *Driver) logRegion(runID string, step telemetry.Step, region *vmem.Region) {
	h := region.Handle()
	d.log(telemetry.Event{
		RunID:    runID,
		Step:     step,
		Category: telemetry.CategoryLifecycle,
		Region: &telemetry.RegionEvent{
			Base: uint64(h.Base()),
			Size: h.Size(),
			Mode: region.Mode().String(),
		},
	})
}

func (d *Driver) logError(runID string, step telemetry.Step, msg, context string) {
	d.log(telemetry.Event{
		RunID:    runID,
		Step:     step,
		Category: telemetry.CategoryError,
		Error:    &telemetry.ErrorEvent{Message: msg, Context: context},
	})
}
