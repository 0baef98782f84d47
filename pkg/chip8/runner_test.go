package chip8

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// drawLoopROM draws font glyph 0 at (0,0) and then spins on a jump to
// itself: I := 0x050, draw 5 rows, jump 0x204.
var drawLoopROM = []byte{0xA0, 0x50, 0xD0, 0x15, 0x12, 0x04}

func newTestRunner(t *testing.T, statePath string) *Runner {
	t.Helper()
	r, err := NewRunner(drawLoopROM, statePath, log.NewTestLogger(t))
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return r
}

func TestNewRunner_OversizedROM(t *testing.T) {
	_, err := NewRunner(make([]byte, MaxProgramSize+1), "", log.NewTestLogger(t))
	if !errors.Is(err, ErrNotEnoughMemory) {
		t.Errorf("expected ErrNotEnoughMemory, got %v", err)
	}
}

func TestRunner_PublishesFrames(t *testing.T) {
	r := newTestRunner(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case frame := <-r.Frames():
		// The first batch runs the draw already, so glyph 0 is visible.
		if !frame.Pixel(0, 0) {
			t.Errorf("frame pixel (0,0): expected on")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no frame published")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run: expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestRunner_HaltsOnMachineFault(t *testing.T) {
	// A single native routine call: the first cycle faults.
	r, err := NewRunner([]byte{0x01, 0x23}, "", log.NewTestLogger(t))
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.Run(ctx); !errors.Is(err, ErrProgramNotCompatible) {
		t.Errorf("Run: expected ErrProgramNotCompatible, got %v", err)
	}
}

func TestRunner_Restart(t *testing.T) {
	r := newTestRunner(t, "")
	before := r.machine
	keypad := r.Keypad()

	r.RequestRestart()
	if err := r.serviceSignals(); err != nil {
		t.Fatalf("serviceSignals: %v", err)
	}

	if r.machine == before {
		t.Errorf("expected a fresh machine after restart")
	}
	if r.machine.State() != ProgramLoaded {
		t.Errorf("state: expected ProgramLoaded, got %v", r.machine.State())
	}
	// The host keeps writing into the same keypad slot.
	if r.Keypad() != keypad {
		t.Errorf("expected the keypad to survive the restart")
	}
	if r.machine.Keypad != keypad {
		t.Errorf("expected the new machine to share the runner's keypad")
	}
}

func TestRunner_SaveAndRestoreSignals(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "save.state")
	r := newTestRunner(t, statePath)

	mustCycle(t, r.machine, 2)
	r.machine.V[0x7] = 0x77

	r.RequestSave()
	if err := r.serviceSignals(); err != nil {
		t.Fatalf("serviceSignals: %v", err)
	}
	if _, err := os.Stat(statePath); err != nil {
		t.Fatalf("expected state file: %v", err)
	}

	r.machine.V[0x7] = 0

	r.RequestRestore()
	if err := r.serviceSignals(); err != nil {
		t.Fatalf("serviceSignals: %v", err)
	}
	if r.machine.V[0x7] != 0x77 {
		t.Errorf("V7: expected 0x77, got 0x%02X", r.machine.V[0x7])
	}
}

func TestRunner_SaveWithoutStatePath(t *testing.T) {
	r := newTestRunner(t, "")

	r.RequestSave()
	if err := r.serviceSignals(); err != nil {
		t.Fatalf("serviceSignals: %v", err)
	}
}

func TestRunner_DuplicateRequestsCollapse(t *testing.T) {
	r := newTestRunner(t, "")

	r.RequestRestart()
	r.RequestRestart()
	r.RequestRestart()

	if err := r.serviceSignals(); err != nil {
		t.Fatalf("serviceSignals: %v", err)
	}

	// Only one restart was queued; the second service call is a no-op.
	after := r.machine
	if err := r.serviceSignals(); err != nil {
		t.Fatalf("serviceSignals: %v", err)
	}
	if r.machine != after {
		t.Errorf("expected no second restart")
	}
}
