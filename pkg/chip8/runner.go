package chip8

import (
	"context"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Execution cadence: the machine runs at 720 cycles per second, batched per
// 30Hz display frame, with the timers ticked every 12th cycle for an
// effective 60Hz.
const (
	framesPerSecond = 30
	cyclesPerSecond = 720
	cyclesPerFrame  = cyclesPerSecond / framesPerSecond
	cyclesPerTick   = cyclesPerSecond / 60
)

// Runner drives a Machine at the fixed execution cadence and bridges it to a
// host. Screen snapshots go out through a non-blocking frame channel and key
// presses come in through the machine's keypad slot. Restart, save and
// restore requests are accepted from any goroutine and serviced at the next
// cycle boundary. The Runner owns its Machine exclusively; no lock guards
// machine state.
type Runner struct {
	machine *Machine

	// keypad outlives any single machine: restarts swap the machine but the
	// host keeps writing to the same slot.
	keypad *Keypad

	// rom is retained so a restart can reload the program on a fresh
	// machine.
	rom       []byte
	statePath string

	frames  chan Frame
	restart chan struct{}
	save    chan struct{}
	restore chan struct{}

	logger *log.Logger
}

// NewRunner builds a runner around a fresh machine with the given program
// image installed. statePath is where save states are written; an empty path
// disables them.
func NewRunner(rom []byte, statePath string, logger *log.Logger) (*Runner, error) {
	r := &Runner{
		keypad:    NewKeypad(),
		rom:       rom,
		statePath: statePath,
		frames:    make(chan Frame, 1),
		restart:   make(chan struct{}, 1),
		save:      make(chan struct{}, 1),
		restore:   make(chan struct{}, 1),
		logger:    logger,
	}

	machine, err := r.newLoadedMachine()
	if err != nil {
		return nil, err
	}
	r.machine = machine

	return r, nil
}

// newLoadedMachine builds a fresh machine wired to the runner's keypad with
// the program installed.
func (r *Runner) newLoadedMachine() (*Machine, error) {
	m := NewMachine()
	m.Keypad = r.keypad

	if err := m.Initialize(); err != nil {
		return nil, err
	}
	if err := m.LoadProgram(r.rom); err != nil {
		return nil, err
	}
	return m, nil
}

// Frames returns the channel on which screen snapshots are published, one
// per display frame. Snapshots are dropped, not queued, when the consumer
// falls behind.
func (r *Runner) Frames() <-chan Frame {
	return r.frames
}

// Keypad returns the input slot the host writes pressed keys into.
func (r *Runner) Keypad() *Keypad {
	return r.keypad
}

// RequestRestart asks the runner to reload the current program on a fresh
// machine at the next cycle boundary. Duplicate requests collapse into one.
func (r *Runner) RequestRestart() {
	requestSignal(r.restart)
}

// RequestSave asks the runner to write a save state at the next cycle
// boundary.
func (r *Runner) RequestSave() {
	requestSignal(r.save)
}

// RequestRestore asks the runner to load the save state at the next cycle
// boundary.
func (r *Runner) RequestRestore() {
	requestSignal(r.restore)
}

func requestSignal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Run executes the machine until ctx is cancelled or the machine faults.
// Each ticker frame runs a batch of cycles, services pending host signals at
// cycle boundaries and publishes one screen snapshot. Cancellation is
// cooperative: a cycle in progress always completes.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / framesPerSecond)
	defer ticker.Stop()

	var cycleCount uint64
	var beeping bool

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		for i := 0; i < cyclesPerFrame; i++ {
			if err := r.serviceSignals(); err != nil {
				return err
			}

			if err := r.machine.Cycle(); err != nil {
				return err
			}

			cycleCount++
			if cycleCount%cyclesPerTick == 0 {
				beeping = r.machine.TickTimers()
			}
		}

		r.publishFrame(beeping)
	}
}

// serviceSignals handles at most one pending host request. Restart failures
// are fatal, save and restore failures are logged and execution continues.
func (r *Runner) serviceSignals() error {
	select {
	case <-r.restart:
		machine, err := r.newLoadedMachine()
		if err != nil {
			return err
		}
		r.machine = machine
		r.logger.Info("Program restarted")
	case <-r.save:
		if r.statePath == "" {
			return nil
		}
		if err := r.machine.SaveStateToFile(r.statePath); err != nil {
			r.logger.Error("Saving state failed", log.Err(err))
			return nil
		}
		r.logger.Info("State saved", log.String("file", r.statePath))
	case <-r.restore:
		if r.statePath == "" {
			return nil
		}
		if err := r.machine.RestoreStateFromFile(r.statePath); err != nil {
			r.logger.Error("Restoring state failed", log.Err(err))
			return nil
		}
		r.logger.Info("State restored", log.String("file", r.statePath))
	default:
	}

	return nil
}

func (r *Runner) publishFrame(beeping bool) {
	frame := r.machine.Screen.Snapshot()
	frame.Beeping = beeping

	select {
	case r.frames <- frame:
	default:
		r.logger.Debug("Frame dropped, presentation loop behind")
	}
}
