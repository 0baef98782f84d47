//go:build headless

package video

import (
	"context"
	"sync/atomic"

	"github.com/retroenv/retrogolib/log"

	"github.com/fekie/chip-8-emulator/pkg/chip8"
)

// headlessOutput drains frames without presenting them, for CI runs and
// machines without a display.
type headlessOutput struct {
	cfg        Config
	runner     *chip8.Runner
	logger     *log.Logger
	frameCount atomic.Uint64
}

// New creates the headless backend.
func New(runner *chip8.Runner, cfg Config, logger *log.Logger) Output {
	return &headlessOutput{
		cfg:    cfg.withDefaults(),
		runner: runner,
		logger: logger,
	}
}

// Run drains frames until the context is cancelled.
func (o *headlessOutput) Run(ctx context.Context) error {
	o.logger.Info("Headless mode, frames are counted and dropped")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-o.runner.Frames():
			o.frameCount.Add(1)
		}
	}
}

// FrameCount reports how many frames have been drained so far.
func (o *headlessOutput) FrameCount() uint64 {
	return o.frameCount.Load()
}
