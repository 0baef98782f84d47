// Package video presents emulator frames in a window and feeds key presses
// back into the machine's keypad. The backend is chosen at build time: ebiten
// by default, SDL2 behind the sdl build tag, and a windowless frame drain
// behind the headless tag. All backends are constructed with New and expose
// the same Output interface.
package video

import (
	"context"

	"github.com/fekie/chip-8-emulator/pkg/chip8"
)

const (
	defaultTitle = "chip-8-emulator"
	defaultScale = 10
	maxScale     = 20
)

// Output presents frames until the window is closed, the quit key is
// pressed, or the context is cancelled.
type Output interface {
	Run(ctx context.Context) error
}

// Config holds the presentation settings shared by all backends.
type Config struct {
	// Title is the window title.
	Title string
	// Scale is the integer pixel multiplier for the 64x32 screen,
	// clamped to 1..20. Zero or negative selects the default of 10.
	Scale int
	// ShowOverlay starts with the debug overlay visible.
	ShowOverlay bool
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Scale <= 0 {
		c.Scale = defaultScale
	}
	if c.Scale > maxScale {
		c.Scale = maxScale
	}
	return c
}

// windowSize returns the scaled pixel dimensions of the output window.
func (c Config) windowSize() (int, int) {
	return chip8.ScreenWidth * c.Scale, chip8.ScreenHeight * c.Scale
}
