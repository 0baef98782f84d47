//go:build sdl && !headless

package video

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/fekie/chip-8-emulator/pkg/chip8"
)

const (
	offColor = 0x000000
	onColor  = 0xFFFFFF
)

// scancodeKeys maps the left QWERTY block onto the COSMAC VIP keypad, the
// same layout the ebiten backend uses:
//
//	+--------+--------+--------+--------+
//	| 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
//	+--------+--------+--------+--------+
//	| Q -> 4 | W -> 5 | E -> 6 | R -> D |
//	+--------+--------+--------+--------+
//	| A -> 7 | S -> 8 | D -> 9 | F -> E |
//	+--------+--------+--------+--------+
//	| Z -> A | X -> 0 | C -> B | V -> F |
//	+--------+--------+--------+--------+
var scancodeKeys = map[sdl.Scancode]uint8{
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_V: 0xF,
}

type sdlOutput struct {
	cfg    Config
	runner *chip8.Runner
	keypad *chip8.Keypad
	logger *log.Logger

	frame     chip8.Frame
	hasFrame  bool
	beepShown bool
}

// New creates the SDL2 backend.
func New(runner *chip8.Runner, cfg Config, logger *log.Logger) Output {
	return &sdlOutput{
		cfg:    cfg.withDefaults(),
		runner: runner,
		keypad: runner.Keypad(),
		logger: logger,
	}
}

// Run opens the window and blocks until it is closed, Escape is pressed, or
// the context is cancelled.
func (o *sdlOutput) Run(ctx context.Context) error {
	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}
	defer sdl.Quit()

	width, height := o.cfg.windowSize()
	window, err := sdl.CreateWindow(o.cfg.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer window.Destroy()

	surface, err := window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}

	// Input events are polled at 60Hz even when no frames arrive, so the
	// window stays responsive after a machine fault halts the runner.
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-o.runner.Frames():
			o.frame = f
			o.hasFrame = true
			if err := o.present(window, surface); err != nil {
				return err
			}
		case <-ticker.C:
		}

		if o.pollEvents() {
			return nil
		}
	}
}

// pollEvents drains the SDL event queue and reports whether the window was
// closed or the quit key pressed.
func (o *sdlOutput) pollEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			if o.handleKey(t) {
				return true
			}
		}
	}
	return false
}

func (o *sdlOutput) handleKey(event *sdl.KeyboardEvent) bool {
	scancode := event.Keysym.Scancode

	if event.GetType() == sdl.KEYDOWN {
		switch scancode {
		case sdl.SCANCODE_ESCAPE:
			return true
		case sdl.SCANCODE_F10:
			o.runner.RequestRestart()
		case sdl.SCANCODE_F5:
			o.runner.RequestSave()
		case sdl.SCANCODE_F9:
			o.runner.RequestRestore()
		case sdl.SCANCODE_F12:
			o.screenshot()
		}
	}

	pad, ok := scancodeKeys[scancode]
	if !ok {
		return false
	}
	switch event.GetType() {
	case sdl.KEYDOWN:
		o.keypad.Press(pad)
	case sdl.KEYUP:
		o.keypad.Release(pad)
	}
	return false
}

func (o *sdlOutput) screenshot() {
	if !o.hasFrame {
		return
	}
	name := fmt.Sprintf("screenshot-%s.png", time.Now().Format("20060102-150405"))
	if err := chip8.WriteScreenshot(name, o.frame); err != nil {
		o.logger.Error("Writing screenshot failed", log.Err(err))
		return
	}
	o.logger.Info("Screenshot written", log.String("file", name))
}

// present redraws the whole surface from the latest frame, one filled
// square per lit pixel.
func (o *sdlOutput) present(window *sdl.Window, surface *sdl.Surface) error {
	if err := surface.FillRect(nil, offColor); err != nil {
		return fmt.Errorf("clearing surface: %w", err)
	}

	scale := int32(o.cfg.Scale)
	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			if !o.frame.Pixel(x, y) {
				continue
			}
			rect := sdl.Rect{X: int32(x) * scale, Y: int32(y) * scale, W: scale, H: scale}
			if err := surface.FillRect(&rect, onColor); err != nil {
				return fmt.Errorf("drawing pixel: %w", err)
			}
		}
	}

	// The buzzer state shows in the title, SDL surfaces have no overlay.
	if o.frame.Beeping != o.beepShown {
		o.beepShown = o.frame.Beeping
		title := o.cfg.Title
		if o.beepShown {
			title += " [beep]"
		}
		window.SetTitle(title)
	}

	return window.UpdateSurface()
}
