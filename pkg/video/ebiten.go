//go:build !headless && !sdl

package video

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"

	"github.com/fekie/chip-8-emulator/pkg/chip8"
)

// keypadKeys maps the left QWERTY block onto the COSMAC VIP keypad:
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
var keypadKeys = map[ebiten.Key]uint8{
	ebiten.KeyDigit1: 0x1,
	ebiten.KeyDigit2: 0x2,
	ebiten.KeyDigit3: 0x3,
	ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ:      0x4,
	ebiten.KeyW:      0x5,
	ebiten.KeyE:      0x6,
	ebiten.KeyR:      0xD,
	ebiten.KeyA:      0x7,
	ebiten.KeyS:      0x8,
	ebiten.KeyD:      0x9,
	ebiten.KeyF:      0xE,
	ebiten.KeyZ:      0xA,
	ebiten.KeyX:      0x0,
	ebiten.KeyC:      0xB,
	ebiten.KeyV:      0xF,
}

type ebitenOutput struct {
	cfg    Config
	runner *chip8.Runner
	keypad *chip8.Keypad
	logger *log.Logger

	ctx        context.Context
	canvas     *ebiten.Image // reused 64x32 bitmap, scaled up in Draw
	frame      chip8.Frame
	hasFrame   bool
	overlay    bool
	frameCount uint64
}

// New creates the ebiten backend.
func New(runner *chip8.Runner, cfg Config, logger *log.Logger) Output {
	cfg = cfg.withDefaults()
	return &ebitenOutput{
		cfg:     cfg,
		runner:  runner,
		keypad:  runner.Keypad(),
		logger:  logger,
		overlay: cfg.ShowOverlay,
	}
}

// Run opens the window and blocks until it is closed, Escape is pressed, or
// the context is cancelled.
func (o *ebitenOutput) Run(ctx context.Context) error {
	o.ctx = ctx

	width, height := o.cfg.windowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(o.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(o); err != nil {
		return fmt.Errorf("running presentation loop: %w", err)
	}
	return ctx.Err()
}

func (o *ebitenOutput) Update() error {
	if o.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	o.handleHotkeys()
	o.pollKeypad()
	o.drainFrames()
	return nil
}

func (o *ebitenOutput) handleHotkeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		o.runner.RequestRestart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		o.runner.RequestSave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		o.runner.RequestRestore()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.overlay = !o.overlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) && o.hasFrame {
		name := fmt.Sprintf("screenshot-%s.png", time.Now().Format("20060102-150405"))
		if err := chip8.WriteScreenshot(name, o.frame); err != nil {
			o.logger.Error("Writing screenshot failed", log.Err(err))
		} else {
			o.logger.Info("Screenshot written", log.String("file", name))
		}
	}
}

func (o *ebitenOutput) pollKeypad() {
	for key, pad := range keypadKeys {
		if inpututil.IsKeyJustPressed(key) {
			o.keypad.Press(pad)
		}
		if inpututil.IsKeyJustReleased(key) {
			o.keypad.Release(pad)
		}
	}
}

// drainFrames empties the frame channel, keeping only the newest snapshot.
func (o *ebitenOutput) drainFrames() {
	for {
		select {
		case f := <-o.runner.Frames():
			o.frame = f
			o.hasFrame = true
		default:
			return
		}
	}
}

func (o *ebitenOutput) Draw(screen *ebiten.Image) {
	if o.canvas == nil {
		o.canvas = ebiten.NewImage(chip8.ScreenWidth, chip8.ScreenHeight)
	}
	if o.hasFrame {
		o.canvas.WritePixels(o.frame.RGBA())
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.cfg.Scale), float64(o.cfg.Scale))
	screen.DrawImage(o.canvas, op)

	o.frameCount++
	if o.overlay {
		o.drawOverlay(screen)
	}
}

func (o *ebitenOutput) drawOverlay(screen *ebiten.Image) {
	const barHeight = 30
	width, height := o.cfg.windowSize()
	if barHeight >= height {
		return
	}
	y := height - barHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(width), barHeight, color.RGBA{0, 0, 0, 180})

	face := basicfont.Face7x13
	status := fmt.Sprintf("FPS %5.1f  frame %d", ebiten.ActualFPS(), o.frameCount)
	text.Draw(screen, status, face, 6, y+13, color.RGBA{190, 190, 190, 255})
	if o.frame.Beeping {
		beepX := 6 + text.BoundString(face, status).Dx() + 12
		text.Draw(screen, "BEEP", face, beepX, y+13, color.RGBA{0, 220, 90, 255})
	}

	legend := "F5 Save  F9 Restore  F10 Restart  F12 Screenshot  Tab Overlay  Esc Quit"
	text.Draw(screen, legend, face, 6, y+26, color.RGBA{160, 160, 160, 255})
}

func (o *ebitenOutput) Layout(outsideWidth, outsideHeight int) (int, int) {
	return o.cfg.windowSize()
}
