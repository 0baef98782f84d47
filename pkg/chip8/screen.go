package chip8

const (
	// ScreenWidth is the display width in pixels.
	ScreenWidth = 64
	// ScreenHeight is the display height in pixels.
	ScreenHeight = 32
)

// Screen is the 64x32 monochrome pixel buffer. Pixels are stored row-major
// with linear index y*ScreenWidth + x; (0, 0) is the top left corner.
type Screen struct {
	pixels [ScreenWidth * ScreenHeight]bool
}

// Clear switches every pixel off.
func (s *Screen) Clear() {
	clear(s.pixels[:])
}

// Pixel reports whether the pixel at (x, y) is on.
func (s *Screen) Pixel(x, y int) bool {
	return s.pixels[y*ScreenWidth+x]
}

// TogglePixel inverts the pixel at (x, y) and reports whether the toggle
// turned an on pixel off, which the draw instruction records as a sprite
// collision.
func (s *Screen) TogglePixel(x, y int) bool {
	i := y*ScreenWidth + x
	s.pixels[i] = !s.pixels[i]
	return !s.pixels[i]
}

// Snapshot copies the current pixel state into a Frame that is safe to
// hand to another goroutine.
func (s *Screen) Snapshot() Frame {
	return Frame{pixels: s.pixels}
}
