package chip8

import (
	"image"
	"image/png"
	"os"
)

// Frame is an immutable snapshot of the screen taken at a frame boundary,
// plus the buzzer state at that moment. Frames are plain values: sending
// one over a channel hands the receiver its own copy.
type Frame struct {
	pixels  [ScreenWidth * ScreenHeight]bool
	Beeping bool
}

// Pixel reports whether the pixel at (x, y) was on when the snapshot was
// taken.
func (f *Frame) Pixel(x, y int) bool {
	return f.pixels[y*ScreenWidth+x]
}

// RGBA renders the frame as RGBA8888 bytes (ScreenWidth*ScreenHeight*4
// long), mapping on pixels to white and off pixels to black.
func (f *Frame) RGBA() []byte {
	buf := make([]byte, ScreenWidth*ScreenHeight*4)
	for i, on := range f.pixels {
		if on {
			buf[i*4+0] = 0xFF
			buf[i*4+1] = 0xFF
			buf[i*4+2] = 0xFF
		}
		buf[i*4+3] = 0xFF
	}
	return buf
}

// Image returns the frame as an *image.RGBA.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.RGBA(),
		Stride: ScreenWidth * 4,
		Rect:   image.Rect(0, 0, ScreenWidth, ScreenHeight),
	}
}

// WriteScreenshot encodes the frame as a PNG and writes it to filename.
func WriteScreenshot(filename string, f Frame) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, f.Image())
}
