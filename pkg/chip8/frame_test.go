package chip8

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFrame_RGBA(t *testing.T) {
	var s Screen
	s.TogglePixel(1, 0)
	frame := s.Snapshot()

	buf := frame.RGBA()
	if len(buf) != ScreenWidth*ScreenHeight*4 {
		t.Fatalf("length: expected %d, got %d", ScreenWidth*ScreenHeight*4, len(buf))
	}

	// Pixel (0,0) is off: black, opaque.
	if buf[0] != 0 || buf[1] != 0 || buf[2] != 0 || buf[3] != 0xFF {
		t.Errorf("pixel (0,0): expected opaque black, got % X", buf[0:4])
	}
	// Pixel (1,0) is on: white, opaque.
	if buf[4] != 0xFF || buf[5] != 0xFF || buf[6] != 0xFF || buf[7] != 0xFF {
		t.Errorf("pixel (1,0): expected opaque white, got % X", buf[4:8])
	}
}

func TestFrame_Image(t *testing.T) {
	var s Screen
	s.TogglePixel(3, 2)
	frame := s.Snapshot()

	img := frame.Image()
	if img.Bounds().Dx() != ScreenWidth || img.Bounds().Dy() != ScreenHeight {
		t.Fatalf("bounds: expected %dx%d, got %v", ScreenWidth, ScreenHeight, img.Bounds())
	}

	r, g, b, a := img.At(3, 2).RGBA()
	if r != 0xFFFF || g != 0xFFFF || b != 0xFFFF || a != 0xFFFF {
		t.Errorf("pixel (3,2): expected white, got %d %d %d %d", r, g, b, a)
	}
}

func TestWriteScreenshot(t *testing.T) {
	var s Screen
	s.TogglePixel(0, 0)
	frame := s.Snapshot()

	filename := filepath.Join(t.TempDir(), "shot.png")
	if err := WriteScreenshot(filename, frame); err != nil {
		t.Fatalf("WriteScreenshot: %v", err)
	}

	f, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != ScreenWidth || img.Bounds().Dy() != ScreenHeight {
		t.Errorf("bounds: expected %dx%d, got %v", ScreenWidth, ScreenHeight, img.Bounds())
	}

	r, _, _, _ := img.At(0, 0).RGBA()
	if r != 0xFFFF {
		t.Errorf("pixel (0,0): expected white")
	}
}
