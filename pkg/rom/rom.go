// Package rom loads program images from disk.
package rom

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fekie/chip-8-emulator/pkg/chip8"
)

// Read loads the program image at path. The returned path is resolved to an
// absolute one for logging. Images that do not fit in the memory above
// chip8.ProgramStart are rejected here, before a machine ever sees them.
func Read(path string) ([]byte, string, error) {
	fullPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", path, err)
	}

	image, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, "", fmt.Errorf("reading ROM file: %w", err)
	}

	if len(image) > chip8.MaxProgramSize {
		return nil, "", fmt.Errorf("ROM image is %d bytes, program memory holds %d: %w",
			len(image), chip8.MaxProgramSize, chip8.ErrNotEnoughMemory)
	}

	return image, fullPath, nil
}
