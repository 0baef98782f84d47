package chip8

const (
	// MemorySize is the capacity of the address space in bytes.
	MemorySize = 0x1000
	// ProgramStart is the address where program images are installed and
	// where the program counter begins.
	ProgramStart = 0x200
	// FontSetOffset is the address of the built-in font glyph table.
	FontSetOffset = 0x050
	// MaxProgramSize is the largest program image that fits above
	// ProgramStart.
	MaxProgramSize = MemorySize - ProgramStart
)

// fontSet holds the 5-byte-per-glyph bitmaps for the hex digits 0-F. The
// top 4 bits of each byte are one row of pixels.
var fontSet = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the interpreter's 4KB address space. Regions:
//   - 0x000-0x1FF is reserved for the interpreter; the call stack lives at
//     the end of it (see stack.go).
//   - 0x050-0x09F holds the built-in font set.
//   - 0x200-0xFFF holds the program image and scratch RAM.
//
// Every accessor is bounds-checked and fails with MemoryOutOfBoundsError
// instead of corrupting neighbouring state.
type Memory struct {
	bytes [MemorySize]byte
}

// Byte reads the byte at addr.
func (m *Memory) Byte(addr uint16) (byte, error) {
	if addr >= MemorySize {
		return 0, &MemoryOutOfBoundsError{Addr: addr}
	}
	return m.bytes[addr], nil
}

// SetByte writes one byte at addr.
func (m *Memory) SetByte(addr uint16, b byte) error {
	if addr >= MemorySize {
		return &MemoryOutOfBoundsError{Addr: addr}
	}
	m.bytes[addr] = b
	return nil
}

// Word reads the big-endian 16-bit value spanning addr and addr+1.
func (m *Memory) Word(addr uint16) (uint16, error) {
	if addr >= MemorySize-1 {
		return 0, &MemoryOutOfBoundsError{Addr: addr}
	}
	return uint16(m.bytes[addr])<<8 | uint16(m.bytes[addr+1]), nil
}

// SetWord writes a 16-bit value big-endian at addr and addr+1.
func (m *Memory) SetWord(addr uint16, word uint16) error {
	if addr >= MemorySize-1 {
		return &MemoryOutOfBoundsError{Addr: addr}
	}
	m.bytes[addr] = byte(word >> 8)
	m.bytes[addr+1] = byte(word)
	return nil
}

// LoadFontSet writes the glyph table at FontSetOffset.
func (m *Memory) LoadFontSet() {
	copy(m.bytes[FontSetOffset:], fontSet[:])
}

// LoadProgram installs an image at ProgramStart and zero-fills all memory
// above it, so switching to a shorter program never leaves bytes of the
// previous one behind. Fails with ErrNotEnoughMemory if the image does not
// fit.
func (m *Memory) LoadProgram(image []byte) error {
	if len(image) > MaxProgramSize {
		return ErrNotEnoughMemory
	}
	n := copy(m.bytes[ProgramStart:], image)
	clear(m.bytes[ProgramStart+n:])
	return nil
}
