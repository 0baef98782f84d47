package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrMemoryUninitialized is returned when a program is loaded before
	// Initialize has run.
	ErrMemoryUninitialized = errors.New("interpreter memory is uninitialized")
	// ErrMemoryAlreadyInitialized is returned by a second Initialize call.
	// Restarting uses a fresh machine instead of re-initializing.
	ErrMemoryAlreadyInitialized = errors.New("interpreter memory already initialized")
	// ErrProgramNotLoaded is returned by Cycle before LoadProgram has run.
	ErrProgramNotLoaded = errors.New("program not loaded")
	// ErrNotEnoughMemory is returned when a program image does not fit in
	// the memory above ProgramStart.
	ErrNotEnoughMemory = errors.New("not enough memory")
	// ErrStackOverflow is returned by a push when the stack window is full.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned by a pop when nothing is pushed.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrProgramNotCompatible is returned for 0NNN instruction words other
	// than 00E0 and 00EE: calls into native machine code routines that this
	// interpreter does not provide.
	ErrProgramNotCompatible = errors.New("program not compatible: calls a native machine code routine")
)

// InvalidInstructionError reports an instruction word that does not decode
// to any known operation.
type InvalidInstructionError struct {
	Word uint16
}

func (e *InvalidInstructionError) Error() string {
	return fmt.Sprintf("invalid instruction 0x%04X", e.Word)
}

// UnimplementedInstructionError reports a decoded instruction that has no
// execution arm. The encoding is recognized, unlike InvalidInstructionError.
type UnimplementedInstructionError struct {
	Instruction Instruction
}

func (e *UnimplementedInstructionError) Error() string {
	return fmt.Sprintf("unimplemented instruction %v", e.Instruction)
}

// MemoryOutOfBoundsError reports an access outside the 4KB address space.
type MemoryOutOfBoundsError struct {
	Addr uint16
}

func (e *MemoryOutOfBoundsError) Error() string {
	return fmt.Sprintf("memory access out of bounds at 0x%04X", e.Addr)
}
