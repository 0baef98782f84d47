// Package chip8 implements a CHIP-8 virtual machine: 4KB of memory with a
// built-in hex font, sixteen 8-bit registers, a 64x32 monochrome screen, two
// 60Hz timers and a 16-key keypad. The Machine executes exactly one
// instruction per Cycle call and leaves pacing, rendering and input to the
// caller; Runner provides a ready-made driver loop for hosts.
package chip8

import (
	"fmt"
	"math/rand"
)

// EmulatorState tracks how far a Machine has been brought up. Transitions
// only move forward: a machine is constructed Uninitialized, Initialize
// moves it to MemoryInitialized and LoadProgram to ProgramLoaded. Restarting
// a program is done with a fresh Machine, not by going backwards.
type EmulatorState uint8

const (
	Uninitialized EmulatorState = iota
	MemoryInitialized
	ProgramLoaded
)

var emulatorStateNames = [...]string{
	Uninitialized:     "Uninitialized",
	MemoryInitialized: "MemoryInitialized",
	ProgramLoaded:     "ProgramLoaded",
}

func (s EmulatorState) String() string {
	if int(s) < len(emulatorStateNames) {
		return emulatorStateNames[s]
	}
	return fmt.Sprintf("EmulatorState(%d)", uint8(s))
}

// Machine is one CHIP-8 interpreter instance. All of its state is owned
// exclusively by the goroutine calling Cycle; the only concurrent touch
// points are the Keypad slot and the screen snapshots taken between cycles.
type Machine struct {
	Memory Memory
	Screen Screen

	// Keypad is a pointer because the host input loop shares it; a restart
	// swaps in a fresh Machine but keeps the same keypad.
	Keypad *Keypad

	// V holds the general registers V0-VF. VF doubles as the
	// carry/borrow/collision flag and is clobbered by arithmetic, shifts
	// and draws.
	V     [16]uint8
	Index uint16
	PC    uint16
	SP    uint16

	Delay DelayTimer
	Sound SoundTimer

	state EmulatorState

	// key and keyPressed latch the pressed-key slot once per cycle, before
	// the fetch, so every instruction in a cycle observes the same key.
	key        uint8
	keyPressed bool

	// randByte supplies the Random instruction. Tests pin it.
	randByte func() uint8
}

// NewMachine creates a machine with empty, uninitialized memory. Initialize
// must be called before a program can be loaded.
func NewMachine() *Machine {
	return &Machine{
		Keypad:   NewKeypad(),
		randByte: func() uint8 { return uint8(rand.Intn(0x100)) },
	}
}

// transition enforces the forward-only lifecycle. Moving into Uninitialized
// indicates a defect in the caller and panics; every other illegal move is a
// recoverable error.
func (m *Machine) transition(next EmulatorState) error {
	switch next {
	case Uninitialized:
		panic("chip8: cannot transition into Uninitialized")
	case MemoryInitialized:
		if m.state != Uninitialized {
			return ErrMemoryAlreadyInitialized
		}
	case ProgramLoaded:
		if m.state == Uninitialized {
			return ErrMemoryUninitialized
		}
	}

	m.state = next
	return nil
}

// Initialize brings up interpreter memory: the font set is installed, the
// program counter and stack pointer are reset and the registers, timers,
// screen and keypad are cleared. Initializing twice is an error; restart by
// constructing a fresh Machine.
func (m *Machine) Initialize() error {
	if err := m.transition(MemoryInitialized); err != nil {
		return err
	}

	m.Memory.LoadFontSet()
	m.Screen.Clear()
	m.V = [16]uint8{}
	m.Index = 0
	m.PC = ProgramStart
	m.SP = StackBase
	m.Delay = 0
	m.Sound = 0
	m.key, m.keyPressed = 0, false

	if m.Keypad == nil {
		m.Keypad = NewKeypad()
	} else {
		m.Keypad.reset()
	}

	return nil
}

// LoadProgram installs a program image at the program start address and
// zero-fills the rest of program memory so nothing from a previous program
// survives. It may be called again to switch programs.
func (m *Machine) LoadProgram(image []byte) error {
	if err := m.transition(ProgramLoaded); err != nil {
		return err
	}

	return m.Memory.LoadProgram(image)
}

// State reports how far the machine has been brought up.
func (m *Machine) State() EmulatorState {
	return m.state
}

// Cycle performs one fetch-decode-execute step. Decode and execute errors
// abort the cycle and are surfaced to the caller, which decides whether to
// halt or log and continue.
func (m *Machine) Cycle() error {
	if m.state != ProgramLoaded {
		return ErrProgramNotLoaded
	}

	m.key, m.keyPressed = m.Keypad.Peek()

	word, err := m.fetch()
	if err != nil {
		return err
	}

	in, err := Decode(word)
	if err != nil {
		return err
	}

	return m.execute(in)
}

// fetch reads the big-endian instruction word at the program counter and
// advances the counter past it. Skips and jumps apply on top of the advanced
// counter.
func (m *Machine) fetch() (uint16, error) {
	word, err := m.Memory.Word(m.PC)
	if err != nil {
		return 0, err
	}

	m.PC += 2
	return word, nil
}

// consumeKey clears the pressed-key slot if it still holds the key latched
// at the start of the cycle. A key pressed since the latch is left for the
// next cycle.
func (m *Machine) consumeKey() {
	m.Keypad.TakeIf(m.key)
	m.keyPressed = false
}

// TickTimers advances both timers by one 60Hz tick and reports whether the
// sound timer was active, which tells the host to play a tone.
func (m *Machine) TickTimers() bool {
	m.Delay.Tick()
	return m.Sound.Tick()
}
