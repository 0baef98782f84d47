package chip8

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
)

// MachineState is the serializable snapshot of everything a save state needs
// to resume execution: memory, screen, registers, timers and the lifecycle
// state. Keypad state is transient and deliberately not captured.
type MachineState struct {
	Memory [MemorySize]byte
	Screen [ScreenWidth * ScreenHeight]bool

	V     [16]uint8
	Index uint16
	PC    uint16
	SP    uint16

	Delay uint8
	Sound uint8

	State EmulatorState
}

func (m *Machine) getState() MachineState {
	return MachineState{
		Memory: m.Memory.bytes,
		Screen: m.Screen.pixels,
		V:      m.V,
		Index:  m.Index,
		PC:     m.PC,
		SP:     m.SP,
		Delay:  uint8(m.Delay),
		Sound:  uint8(m.Sound),
		State:  m.state,
	}
}

func (m *Machine) restoreState(state MachineState) {
	m.Memory.bytes = state.Memory
	m.Screen.pixels = state.Screen
	m.V = state.V
	m.Index = state.Index
	m.PC = state.PC
	m.SP = state.SP
	m.Delay = DelayTimer(state.Delay)
	m.Sound = SoundTimer(state.Sound)
	m.state = state.State

	m.Keypad.reset()
	m.key, m.keyPressed = 0, false
}

// SaveState serialises the machine into a snapshot and returns the raw
// bytes.
func (m *Machine) SaveState() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m.getState()); err != nil {
		return nil, fmt.Errorf("encode machine state: %w", err)
	}
	return buf.Bytes(), nil
}

// RestoreState applies a snapshot produced by SaveState. The keypad and the
// per-cycle key latch are cleared rather than restored; input is transient.
func (m *Machine) RestoreState(data []byte) error {
	var state MachineState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return fmt.Errorf("decode machine state: %w", err)
	}

	m.restoreState(state)
	return nil
}

// SaveStateToFile writes the snapshot to the given file path.
func (m *Machine) SaveStateToFile(path string) error {
	data, err := m.SaveState()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RestoreStateFromFile reads a snapshot from the given file path and applies
// it to the machine.
func (m *Machine) RestoreStateFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.RestoreState(data)
}
