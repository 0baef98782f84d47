package chip8

import (
	"path/filepath"
	"testing"
)

func TestSaveRestore_RoundTrip(t *testing.T) {
	m := newMachineWith(t,
		0x6005, // V0 := 5
		0xA050, // I := font glyph 0
		0xD115, // draw at (V1, V1)
		0x1200, // jump back to start
	)
	mustCycle(t, m, 3)
	m.Delay = 42

	data, err := m.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	// Diverge from the snapshot point.
	mustCycle(t, m, 3)
	m.V[0x0] = 0xEE
	m.Screen.Clear()
	m.Keypad.Press(0x3)

	if err := m.RestoreState(data); err != nil {
		t.Fatalf("RestoreState: %v", err)
	}

	if m.V[0x0] != 5 {
		t.Errorf("V0: expected 5, got %d", m.V[0x0])
	}
	if m.Index != FontSetOffset {
		t.Errorf("I: expected 0x%03X, got 0x%04X", uint16(FontSetOffset), m.Index)
	}
	if m.PC != ProgramStart+6 {
		t.Errorf("PC: expected 0x%04X, got 0x%04X", ProgramStart+6, m.PC)
	}
	if m.Delay != 42 {
		t.Errorf("delay: expected 42, got %d", m.Delay)
	}
	if !m.Screen.Pixel(0, 0) {
		t.Errorf("pixel (0,0): expected on")
	}
	if m.State() != ProgramLoaded {
		t.Errorf("state: expected ProgramLoaded, got %v", m.State())
	}
	// Input is transient and never restored.
	if _, pressed := m.Keypad.Peek(); pressed {
		t.Errorf("expected keypad cleared after restore")
	}

	// The restored machine keeps running.
	mustCycle(t, m, 1)
	if m.PC != ProgramStart {
		t.Errorf("PC after jump: expected 0x%04X, got 0x%04X", ProgramStart, m.PC)
	}
}

func TestSaveRestore_File(t *testing.T) {
	m := newMachineWith(t, 0x6A42, 0x00E0)
	mustCycle(t, m, 1)

	path := filepath.Join(t.TempDir(), "save.state")
	if err := m.SaveStateToFile(path); err != nil {
		t.Fatalf("SaveStateToFile: %v", err)
	}

	other := newMachineWith(t, 0x00E0)
	if err := other.RestoreStateFromFile(path); err != nil {
		t.Fatalf("RestoreStateFromFile: %v", err)
	}

	if other.V[0xA] != 0x42 {
		t.Errorf("VA: expected 0x42, got 0x%02X", other.V[0xA])
	}
	if other.PC != ProgramStart+2 {
		t.Errorf("PC: expected 0x%04X, got 0x%04X", ProgramStart+2, other.PC)
	}
}

func TestRestoreState_Garbage(t *testing.T) {
	m := newMachineWith(t, 0x00E0)
	if err := m.RestoreState([]byte("not a snapshot")); err == nil {
		t.Errorf("expected decode error")
	}
}
