package chip8

import (
	"errors"
	"testing"
)

func newInitializedMachine(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine()
	if err := m.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return m
}

func TestStack_PushPop(t *testing.T) {
	m := newInitializedMachine(t)

	for _, w := range []uint16{0x111, 0x222, 0x333} {
		if err := m.Push(w); err != nil {
			t.Fatalf("Push(0x%03X): %v", w, err)
		}
	}

	for _, want := range []uint16{0x333, 0x222, 0x111} {
		got, err := m.Pop()
		if err != nil {
			t.Fatalf("Pop: %v", err)
		}
		if got != want {
			t.Errorf("Pop: expected 0x%03X, got 0x%03X", want, got)
		}
	}

	if m.SP != StackBase {
		t.Errorf("SP: expected 0x%04X, got 0x%04X", StackBase, m.SP)
	}
}

func TestStack_BacksOntoMemory(t *testing.T) {
	m := newInitializedMachine(t)

	if err := m.Push(0x0DDC); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if m.SP != 0x1FE {
		t.Errorf("SP: expected 0x1FE, got 0x%04X", m.SP)
	}
	if w, _ := m.Memory.Word(0x1FE); w != 0x0DDC {
		t.Errorf("word at 0x1FE: expected 0x0DDC, got 0x%04X", w)
	}
}

func TestStack_Underflow(t *testing.T) {
	m := newInitializedMachine(t)

	if _, err := m.Pop(); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("Pop on empty stack: expected ErrStackUnderflow, got %v", err)
	}
}

func TestStack_Overflow(t *testing.T) {
	m := newInitializedMachine(t)

	// The window between 0x000 and 0x200 holds exactly 256 words.
	for i := 0; i < 256; i++ {
		if err := m.Push(uint16(i)); err != nil {
			t.Fatalf("Push %d: %v", i, err)
		}
	}
	if m.SP != StackTop {
		t.Fatalf("SP: expected 0x%04X, got 0x%04X", StackTop, m.SP)
	}

	if err := m.Push(0xBEEF); !errors.Is(err, ErrStackOverflow) {
		t.Errorf("257th push: expected ErrStackOverflow, got %v", err)
	}

	// The full window drains back in order.
	for i := 255; i >= 0; i-- {
		got, err := m.Pop()
		if err != nil {
			t.Fatalf("Pop %d: %v", i, err)
		}
		if got != uint16(i) {
			t.Fatalf("Pop %d: expected %d, got %d", i, i, got)
		}
	}
}
