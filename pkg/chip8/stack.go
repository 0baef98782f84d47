package chip8

// The call stack lives inside the reserved low region of memory and grows
// downward: the bottom slot is at 0x1FE and the top is at 0x000. The stack
// pointer starts one past the bottom slot and moves in steps of two, so the
// window holds 256 return addresses.
const (
	// StackBase is the initial stack pointer, one past the bottom slot.
	StackBase uint16 = 0x200
	// StackTop is the lowest address the stack pointer can reach.
	StackTop uint16 = 0x000
)

// Push stores a word on the call stack. Fails with ErrStackOverflow when
// the window is full.
func (m *Machine) Push(word uint16) error {
	if m.SP == StackTop {
		return ErrStackOverflow
	}
	m.SP -= 2
	return m.Memory.SetWord(m.SP, word)
}

// Pop removes and returns the most recently pushed word. Fails with
// ErrStackUnderflow when nothing is pushed.
func (m *Machine) Pop() (uint16, error) {
	if m.SP == StackBase {
		return 0, ErrStackUnderflow
	}
	word, err := m.Memory.Word(m.SP)
	if err != nil {
		return 0, err
	}
	m.SP += 2
	return word, nil
}
