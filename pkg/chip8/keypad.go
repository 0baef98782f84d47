package chip8

import "sync/atomic"

const noKey = -1

// Keypad is the single "currently pressed key" slot shared between the host
// input poll and the machine loop. Only the most recent press matters; it
// is not a queue. The slot is one atomic cell, so one writer and one reader
// need no lock.
type Keypad struct {
	slot atomic.Int32 // 0x0-0xF, or noKey
}

// NewKeypad creates an empty keypad. The zero Keypad is not usable directly
// because an empty slot is encoded as -1, not 0.
func NewKeypad() *Keypad {
	k := &Keypad{}
	k.reset()
	return k
}

// Press records key (0x0-0xF) as the currently pressed key, replacing any
// previous one.
func (k *Keypad) Press(key uint8) {
	k.slot.Store(int32(key & 0xF))
}

// Release clears the slot if it still holds key. A release for a key that a
// newer press already replaced is ignored, so that press is not lost.
func (k *Keypad) Release(key uint8) {
	k.slot.CompareAndSwap(int32(key&0xF), noKey)
}

// Peek returns the currently pressed key without consuming it.
func (k *Keypad) Peek() (uint8, bool) {
	v := k.slot.Load()
	if v == noKey {
		return 0, false
	}
	return uint8(v), true
}

// TakeIf consumes the currently pressed key if it equals key, and reports
// whether it did.
func (k *Keypad) TakeIf(key uint8) bool {
	return k.slot.CompareAndSwap(int32(key), noKey)
}

func (k *Keypad) reset() {
	k.slot.Store(noKey)
}
