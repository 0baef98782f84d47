package chip8

// DelayTimer counts down to 0 at 60Hz while above 0.
type DelayTimer uint8

// Tick decrements the timer unless it already reached 0.
func (t *DelayTimer) Tick() {
	if *t > 0 {
		*t--
	}
}

// SoundTimer counts down to 0 at 60Hz while above 0; the buzzer sounds for
// as long as it is counting.
type SoundTimer uint8

// Tick decrements the timer unless it already reached 0, and reports
// whether the buzzer should sound: true exactly when the timer was non-zero
// before this tick.
func (t *SoundTimer) Tick() bool {
	if *t == 0 {
		return false
	}
	*t--
	return true
}
