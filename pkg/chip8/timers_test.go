package chip8

import "testing"

func TestDelayTimer_Tick(t *testing.T) {
	timer := DelayTimer(2)

	timer.Tick()
	timer.Tick()
	if timer != 0 {
		t.Errorf("timer: expected 0, got %d", timer)
	}

	// No underflow past zero.
	timer.Tick()
	if timer != 0 {
		t.Errorf("timer after extra tick: expected 0, got %d", timer)
	}
}

func TestSoundTimer_Tick(t *testing.T) {
	timer := SoundTimer(2)

	if !timer.Tick() {
		t.Errorf("tick 1: expected buzzer on")
	}
	if !timer.Tick() {
		t.Errorf("tick 2: expected buzzer on")
	}
	if timer.Tick() {
		t.Errorf("tick 3: expected buzzer off")
	}
	if timer != 0 {
		t.Errorf("timer: expected 0, got %d", timer)
	}
}

func TestTickTimers(t *testing.T) {
	m := newInitializedMachine(t)
	m.Delay = 3
	m.Sound = 1

	if !m.TickTimers() {
		t.Errorf("first tick: expected buzzer on")
	}
	if m.TickTimers() {
		t.Errorf("second tick: expected buzzer off")
	}
	if m.Delay != 1 {
		t.Errorf("delay: expected 1, got %d", m.Delay)
	}
}
