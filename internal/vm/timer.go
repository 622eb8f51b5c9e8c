package vm

// TimerFrequency is the rate in Hz that Tick has to be called at.
const TimerFrequency = 60

// Timers contains the delay and sound countdown timers.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements both timers by one unless they already reached zero.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive returns whether the sound timer is running.
func (t Timers) SoundActive() bool {
	return t.Sound != 0
}
