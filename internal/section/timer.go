package section

import "time"

// Timer is a one-second countdown driven by externally delivered ticks.
// Every Start or Reset issues a new tag; ticks carrying an older tag are
// ignored, which is how a pending tick is cancelled.
type Timer struct {
	remaining int
	running   bool
	tag       int
}

// Start begins counting down d, rounded down to whole seconds. A countdown
// with nothing left still runs and expires on its first tick.
func (t *Timer) Start(d time.Duration) int {
	t.tag++
	t.remaining = max(int(d/time.Second), 0)
	t.running = true
	return t.tag
}

// Reset cancels the current countdown and starts a new one.
func (t *Timer) Reset(d time.Duration) int {
	return t.Start(d)
}

// Stop cancels the countdown. Later ticks are ignored.
func (t *Timer) Stop() {
	t.tag++
	t.running = false
}

// Tick consumes one second. ok is false when the tick is stale or the timer
// is stopped; expired is true exactly once, on the tick that reaches zero.
func (t *Timer) Tick(tag int) (ok, expired bool) {
	if !t.running || tag != t.tag {
		return false, false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.running = false
		return true, true
	}
	return true, false
}

// Remaining returns the seconds left.
func (t *Timer) Remaining() int { return t.remaining }

// Running reports whether a countdown is active.
func (t *Timer) Running() bool { return t.running }

// Tag returns the tag of the current countdown.
func (t *Timer) Tag() int { return t.tag }
