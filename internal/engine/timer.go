package engine

// TickFunc receives the remaining units after each elapsed unit
type TickFunc func(remaining int)

// ExpireFunc fires once when the countdown reaches zero
type ExpireFunc func()

// TimerController is a single countdown with one unit resolution. It does not
// schedule itself: whoever owns it calls Advance once per elapsed unit.
type TimerController struct {
	remaining int
	paused    int
	running   bool
	onTick    TickFunc
	onExpire  ExpireFunc
	// run changes on every Start and Cancel so stale callbacks can be detected
	run uint64
}

// NewTimerController creates an idle timer
func NewTimerController() *TimerController {
	return &TimerController{}
}

// Start begins a countdown of duration units, replacing any running one
func (t *TimerController) Start(duration int, onTick TickFunc, onExpire ExpireFunc) {
	if duration < 1 {
		duration = 1
	}
	t.run++
	t.remaining = duration
	t.paused = 0
	t.running = true
	t.onTick = onTick
	t.onExpire = onExpire
}

// Cancel stops the countdown. No callback fires after Cancel returns.
// Calling it on an idle timer does nothing.
func (t *TimerController) Cancel() {
	t.run++
	t.running = false
	t.paused = 0
	t.onTick = nil
	t.onExpire = nil
}

// Pause suspends decrementing for the next forUnits units. It returns false
// and does nothing if the timer is idle or a pause is already active.
func (t *TimerController) Pause(forUnits int) bool {
	if !t.running || t.paused > 0 || forUnits < 1 {
		return false
	}
	t.paused = forUnits
	return true
}

// Advance records one elapsed unit
func (t *TimerController) Advance() {
	if !t.running {
		return
	}
	if t.paused > 0 {
		t.paused--
		return
	}

	t.remaining--
	run := t.run
	onTick, onExpire := t.onTick, t.onExpire
	expired := t.remaining <= 0
	if expired {
		t.remaining = 0
		t.running = false
		t.onTick = nil
		t.onExpire = nil
	}

	if onTick != nil {
		onTick(t.remaining)
	}
	// onTick may have cancelled or restarted the timer
	if expired && onExpire != nil && t.run == run {
		onExpire()
	}
}

// Remaining returns the units left on the countdown
func (t *TimerController) Remaining() int {
	return t.remaining
}

// Running reports whether a countdown is in progress
func (t *TimerController) Running() bool {
	return t.running
}

// Paused reports whether a pause is currently suspending the countdown
func (t *TimerController) Paused() bool {
	return t.paused > 0
}

// PausedFor returns the pause units left
func (t *TimerController) PausedFor() int {
	return t.paused
}
