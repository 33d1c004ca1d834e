package indicator

import (
	"time"

	"tab-mirror/contract"
)

// DefaultDebounce is the silence after which a typing_stop is announced.
const DefaultDebounce = 2000 * time.Millisecond

// TypingAnnouncer debounces local keystrokes into typing_start / typing_stop
// announcements. The timer callback does not touch the announcer: it hands
// the timer generation to expire, which the owner feeds back through
// Expired on its own goroutine. A generation that is not the current one is
// a timer that was reset or cancelled in the meantime and is ignored.
type TypingAnnouncer struct {
	clock      contract.Clock
	delay      time.Duration
	announce   func(typing bool)
	expire     func(generation uint64)
	timer      contract.Timer
	generation uint64
}

// NewTypingAnnouncer wires the announcer. announce(true) must publish
// typing_start, announce(false) typing_stop.
func NewTypingAnnouncer(clock contract.Clock, delay time.Duration,
	announce func(typing bool), expire func(generation uint64)) *TypingAnnouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &TypingAnnouncer{clock: clock, delay: delay, announce: announce, expire: expire}
}

// InputChanged announces typing on the first keystroke and rearms the timer on every one.
func (a *TypingAnnouncer) InputChanged() {
	first := a.timer == nil
	if !first {
		a.timer.Stop()
	}
	a.generation++
	generation := a.generation
	a.timer = a.clock.AfterFunc(a.delay, func() { a.expire(generation) })
	if first {
		a.announce(true)
	}
}

// Expired handles a timer fire. Only the latest armed timer announces the stop.
func (a *TypingAnnouncer) Expired(generation uint64) bool {
	if a.timer == nil || generation != a.generation {
		return false
	}
	a.timer = nil
	a.announce(false)
	return true
}

// Cancel disarms the timer without announcing anything and reports whether
// typing was being announced, so that the caller decides on the stop event.
func (a *TypingAnnouncer) Cancel() bool {
	if a.timer == nil {
		return false
	}
	a.timer.Stop()
	a.timer = nil
	a.generation++
	return true
}

func (a *TypingAnnouncer) Announcing() bool { return a.timer != nil }
