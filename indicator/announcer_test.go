package indicator

import (
	"testing"
	"time"

	"tab-mirror/clock"

	"github.com/stretchr/testify/require"
)

type announcement struct {
	typing bool
	at     int64
}

func newRecordedAnnouncer(c *clock.Fake) (*TypingAnnouncer, *[]announcement) {
	var got []announcement
	var a *TypingAnnouncer
	a = NewTypingAnnouncer(c, DefaultDebounce,
		func(typing bool) { got = append(got, announcement{typing, c.Now().UnixMilli()}) },
		func(generation uint64) { a.Expired(generation) })
	return a, &got
}

func TestTypingAnnouncer_Debounce(t *testing.T) {
	req := require.New(t)
	c := clock.NewFake(time.UnixMilli(0))
	announcer, got := newRecordedAnnouncer(c)

	// Given input at t=0, t=500 and t=1000
	announcer.InputChanged()
	c.Advance(500 * time.Millisecond)
	announcer.InputChanged()
	c.Advance(500 * time.Millisecond)
	announcer.InputChanged()

	// When the user stays silent
	c.Advance(10 * time.Second)

	// Then one start at t=0 and one stop at t=3000
	req.Equal([]announcement{{true, 0}, {false, 3000}}, *got)
	req.False(announcer.Announcing())
	req.Zero(c.Pending())
}

func TestTypingAnnouncer_New_Burst_After_Stop(t *testing.T) {
	req := require.New(t)
	c := clock.NewFake(time.UnixMilli(0))
	announcer, got := newRecordedAnnouncer(c)

	announcer.InputChanged()
	c.Advance(2 * time.Second)
	announcer.InputChanged()
	c.Advance(2 * time.Second)

	req.Equal([]announcement{{true, 0}, {false, 2000}, {true, 2000}, {false, 4000}}, *got)
}

func TestTypingAnnouncer_Cancel_Prevents_Timer_Stop(t *testing.T) {
	req := require.New(t)
	c := clock.NewFake(time.UnixMilli(0))
	announcer, got := newRecordedAnnouncer(c)

	// Given typing is announced
	announcer.InputChanged()

	// When the message is sent before the timer expires
	req.True(announcer.Cancel())
	req.False(announcer.Cancel())
	c.Advance(5 * time.Second)

	// Then the timer never announces a second stop
	req.Equal([]announcement{{true, 0}}, *got)
}

func TestTypingAnnouncer_Stale_Generation_Ignored(t *testing.T) {
	req := require.New(t)
	c := clock.NewFake(time.UnixMilli(0))
	var stops int
	announcer := NewTypingAnnouncer(c, time.Second,
		func(typing bool) {
			if !typing {
				stops++
			}
		},
		func(uint64) {})

	announcer.InputChanged()
	announcer.InputChanged()

	// A fire queued by the first timer before it was reset
	req.False(announcer.Expired(1))
	req.True(announcer.Expired(2))
	req.False(announcer.Expired(2))
	req.Equal(1, stops)
}
