package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFake_Fires_Due_Timers_In_Order(t *testing.T) {
	req := require.New(t)
	c := NewFake(time.UnixMilli(0))
	var fired []int64

	c.AfterFunc(2*time.Second, func() { fired = append(fired, c.Now().UnixMilli()) })
	c.AfterFunc(1*time.Second, func() { fired = append(fired, c.Now().UnixMilli()) })
	stopped := c.AfterFunc(1500*time.Millisecond, func() { fired = append(fired, -1) })
	req.True(stopped.Stop())
	req.False(stopped.Stop())

	c.Advance(1999 * time.Millisecond)
	req.Equal([]int64{1000}, fired)
	req.Equal(1, c.Pending())

	c.Advance(time.Millisecond)
	req.Equal([]int64{1000, 2000}, fired)
	req.Zero(c.Pending())
}
