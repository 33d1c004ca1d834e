// Package clock provides the time source used by tab timers.
package clock

import (
	"time"

	"tab-mirror/contract"
)

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) AfterFunc(d time.Duration, f func()) contract.Timer {
	return time.AfterFunc(d, f)
}
