package market

import "time"

// Scheduler defers a function by a wall-clock delay. The returned cancel
// reports whether the call was stopped before firing. Tests swap in a manual
// implementation so confirmations can be driven deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func() bool)
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, fn)
	return t.Stop
}

// NewTimerScheduler returns the production Scheduler backed by time.AfterFunc.
func NewTimerScheduler() Scheduler { return timerScheduler{} }
