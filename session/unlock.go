package session

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultUnlockDuration is how long the unlock notification stays up
const DefaultUnlockDuration = 2 * time.Second

// unlockTimer is a flag that clears itself after a fixed duration. Triggering
// it again restarts the countdown.
type unlockTimer struct {
	clock    clockwork.Clock
	duration time.Duration

	mu     sync.Mutex
	active bool
	gen    uint64
	timer  clockwork.Timer
}

func newUnlockTimer(clock clockwork.Clock, duration time.Duration) *unlockTimer {
	if duration <= 0 {
		duration = DefaultUnlockDuration
	}
	return &unlockTimer{clock: clock, duration: duration}
}

func (u *unlockTimer) Trigger() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.stopLocked()
	u.active = true
	gen := u.gen
	u.timer = u.clock.AfterFunc(u.duration, func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		if u.gen == gen {
			u.active = false
			u.timer = nil
		}
	})
}

func (u *unlockTimer) Active() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.active
}

func (u *unlockTimer) Stop() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.stopLocked()
	u.active = false
}

func (u *unlockTimer) stopLocked() {
	// bumping gen also disarms a callback that already fired but is waiting on mu
	u.gen++
	if u.timer != nil {
		u.timer.Stop()
		u.timer = nil
	}
}
