// Package backdrop drives the decorative weather backdrop shown behind an
// idle search box.
package backdrop

import (
	"context"
	"sync"
	"time"

	"github.com/Elephante152/habitat/models"

	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the time each state is shown while cycling
const DefaultInterval = 5 * time.Second

// States is the cycle order
var States = []models.Condition{
	models.ConditionClear,
	models.ConditionClouds,
	models.ConditionRain,
	models.ConditionSnow,
}

// Cycler advances through States on a ticker until paused or pinned
type Cycler struct {
	clock    clockwork.Clock
	interval time.Duration

	mu    sync.Mutex
	state models.Condition
	index int
	gen   uint64
	stop  func() // set while cycling
}

// NewCycler creates a stopped Cycler showing the first state
func NewCycler(clock clockwork.Clock, interval time.Duration) *Cycler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Cycler{
		clock:    clock,
		interval: interval,
		state:    States[0],
	}
}

// State returns the condition currently shown
func (c *Cycler) State() models.Condition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Cycling reports whether the automatic cycle is running
func (c *Cycler) Cycling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Resume restarts the cycle from the first state
func (c *Cycler) Resume() {
	c.mu.Lock()
	old := c.detach()
	c.state = States[0]
	c.index = 0
	c.stop = c.start(c.gen)
	c.mu.Unlock()

	if old != nil {
		old()
	}
}

// Pause stops the cycle and keeps the current state
func (c *Cycler) Pause() {
	c.mu.Lock()
	old := c.detach()
	c.mu.Unlock()

	if old != nil {
		old()
	}
}

// Pin stops the cycle and shows cond
func (c *Cycler) Pin(cond models.Condition) {
	c.mu.Lock()
	old := c.detach()
	c.state = cond
	c.mu.Unlock()

	if old != nil {
		old()
	}
}

// Stop releases the ticker goroutine. It is the same as Pause.
func (c *Cycler) Stop() {
	c.Pause()
}

// detach invalidates the running cycle and hands back its stop func.
// c.mu must be held.
func (c *Cycler) detach() func() {
	c.gen++
	old := c.stop
	c.stop = nil
	return old
}

// start launches the ticker goroutine for generation gen and returns a
// function that stops it and waits for it to exit. c.mu must be held.
func (c *Cycler) start(gen uint64) func() {
	ctx, cancel := context.WithCancel(context.Background())
	ticker := c.clock.NewTicker(c.interval)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.Chan():
				c.advance(gen)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func (c *Cycler) advance(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	c.index = (c.index + 1) % len(States)
	c.state = States[c.index]
}
