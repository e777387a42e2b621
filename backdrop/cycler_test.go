package backdrop

import (
	"testing"
	"time"

	"github.com/Elephante152/habitat/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

const waitFor = time.Second
const tick = 5 * time.Millisecond

func advanceTo(t *testing.T, clock clockwork.FakeClock, c *Cycler, want models.Condition) {
	t.Helper()
	clock.Advance(DefaultInterval)
	assert.Eventually(t, func() bool { return c.State() == want }, waitFor, tick, "want %s", want)
}

func TestCycler_StartsStoppedOnClear(t *testing.T) {
	c := NewCycler(clockwork.NewFakeClock(), 0)
	assert.Equal(t, models.ConditionClear, c.State())
	assert.False(t, c.Cycling())
}

func TestCycler_CyclesAndWraps(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewCycler(clock, DefaultInterval)
	c.Resume()
	defer c.Stop()

	assert.True(t, c.Cycling())
	assert.Equal(t, models.ConditionClear, c.State())

	clock.Advance(DefaultInterval - time.Millisecond)
	assert.Never(t, func() bool { return c.State() != models.ConditionClear }, 50*time.Millisecond, tick)
	clock.Advance(time.Millisecond)
	assert.Eventually(t, func() bool { return c.State() == models.ConditionClouds }, waitFor, tick)

	advanceTo(t, clock, c, models.ConditionRain)
	advanceTo(t, clock, c, models.ConditionSnow)
	advanceTo(t, clock, c, models.ConditionClear)
	advanceTo(t, clock, c, models.ConditionClouds)
}

func TestCycler_PauseKeepsState(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewCycler(clock, DefaultInterval)
	c.Resume()

	advanceTo(t, clock, c, models.ConditionClouds)
	c.Pause()
	assert.False(t, c.Cycling())

	clock.Advance(3 * DefaultInterval)
	assert.Never(t, func() bool { return c.State() != models.ConditionClouds }, 50*time.Millisecond, tick)
}

func TestCycler_PinStopsCycle(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewCycler(clock, DefaultInterval)
	c.Resume()

	c.Pin(models.ConditionSnow)
	assert.False(t, c.Cycling())
	assert.Equal(t, models.ConditionSnow, c.State())

	clock.Advance(DefaultInterval)
	assert.Never(t, func() bool { return c.State() != models.ConditionSnow }, 50*time.Millisecond, tick)

	c.Pin(models.ConditionOther)
	assert.Equal(t, models.ConditionOther, c.State())
}

func TestCycler_ResumeRestartsFromClear(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewCycler(clock, DefaultInterval)
	c.Resume()
	advanceTo(t, clock, c, models.ConditionClouds)
	advanceTo(t, clock, c, models.ConditionRain)

	c.Pin(models.ConditionRain)
	c.Resume()
	defer c.Stop()

	assert.True(t, c.Cycling())
	assert.Equal(t, models.ConditionClear, c.State())
	advanceTo(t, clock, c, models.ConditionClouds)
}

func TestCycler_StopIsIdempotent(t *testing.T) {
	c := NewCycler(clockwork.NewFakeClock(), DefaultInterval)
	c.Resume()
	c.Stop()
	c.Stop()
	assert.False(t, c.Cycling())
}
