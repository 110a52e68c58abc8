package headless

import (
	"time"

	"github.com/phanxgames/scrollbind"
)

// DefaultFrameInterval is the time between frame boundaries of a Clock.
const DefaultFrameInterval = time.Second / 60

type task struct {
	h   scrollbind.Handle
	due time.Duration
	fn  func()
}

// Clock is a deterministic scrollbind.Scheduler. Time only moves in
// Advance; frame callbacks run at every frame boundary crossed, or when
// Frame is called.
type Clock struct {
	now       time.Duration
	interval  time.Duration
	nextFrame time.Duration

	next   scrollbind.Handle
	frames []task
	timers []task
	ticks  int
}

// NewClock returns a clock at time zero with DefaultFrameInterval.
func NewClock() *Clock {
	return &Clock{interval: DefaultFrameInterval, nextFrame: DefaultFrameInterval}
}

// SetFrameInterval changes the time between frame boundaries. Values that
// are not positive are ignored.
func (c *Clock) SetFrameInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	c.interval = d
	c.nextFrame = c.now + d
}

// FrameInterval returns the time between frame boundaries.
func (c *Clock) FrameInterval() time.Duration {
	return c.interval
}

// Now returns the time elapsed since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Frames returns the number of frames run so far.
func (c *Clock) Frames() int {
	return c.ticks
}

// Pending returns the number of scheduled frame callbacks and timers.
func (c *Clock) Pending() int {
	return len(c.frames) + len(c.timers)
}

func (c *Clock) RequestFrame(fn func()) scrollbind.Handle {
	c.next++
	c.frames = append(c.frames, task{h: c.next, fn: fn})
	return c.next
}

func (c *Clock) CancelFrame(h scrollbind.Handle) {
	c.frames = removeTask(c.frames, h)
}

func (c *Clock) SetTimer(fn func(), d time.Duration) scrollbind.Handle {
	if d < 0 {
		d = 0
	}
	c.next++
	c.timers = append(c.timers, task{h: c.next, due: c.now + d, fn: fn})
	return c.next
}

func (c *Clock) ClearTimer(h scrollbind.Handle) {
	c.timers = removeTask(c.timers, h)
}

// Frame runs the frame callbacks pending right now. Callbacks requested
// while running wait for the next frame.
func (c *Clock) Frame() {
	c.ticks++
	pending := c.frames
	c.frames = nil
	for _, t := range pending {
		t.fn()
	}
}

// Advance moves time forward by d. Due timers and frame boundaries run in
// time order; a timer due at a frame boundary runs before that frame.
func (c *Clock) Advance(d time.Duration) {
	target := c.now + d
	for {
		ti := c.dueTimer(target)
		frameDue := c.nextFrame <= target
		if ti < 0 && !frameDue {
			break
		}
		if ti >= 0 && (!frameDue || c.timers[ti].due <= c.nextFrame) {
			t := c.timers[ti]
			c.timers = append(c.timers[:ti], c.timers[ti+1:]...)
			c.now = t.due
			t.fn()
			continue
		}
		c.now = c.nextFrame
		c.nextFrame += c.interval
		c.Frame()
	}
	c.now = target
}

// Tick advances the clock to its next frame boundary.
func (c *Clock) Tick() {
	c.Advance(c.nextFrame - c.now)
}

// dueTimer returns the index of the earliest timer due at or before limit,
// or -1. Ties go to the timer set first.
func (c *Clock) dueTimer(limit time.Duration) int {
	idx := -1
	for i, t := range c.timers {
		if t.due > limit {
			continue
		}
		if idx < 0 || t.due < c.timers[idx].due {
			idx = i
		}
	}
	return idx
}

func removeTask(tasks []task, h scrollbind.Handle) []task {
	if h == 0 {
		return tasks
	}
	for i, t := range tasks {
		if t.h == h {
			return append(tasks[:i], tasks[i+1:]...)
		}
	}
	return tasks
}
