package scrollbind

import "time"

// Scheduling windows of the frame driver.
const (
	ThrottleWindow = 16 * time.Millisecond  // at most one apply per window
	SettleDelay    = 64 * time.Millisecond  // quiet time before the settling apply
	IdleDelay      = 128 * time.Millisecond // unchanged time before polling detaches
)

// scrollState is the driver's only mutable record.
type scrollState struct {
	offset  float64
	busy    bool // inside a throttle window
	bound   bool
	polling bool // poll mode: per-frame callback attached
}

// frameDriver observes a scroll offset and calls apply at a throttled rate,
// plus once more after scrolling settles.
//
// Control flow is data: one state record plus a handle per named task
// (apply frame, throttle release, settle, poll frame, idle detector).
type frameDriver struct {
	doc    Document
	sched  Scheduler
	source Element // nil observes the page
	poll   bool
	apply  func(offset float64, settled bool)

	state scrollState

	applyFrame    Handle
	throttleTimer Handle
	settleTimer   Handle
	pollFrame     Handle
	idleTimer     Handle
	removeListen  func()
}

// newFrameDriver picks the scroll source: root itself when its overflow
// scrolls internally, the page otherwise.
func newFrameDriver(root Element, doc Document, sched Scheduler, poll bool, apply func(float64, bool)) *frameDriver {
	d := &frameDriver{doc: doc, sched: sched, poll: poll, apply: apply}
	if root != nil && root.Overflow().Scrollable() {
		d.source = root
	}
	d.state.offset = d.read()
	return d
}

// read returns the live scroll offset of the observed source.
func (d *frameDriver) read() float64 {
	if d.source != nil {
		return d.source.ScrollTop()
	}
	return d.doc.ScrollTop()
}

// bind starts observing. No-op when already bound.
func (d *frameDriver) bind() {
	if d.state.bound {
		return
	}
	d.state.bound = true
	d.state.offset = d.read()
	if d.poll {
		d.startPolling()
		return
	}
	d.listen(d.notify)
}

// unbind stops observing and cancels every pending task. Idempotent.
func (d *frameDriver) unbind() {
	d.state.bound = false
	d.state.busy = false
	d.state.polling = false
	if d.removeListen != nil {
		d.removeListen()
		d.removeListen = nil
	}
	d.sched.CancelFrame(d.applyFrame)
	d.sched.CancelFrame(d.pollFrame)
	d.sched.ClearTimer(d.throttleTimer)
	d.sched.ClearTimer(d.settleTimer)
	d.sched.ClearTimer(d.idleTimer)
	d.applyFrame, d.pollFrame = 0, 0
	d.throttleTimer, d.settleTimer, d.idleTimer = 0, 0, 0
}

func (d *frameDriver) listen(fn func()) {
	if d.removeListen != nil {
		d.removeListen()
	}
	d.removeListen = d.doc.Listen(d.source, fn)
}

// notify handles one scroll notification. The settle timer is re-armed on
// every notification; the apply itself is dropped inside a throttle window.
func (d *frameDriver) notify() {
	if !d.state.bound {
		return
	}
	d.sched.ClearTimer(d.settleTimer)
	d.settleTimer = d.sched.SetTimer(d.settle, SettleDelay)

	if d.state.busy {
		return
	}
	d.state.busy = true
	d.throttleTimer = d.sched.SetTimer(d.release, ThrottleWindow)
	d.scheduleApply(false)
}

func (d *frameDriver) release() {
	d.throttleTimer = 0
	d.state.busy = false
}

// settle runs the final apply of a burst at the offset read in its frame.
func (d *frameDriver) settle() {
	d.settleTimer = 0
	if !d.state.bound {
		return
	}
	d.scheduleApply(true)
}

// scheduleApply replaces any pending apply frame with a new one.
func (d *frameDriver) scheduleApply(settled bool) {
	d.sched.CancelFrame(d.applyFrame)
	d.applyFrame = d.sched.RequestFrame(func() {
		d.applyFrame = 0
		if !d.state.bound {
			return
		}
		d.state.offset = d.read()
		d.apply(d.state.offset, settled)
	})
}

// startPolling attaches the per-frame poll and arms the idle detector.
func (d *frameDriver) startPolling() {
	if d.removeListen != nil {
		d.removeListen()
		d.removeListen = nil
	}
	d.state.polling = true
	d.armIdle()
	d.pollFrame = d.sched.RequestFrame(d.pollTick)
}

func (d *frameDriver) pollTick() {
	d.pollFrame = 0
	if !d.state.bound || !d.state.polling {
		return
	}
	if off := d.read(); off != d.state.offset {
		d.state.offset = off
		d.armIdle()
		d.notify()
	}
	d.pollFrame = d.sched.RequestFrame(d.pollTick)
}

func (d *frameDriver) armIdle() {
	d.sched.ClearTimer(d.idleTimer)
	d.idleTimer = d.sched.SetTimer(d.idle, IdleDelay)
}

// idle detaches polling and waits for the next discrete scroll
// notification to re-attach it.
func (d *frameDriver) idle() {
	d.idleTimer = 0
	if !d.state.bound || !d.state.polling {
		return
	}
	d.state.polling = false
	d.sched.CancelFrame(d.pollFrame)
	d.pollFrame = 0
	d.listen(d.wake)
}

func (d *frameDriver) wake() {
	if !d.state.bound || d.state.polling {
		return
	}
	d.state.offset = d.read()
	d.startPolling()
	d.notify()
}

// cancelPending drops a scheduled apply and the settle timer without
// unbinding.
func (d *frameDriver) cancelPending() {
	d.sched.CancelFrame(d.applyFrame)
	d.sched.ClearTimer(d.settleTimer)
	d.applyFrame, d.settleTimer = 0, 0
}

// polling reports whether the per-frame poll is attached.
func (d *frameDriver) polling() bool {
	return d.state.polling
}
