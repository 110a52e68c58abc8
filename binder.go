package scrollbind

import "time"

// Binder binds a declaration map to the scroll offset of a root element or
// of the page. All methods must be called from the host's single event
// thread; the binder never starts goroutines.
type Binder struct {
	root  Element
	doc   Document
	sched Scheduler
	opts  Options

	set    *AnimationSet
	driver *frameDriver

	resetFrame Handle
	applies    int
}

// New compiles opts.Animations against root, applies them once at the
// current scroll offset and starts observing scroll.
func New(root Element, doc Document, sched Scheduler, opts Options) *Binder {
	b := &Binder{
		root:  root,
		doc:   doc,
		sched: sched,
		opts:  opts.withDefaults(),
	}
	b.driver = newFrameDriver(root, doc, sched, b.opts.Poll, b.applyAt)
	b.Init()
	b.Bind()
	return b
}

// Init compiles the declarations again and applies them at the current
// offset. The previous set is torn down first, so computed defaults are
// re-read from the natural styles and a pending Reset is dropped.
func (b *Binder) Init() {
	b.sched.CancelFrame(b.resetFrame)
	b.resetFrame = 0
	if b.set != nil {
		b.set.Reset()
	}

	var t0 time.Time
	if b.opts.Debug {
		t0 = time.Now()
	}
	b.set = Compile(b.root, b.doc, b.opts)
	if b.opts.Debug {
		debugCompile(b.set, time.Since(t0))
	}
	b.applyAt(b.driver.read(), false)
}

// Bind starts observing scroll. No-op when already bound.
func (b *Binder) Bind() {
	if b.driver.state.bound {
		return
	}
	b.driver.bind()
	if b.opts.Debug {
		debugf("bound (source: %s, poll: %t)", sourceName(b.driver.source), b.opts.Poll)
	}
}

// Unbind stops observing scroll and cancels any pending apply. Safe to call
// any number of times. A Reset already requested still runs.
func (b *Binder) Unbind() {
	wasBound := b.driver.state.bound
	b.driver.unbind()
	if wasBound && b.opts.Debug {
		debugf("unbound after %d applies", b.applies)
	}
}

// Reset strips every style, class and lock position the binder wrote. The
// strip runs in the next frame.
func (b *Binder) Reset() {
	b.driver.cancelPending()
	b.sched.CancelFrame(b.resetFrame)
	set := b.set
	b.resetFrame = b.sched.RequestFrame(func() {
		b.resetFrame = 0
		if b.set != set {
			return
		}
		set.Reset()
		if b.opts.Debug {
			debugf("reset %d records", set.NumRecords())
		}
	})
}

// Apply evaluates and writes the styles for offset immediately, bypassing
// the frame driver.
func (b *Binder) Apply(offset float64) {
	b.applyAt(offset, false)
}

// Set returns the compiled animation set.
func (b *Binder) Set() *AnimationSet {
	return b.set
}

// Offset returns the offset of the most recent driver read.
func (b *Binder) Offset() float64 {
	return b.driver.state.offset
}

// Bound reports whether the binder is observing scroll.
func (b *Binder) Bound() bool {
	return b.driver.state.bound
}

// Polling reports whether the poll-mode frame callback is attached.
func (b *Binder) Polling() bool {
	return b.driver.polling()
}

// Applies returns how many times styles have been applied.
func (b *Binder) Applies() int {
	return b.applies
}

func (b *Binder) applyAt(offset float64, settled bool) {
	var t0 time.Time
	if b.opts.Debug {
		t0 = time.Now()
	}
	writes := b.set.Apply(offset)
	b.applies++
	if b.opts.Debug {
		debugApply(applyStats{
			offset:   offset,
			settled:  settled,
			writes:   writes,
			records:  b.set.NumRecords(),
			duration: time.Since(t0),
		})
	}
}

func sourceName(source Element) string {
	if source == nil {
		return "page"
	}
	return "root"
}
