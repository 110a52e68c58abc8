package scrollbind

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// ---- fake element ----------------------------------------------------------

type fakeElement struct {
	name      string
	top, left float64
	width     float64
	computed  map[string]string
	inline    map[string]string
	classes   []string
	data      map[string]string
	overflow  Overflow
	scrollTop float64

	writes  int // style properties written
	toggles int // ToggleClass calls
}

func newFakeElement(name string) *fakeElement {
	return &fakeElement{
		name:     name,
		computed: map[string]string{},
		inline:   map[string]string{},
		data:     map[string]string{},
	}
}

func (e *fakeElement) ComputedValue(property string) string {
	if v, ok := e.inline[property]; ok {
		return v
	}
	return e.computed[property]
}

func (e *fakeElement) Offset() Point {
	p := Point{Top: e.top, Left: e.left}
	switch e.inline["position"] {
	case "fixed", "absolute":
		if v, ok := e.inline["top"]; ok {
			p.Top = parseNumber(v)
		}
		if v, ok := e.inline["left"]; ok {
			p.Left = parseNumber(v)
		}
	}
	return p
}

func (e *fakeElement) OuterWidth() float64 {
	if v, ok := e.inline["width"]; ok {
		return parseNumber(v)
	}
	return e.width
}

func (e *fakeElement) Overflow() Overflow  { return e.overflow }
func (e *fakeElement) ScrollTop() float64  { return e.scrollTop }
func (e *fakeElement) HasClass(n string) bool {
	for _, c := range e.classes {
		if c == n {
			return true
		}
	}
	return false
}

func (e *fakeElement) SetStyle(property, value string) {
	e.writes++
	if value == "" {
		delete(e.inline, property)
		return
	}
	e.inline[property] = value
}

func (e *fakeElement) SetStyles(styles map[string]string) {
	for k, v := range styles {
		e.SetStyle(k, v)
	}
}

func (e *fakeElement) ToggleClass(name string, present bool) {
	e.toggles++
	if present {
		if !e.HasClass(name) {
			e.classes = append(e.classes, name)
		}
		return
	}
	kept := e.classes[:0]
	for _, c := range e.classes {
		if c != name {
			kept = append(kept, c)
		}
	}
	e.classes = kept
}

func (e *fakeElement) SetData(key, value string) {
	if value == "" {
		delete(e.data, key)
		return
	}
	e.data[key] = value
}

func (e *fakeElement) className() string {
	return strings.Join(e.classes, " ")
}

// ---- fake document ---------------------------------------------------------

type fakeListener struct {
	id     int
	target Element
	fn     func()
}

type fakeDocument struct {
	matches   map[string][]Element
	viewportH float64
	scrollTop float64
	listeners []fakeListener
	nextID    int
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{matches: map[string][]Element{}, viewportH: 600}
}

func (d *fakeDocument) add(selector string, els ...*fakeElement) {
	for _, el := range els {
		d.matches[selector] = append(d.matches[selector], el)
	}
}

func (d *fakeDocument) QueryAll(_ Element, selector string) []Element {
	return d.matches[selector]
}

func (d *fakeDocument) ViewportHeight() float64 { return d.viewportH }
func (d *fakeDocument) ScrollTop() float64      { return d.scrollTop }

func (d *fakeDocument) Listen(target Element, fn func()) func() {
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, fakeListener{id: id, target: target, fn: fn})
	return func() {
		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// scroll moves the page and notifies page listeners.
func (d *fakeDocument) scroll(y float64) {
	d.scrollTop = y
	d.fire(nil)
}

// fire notifies the listeners of target. Listeners may remove themselves.
func (d *fakeDocument) fire(target Element) {
	ls := append([]fakeListener(nil), d.listeners...)
	for _, l := range ls {
		if l.target == target {
			l.fn()
		}
	}
}

func (d *fakeDocument) numListeners() int {
	return len(d.listeners)
}

// ---- fake scheduler --------------------------------------------------------

type fakeTask struct {
	h   Handle
	due time.Duration
	fn  func()
}

type fakeScheduler struct {
	now    time.Duration
	next   Handle
	frames []fakeTask
	timers []fakeTask
}

func (s *fakeScheduler) RequestFrame(fn func()) Handle {
	s.next++
	s.frames = append(s.frames, fakeTask{h: s.next, fn: fn})
	return s.next
}

func (s *fakeScheduler) CancelFrame(h Handle) {
	s.frames = removeTask(s.frames, h)
}

func (s *fakeScheduler) SetTimer(fn func(), d time.Duration) Handle {
	s.next++
	s.timers = append(s.timers, fakeTask{h: s.next, due: s.now + d, fn: fn})
	return s.next
}

func (s *fakeScheduler) ClearTimer(h Handle) {
	s.timers = removeTask(s.timers, h)
}

func removeTask(tasks []fakeTask, h Handle) []fakeTask {
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

// frame runs the frame callbacks pending right now. Callbacks requested while
// running wait for the next frame.
func (s *fakeScheduler) frame() {
	pending := s.frames
	s.frames = nil
	for _, t := range pending {
		t.fn()
	}
}

// advance moves time forward, firing due timers in order.
func (s *fakeScheduler) advance(d time.Duration) {
	target := s.now + d
	for {
		idx := -1
		for i, t := range s.timers {
			if t.due > target {
				continue
			}
			if idx < 0 || t.due < s.timers[idx].due || (t.due == s.timers[idx].due && t.h < s.timers[idx].h) {
				idx = i
			}
		}
		if idx < 0 {
			break
		}
		t := s.timers[idx]
		s.timers = append(s.timers[:idx], s.timers[idx+1:]...)
		s.now = t.due
		t.fn()
	}
	s.now = target
}

func (s *fakeScheduler) pending() int {
	return len(s.frames) + len(s.timers)
}

// ---- misc ------------------------------------------------------------------

func inlineString(e *fakeElement) string {
	keys := make([]string, 0, len(e.inline))
	for k := range e.inline {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k + ": " + e.inline[k] + "; ")
	}
	return strings.TrimSpace(b.String())
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
