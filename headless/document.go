package headless

import (
	"github.com/phanxgames/scrollbind"
)

// DefaultViewportHeight is the viewport height of a new Document.
const DefaultViewportHeight = 600.0

type listener struct {
	id     int
	target *Element // nil is the page
	fn     func()
}

// Document is an in-memory page: an element tree rooted at a body element,
// a viewport and a page scroll offset. It implements scrollbind.Document.
type Document struct {
	body           *Element
	viewportHeight float64
	scrollTop      float64

	listeners []listener
	nextID    int
}

// NewDocument creates an empty page with the given viewport height. A
// height that is not positive uses DefaultViewportHeight.
func NewDocument(viewportHeight float64) *Document {
	if viewportHeight <= 0 {
		viewportHeight = DefaultViewportHeight
	}
	return &Document{
		body:           NewElement("body"),
		viewportHeight: viewportHeight,
	}
}

// Body returns the root of the element tree.
func (d *Document) Body() *Element {
	return d.body
}

// Walk visits every element in document order, body first.
func (d *Document) Walk(fn func(*Element)) {
	d.body.walk(fn)
}

// ContentHeight returns the lowest natural bottom edge of any element.
func (d *Document) ContentHeight() float64 {
	h := 0.0
	d.Walk(func(e *Element) {
		if b := e.Top + e.Height; b > h {
			h = b
		}
	})
	return h
}

// MaxScroll returns the largest page scroll offset the content allows.
func (d *Document) MaxScroll() float64 {
	if m := d.ContentHeight() - d.viewportHeight; m > 0 {
		return m
	}
	return 0
}

// Select returns the descendants of root matching selector, in document
// order. A nil root searches the whole page. An unsupported selector
// matches nothing.
func (d *Document) Select(root *Element, selector string) []*Element {
	list, ok := parseSelector(selector)
	if !ok {
		return nil
	}
	var out []*Element
	visit := func(e *Element) {
		if list.matches(e) {
			out = append(out, e)
		}
	}
	if root == nil {
		d.body.walk(visit)
		return out
	}
	for _, c := range root.children {
		c.walk(visit)
	}
	return out
}

// First returns the first element matching selector, or nil.
func (d *Document) First(selector string) *Element {
	if m := d.Select(nil, selector); len(m) > 0 {
		return m[0]
	}
	return nil
}

// QueryAll implements scrollbind.Document. Only elements of this package
// can serve as root.
func (d *Document) QueryAll(root scrollbind.Element, selector string) []scrollbind.Element {
	var r *Element
	if root != nil {
		var ok bool
		if r, ok = root.(*Element); !ok {
			return nil
		}
	}
	matches := d.Select(r, selector)
	out := make([]scrollbind.Element, len(matches))
	for i, m := range matches {
		out[i] = m
	}
	return out
}

func (d *Document) ViewportHeight() float64 {
	return d.viewportHeight
}

// SetViewportHeight resizes the viewport. It does not notify listeners.
func (d *Document) SetViewportHeight(h float64) {
	d.viewportHeight = h
}

func (d *Document) ScrollTop() float64 {
	return d.scrollTop
}

// SetScrollTop moves the page and notifies page listeners.
func (d *Document) SetScrollTop(y float64) {
	d.scrollTop = y
	d.notify(nil)
}

// ScrollElement moves the own scroll offset of el and notifies its
// listeners.
func (d *Document) ScrollElement(el *Element, y float64) {
	el.scrollTop = y
	d.notify(el)
}

// Listen implements scrollbind.Document.
func (d *Document) Listen(target scrollbind.Element, fn func()) func() {
	t, _ := target.(*Element)
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listener{id: id, target: t, fn: fn})
	return func() {
		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// NumListeners returns the number of registered scroll listeners.
func (d *Document) NumListeners() int {
	return len(d.listeners)
}

// notify calls the listeners of target. Listeners added or removed while
// notifying take effect on the next notification.
func (d *Document) notify(target *Element) {
	ls := append([]listener(nil), d.listeners...)
	for _, l := range ls {
		if l.target == target {
			l.fn()
		}
	}
}
