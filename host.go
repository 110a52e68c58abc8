package scrollbind

import "time"

// Element is a host element handle. The binder reads geometry and computed
// values from it and writes inline styles, classes and data flags to it.
type Element interface {
	// ComputedValue returns the current computed value of a style property.
	ComputedValue(property string) string
	// Offset returns the element's document-relative position.
	Offset() Point
	// OuterWidth returns the element's width including padding and border.
	OuterWidth() float64
	// Overflow returns the element's computed overflow values.
	Overflow() Overflow
	// ScrollTop returns the element's own scroll offset.
	ScrollTop() float64

	// SetStyle writes one inline style property. An empty value removes it.
	SetStyle(property, value string)
	// SetStyles writes several inline style properties at once.
	SetStyles(styles map[string]string)
	// HasClass reports whether the element carries the class token.
	HasClass(name string) bool
	// ToggleClass adds or removes a class token.
	ToggleClass(name string, present bool)
	// SetData sets a data flag. An empty value removes it.
	SetData(key, value string)
}

// Document is the host's query and scroll surface.
type Document interface {
	// QueryAll returns the descendants of root matching selector, in
	// document order.
	QueryAll(root Element, selector string) []Element
	// ViewportHeight returns the current viewport height.
	ViewportHeight() float64
	// ScrollTop returns the whole-page scroll offset.
	ScrollTop() float64
	// Listen registers fn for scroll notifications of target, or of the
	// page when target is nil. The returned func removes the listener.
	Listen(target Element, fn func()) (remove func())
}

// Handle identifies a scheduled frame callback or timer. Zero means none.
type Handle uint64

// Scheduler is the per-frame and timer capability injected into a Binder.
// Cancelling or clearing a zero or already-fired handle is a no-op.
type Scheduler interface {
	RequestFrame(fn func()) Handle
	CancelFrame(h Handle)
	SetTimer(fn func(), d time.Duration) Handle
	ClearTimer(h Handle)
}
