package headless

import (
	"sort"
	"strconv"

	"github.com/phanxgames/scrollbind"
)

// Element is an in-memory element with a natural box, base (computed)
// styles, inline styles, classes and data flags. It implements
// scrollbind.Element.
type Element struct {
	// Identity
	Name string // type name matched by type selectors
	ID   string

	// Natural box in document coordinates.
	Top, Left     float64
	Width, Height float64

	// Base holds the computed styles the element has without inline
	// overrides, e.g. from a stylesheet.
	Base map[string]string

	// Hierarchy
	parent   *Element
	children []*Element

	inline    map[string]string
	classes   []string
	data      map[string]string
	scrollTop float64
	writes    int
}

// NewElement creates a detached element.
func NewElement(name string, classes ...string) *Element {
	e := &Element{
		Name:   name,
		Base:   map[string]string{},
		inline: map[string]string{},
		data:   map[string]string{},
	}
	for _, c := range classes {
		e.ToggleClass(c, true)
	}
	return e
}

// --- Tree manipulation ---

// AppendChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AppendChild(child *Element) {
	if child == nil {
		panic("headless: cannot append nil child")
	}
	if isAncestor(child, e) {
		panic("headless: appending child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child from this element.
// Panics if child's parent is not e.
func (e *Element) RemoveChild(child *Element) {
	if child.parent != e {
		panic("headless: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.parent = nil
}

// Remove detaches this element from its parent.
// No-op if it has no parent.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	e.parent.RemoveChild(e)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element {
	return e.parent
}

// walk visits e and its descendants in document order.
func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		c.walk(fn)
	}
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Element) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing child.parent.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}

// --- scrollbind.Element ---

// ComputedValue returns the inline value of property, then its base value,
// then the natural box for top, left, width and height.
func (e *Element) ComputedValue(property string) string {
	if v, ok := e.inline[property]; ok {
		return v
	}
	if v, ok := e.Base[property]; ok {
		return v
	}
	switch property {
	case "top":
		return px(e.Top)
	case "left":
		return px(e.Left)
	case "width":
		return px(e.Width)
	case "height":
		return px(e.Height)
	}
	return ""
}

// Offset returns the natural position, or the inline top and left while the
// element is positioned fixed or absolute.
func (e *Element) Offset() scrollbind.Point {
	p := scrollbind.Point{Top: e.Top, Left: e.Left}
	switch e.inline["position"] {
	case "fixed", "absolute":
		if v, ok := e.inline["top"]; ok {
			p.Top = parsePx(v, p.Top)
		}
		if v, ok := e.inline["left"]; ok {
			p.Left = parsePx(v, p.Left)
		}
	}
	return p
}

// OuterWidth returns the inline width when set, the natural width otherwise.
func (e *Element) OuterWidth() float64 {
	if v, ok := e.inline["width"]; ok {
		return parsePx(v, e.Width)
	}
	return e.Width
}

func (e *Element) Overflow() scrollbind.Overflow {
	return scrollbind.Overflow{
		Overflow:  e.ComputedValue("overflow"),
		OverflowY: e.ComputedValue("overflow-y"),
	}
}

// ScrollTop returns the element's own scroll offset. Use
// Document.ScrollElement to change it.
func (e *Element) ScrollTop() float64 {
	return e.scrollTop
}

func (e *Element) SetStyle(property, value string) {
	e.writes++
	if value == "" {
		delete(e.inline, property)
		return
	}
	e.inline[property] = value
}

func (e *Element) SetStyles(styles map[string]string) {
	for k, v := range styles {
		e.SetStyle(k, v)
	}
}

func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

func (e *Element) ToggleClass(name string, present bool) {
	if name == "" {
		return
	}
	if present {
		if !e.HasClass(name) {
			e.classes = append(e.classes, name)
		}
		return
	}
	for i, c := range e.classes {
		if c == name {
			e.classes = append(e.classes[:i], e.classes[i+1:]...)
			return
		}
	}
}

func (e *Element) SetData(key, value string) {
	if value == "" {
		delete(e.data, key)
		return
	}
	e.data[key] = value
}

// --- Inspection ---

// Style returns the inline value of property.
func (e *Element) Style(property string) string {
	return e.inline[property]
}

// InlineStyles returns a copy of the inline styles.
func (e *Element) InlineStyles() map[string]string {
	out := make(map[string]string, len(e.inline))
	for k, v := range e.inline {
		out[k] = v
	}
	return out
}

// StyleNames returns the inline style property names, sorted.
func (e *Element) StyleNames() []string {
	names := make([]string, 0, len(e.inline))
	for k := range e.inline {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Classes returns the class tokens in the order they were added.
func (e *Element) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Data returns the data flag stored under key.
func (e *Element) Data(key string) string {
	return e.data[key]
}

// Writes returns the number of inline style writes so far.
func (e *Element) Writes() int {
	return e.writes
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// parsePx parses a "12.5px" value, returning def when it is not a number.
func parsePx(v string, def float64) float64 {
	n := len(v)
	if n > 2 && v[n-2:] == "px" {
		v = v[:n-2]
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
