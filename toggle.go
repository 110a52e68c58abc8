package scrollbind

// classToggle adds a class token while the offset is inside (delay,
// delay+over] and removes it otherwise.
type classToggle struct {
	name  string
	over  float64
	delay float64
}

func newClassToggle(name string, over, delay float64) *classToggle {
	return &classToggle{name: name, over: over, delay: delay}
}

// active reports whether the class belongs on the element at offset.
func (t *classToggle) active(offset float64) bool {
	x := offset - t.delay
	return x > 0 && x <= t.over
}

// apply is idempotent: the element is only touched when its membership
// disagrees with the wanted state.
func (t *classToggle) apply(offset float64, el Element) {
	if t.name == "" {
		return
	}
	want := t.active(offset)
	if el.HasClass(t.name) != want {
		el.ToggleClass(t.name, want)
	}
}

func (t *classToggle) teardown(el Element) {
	if t.name != "" && el.HasClass(t.name) {
		el.ToggleClass(t.name, false)
	}
}
