package scrollbind

import "strconv"

// LockState is the position of a Lock in its sticky state machine.
type LockState uint8

const (
	LockFree  LockState = iota // natural flow, no inline positioning
	LockStuck                  // fixed to the viewport at the captured coordinates
	LockPast                   // absolutely positioned where it let go
)

// String returns the state's name. It is also the value of the lock data
// flag written to the element.
func (s LockState) String() string {
	switch s {
	case LockFree:
		return "free"
	case LockStuck:
		return "stuck"
	case LockPast:
		return "past"
	default:
		return "unknown"
	}
}

// LockDataKey is the data flag mirroring a lock's state on its element.
const LockDataKey = "scrollbind-lock"

// lockStyleNames are the inline properties a Lock writes.
var lockStyleNames = []string{"position", "top", "left", "width"}

// Lock pins an element to the viewport while the offset is inside
// (delay, delay+over] and freezes it at its release point beyond that.
//
// The fixed top is captured on the first entry into the stuck range and kept
// for the Lock's lifetime, so re-entering from either side does not drift.
// Left and width are captured again on every entry.
type Lock struct {
	over  float64
	delay float64

	state LockState

	captured bool
	fixedTop float64
	left     float64
	width    float64
}

// NewLock returns a Lock in the free state.
func NewLock(over, delay float64) *Lock {
	return &Lock{over: over, delay: delay}
}

// State returns the current state.
func (l *Lock) State() LockState {
	return l.state
}

// FixedTop returns the captured top and whether a capture has happened.
func (l *Lock) FixedTop() (float64, bool) {
	return l.fixedTop, l.captured
}

// stateAt maps an offset to the state it implies.
func (l *Lock) stateAt(offset float64) LockState {
	switch {
	case offset <= l.delay:
		return LockFree
	case offset <= l.delay+l.over:
		return LockStuck
	default:
		return LockPast
	}
}

// Apply moves the state machine to the state implied by offset and writes the
// matching positioning to el. Repeated calls at the same offset write nothing.
func (l *Lock) Apply(offset float64, el Element) {
	next := l.stateAt(offset)
	if next == l.state {
		return
	}
	switch next {
	case LockFree:
		clearLockStyles(el)
	case LockStuck:
		l.capture(el)
		el.SetStyles(map[string]string{
			"position": "fixed",
			"top":      formatPx(l.fixedTop),
			"left":     formatPx(l.left),
			"width":    formatPx(l.width),
		})
	case LockPast:
		if !l.captured {
			// Jumped straight past the range: capture from natural flow.
			l.capture(el)
		}
		el.SetStyles(map[string]string{
			"position": "absolute",
			"top":      formatPx(l.fixedTop + l.over),
			"left":     formatPx(l.left),
			"width":    formatPx(l.width),
		})
	}
	l.state = next
	el.SetData(LockDataKey, next.String())
}

// capture reads left and width from the element, and top only the first
// time.
func (l *Lock) capture(el Element) {
	if l.state != LockFree {
		// Re-entering from PAST: measure the natural flow, not our override.
		clearLockStyles(el)
	}
	off := el.Offset()
	l.left = off.Left
	l.width = el.OuterWidth()
	if !l.captured {
		l.fixedTop = off.Top
		l.captured = true
	}
}

// Teardown clears the positioning and forgets the captured geometry.
func (l *Lock) Teardown(el Element) {
	clearLockStyles(el)
	el.SetData(LockDataKey, "")
	*l = Lock{over: l.over, delay: l.delay}
}

func clearLockStyles(el Element) {
	styles := make(map[string]string, len(lockStyleNames))
	for _, name := range lockStyleNames {
		styles[name] = ""
	}
	el.SetStyles(styles)
}

func formatPx(v float64) string {
	return formatNumber(v) + "px"
}

// formatNumber renders v in its shortest form without a trailing ".0".
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
