package scrollbind

import "testing"

func newLockElement() *fakeElement {
	el := newFakeElement("sidebar")
	el.top = 300
	el.left = 40
	el.width = 220
	return el
}

func TestLockRoundTrip(t *testing.T) {
	el := newLockElement()
	l := NewLock(200, 100)

	l.Apply(50, el)
	if l.State() != LockFree || len(el.inline) != 0 {
		t.Fatalf("below delay: state %v, inline %q", l.State(), inlineString(el))
	}

	l.Apply(150, el)
	if l.State() != LockStuck {
		t.Fatalf("state = %v, want stuck", l.State())
	}
	if el.inline["position"] != "fixed" || el.inline["top"] != "300px" {
		t.Errorf("stuck styles = %q", inlineString(el))
	}
	if el.inline["left"] != "40px" || el.inline["width"] != "220px" {
		t.Errorf("stuck geometry = %q", inlineString(el))
	}

	l.Apply(400, el)
	if l.State() != LockPast {
		t.Fatalf("state = %v, want past", l.State())
	}
	if el.inline["position"] != "absolute" || el.inline["top"] != "500px" {
		t.Errorf("past styles = %q", inlineString(el))
	}

	l.Apply(200, el)
	if l.State() != LockStuck {
		t.Fatalf("state = %v, want stuck again", l.State())
	}
	if el.inline["position"] != "fixed" || el.inline["top"] != "300px" {
		t.Errorf("re-stuck styles = %q", inlineString(el))
	}

	l.Apply(0, el)
	if l.State() != LockFree {
		t.Fatalf("state = %v, want free", l.State())
	}
	if len(el.inline) != 0 {
		t.Errorf("inline styles left behind: %q", inlineString(el))
	}
	if off := el.Offset(); off.Top != 300 || off.Left != 40 || el.OuterWidth() != 220 {
		t.Errorf("geometry not restored: %+v width %v", off, el.OuterWidth())
	}
}

func TestLockReentryFromPastKeepsTopRecapturesLeftAndWidth(t *testing.T) {
	el := newLockElement()
	l := NewLock(200, 100)

	l.Apply(150, el)
	l.Apply(400, el)

	// The layout changes while the element is past its range.
	el.left = 60
	el.width = 180
	el.top = 900

	l.Apply(250, el)
	if el.inline["top"] != "300px" {
		t.Errorf("fixed top = %q, want memoized 300px", el.inline["top"])
	}
	if el.inline["left"] != "60px" || el.inline["width"] != "180px" {
		t.Errorf("left/width = %q/%q, want fresh capture 60px/180px", el.inline["left"], el.inline["width"])
	}
	if top, ok := l.FixedTop(); !ok || top != 300 {
		t.Errorf("FixedTop() = %v, %t", top, ok)
	}
}

func TestLockBoundaries(t *testing.T) {
	l := NewLock(200, 100)
	cases := map[float64]LockState{
		100:   LockFree,
		100.5: LockStuck,
		300:   LockStuck,
		300.5: LockPast,
	}
	for off, want := range cases {
		if got := l.stateAt(off); got != want {
			t.Errorf("stateAt(%v) = %v, want %v", off, got, want)
		}
	}
}

func TestLockIdempotent(t *testing.T) {
	el := newLockElement()
	l := NewLock(200, 100)
	l.Apply(150, el)
	writes := el.writes
	l.Apply(160, el)
	l.Apply(150, el)
	if el.writes != writes {
		t.Errorf("writes = %d, want %d (no writes inside the same state)", el.writes, writes)
	}
}

func TestLockJumpStraightPast(t *testing.T) {
	el := newLockElement()
	l := NewLock(200, 100)
	l.Apply(1000, el)
	if l.State() != LockPast {
		t.Fatalf("state = %v, want past", l.State())
	}
	if el.inline["top"] != "500px" {
		t.Errorf("top = %q, want 500px", el.inline["top"])
	}
}

func TestLockDataFlagMirrorsState(t *testing.T) {
	el := newLockElement()
	l := NewLock(200, 100)
	l.Apply(150, el)
	if el.data[LockDataKey] != "stuck" {
		t.Errorf("data flag = %q, want stuck", el.data[LockDataKey])
	}
	l.Apply(400, el)
	if el.data[LockDataKey] != "past" {
		t.Errorf("data flag = %q, want past", el.data[LockDataKey])
	}
	l.Teardown(el)
	if _, ok := el.data[LockDataKey]; ok {
		t.Error("teardown should remove the data flag")
	}
}

func TestLockTeardownForgetsCapture(t *testing.T) {
	el := newLockElement()
	l := NewLock(200, 100)
	l.Apply(150, el)
	l.Teardown(el)
	if l.State() != LockFree || len(el.inline) != 0 {
		t.Fatalf("teardown left state %v, inline %q", l.State(), inlineString(el))
	}
	if _, ok := l.FixedTop(); ok {
		t.Error("teardown should forget the captured top")
	}

	el.top = 420
	l.Apply(150, el)
	if el.inline["top"] != "420px" {
		t.Errorf("top after teardown = %q, want fresh 420px", el.inline["top"])
	}
}
