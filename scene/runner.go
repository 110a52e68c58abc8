package scene

import (
	"fmt"
	"time"

	"github.com/phanxgames/scrollbind/headless"
)

// ScriptRunner plays a headless scroll script inside a running scene, one
// step per tick: scrolls move the page (or a target element), waits hold
// the script for scene clock time, and snapshots record the page state and
// queue a screenshot of the frame.
type ScriptRunner struct {
	steps  []headless.Step
	cursor int

	frame     int // frames done of an interpolated scroll
	from      float64
	waiting   bool
	waitUntil time.Duration

	snapshots []headless.Snapshot
	err       error
	done      bool
}

// NewScriptRunner checks script and returns a runner for it.
func NewScriptRunner(script *headless.Script) (*ScriptRunner, error) {
	if err := script.Check(); err != nil {
		return nil, fmt.Errorf("scene script: %w", err)
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches r to the scene. It steps at the start of every
// Update, before input is read.
func (s *Scene) SetScriptRunner(r *ScriptRunner) {
	s.runner = r
}

// Done reports whether every step has run, or the script failed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Err returns the error that stopped the script, if any.
func (r *ScriptRunner) Err() error {
	return r.err
}

// Snapshots returns the page states recorded by snapshot steps.
func (r *ScriptRunner) Snapshots() []headless.Snapshot {
	return r.snapshots
}

func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	if r.waiting {
		if s.clock.Now() < r.waitUntil {
			return
		}
		r.waiting = false
	}
	if r.cursor < len(r.steps) {
		r.exec(s, r.steps[r.cursor])
	}
	if r.cursor >= len(r.steps) && !r.waiting {
		r.done = true
	}
}

func (r *ScriptRunner) exec(s *Scene, st headless.Step) {
	switch st.Action {
	case headless.ActionScroll:
		var target *headless.Element
		if st.Target != "" {
			if target = s.doc.First(st.Target); target == nil {
				r.fail(fmt.Errorf("step %d: scroll target %q matched no element", r.cursor, st.Target))
				return
			}
		}
		if st.Frames <= 1 {
			r.scroll(s, target, st.Y)
			r.cursor++
			return
		}
		if r.frame == 0 {
			r.from = s.doc.ScrollTop()
			if target != nil {
				r.from = target.ScrollTop()
			}
		}
		r.frame++
		r.scroll(s, target, r.from+(st.Y-r.from)*float64(r.frame)/float64(st.Frames))
		if r.frame == st.Frames {
			r.frame = 0
			r.cursor++
		}
	case headless.ActionWait:
		r.cursor++
		r.waiting = true
		r.waitUntil = s.clock.Now() + time.Duration(st.Ms*float64(time.Millisecond))
	case headless.ActionSnapshot:
		label := st.Label
		if label == "" {
			label = fmt.Sprintf("snapshot-%d", len(r.snapshots)+1)
		}
		r.snapshots = append(r.snapshots, headless.Capture(s.doc, s.clock, label))
		s.Screenshot(label)
		r.cursor++
	default:
		r.fail(fmt.Errorf("step %d: unknown action %q", r.cursor, st.Action))
	}
}

func (r *ScriptRunner) scroll(s *Scene, target *headless.Element, y float64) {
	if target != nil {
		s.doc.ScrollElement(target, y)
		return
	}
	s.scroll = nil
	s.setScroll(y)
}

func (r *ScriptRunner) fail(err error) {
	r.err = err
	r.cursor = len(r.steps)
}
