package headless

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Step actions of a Script.
const (
	ActionScroll   = "scroll"
	ActionWait     = "wait"
	ActionSnapshot = "snapshot"
)

// Step is a single action in a scroll script.
type Step struct {
	Action string  `yaml:"action" json:"action"`
	Label  string  `yaml:"label,omitempty" json:"label,omitempty"`
	Y      float64 `yaml:"y,omitempty" json:"y,omitempty"`
	Target string  `yaml:"target,omitempty" json:"target,omitempty"` // selector of a scrolling element; empty scrolls the page
	Frames int     `yaml:"frames,omitempty" json:"frames,omitempty"`
	Ms     float64 `yaml:"ms,omitempty" json:"ms,omitempty"`
}

// Script sequences scrolls, waits and snapshots against a Document and
// Clock.
type Script struct {
	Steps []Step `yaml:"steps" json:"steps"`
}

// ElementState is the observable state of one element in a Snapshot.
type ElementState struct {
	Name    string            `json:"name"`
	ID      string            `json:"id,omitempty"`
	Classes []string          `json:"classes,omitempty"`
	Styles  map[string]string `json:"styles,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
}

// Snapshot captures every element below the body at one point of a script.
type Snapshot struct {
	Label     string         `json:"label"`
	Time      time.Duration  `json:"time"`
	ScrollTop float64        `json:"scrollTop"`
	Elements  []ElementState `json:"elements"`
}

// LoadScript parses a YAML or JSON scroll script.
func LoadScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scroll script: %w", err)
	}
	if err := s.Check(); err != nil {
		return nil, fmt.Errorf("parse scroll script: %w", err)
	}
	return &s, nil
}

// Check reports the first malformed step.
func (s *Script) Check() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case ActionScroll:
			if math.IsNaN(st.Y) || math.IsInf(st.Y, 0) {
				return fmt.Errorf("step %d: scroll offset must be finite", i)
			}
			if st.Frames < 0 {
				return fmt.Errorf("step %d: frames must not be negative", i)
			}
		case ActionWait:
			if st.Ms < 0 || math.IsNaN(st.Ms) {
				return fmt.Errorf("step %d: wait must not be negative", i)
			}
		case ActionSnapshot:
		default:
			return fmt.Errorf("step %d: unknown action %q", i, st.Action)
		}
	}
	return nil
}

// Run executes every step. A scroll without frames jumps at once; with
// frames it moves in equal increments, one per frame. A wait advances the
// clock by its milliseconds.
func (s *Script) Run(doc *Document, clock *Clock) ([]Snapshot, error) {
	var snaps []Snapshot
	for i, st := range s.Steps {
		switch st.Action {
		case ActionScroll:
			if err := scrollStep(doc, clock, st); err != nil {
				return snaps, fmt.Errorf("step %d: %w", i, err)
			}
		case ActionWait:
			clock.Advance(time.Duration(st.Ms * float64(time.Millisecond)))
		case ActionSnapshot:
			label := st.Label
			if label == "" {
				label = fmt.Sprintf("snapshot-%d", len(snaps)+1)
			}
			snaps = append(snaps, Capture(doc, clock, label))
		default:
			return snaps, fmt.Errorf("step %d: unknown action %q", i, st.Action)
		}
	}
	return snaps, nil
}

func scrollStep(doc *Document, clock *Clock, st Step) error {
	var el *Element
	if st.Target != "" {
		if el = doc.First(st.Target); el == nil {
			return fmt.Errorf("scroll target %q matched no element", st.Target)
		}
	}
	set := func(y float64) {
		if el != nil {
			doc.ScrollElement(el, y)
			return
		}
		doc.SetScrollTop(y)
	}
	if st.Frames <= 1 {
		set(st.Y)
		if st.Frames == 1 {
			clock.Tick()
		}
		return nil
	}
	from := doc.ScrollTop()
	if el != nil {
		from = el.ScrollTop()
	}
	for f := 1; f <= st.Frames; f++ {
		set(from + (st.Y-from)*float64(f)/float64(st.Frames))
		clock.Tick()
	}
	return nil
}

// Capture records the state of every element below the body.
func Capture(doc *Document, clock *Clock, label string) Snapshot {
	snap := Snapshot{Label: label, ScrollTop: doc.ScrollTop()}
	if clock != nil {
		snap.Time = clock.Now()
	}
	doc.Walk(func(e *Element) {
		if e == doc.body {
			return
		}
		st := ElementState{Name: e.Name, ID: e.ID, Classes: e.Classes()}
		if len(e.inline) > 0 {
			st.Styles = e.InlineStyles()
		}
		if len(e.data) > 0 {
			st.Data = make(map[string]string, len(e.data))
			for k, v := range e.data {
				st.Data[k] = v
			}
		}
		snap.Elements = append(snap.Elements, st)
	})
	return snap
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
