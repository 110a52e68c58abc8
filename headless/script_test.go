package headless

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/phanxgames/scrollbind"
)

func TestLoadScript(t *testing.T) {
	s, err := LoadScript([]byte(`
steps:
  - action: scroll
    y: 120
    frames: 4
  - action: wait
    ms: 100
  - action: snapshot
    label: after
`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	want := []Step{
		{Action: "scroll", Y: 120, Frames: 4},
		{Action: "wait", Ms: 100},
		{Action: "snapshot", Label: "after"},
	}
	if diff := cmp.Diff(want, s.Steps); diff != "" {
		t.Errorf("steps (-want +got):\n%s", diff)
	}
}

func TestLoadScriptJSON(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps":[{"action":"scroll","y":50},{"action":"snapshot"}]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(s.Steps) != 2 || s.Steps[0].Y != 50 {
		t.Errorf("steps = %+v", s.Steps)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	cases := map[string]string{
		"steps: [":                                   "parse scroll script",
		"steps: []":                                  "no steps",
		"steps: [{action: jump}]":                    `unknown action "jump"`,
		"steps: [{action: wait, ms: -1}]":            "must not be negative",
		"steps: [{action: scroll, y: 1, frames: -2}]": "frames must not be negative",
	}
	for in, want := range cases {
		_, err := LoadScript([]byte(in))
		if err == nil {
			t.Errorf("%q: expected error", in)
			continue
		}
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%q: error %q should contain %q", in, err, want)
		}
	}
}

func TestScriptScrollInterpolates(t *testing.T) {
	doc := NewDocument(600)
	clock := NewClock()
	var seen []float64
	doc.Listen(nil, func() { seen = append(seen, doc.ScrollTop()) })

	s := &Script{Steps: []Step{{Action: ActionScroll, Y: 100, Frames: 4}}}
	if _, err := s.Run(doc, clock); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{25, 50, 75, 100}, seen); diff != "" {
		t.Errorf("scroll positions (-want +got):\n%s", diff)
	}
	if clock.Frames() != 4 {
		t.Errorf("frames = %d, want 4", clock.Frames())
	}
}

func TestScriptScrollTarget(t *testing.T) {
	doc := NewDocument(600)
	panel := doc.Build(nil, []ElementSpec{{Name: "div", ID: "panel"}})[0]
	s := &Script{Steps: []Step{{Action: ActionScroll, Target: "#panel", Y: 40}}}
	if _, err := s.Run(doc, NewClock()); err != nil {
		t.Fatal(err)
	}
	if panel.ScrollTop() != 40 || doc.ScrollTop() != 0 {
		t.Errorf("panel %v, page %v", panel.ScrollTop(), doc.ScrollTop())
	}

	bad := &Script{Steps: []Step{{Action: ActionScroll, Target: "#nope", Y: 40}}}
	if _, err := bad.Run(doc, NewClock()); err == nil || !strings.Contains(err.Error(), "matched no element") {
		t.Errorf("err = %v, want a missing target error", err)
	}
}

// A binder driven by the headless host through a script: throttled applies
// during the scroll and a settling apply after it.
func TestScriptDrivesBinder(t *testing.T) {
	doc := NewDocument(600)
	doc.Build(nil, []ElementSpec{
		{Name: "header", ID: "hdr", Height: 80},
		{Name: "aside", ID: "side", Top: 300, Left: 40, Width: 220, Height: 200},
	})
	clock := NewClock()
	opts := scrollbind.Options{Animations: scrollbind.Declarations{}.
		Add("#hdr", "height", scrollbind.PropertySpec{To: scrollbind.Ptr(40.0), Over: scrollbind.Px(100)}).
		Add("#hdr", "class", scrollbind.PropertySpec{Class: "compact", Over: scrollbind.Px(1000), Delay: scrollbind.Px(50)}).
		Add("#side", "lock", scrollbind.PropertySpec{Over: scrollbind.Px(200), Delay: scrollbind.Px(100)})}
	b := scrollbind.New(nil, doc, clock, opts)
	defer b.Unbind()

	s := &Script{Steps: []Step{
		{Action: ActionSnapshot, Label: "start"},
		{Action: ActionScroll, Y: 150, Frames: 3},
		{Action: ActionWait, Ms: 100},
		{Action: ActionSnapshot, Label: "stuck"},
		{Action: ActionScroll, Y: 400},
		{Action: ActionWait, Ms: 100},
		{Action: ActionSnapshot, Label: "past"},
	}}
	snaps, err := s.Run(doc, clock)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 3 {
		t.Fatalf("snapshots = %d, want 3", len(snaps))
	}

	start := snaps[0].Elements
	if start[0].Styles["height"] != "80px" || len(start[0].Classes) != 0 {
		t.Errorf("start header = %+v", start[0])
	}

	stuck := snaps[1].Elements
	if stuck[0].Styles["height"] != "40px" {
		t.Errorf("header height = %q, want 40px", stuck[0].Styles["height"])
	}
	if diff := cmp.Diff([]string{"compact"}, stuck[0].Classes); diff != "" {
		t.Errorf("header classes (-want +got):\n%s", diff)
	}
	wantSide := map[string]string{"position": "fixed", "top": "300px", "left": "40px", "width": "220px"}
	if diff := cmp.Diff(wantSide, stuck[1].Styles); diff != "" {
		t.Errorf("stuck sidebar (-want +got):\n%s", diff)
	}
	if stuck[1].Data[scrollbind.LockDataKey] != "stuck" {
		t.Errorf("lock flag = %q", stuck[1].Data[scrollbind.LockDataKey])
	}

	past := snaps[2].Elements[1]
	if past.Styles["position"] != "absolute" || past.Styles["top"] != "500px" {
		t.Errorf("past sidebar = %v", past.Styles)
	}
	if snaps[2].Time <= snaps[1].Time || snaps[2].Time < 200*time.Millisecond {
		t.Errorf("snapshot times %v, %v", snaps[1].Time, snaps[2].Time)
	}
	if b.Offset() != 400 {
		t.Errorf("binder offset = %v, want 400", b.Offset())
	}
}
