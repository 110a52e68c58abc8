package headless

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// buildTestPage:
//
//	body
//	  header#top.bar
//	    nav.menu
//	      a.link.active
//	      a.link
//	  main
//	    section.card
//	      p.note
//	    section.card.wide
func buildTestPage() *Document {
	d := NewDocument(600)
	d.Build(nil, []ElementSpec{
		{Name: "header", ID: "top", Classes: []string{"bar"}, Children: []ElementSpec{
			{Name: "nav", Classes: []string{"menu"}, Children: []ElementSpec{
				{Name: "a", ID: "home", Classes: []string{"link", "active"}},
				{Name: "a", ID: "about", Classes: []string{"link"}},
			}},
		}},
		{Name: "main", Children: []ElementSpec{
			{Name: "section", ID: "s1", Classes: []string{"card"}, Children: []ElementSpec{
				{Name: "p", ID: "note", Classes: []string{"note"}},
			}},
			{Name: "section", ID: "s2", Classes: []string{"card", "wide"}},
		}},
	})
	return d
}

func names(els []*Element) []string {
	out := make([]string, 0, len(els))
	for _, e := range els {
		if e.ID != "" {
			out = append(out, "#"+e.ID)
			continue
		}
		out = append(out, e.Name)
	}
	return out
}

func TestSelect(t *testing.T) {
	d := buildTestPage()
	cases := []struct {
		sel  string
		want []string
	}{
		{"a", []string{"#home", "#about"}},
		{"#top", []string{"#top"}},
		{".card", []string{"#s1", "#s2"}},
		{"section.card.wide", []string{"#s2"}},
		{"a.link.active", []string{"#home"}},
		{"header a", []string{"#home", "#about"}},
		{"header > a", []string{}},
		{"nav > a", []string{"#home", "#about"}},
		{"main  >  section > p", []string{"#note"}},
		{".note, #top", []string{"#top", "#note"}},
		{"a, .link", []string{"#home", "#about"}},
		{"main *", []string{"#s1", "#note", "#s2"}},
		{"SECTION", []string{"#s1", "#s2"}},
		{"body > main", []string{"main"}},
	}
	for _, tc := range cases {
		got := names(d.Select(nil, tc.sel))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Select(%q) (-want +got):\n%s", tc.sel, diff)
		}
	}
}

func TestSelectUnsupportedMatchesNothing(t *testing.T) {
	d := buildTestPage()
	for _, sel := range []string{"", ",a", "a >", "> a", "a > > b", "a[href]", "a:hover", "#", ".", "#a#b", "a ~ b", "a + b"} {
		if got := d.Select(nil, sel); len(got) != 0 {
			t.Errorf("Select(%q) = %v, want nothing", sel, names(got))
		}
	}
}

func TestSelectWithinRoot(t *testing.T) {
	d := buildTestPage()
	main := d.First("main")
	got := names(d.Select(main, "section"))
	if diff := cmp.Diff([]string{"#s1", "#s2"}, got); diff != "" {
		t.Errorf("scoped select (-want +got):\n%s", diff)
	}
	// The root itself is not a candidate, but ancestors above it still
	// satisfy combinators.
	if got := d.Select(main, "main"); len(got) != 0 {
		t.Errorf("root matched itself: %v", names(got))
	}
	if got := names(d.Select(main, "body section > p")); !cmp.Equal([]string{"#note"}, got) {
		t.Errorf("ancestor above root = %v", got)
	}
}

func TestQueryAllRejectsForeignRoot(t *testing.T) {
	d := buildTestPage()
	if got := d.QueryAll(nil, "a"); len(got) != 2 {
		t.Errorf("QueryAll(nil) = %d elements, want 2", len(got))
	}
	if got := d.QueryAll(foreignElement{}, "a"); got != nil {
		t.Errorf("QueryAll(foreign) = %v, want nil", got)
	}
}
