package headless

// ElementSpec describes one element of a page to build, with its children.
type ElementSpec struct {
	Name     string            `yaml:"name" json:"name"`
	ID       string            `yaml:"id,omitempty" json:"id,omitempty"`
	Classes  []string          `yaml:"classes,omitempty" json:"classes,omitempty"`
	Top      float64           `yaml:"top,omitempty" json:"top,omitempty"`
	Left     float64           `yaml:"left,omitempty" json:"left,omitempty"`
	Width    float64           `yaml:"width,omitempty" json:"width,omitempty"`
	Height   float64           `yaml:"height,omitempty" json:"height,omitempty"`
	Style    map[string]string `yaml:"style,omitempty" json:"style,omitempty"`
	Overflow string            `yaml:"overflow,omitempty" json:"overflow,omitempty"`
	Children []ElementSpec     `yaml:"children,omitempty" json:"children,omitempty"`
}

// Build creates the elements described by specs and appends them to parent,
// or to the body when parent is nil. It returns the created top-level
// elements.
func (d *Document) Build(parent *Element, specs []ElementSpec) []*Element {
	if parent == nil {
		parent = d.body
	}
	out := make([]*Element, 0, len(specs))
	for _, s := range specs {
		name := s.Name
		if name == "" {
			name = "div"
		}
		e := NewElement(name, s.Classes...)
		e.ID = s.ID
		e.Top, e.Left = s.Top, s.Left
		e.Width, e.Height = s.Width, s.Height
		for k, v := range s.Style {
			e.Base[k] = v
		}
		if s.Overflow != "" {
			e.Base["overflow"] = s.Overflow
		}
		parent.AppendChild(e)
		d.Build(e, s.Children)
		out = append(out, e)
	}
	return out
}
