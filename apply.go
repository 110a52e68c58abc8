package scrollbind

import "strings"

// Apply evaluates every record at offset and writes the resulting styles.
// It returns the number of style properties written.
func (s *AnimationSet) Apply(offset float64) int {
	writes := 0
	for _, g := range s.groups {
		for _, rec := range g.Records {
			writes += rec.apply(offset)
		}
	}
	return writes
}

// Reset strips everything the set wrote: inline styles, toggled classes and
// lock positioning.
func (s *AnimationSet) Reset() {
	for _, g := range s.groups {
		for _, rec := range g.Records {
			rec.reset()
		}
	}
}

// apply writes one record. Transform components are merged, in declaration
// order, into a single composite written to every transform style name.
func (r *AnimationRecord) apply(offset float64) int {
	styles := make(map[string]string, len(r.Properties)+len(transformStyleNames))
	var transform strings.Builder
	for _, p := range r.Properties {
		switch p.Kind {
		case KindNumeric:
			styles[p.Name] = p.Value(offset)
		case KindTransform:
			if transform.Len() > 0 {
				transform.WriteByte(' ')
			}
			transform.WriteString(p.Name)
			transform.WriteByte('(')
			transform.WriteString(p.Value(offset))
			transform.WriteByte(')')
		case KindClass:
			p.toggle.apply(offset, r.Element)
		case KindLock:
			p.lock.Apply(offset, r.Element)
		}
	}
	if transform.Len() > 0 {
		composite := transform.String()
		for _, name := range transformStyleNames {
			styles[name] = composite
		}
	}
	if r.written == nil {
		r.written = make(map[string]string, len(styles))
	}
	for name, v := range styles {
		if prev, ok := r.written[name]; ok && prev == v {
			delete(styles, name)
			continue
		}
		r.written[name] = v
	}
	if len(styles) > 0 {
		r.Element.SetStyles(styles)
	}
	return len(styles)
}

func (r *AnimationRecord) reset() {
	styles := make(map[string]string)
	for _, p := range r.Properties {
		switch p.Kind {
		case KindNumeric:
			styles[p.Name] = ""
		case KindTransform:
			for _, name := range transformStyleNames {
				styles[name] = ""
			}
		case KindClass:
			p.toggle.teardown(r.Element)
		case KindLock:
			p.lock.Teardown(r.Element)
		}
	}
	if len(styles) > 0 {
		r.Element.SetStyles(styles)
	}
	r.written = nil
}
