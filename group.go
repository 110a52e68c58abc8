package scrollbind

// AnimationRecord is one target element with its compiled properties, in
// declaration order.
type AnimationRecord struct {
	Element    Element
	Properties []*CompiledProperty

	// written remembers the last value written per style property so
	// unchanged values are not written again.
	written map[string]string
}

// SelectorGroup is the set of records compiled for one selector.
type SelectorGroup struct {
	Selector string
	Records  []*AnimationRecord
}

// AnimationSet is the compiled declaration map. Selectors that matched no
// element are not part of it.
type AnimationSet struct {
	groups  []*SelectorGroup
	dropped []string
}

// Compile resolves every selector of opts.Animations against root and
// compiles its properties for each matched element.
func Compile(root Element, doc Document, opts Options) *AnimationSet {
	opts = opts.withDefaults()
	env := compileEnv{doc: doc, over: opts.Over, delay: opts.Delay}
	set := &AnimationSet{}
	for _, decl := range opts.Animations {
		g := compileGroup(root, decl, env)
		if g == nil {
			set.dropped = append(set.dropped, decl.Selector)
			continue
		}
		set.groups = append(set.groups, g)
	}
	return set
}

// compileGroup returns nil when the selector matches nothing.
func compileGroup(root Element, decl SelectorDecl, env compileEnv) *SelectorGroup {
	var targets []Element
	if decl.Selector == SelectorThis {
		if root != nil {
			targets = []Element{root}
		}
	} else {
		targets = env.doc.QueryAll(root, decl.Selector)
	}
	if len(targets) == 0 {
		return nil
	}
	g := &SelectorGroup{Selector: decl.Selector, Records: make([]*AnimationRecord, 0, len(targets))}
	for _, el := range targets {
		rec := &AnimationRecord{
			Element:    el,
			Properties: make([]*CompiledProperty, 0, len(decl.Properties)),
		}
		for _, pd := range decl.Properties {
			rec.Properties = append(rec.Properties, compileProperty(pd.Name, pd.Spec, el, env))
		}
		g.Records = append(g.Records, rec)
	}
	return g
}

// Groups returns the compiled groups. The returned slice MUST NOT be mutated.
func (s *AnimationSet) Groups() []*SelectorGroup {
	return s.groups
}

// Len returns the number of compiled groups.
func (s *AnimationSet) Len() int {
	return len(s.groups)
}

// NumRecords returns the number of records across all groups.
func (s *AnimationSet) NumRecords() int {
	n := 0
	for _, g := range s.groups {
		n += len(g.Records)
	}
	return n
}

// Dropped returns the selectors that matched no element.
func (s *AnimationSet) Dropped() []string {
	return s.dropped
}

// Records calls fn for every record, in order.
func (s *AnimationSet) Records(fn func(*AnimationRecord)) {
	for _, g := range s.groups {
		for _, rec := range g.Records {
			fn(rec)
		}
	}
}
