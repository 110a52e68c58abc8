package headless

import "strings"

// compound is one run of simple selectors with no combinator: a type name
// or "*", an optional #id and any number of .class tokens.
type compound struct {
	tag     string
	id      string
	classes []string
}

func (c compound) matches(e *Element) bool {
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(c.tag, e.Name) {
		return false
	}
	if c.id != "" && c.id != e.ID {
		return false
	}
	for _, cls := range c.classes {
		if !e.HasClass(cls) {
			return false
		}
	}
	return true
}

// complexSelector is a chain of compounds. combinators[i] joins parts[i]
// and parts[i+1] and is either ' ' (descendant) or '>' (child).
type complexSelector struct {
	parts       []compound
	combinators []byte
}

// matches checks e against the rightmost compound, then walks ancestors for
// the rest of the chain.
func (s *complexSelector) matches(e *Element) bool {
	return s.matchFrom(e, len(s.parts)-1)
}

func (s *complexSelector) matchFrom(e *Element, i int) bool {
	if !s.parts[i].matches(e) {
		return false
	}
	if i == 0 {
		return true
	}
	if s.combinators[i-1] == '>' {
		return e.parent != nil && s.matchFrom(e.parent, i-1)
	}
	for p := e.parent; p != nil; p = p.parent {
		if s.matchFrom(p, i-1) {
			return true
		}
	}
	return false
}

// selectorList is a comma-separated group of complex selectors.
type selectorList []complexSelector

func (l selectorList) matches(e *Element) bool {
	for i := range l {
		if l[i].matches(e) {
			return true
		}
	}
	return false
}

// parseSelector parses the supported selector subset. ok is false for
// anything outside it.
func parseSelector(s string) (selectorList, bool) {
	var list selectorList
	for _, group := range strings.Split(s, ",") {
		sel, ok := parseComplex(strings.TrimSpace(group))
		if !ok {
			return nil, false
		}
		list = append(list, sel)
	}
	return list, true
}

func parseComplex(s string) (complexSelector, bool) {
	var sel complexSelector
	if s == "" {
		return sel, false
	}
	var pending byte // combinator seen since the last compound
	i := 0
	for i < len(s) {
		switch ch := s[i]; {
		case ch == ' ' || ch == '\t' || ch == '\n':
			if pending == 0 {
				pending = ' '
			}
			i++
		case ch == '>':
			if len(sel.parts) == 0 || pending == '>' {
				return sel, false
			}
			pending = '>'
			i++
		default:
			c, n, ok := parseCompound(s[i:])
			if !ok {
				return sel, false
			}
			if len(sel.parts) > 0 {
				sel.combinators = append(sel.combinators, pending)
			}
			sel.parts = append(sel.parts, c)
			pending = 0
			i += n
		}
	}
	if pending == '>' {
		return sel, false
	}
	return sel, true
}

// parseCompound reads one compound from the start of s and returns it with
// the number of bytes consumed.
func parseCompound(s string) (compound, int, bool) {
	var c compound
	i := 0
	if i < len(s) && s[i] == '*' {
		c.tag = "*"
		i++
	} else if n := identLen(s[i:]); n > 0 {
		c.tag = s[i : i+n]
		i += n
	}
	for i < len(s) {
		ch := s[i]
		if ch != '#' && ch != '.' {
			break
		}
		n := identLen(s[i+1:])
		if n == 0 {
			return c, 0, false
		}
		name := s[i+1 : i+1+n]
		if ch == '#' {
			if c.id != "" {
				return c, 0, false
			}
			c.id = name
		} else {
			c.classes = append(c.classes, name)
		}
		i += 1 + n
	}
	if i == 0 {
		return c, 0, false
	}
	if i < len(s) && !isSeparator(s[i]) {
		return c, 0, false
	}
	return c, i, true
}

func identLen(s string) int {
	n := 0
	for n < len(s) {
		ch := s[n]
		if ch == '-' || ch == '_' || ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' {
			n++
			continue
		}
		break
	}
	return n
}

func isSeparator(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '>'
}
