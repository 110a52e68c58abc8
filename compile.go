package scrollbind

import (
	"math"
	"strconv"
	"strings"
)

// compileEnv carries the engine-wide defaults into property compilation.
type compileEnv struct {
	doc   Document
	over  float64
	delay float64
}

// CompiledProperty is one property of one element, bound to its behavior.
// Exactly one of the behavior fields is set, matching Kind.
type CompiledProperty struct {
	Name string
	Kind Kind
	Unit string

	sampler *Sampler
	toggle  *classToggle
	lock    *Lock
}

// Sampler returns the numeric sampler of a numeric or transform property.
func (p *CompiledProperty) Sampler() *Sampler {
	return p.sampler
}

// Lock returns the state machine of a lock property.
func (p *CompiledProperty) Lock() *Lock {
	return p.lock
}

// Value returns the formatted value of a numeric or transform property at
// offset, unit included.
func (p *CompiledProperty) Value(offset float64) string {
	if p.sampler == nil {
		return ""
	}
	return formatNumber(p.sampler.Sample(offset)) + p.Unit
}

// compileProperty turns one declared property into its compiled form for el.
// It never fails: unusable numbers fall back to the engine defaults or to
// the element's computed value.
func compileProperty(name string, spec PropertySpec, el Element, env compileEnv) *CompiledProperty {
	delay := resolveDistance(spec.Delay, el, env, env.delay)

	var over float64
	var overFn func() float64
	if spec.Over.IsViewport() {
		base := delay
		overFn = func() float64 { return env.doc.ViewportHeight() - 2*base }
		over = overFn()
	} else {
		over = resolveDistance(spec.Over, el, env, env.over)
		if !(over > 0) || math.IsInf(over, 0) {
			over = env.over
		}
	}

	if spec.Viewport {
		delay += el.Offset().Top - env.doc.ViewportHeight()
	}

	switch name {
	case PropertyClass:
		return &CompiledProperty{
			Name:   name,
			Kind:   KindClass,
			toggle: newClassToggle(strings.TrimSpace(spec.Class), over, delay),
		}
	case PropertyLock:
		return &CompiledProperty{
			Name: name,
			Kind: KindLock,
			lock: NewLock(over, delay),
		}
	}

	p := &CompiledProperty{Name: name, Kind: KindNumeric, Unit: "px"}
	if IsTransform(name) {
		p.Kind = KindTransform
		p.Unit = ""
	}
	if spec.Unit != nil {
		p.Unit = *spec.Unit
	}

	from, to := numberOr(spec.From), numberOr(spec.To)
	if spec.From == nil || spec.To == nil {
		current := parseNumber(el.ComputedValue(name))
		if spec.From == nil {
			from = current
		}
		if spec.To == nil {
			to = current
		}
	}

	c := curveLinear
	switch {
	case spec.Sway:
		c = curveSway
	case spec.Ease != nil:
		c = curveEased
	}

	if overFn != nil {
		p.sampler = newDynamicSampler(c, from, to, delay, spec.Ease, overFn)
		return p
	}
	switch c {
	case curveSway:
		p.sampler = NewSway(from, to, over, delay)
	case curveEased:
		p.sampler = NewEased(from, to, over, delay, spec.Ease)
	default:
		p.sampler = NewLinear(from, to, over, delay)
	}
	return p
}

// resolveDistance turns a Distance into a number for el, falling back to def
// when it is unset or not a number.
func resolveDistance(d Distance, el Element, env compileEnv, def float64) float64 {
	if !d.IsSet() {
		return def
	}
	var v float64
	switch {
	case d.fn != nil:
		v = d.fn(el)
	case d.viewport:
		v = env.doc.ViewportHeight()
	default:
		v = d.px
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// numberOr dereferences p, mapping nil and NaN to zero.
func numberOr(p *float64) float64 {
	if p == nil || math.IsNaN(*p) {
		return 0
	}
	return *p
}

// parseNumber reads the leading decimal number of a computed style value
// such as "12.5px". Anything unparsable is zero.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := false
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits = true
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits = true
		}
	}
	if !digits {
		return 0
	}
	// Optional exponent, only when followed by digits.
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		start := exp
		for exp < len(s) && s[exp] >= '0' && s[exp] <= '9' {
			exp++
		}
		if exp > start {
			end = exp
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}
