package scrollbind

import (
	"math"

	"github.com/tanema/gween/ease"
)

// maxMemoEntries caps the per-sampler lookup table. Longer distances are
// evaluated directly on every call.
const maxMemoEntries = 1 << 16

type curve uint8

const (
	curveConstant curve = iota
	curveLinear
	curveSway
	curveEased
)

// Sampler maps a scroll offset to a property value. Values are rounded to two
// decimals. Samplers built over a fixed distance memoize integer offsets in a
// table that is filled once at construction.
//
// A Sampler is not safe for concurrent use; the binder only samples from its
// single apply path.
type Sampler struct {
	curve    curve
	from, to float64
	over     float64
	delay    float64

	// overFn recomputes the distance on every call (viewport-relative
	// distances); such samplers are never memoized.
	overFn func() float64

	easing ease.TweenFunc

	memo    []float64
	memoSet []uint64
}

// NewConstant returns a sampler that always yields v.
func NewConstant(v float64) *Sampler {
	return &Sampler{curve: curveConstant, from: v, to: v}
}

// NewLinear returns a sampler that ramps from from to to over the distance
// over, starting after delay, clamped to the range between the two values.
func NewLinear(from, to, over, delay float64) *Sampler {
	if from == to {
		return NewConstant(from)
	}
	s := &Sampler{curve: curveLinear, from: from, to: to, over: over, delay: delay}
	s.warm()
	return s
}

// NewSway returns a parabolic sampler that starts at from, peaks at to
// halfway through over and returns to from at the end.
func NewSway(from, to, over, delay float64) *Sampler {
	if from == to {
		return NewConstant(from)
	}
	s := &Sampler{curve: curveSway, from: from, to: to, over: over, delay: delay}
	s.warm()
	return s
}

// NewEased returns a sampler like NewLinear whose progress is shaped by a
// gween easing function. The easing yields progress over a unit range and
// the value is interpolated in float64. Overshooting curves (back, elastic)
// are not clamped.
func NewEased(from, to, over, delay float64, fn ease.TweenFunc) *Sampler {
	if fn == nil {
		return NewLinear(from, to, over, delay)
	}
	if from == to {
		return NewConstant(from)
	}
	s := &Sampler{curve: curveEased, from: from, to: to, over: over, delay: delay, easing: fn}
	s.warm()
	return s
}

// newDynamicSampler returns a sampler of the given curve whose distance is
// read from overFn on every call.
func newDynamicSampler(c curve, from, to, delay float64, fn ease.TweenFunc, overFn func() float64) *Sampler {
	if from == to {
		return NewConstant(from)
	}
	if c == curveEased && fn == nil {
		c = curveLinear
	}
	return &Sampler{curve: c, from: from, to: to, delay: delay, easing: fn, overFn: overFn}
}

// Sample returns the value at the given scroll offset.
func (s *Sampler) Sample(offset float64) float64 {
	if s.curve == curveConstant {
		return s.from
	}
	x := offset - s.delay
	if !(x > 0) {
		x = 0
	}
	if s.overFn != nil {
		return s.eval(x, s.overFn())
	}
	i, ok := s.memoIndex(x)
	if !ok {
		return s.eval(x, s.over)
	}
	if s.memoSet[i>>6]&(1<<(uint(i)&63)) != 0 {
		return s.memo[i]
	}
	v := s.eval(x, s.over)
	s.memo[i] = v
	s.memoSet[i>>6] |= 1 << (uint(i) & 63)
	return v
}

// Dynamic reports whether the sampler recomputes its distance on every call.
func (s *Sampler) Dynamic() bool {
	return s.overFn != nil
}

// warm sizes the lookup table to the distance and fills it for every integer
// offset in [delay, delay+over].
func (s *Sampler) warm() {
	if !(s.over > 0) || math.IsInf(s.over, 0) {
		return
	}
	n := int(math.Ceil(s.over)) + 1
	if n > maxMemoEntries {
		return
	}
	s.memo = make([]float64, n)
	s.memoSet = make([]uint64, (n+63)/64)
	for i := 0; i < n; i++ {
		s.Sample(s.delay + float64(i))
	}
}

func (s *Sampler) memoIndex(x float64) (int, bool) {
	if len(s.memo) == 0 || x != math.Trunc(x) || x >= float64(len(s.memo)) {
		return 0, false
	}
	return int(x), true
}

// eval computes the value at post-delay offset x for distance over.
func (s *Sampler) eval(x, over float64) float64 {
	switch s.curve {
	case curveLinear:
		return linearAt(s.from, s.to, x, over)
	case curveSway:
		return swayAt(s.from, s.to, x, over)
	case curveEased:
		return s.easedAt(x, over)
	default:
		return s.from
	}
}

func linearAt(from, to, x, over float64) float64 {
	if x <= 0 {
		return from
	}
	if !(over > 0) || x >= over {
		return to
	}
	v := round2(from + (to-from)*x/over)
	lo, hi := math.Min(from, to), math.Max(from, to)
	return math.Max(lo, math.Min(hi, v))
}

// swayAt evaluates the parabola through (0, from) and (over, from) with its
// peak to at over/2.
func swayAt(from, to, x, over float64) float64 {
	if !(over > 0) || x <= 0 || x >= over {
		return from
	}
	a := to - from
	b := over / 2
	return round2(from + (-(a/(b*b))*(x-b)*(x-b) + a))
}

func (s *Sampler) easedAt(x, over float64) float64 {
	if x <= 0 {
		return s.from
	}
	if !(over > 0) || x >= over {
		return s.to
	}
	p := float64(s.easing(float32(x), 0, 1, float32(over)))
	return round2(s.from + (s.to-s.from)*p)
}

// round2 rounds half up to two decimals.
func round2(v float64) float64 {
	r := math.Floor(v*100+0.5) / 100
	if r == 0 {
		return 0
	}
	return r
}
