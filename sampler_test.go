package scrollbind

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestLinearOpacityScenario(t *testing.T) {
	s := NewLinear(0, 1, 100, 0)
	cases := []struct {
		offset, want float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 1},
		{150, 1},
		{-20, 0},
	}
	for _, c := range cases {
		if got := s.Sample(c.offset); got != c.want {
			t.Errorf("Sample(%v) = %v, want %v", c.offset, got, c.want)
		}
	}
}

func TestLinearBounds(t *testing.T) {
	params := []struct {
		from, to, over, delay float64
	}{
		{0, 1, 100, 0},
		{80, 40, 70, 10},
		{-55, -10, 33, 5},
		{0.123, 9.876, 17.5, 3.25},
		{360, 0, 1, 0},
	}
	for _, p := range params {
		s := NewLinear(p.from, p.to, p.over, p.delay)
		lo, hi := math.Min(p.from, p.to), math.Max(p.from, p.to)
		for off := p.delay - 50; off <= p.delay+p.over+50; off += 0.75 {
			v := s.Sample(off)
			if v < lo || v > hi {
				t.Fatalf("%+v: Sample(%v) = %v outside [%v, %v]", p, off, v, lo, hi)
			}
		}
		if got := s.Sample(p.delay); got != p.from {
			t.Errorf("%+v: Sample(delay) = %v, want from", p, got)
		}
		if got := s.Sample(p.delay + p.over); got != p.to {
			t.Errorf("%+v: Sample(delay+over) = %v, want to", p, got)
		}
	}
}

func TestConstantShortcut(t *testing.T) {
	for _, s := range []*Sampler{
		NewLinear(3, 3, 100, 0),
		NewSway(3, 3, 100, 0),
		NewEased(3, 3, 100, 0, ease.OutBounce),
		NewConstant(3),
	} {
		for _, off := range []float64{-10, 0, 1, 50, 99.5, 100, 1e6} {
			if got := s.Sample(off); got != 3 {
				t.Errorf("Sample(%v) = %v, want 3", off, got)
			}
		}
	}
}

func TestSwayShape(t *testing.T) {
	s := NewSway(1, 2, 100, 20)
	if got := s.Sample(20); got != 1 {
		t.Errorf("Sample(delay) = %v, want 1", got)
	}
	if got := s.Sample(120); got != 1 {
		t.Errorf("Sample(delay+over) = %v, want 1", got)
	}
	if got := s.Sample(70); math.Abs(got-2) > 0.01 {
		t.Errorf("Sample(delay+over/2) = %v, want ~2", got)
	}
	if got := s.Sample(500); got != 1 {
		t.Errorf("Sample past range = %v, want baseline 1", got)
	}
	// Rising on the way in, falling on the way out.
	if !(s.Sample(45) < s.Sample(60)) || !(s.Sample(80) > s.Sample(95)) {
		t.Error("sway should rise then fall")
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		0.125:   0.13,
		1.004:   1,
		-0.125:  -0.12,
		2.3333:  2.33,
		-0.0001: 0,
	}
	for in, want := range cases {
		if got := round2(in); got != want {
			t.Errorf("round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestMemoTransparency(t *testing.T) {
	s := NewLinear(0, 7, 30, 5)
	for off := 0.0; off <= 40; off++ {
		first := s.Sample(off)
		second := s.Sample(off)
		if math.Float64bits(first) != math.Float64bits(second) {
			t.Fatalf("Sample(%v) changed between calls: %v then %v", off, first, second)
		}
		if want := linearAt(0, 7, math.Max(0, off-5), 30); first != want {
			t.Fatalf("Sample(%v) = %v, direct evaluation = %v", off, first, want)
		}
	}
}

func TestMemoPrewarmedAtConstruction(t *testing.T) {
	s := NewLinear(0, 10, 20, 0)
	if len(s.memo) != 21 {
		t.Fatalf("memo size = %d, want 21", len(s.memo))
	}
	for i := 0; i < len(s.memo); i++ {
		if s.memoSet[i>>6]&(1<<(uint(i)&63)) == 0 {
			t.Fatalf("memo entry %d not warmed", i)
		}
	}
}

func TestMemoZeroValueIsCached(t *testing.T) {
	// The value at x=50 rounds to exactly zero; it must still count as set.
	s := NewLinear(-1, 1, 100, 0)
	if got := s.Sample(50); got != 0 {
		t.Fatalf("Sample(50) = %v, want 0", got)
	}
	if s.memoSet[0]&(1<<50) == 0 {
		t.Fatal("zero-valued entry should be marked as set")
	}
}

func TestMemoSkipsFractionalOffsets(t *testing.T) {
	s := NewLinear(0, 1, 10, 0)
	if got := s.Sample(2.5); got != 0.25 {
		t.Errorf("Sample(2.5) = %v, want 0.25", got)
	}
}

func TestMemoCappedForLongDistances(t *testing.T) {
	s := NewLinear(0, 1, maxMemoEntries*2, 0)
	if s.memo != nil {
		t.Fatalf("memo should be skipped for distances over %d", maxMemoEntries)
	}
	if got := s.Sample(maxMemoEntries); got != 0.5 {
		t.Errorf("Sample(half) = %v, want 0.5", got)
	}
}

func TestDynamicSamplerReadsDistanceEveryCall(t *testing.T) {
	over := 100.0
	s := newDynamicSampler(curveLinear, 0, 10, 0, nil, func() float64 { return over })
	if !s.Dynamic() {
		t.Fatal("expected dynamic sampler")
	}
	if got := s.Sample(50); got != 5 {
		t.Errorf("Sample(50) = %v, want 5", got)
	}
	over = 200
	if got := s.Sample(50); got != 2.5 {
		t.Errorf("Sample(50) after resize = %v, want 2.5", got)
	}
	if s.memo != nil {
		t.Error("dynamic sampler should not memoize")
	}
}

func TestZeroDistanceIsAStep(t *testing.T) {
	s := NewLinear(0, 1, 0, 10)
	if got := s.Sample(10); got != 0 {
		t.Errorf("Sample(delay) = %v, want 0", got)
	}
	if got := s.Sample(11); got != 1 {
		t.Errorf("Sample(delay+1) = %v, want 1", got)
	}
	sw := NewSway(0, 1, 0, 10)
	if got := sw.Sample(11); got != 0 {
		t.Errorf("sway with zero distance = %v, want baseline", got)
	}
}

func TestEasedSampler(t *testing.T) {
	s := NewEased(0, 100, 100, 0, ease.InQuad)
	if got := s.Sample(0); got != 0 {
		t.Errorf("Sample(0) = %v, want 0", got)
	}
	if got := s.Sample(100); got != 100 {
		t.Errorf("Sample(100) = %v, want 100", got)
	}
	if got := s.Sample(50); math.Abs(got-25) > 0.01 {
		t.Errorf("Sample(50) = %v, want ~25 for inQuad", got)
	}
	lin := NewEased(0, 100, 100, 0, nil)
	if got := lin.Sample(50); got != 50 {
		t.Errorf("nil ease should be linear, got %v", got)
	}
}

func TestEasedSamplerLargeRange(t *testing.T) {
	eased := NewEased(0, 100000, 1000, 0, ease.Linear)
	lin := NewLinear(0, 100000, 1000, 0)
	for x := 0.0; x <= 1000; x += 37 {
		if got, want := eased.Sample(x), lin.Sample(x); got != want {
			t.Errorf("Sample(%v) = %v, want %v", x, got, want)
		}
	}
	if got := eased.Sample(333); got != 33300 {
		t.Errorf("Sample(333) = %v, want 33300", got)
	}
}

func TestSampleNaNOffset(t *testing.T) {
	s := NewLinear(2, 4, 10, 0)
	if got := s.Sample(math.NaN()); got != 2 {
		t.Errorf("Sample(NaN) = %v, want from", got)
	}
}
