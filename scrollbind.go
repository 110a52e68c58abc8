package scrollbind

import "github.com/tanema/gween/ease"

// Engine-wide defaults used when Options leaves a field at zero.
const (
	DefaultOver  = 70.0 // scroll distance of a transition
	DefaultDelay = 0.0  // scroll offset before a transition starts
)

// Special property names that select a non-numeric behavior.
const (
	PropertyClass = "class"
	PropertyLock  = "lock"
)

// transformProperties are the property names merged into a single composite
// transform value at apply time.
var transformProperties = map[string]bool{
	"scale":       true,
	"scaleX":      true,
	"scaleY":      true,
	"rotate":      true,
	"rotateX":     true,
	"rotateY":     true,
	"rotateZ":     true,
	"translateX":  true,
	"translateY":  true,
	"translateZ":  true,
	"skewX":       true,
	"skewY":       true,
	"perspective": true,
}

// transformStyleNames are the style properties a composite transform is
// written to, vendor-prefixed first.
var transformStyleNames = []string{"-webkit-transform", "-ms-transform", "transform"}

// IsTransform reports whether name is merged into the composite transform.
func IsTransform(name string) bool {
	return transformProperties[name]
}

// Point is a document-relative position.
type Point struct {
	Top, Left float64
}

// Overflow holds an element's computed overflow values.
type Overflow struct {
	Overflow  string
	OverflowY string
}

// Scrollable reports whether the overflow values allow internal scrolling.
func (o Overflow) Scrollable() bool {
	return scrollsInternally(o.Overflow) || scrollsInternally(o.OverflowY)
}

func scrollsInternally(v string) bool {
	return v == "auto" || v == "scroll"
}

// Kind tags a CompiledProperty with the behavior chosen at compile time.
type Kind uint8

const (
	KindNumeric   Kind = iota // interpolated value written as its own style property
	KindTransform             // interpolated value merged into the composite transform
	KindClass                 // class token toggled inside the active range
	KindLock                  // sticky positioning state machine
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindTransform:
		return "transform"
	case KindClass:
		return "class"
	case KindLock:
		return "lock"
	default:
		return "unknown"
	}
}

// Distance is a scroll distance used for a property's over and delay fields.
// The zero value is unset and falls back to the engine default.
type Distance struct {
	px       float64
	viewport bool
	fn       func(Element) float64
	set      bool
}

// Px returns a fixed distance in scroll units.
func Px(v float64) Distance {
	return Distance{px: v, set: true}
}

// Viewport returns the sentinel distance of one viewport height. It is only
// meaningful for a property's over field.
func Viewport() Distance {
	return Distance{viewport: true, set: true}
}

// DistanceFunc returns a distance computed from the target element at
// compile time.
func DistanceFunc(fn func(Element) float64) Distance {
	if fn == nil {
		return Distance{}
	}
	return Distance{fn: fn, set: true}
}

// IsSet reports whether the distance was given.
func (d Distance) IsSet() bool {
	return d.set
}

// IsViewport reports whether the distance is the viewport sentinel.
func (d Distance) IsViewport() bool {
	return d.viewport
}

// PropertySpec is the user-authored description of one animated property.
// Nil or unset fields fall back to computed defaults during compilation.
type PropertySpec struct {
	// From and To are the values at the start and end of the transition.
	// When nil they default to the element's current computed value.
	From, To *float64

	// Class is the class token toggled by the "class" property.
	Class string

	// Over is the scroll distance of the transition; Delay is the offset
	// before it starts.
	Over, Delay Distance

	// Unit is appended to numeric output. Defaults to "" for transform
	// properties and "px" otherwise.
	Unit *string

	// Viewport anchors the transition to when the element enters the
	// viewport.
	Viewport bool

	// Sway selects the parabolic out-and-back curve.
	Sway bool

	// Ease shapes a linear transition with a gween easing curve. Ignored
	// when Sway is set.
	Ease ease.TweenFunc
}

// PropertyDecl binds a property name to its spec.
type PropertyDecl struct {
	Name string
	Spec PropertySpec
}

// SelectorDecl lists the animated properties for one selector, in order.
type SelectorDecl struct {
	Selector   string
	Properties []PropertyDecl
}

// Declarations is the ordered declaration map handed to a Binder.
type Declarations []SelectorDecl

// Add appends a property to the selector's declaration, creating it when
// missing, and returns the updated declarations.
func (d Declarations) Add(selector, property string, spec PropertySpec) Declarations {
	for i := range d {
		if d[i].Selector == selector {
			d[i].Properties = append(d[i].Properties, PropertyDecl{Name: property, Spec: spec})
			return d
		}
	}
	return append(d, SelectorDecl{
		Selector:   selector,
		Properties: []PropertyDecl{{Name: property, Spec: spec}},
	})
}

// SelectorThis addresses the binder's root element itself.
const SelectorThis = "this"

// Options configures a Binder.
type Options struct {
	// Over and Delay are the engine-wide defaults for properties that leave
	// them unset. Zero or negative Over means DefaultOver.
	Over  float64
	Delay float64

	// Animations is the declaration map compiled at construction.
	Animations Declarations

	// Poll observes the scroll offset with a per-frame callback instead of
	// scroll notifications, detaching while the offset stays idle.
	Poll bool

	// Debug prints compile and apply diagnostics to stderr.
	Debug bool
}

func (o Options) withDefaults() Options {
	if !(o.Over > 0) {
		o.Over = DefaultOver
	}
	if o.Delay != o.Delay {
		o.Delay = DefaultDelay
	}
	return o
}

// Ptr returns a pointer to v. Handy for PropertySpec's optional fields.
func Ptr[T any](v T) *T {
	return &v
}
