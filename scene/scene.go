package scene

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/scrollbind"
	"github.com/phanxgames/scrollbind/headless"
)

// Scroll input defaults.
const (
	DefaultWheelStep    = 48.0 // page pixels per wheel notch
	DefaultKeyStep      = 40.0 // page pixels per arrow key frame
	DefaultPageDuration = 0.3  // seconds of a PageUp/PageDown/Home/End scroll
)

// Scene is an Ebitengine game that hosts a headless page: it turns wheel
// and keyboard input into page scroll, drives the page's clock once per
// tick, and draws every element as a rectangle.
type Scene struct {
	doc   *headless.Document
	clock *headless.Clock

	// ClearColor fills the screen before the page is drawn.
	ClearColor color.Color

	// WheelStep and KeyStep are the scroll distances of one wheel notch and
	// one frame of a held arrow key.
	WheelStep float64
	KeyStep   float64

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	width, height int
	follow        bool // size follows the window
	showFPS       bool
	debug         bool

	scroll     *gween.Tween // active ScrollTo animation
	scrollEnd  float64
	updateFunc func() error
	binders    []*scrollbind.Binder
	runner     *ScriptRunner

	screenshotQueue []string
	shots           int

	pixel *ebiten.Image
}

// New creates a scene with a width x height viewport.
func New(width, height int) *Scene {
	return &Scene{
		doc:           headless.NewDocument(float64(height)),
		clock:         headless.NewClock(),
		ClearColor:    color.RGBA{R: 0x1e, G: 0x1e, B: 0x28, A: 0xff},
		WheelStep:     DefaultWheelStep,
		KeyStep:       DefaultKeyStep,
		ScreenshotDir: DefaultScreenshotDir,
		width:         width,
		height:        height,
		follow:        width <= 0 || height <= 0,
	}
}

// Document returns the page.
func (s *Scene) Document() *headless.Document {
	return s.doc
}

// Clock returns the scheduler the scene advances once per tick.
func (s *Scene) Clock() *headless.Clock {
	return s.clock
}

// Bind creates a binder on the scene's page and clock. With root nil it
// observes the page scroll.
func (s *Scene) Bind(root scrollbind.Element, opts scrollbind.Options) *scrollbind.Binder {
	if s.debug {
		opts.Debug = true
	}
	b := scrollbind.New(root, s.doc, s.clock, opts)
	s.binders = append(s.binders, b)
	return b
}

// Binders returns the binders created through Bind. The returned slice MUST
// NOT be mutated.
func (s *Scene) Binders() []*scrollbind.Binder {
	return s.binders
}

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDebugMode turns on binder diagnostics for binders created afterwards
// and a scroll readout on screen.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// ScrollTop returns the page scroll offset.
func (s *Scene) ScrollTop() float64 {
	return s.doc.ScrollTop()
}

// ScrollBy moves the page by dy immediately, cancelling any ScrollTo.
func (s *Scene) ScrollBy(dy float64) {
	s.scroll = nil
	s.setScroll(s.doc.ScrollTop() + dy)
}

// ScrollTo animates the page scroll to y over duration seconds.
func (s *Scene) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = s.clamp(y)
	if duration <= 0 {
		s.scroll = nil
		s.setScroll(y)
		return
	}
	if easeFn == nil {
		easeFn = ease.Linear
	}
	s.scroll = gween.New(float32(s.doc.ScrollTop()), float32(y), duration, easeFn)
	s.scrollEnd = y
}

// Scrolling reports whether a ScrollTo animation is running.
func (s *Scene) Scrolling() bool {
	return s.scroll != nil
}

// Update steps the script runner, reads input, advances the scroll
// animation and the page clock.
func (s *Scene) Update() error {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = 60
	}
	dt := float32(1.0 / float64(tps))
	s.step(dt, readInput())
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// step applies one tick of input and time.
func (s *Scene) step(dt float32, in input) {
	if s.runner != nil {
		s.runner.step(s)
	}
	if in.screenshot {
		s.Screenshot("scene")
	}
	if in.wheel != 0 {
		s.ScrollBy(-in.wheel * s.WheelStep)
	}
	if in.lines != 0 {
		s.ScrollBy(in.lines * s.KeyStep)
	}
	switch in.jump {
	case jumpPageDown:
		s.ScrollTo(s.scrollTarget()+s.pageStep(), DefaultPageDuration, ease.OutQuad)
	case jumpPageUp:
		s.ScrollTo(s.scrollTarget()-s.pageStep(), DefaultPageDuration, ease.OutQuad)
	case jumpHome:
		s.ScrollTo(0, DefaultPageDuration, ease.InOutQuad)
	case jumpEnd:
		s.ScrollTo(s.doc.MaxScroll(), DefaultPageDuration, ease.InOutQuad)
	}

	if s.scroll != nil {
		v, done := s.scroll.Update(dt)
		s.setScroll(float64(v))
		if done {
			s.scroll = nil
		}
	}
	s.clock.Tick()
}

// scrollTarget is where the page is heading: the end of a running ScrollTo
// or the current offset.
func (s *Scene) scrollTarget() float64 {
	if s.scroll != nil {
		return s.scrollEnd
	}
	return s.doc.ScrollTop()
}

func (s *Scene) pageStep() float64 {
	return s.doc.ViewportHeight() * 0.9
}

// setScroll clamps y and notifies the page only when the offset changes.
func (s *Scene) setScroll(y float64) {
	y = s.clamp(y)
	if y == s.doc.ScrollTop() {
		return
	}
	s.doc.SetScrollTop(y)
}

func (s *Scene) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, s.doc.MaxScroll()))
}

// Layout implements ebiten.Game. A scene created without a size follows the
// window and resizes its viewport.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	if s.follow && (outsideWidth != s.width || outsideHeight != s.height) {
		s.resize(outsideWidth, outsideHeight)
	}
	return s.width, s.height
}

func (s *Scene) resize(w, h int) {
	s.width, s.height = w, h
	s.doc.SetViewportHeight(float64(h))
}

// RunConfig configures Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a window and runs the scene until the window closes.
func Run(s *Scene, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		s.follow = false
		s.resize(cfg.Width, cfg.Height)
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	s.showFPS = cfg.ShowFPS
	return ebiten.RunGame(s)
}
