package scene

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/scrollbind/headless"
)

// Draw implements ebiten.Game. Every element with a background-color is
// drawn as a filled rectangle, children over parents, in document order.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor != nil {
		screen.Fill(s.ClearColor)
	}
	if s.pixel == nil {
		s.pixel = ebiten.NewImage(1, 1)
		s.pixel.Fill(color.White)
	}

	scrollTop := s.doc.ScrollTop()
	for _, child := range s.doc.Body().Children() {
		s.drawElement(screen, child, scrollTop, 1)
	}

	if s.showFPS || s.debug {
		msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		if s.debug {
			msg += fmt.Sprintf("\nscroll: %.1f / %.1f  binders: %d", scrollTop, s.doc.MaxScroll(), len(s.binders))
		}
		ebitenutil.DebugPrint(screen, msg)
	}
	s.flushScreenshots(screen)
}

func (s *Scene) drawElement(dst *ebiten.Image, e *headless.Element, scrollTop, parentAlpha float64) {
	if e.ComputedValue("display") == "none" {
		return
	}
	alpha := parentAlpha * opacity(e)
	if alpha <= 0 {
		return
	}

	if bg, ok := parseColor(e.ComputedValue("background-color")); ok {
		b := elementBox(e, scrollTop)
		if b.w > 0 && b.h > 0 {
			var op ebiten.DrawImageOptions
			op.GeoM = b.matrix(parseTransform(e.ComputedValue("transform"))).geoM()
			op.ColorScale.ScaleWithColor(bg)
			op.ColorScale.ScaleAlpha(float32(alpha))
			dst.DrawImage(s.pixel, &op)
		}
	}

	for _, child := range e.Children() {
		s.drawElement(dst, child, scrollTop, alpha)
	}
}

// box is an element rectangle in screen coordinates.
type box struct {
	x, y, w, h float64
}

// elementBox places e on screen. Fixed elements sit at their offset in the
// viewport. Absolute elements sit at their offset in the page. Others keep
// their natural position, shifted by any inline top and left.
func elementBox(e *headless.Element, scrollTop float64) box {
	b := box{w: e.OuterWidth(), h: e.Height}
	if v := e.Style("height"); v != "" {
		b.h = parseNumber(v, e.Height)
	}

	switch e.ComputedValue("position") {
	case "fixed":
		p := e.Offset()
		b.x, b.y = p.Left, p.Top
	case "absolute":
		p := e.Offset()
		b.x, b.y = p.Left, p.Top-scrollTop
	default:
		b.x, b.y = e.Left, e.Top-scrollTop
		if v := e.Style("top"); v != "" {
			b.y += parseNumber(v, 0)
		}
		if v := e.Style("left"); v != "" {
			b.x += parseNumber(v, 0)
		}
	}
	return b
}

// matrix maps the unit square onto the box, applying t around the box
// centre.
func (b box) matrix(t affine) affine {
	cx, cy := b.w/2, b.h/2
	return translate(b.x+cx, b.y+cy).
		mul(t).
		mul(translate(-cx, -cy)).
		mul(scale(b.w, b.h))
}

func opacity(e *headless.Element) float64 {
	v := e.ComputedValue("opacity")
	if v == "" {
		return 1
	}
	return math.Max(0, math.Min(parseNumber(v, 1), 1))
}

var namedColors = map[string]color.NRGBA{
	"black":  {0, 0, 0, 0xff},
	"white":  {0xff, 0xff, 0xff, 0xff},
	"red":    {0xff, 0, 0, 0xff},
	"green":  {0, 0x80, 0, 0xff},
	"blue":   {0, 0, 0xff, 0xff},
	"yellow": {0xff, 0xff, 0, 0xff},
	"orange": {0xff, 0xa5, 0, 0xff},
	"purple": {0x80, 0, 0x80, 0xff},
	"gray":   {0x80, 0x80, 0x80, 0xff},
	"grey":   {0x80, 0x80, 0x80, 0xff},
}

// parseColor reads #rgb, #rrggbb, #rrggbbaa, rgb(), rgba() and a few named
// colors. Transparent and unknown values report false.
func parseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	for _, fn := range []string{"rgba(", "rgb("} {
		if strings.HasPrefix(s, fn) && strings.HasSuffix(s, ")") {
			return parseRGBFunc(s[len(fn) : len(s)-1])
		}
	}
	return color.NRGBA{}, false
}

func parseHexColor(hex string) (color.NRGBA, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	c := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return c, c.A > 0
}

func parseRGBFunc(args string) (color.NRGBA, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, false
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		ch[i] = v
	}
	c := color.NRGBA{
		R: channel(ch[0]),
		G: channel(ch[1]),
		B: channel(ch[2]),
		A: channel(ch[3] * 255),
	}
	return c, c.A > 0
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(v, 255))))
}
