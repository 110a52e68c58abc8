package scene

import (
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type affine [6]float64

var identity = affine{1, 0, 0, 1, 0, 0}

func translate(x, y float64) affine { return affine{1, 0, 0, 1, x, y} }
func scale(x, y float64) affine     { return affine{x, 0, 0, y, 0, 0} }

// rotate turns clockwise on screen, where y grows downward.
func rotate(rad float64) affine {
	sin, cos := math.Sincos(rad)
	return affine{cos, sin, -sin, cos, 0, 0}
}

func skew(radX, radY float64) affine {
	return affine{1, math.Tan(radY), math.Tan(radX), 1, 0, 0}
}

// mul returns m * n: n applies first.
func (m affine) mul(n affine) affine {
	return affine{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

func (m affine) apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func (m affine) geoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// parseTransform parses a CSS transform list such as
// "scale(1.5) translateY(-25px) rotate(10deg)" into one matrix. Functions
// without a 2D effect (translateZ, rotateX, rotateY, perspective) and
// unknown functions are skipped.
func parseTransform(s string) affine {
	m := identity
	for {
		s = strings.TrimSpace(s)
		open := strings.IndexByte(s, '(')
		if open <= 0 {
			return m
		}
		end := strings.IndexByte(s[open:], ')')
		if end < 0 {
			return m
		}
		name := strings.TrimSpace(s[:open])
		args := strings.Split(s[open+1:open+end], ",")
		s = s[open+end+1:]
		if fn, ok := transformFunc(name, args); ok {
			m = m.mul(fn)
		}
	}
}

func transformFunc(name string, args []string) (affine, bool) {
	arg := func(i int, def float64) float64 {
		if i >= len(args) {
			return def
		}
		return parseNumber(args[i], def)
	}
	angle := func(i int) float64 {
		if i >= len(args) {
			return 0
		}
		return parseAngle(args[i])
	}
	switch name {
	case "translate":
		return translate(arg(0, 0), arg(1, 0)), true
	case "translateX":
		return translate(arg(0, 0), 0), true
	case "translateY":
		return translate(0, arg(0, 0)), true
	case "scale":
		sx := arg(0, 1)
		return scale(sx, arg(1, sx)), true
	case "scaleX":
		return scale(arg(0, 1), 1), true
	case "scaleY":
		return scale(1, arg(0, 1)), true
	case "rotate", "rotateZ":
		return rotate(angle(0)), true
	case "skew":
		return skew(angle(0), angle(1)), true
	case "skewX":
		return skew(angle(0), 0), true
	case "skewY":
		return skew(0, angle(0)), true
	}
	return identity, false
}

// parseAngle converts a CSS angle to radians. A bare number is degrees.
func parseAngle(s string) float64 {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "deg"):
		return parseNumber(s[:len(s)-3], 0) * math.Pi / 180
	case strings.HasSuffix(s, "grad"):
		return parseNumber(s[:len(s)-4], 0) * math.Pi / 200
	case strings.HasSuffix(s, "rad"):
		return parseNumber(s[:len(s)-3], 0)
	case strings.HasSuffix(s, "turn"):
		return parseNumber(s[:len(s)-4], 0) * 2 * math.Pi
	}
	return parseNumber(s, 0) * math.Pi / 180
}

// parseNumber reads the leading number of a CSS value, ignoring its unit.
func parseNumber(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		ch := s[end]
		if ch >= '0' && ch <= '9' || ch == '.' || ch == '-' || ch == '+' || ch == 'e' && end > 0 {
			end++
			continue
		}
		break
	}
	for end > 0 {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v
		}
		end--
	}
	return def
}
