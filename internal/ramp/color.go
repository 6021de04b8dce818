package ramp

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// fallbackColor is substituted for palette entries that fail to parse.
var fallbackColor = color.NRGBA{A: 255}

// ParseColor parses a color string into a non-premultiplied color.
// Supported formats:
//   - CSS named colors: "red", "purple", "transparent"
//   - Hex: "#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA" (the # is optional)
//   - Functions: "rgb(255, 0, 0)", "rgba(255, 0, 0, 0.5)"
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}

	lower := strings.ToLower(s)
	if lower == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[lower]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}

	switch {
	case strings.HasPrefix(lower, "rgba("):
		return parseRGBFunc(lower, "rgba(", 4)
	case strings.HasPrefix(lower, "rgb("):
		return parseRGBFunc(lower, "rgb(", 3)
	}

	return parseHexColor(lower)
}

// parseHexColor parses the hex forms. The RGB part is decoded by go-colorful;
// an optional trailing alpha digit or byte is split off first.
func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")

	rgb, alpha := s, "ff"
	switch len(s) {
	case 3, 6:
	case 4:
		rgb, alpha = s[:3], strings.Repeat(s[3:], 2)
	case 8:
		rgb, alpha = s[:6], s[6:]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length: %d", len(s))
	}

	c, err := colorful.Hex("#" + rgb)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	a, err := strconv.ParseUint(alpha, 16, 8)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid alpha component: %w", err)
	}

	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
}

// parseRGBFunc parses "rgb(r, g, b)" and "rgba(r, g, b, a)".
func parseRGBFunc(s, prefix string, arity int) (color.NRGBA, error) {
	if !strings.HasSuffix(s, ")") {
		return color.NRGBA{}, fmt.Errorf("invalid %s) format: %q", prefix, s)
	}

	parts := strings.Split(s[len(prefix):len(s)-1], ",")
	if len(parts) != arity {
		return color.NRGBA{}, fmt.Errorf("%s) requires exactly %d values, got %d", prefix, arity, len(parts))
	}

	var channels [3]uint8
	for i := range channels {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid component %d: %w", i, err)
		}
		channels[i] = uint8(v)
	}

	alpha := uint8(255)
	if arity == 4 {
		a, err := parseAlphaComponent(strings.TrimSpace(parts[3]))
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha value: %w", err)
		}
		alpha = a
	}

	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}

// parseAlphaComponent accepts 0.0-1.0 floats and 0-255 integers.
func parseAlphaComponent(s string) (uint8, error) {
	if strings.Contains(s, ".") {
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return uint8(math.Round(math.Max(0, math.Min(1, val)) * 255)), nil
	}

	val, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(val), nil
}

// Mix blends a towards b by ratio t in CIE L*a*b* space.
// Alpha is interpolated linearly.
func Mix(a, b color.NRGBA, t float64) color.NRGBA {
	t = math.Max(0, math.Min(1, t))

	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()

	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(math.Round(alpha))}
}

// toNRGBA converts any color to its non-premultiplied 8-bit form.
func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return fallbackColor
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
