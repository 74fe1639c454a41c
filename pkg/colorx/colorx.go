// Package colorx provides procedural color generation and contrast selection
// for cover-image backgrounds and text.
//
// All randomness flows through a Generator seeded with an injectable
// math/rand source, which is what makes the otherwise-random styling
// deterministic under test. Colors are exchanged as lowercase 6-hex-digit
// strings without a leading "#".
package colorx

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
)

// Default text colors used by contrast selection.
const (
	DefaultDarkText  = "1a1a1a"
	DefaultLightText = "f7f7f7"
)

// Range is an inclusive-exclusive [Min, Max) numeric range to draw from.
type Range struct {
	Min, Max float64
}

// Options bounds the HSL components drawn by RandomHex.
// Zero-valued ranges fall back to the full component range.
type Options struct {
	Hue        Range // degrees, default [0, 360)
	Saturation Range // percent, default [0, 100)
	Lightness  Range // percent, default [0, 100)
}

// Generator produces random colors from an injected random source.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator using the given random source.
// Pass rand.New(rand.NewSource(seed)) for reproducible output.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// RandomHex draws hue, saturation and lightness uniformly from the ranges in
// opts and returns the HSL color converted to a lowercase hex string.
func (g *Generator) RandomHex(opts Options) string {
	h := g.draw(opts.Hue, 360)
	s := g.draw(opts.Saturation, 100)
	l := g.draw(opts.Lightness, 100)
	return hslToHex(h, s, l)
}

// RandomBright returns a high-saturation, mid-lightness color suitable for
// accent text.
func (g *Generator) RandomBright() string {
	return g.RandomHex(Options{
		Saturation: Range{70, 100},
		Lightness:  Range{45, 65},
	})
}

// RandomDark returns a mid-saturation, low-lightness color.
func (g *Generator) RandomDark() string {
	return g.RandomHex(Options{
		Saturation: Range{50, 80},
		Lightness:  Range{20, 40},
	})
}

// AdjacentGradient returns two colors whose hues sit 45-75 degrees apart,
// the second offset in a uniformly chosen direction and wrapped mod 360.
func (g *Generator) AdjacentGradient() (string, string) {
	base := float64(g.rng.Intn(360))
	offset := 45 + float64(g.rng.Intn(30))
	if g.rng.Intn(2) == 0 {
		offset = -offset
	}
	second := math.Mod(base+offset+360, 360)
	return g.gradientStop(base), g.gradientStop(second)
}

// ComplementaryGradient returns two colors with hues 180 degrees apart.
func (g *Generator) ComplementaryGradient() (string, string) {
	base := float64(g.rng.Intn(360))
	second := math.Mod(base+180, 360)
	return g.gradientStop(base), g.gradientStop(second)
}

// MonochromaticGradient returns two colors sharing one hue, the first light
// (L 60-70) and the second dark (L 30-40).
func (g *Generator) MonochromaticGradient() (string, string) {
	hue := float64(g.rng.Intn(360))
	c1 := g.hexAtHue(hue, Range{70, 90}, Range{60, 70})
	c2 := g.hexAtHue(hue, Range{70, 90}, Range{30, 40})
	return c1, c2
}

// GradientStyle selects the hue relationship used by Gradient.
type GradientStyle string

const (
	StyleAdjacent      GradientStyle = "adjacent"
	StyleComplementary GradientStyle = "complementary"
	StyleMonochromatic GradientStyle = "monochromatic"
)

// Gradient returns a two-stop gradient in the given style.
// Unknown styles fall back to adjacent.
func (g *Generator) Gradient(style GradientStyle) (string, string) {
	switch style {
	case StyleMonochromatic:
		return g.MonochromaticGradient()
	case StyleComplementary:
		return g.ComplementaryGradient()
	default:
		return g.AdjacentGradient()
	}
}

// gradientStop draws a saturated mid-lightness color at a fixed hue.
func (g *Generator) gradientStop(hue float64) string {
	return g.hexAtHue(hue, Range{70, 90}, Range{45, 65})
}

// hexAtHue draws saturation and lightness and converts at a fixed hue.
// Gradient stops go through here rather than a [hue, hue] Options range:
// Range{0, 0} means "full range" to draw, which would turn a fixed hue of
// 0 into a random one.
func (g *Generator) hexAtHue(hue float64, saturation, lightness Range) string {
	s := g.draw(saturation, 100)
	l := g.draw(lightness, 100)
	return hslToHex(hue, s, l)
}

func (g *Generator) draw(r Range, full float64) float64 {
	if r.Min == 0 && r.Max == 0 {
		r.Max = full
	}
	if r.Max <= r.Min {
		return r.Min
	}
	return float64(g.rng.Intn(int(r.Max-r.Min))) + r.Min
}

// Luminance computes the perceived luminance of a hex color using the
// (299R + 587G + 114B) / 1000 weighting, with R/G/B in [0, 255].
// Malformed input is treated as black.
func Luminance(hex string) float64 {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return 0
	}
	return (float64(r)*299 + float64(g)*587 + float64(b)*114) / 1000
}

// TextColorOptions overrides the dark/light colors returned by contrast
// selection. Empty fields use the package defaults.
type TextColorOptions struct {
	Dark  string
	Light string
}

// ContrastText returns a readable text color for the given background:
// the dark color when luminance exceeds 128, the light color otherwise.
// A luminance of exactly 128 is classified as "not greater", so the light
// color wins the tie.
func ContrastText(bg string, opts TextColorOptions) string {
	dark, light := opts.Dark, opts.Light
	if dark == "" {
		dark = DefaultDarkText
	}
	if light == "" {
		light = DefaultLightText
	}
	if Luminance(bg) > 128 {
		return dark
	}
	return light
}

// GradientContrastText returns a readable text color for a two-stop gradient
// background, averaging the luminance of both stops.
func GradientContrastText(from, to string, opts TextColorOptions) string {
	dark, light := opts.Dark, opts.Light
	if dark == "" {
		dark = DefaultDarkText
	}
	if light == "" {
		light = DefaultLightText
	}
	if (Luminance(from)+Luminance(to))/2 > 128 {
		return dark
	}
	return light
}

// hslToHex converts HSL (h in degrees, s/l in percent) to a lowercase hex
// string using the standard piecewise formula.
func hslToHex(h, s, l float64) string {
	s /= 100
	l /= 100
	k := func(n float64) float64 { return math.Mod(n+h/30, 12) }
	a := s * math.Min(l, 1-l)
	f := func(n float64) float64 {
		return l - a*math.Max(-1, math.Min(k(n)-3, math.Min(9-k(n), 1)))
	}
	r := int(math.Round(255 * f(0)))
	g := int(math.Round(255 * f(8)))
	b := int(math.Round(255 * f(4)))
	return fmt.Sprintf("%02x%02x%02x", r, g, b)
}

func parseHex(hex string) (r, g, b int64, err error) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	if r, err = strconv.ParseInt(hex[0:2], 16, 32); err != nil {
		return
	}
	if g, err = strconv.ParseInt(hex[2:4], 16, 32); err != nil {
		return
	}
	b, err = strconv.ParseInt(hex[4:6], 16, 32)
	return
}
