package colorx

import (
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"testing"
)

var hexRe = regexp.MustCompile(`^[0-9a-f]{6}$`)

func newGen(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

func TestRandomHexShape(t *testing.T) {
	g := newGen(1)
	for i := 0; i < 100; i++ {
		hex := g.RandomHex(Options{})
		if !hexRe.MatchString(hex) {
			t.Fatalf("RandomHex() = %q, want 6 lowercase hex digits", hex)
		}
	}
}

func TestRandomHexDeterministic(t *testing.T) {
	a := newGen(42).RandomHex(Options{Saturation: Range{70, 90}, Lightness: Range{45, 65}})
	b := newGen(42).RandomHex(Options{Saturation: Range{70, 90}, Lightness: Range{45, 65}})
	if a != b {
		t.Errorf("same seed produced different colors: %q vs %q", a, b)
	}
}

func TestGradientHueRelationships(t *testing.T) {
	g := newGen(7)
	for i := 0; i < 50; i++ {
		c1, c2 := g.AdjacentGradient()
		h1, h2 := approxHue(t, c1), approxHue(t, c2)
		d := hueDistance(h1, h2)
		// Offsets are drawn from [45, 75); allow slack for hex rounding.
		if d < 40 || d > 80 {
			t.Errorf("adjacent gradient hue distance = %.1f, want ~[45, 75)", d)
		}
	}
	for i := 0; i < 50; i++ {
		c1, c2 := g.ComplementaryGradient()
		d := hueDistance(approxHue(t, c1), approxHue(t, c2))
		if math.Abs(d-180) > 6 {
			t.Errorf("complementary gradient hue distance = %.1f, want ~180", d)
		}
	}
}

func TestMonochromaticGradientSharesHue(t *testing.T) {
	// Seed 254's first hue draw is 0. A base hue of 0 must stay fixed for
	// both stops rather than degrading to an independent random hue.
	for _, seed := range []int64{254, 1, 9, 77} {
		g := newGen(seed)
		c1, c2 := g.MonochromaticGradient()
		if d := hueDistance(approxHue(t, c1), approxHue(t, c2)); d > 4 {
			t.Errorf("seed %d: stops %q and %q are %.1f degrees apart, want a shared hue", seed, c1, c2, d)
		}
	}
}

func TestGradientStopFixedHueZero(t *testing.T) {
	g := newGen(11)
	for i := 0; i < 20; i++ {
		c := g.gradientStop(0)
		if h := approxHue(t, c); h > 4 && h < 356 {
			t.Errorf("gradientStop(0) = %q with hue %.1f, want hue 0", c, h)
		}
	}
}

func TestMonochromaticGradientLightness(t *testing.T) {
	g := newGen(3)
	light, dark := g.MonochromaticGradient()
	if Luminance(light) <= Luminance(dark) {
		t.Errorf("monochromatic gradient: light stop %q not brighter than dark stop %q", light, dark)
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		hex  string
		want float64
	}{
		{"000000", 0},
		{"ffffff", 255},
		{"ff0000", 76.245},
		{"#ff0000", 76.245},
	}
	for _, tt := range tests {
		if got := Luminance(tt.hex); math.Abs(got-tt.want) > 0.01 {
			t.Errorf("Luminance(%q) = %.3f, want %.3f", tt.hex, got, tt.want)
		}
	}
}

func TestContrastText(t *testing.T) {
	if got := ContrastText("ffffff", TextColorOptions{}); got != DefaultDarkText {
		t.Errorf("white background: got %q, want dark text", got)
	}
	if got := ContrastText("000000", TextColorOptions{}); got != DefaultLightText {
		t.Errorf("black background: got %q, want light text", got)
	}
	// Luminance exactly 128 is "not greater": the light text wins the tie.
	if got := ContrastText("808080", TextColorOptions{}); got != DefaultLightText {
		t.Errorf("mid gray (luminance %.1f): got %q, want light text", Luminance("808080"), got)
	}
	if got := ContrastText("ffffff", TextColorOptions{Dark: "111111"}); got != "111111" {
		t.Errorf("custom dark color not honored: got %q", got)
	}
}

func TestGradientContrastText(t *testing.T) {
	if got := GradientContrastText("ffffff", "eeeeee", TextColorOptions{}); got != DefaultDarkText {
		t.Errorf("bright gradient: got %q, want dark text", got)
	}
	if got := GradientContrastText("000000", "222222", TextColorOptions{}); got != DefaultLightText {
		t.Errorf("dark gradient: got %q, want light text", got)
	}
}

// approxHue recovers the hue of a hex color for range assertions.
func approxHue(t *testing.T, hex string) float64 {
	t.Helper()
	r := float64(mustParse(t, hex[0:2])) / 255
	g := float64(mustParse(t, hex[2:4])) / 255
	b := float64(mustParse(t, hex[4:6])) / 255
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	d := maxC - minC
	if d == 0 {
		return 0
	}
	var h float64
	switch maxC {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return math.Mod(h*60+360, 360)
}

func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func mustParse(t *testing.T, s string) int64 {
	t.Helper()
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}
