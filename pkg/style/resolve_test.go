package style

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/zzaoclub/imgx/pkg/colorx"
)

func testGen() *colorx.Generator {
	return colorx.New(rand.New(rand.NewSource(42)))
}

func TestResolveDefaults(t *testing.T) {
	r := Resolve(Params{}, nil)

	if r.FontFamily != DefaultFontFamily {
		t.Errorf("FontFamily = %q, want %q", r.FontFamily, DefaultFontFamily)
	}
	if r.Padding != DefaultPadding {
		t.Errorf("Padding = %q, want %q", r.Padding, DefaultPadding)
	}
	if r.FontSize != DefaultFontSize {
		t.Errorf("FontSize = %d, want %d", r.FontSize, DefaultFontSize)
	}
	if r.Ratio != DefaultRatio {
		t.Errorf("Ratio = %g, want %g", r.Ratio, DefaultRatio)
	}
	if !r.Background.IsZero() {
		t.Errorf("Background = %+v, want zero", r.Background)
	}
}

func TestResolveRatioClamped(t *testing.T) {
	if r := Resolve(Params{Ratio: "100"}, nil); r.Ratio != MaxRatio {
		t.Errorf("Ratio = %g, want clamped to %g", r.Ratio, MaxRatio)
	}
	if r := Resolve(Params{Ratio: "0.01"}, nil); r.Ratio != MinRatio {
		t.Errorf("Ratio = %g, want clamped to %g", r.Ratio, MinRatio)
	}
}

func TestResolveColorLists(t *testing.T) {
	r := Resolve(Params{Color: "ff0000,00ff00", AccentColor: "0000ff"}, nil)

	if want := []string{"#ff0000", "#00ff00"}; !reflect.DeepEqual(r.Attrs.Colors, want) {
		t.Errorf("Colors = %v, want %v", r.Attrs.Colors, want)
	}
	if want := []string{"#0000ff"}; !reflect.DeepEqual(r.Attrs.AccentColors, want) {
		t.Errorf("AccentColors = %v, want %v", r.Attrs.AccentColors, want)
	}
}

func TestResolveRandomFill(t *testing.T) {
	r := Resolve(Params{ColorRandom: true}, testGen())

	if !r.Background.IsGradient() {
		t.Fatalf("Background = %+v, want gradient", r.Background)
	}
	if !strings.HasPrefix(r.Background.GradientFrom, "#") {
		t.Errorf("gradient stop %q missing # prefix", r.Background.GradientFrom)
	}
	if len(r.Attrs.Colors) != 1 || len(r.Attrs.AccentColors) != 1 {
		t.Errorf("random fill should supply one color and one accent, got %v / %v",
			r.Attrs.Colors, r.Attrs.AccentColors)
	}
}

func TestResolveExplicitWinsOverRandom(t *testing.T) {
	r := Resolve(Params{ColorRandom: true, BgColor: "112233", Color: "ff0000"}, testGen())

	if r.Background.Solid != "#112233" {
		t.Errorf("explicit background lost to random fill: %+v", r.Background)
	}
	if r.Attrs.Colors[0] != "#ff0000" {
		t.Errorf("explicit color lost to random fill: %v", r.Attrs.Colors)
	}
}

func TestParseBackground(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Background
	}{
		{"solid bare", "ff0000", Background{Solid: "#ff0000"}},
		{"solid prefixed", "#ff0000", Background{Solid: "#ff0000"}},
		{"gradient", "ff0000-00ff00", Background{GradientFrom: "#ff0000", GradientTo: "#00ff00"}},
		{"rgba passthrough", "rgba(243,244,212,1)", Background{Solid: "rgba(243,244,212,1)"}},
		{"empty", "", Background{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseBackground(tt.in); got != tt.want {
				t.Errorf("ParseBackground(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBackgroundCSS(t *testing.T) {
	b := Background{GradientFrom: "#ff0000", GradientTo: "#00ff00"}
	want := "linear-gradient(to right, #ff0000, #00ff00)"
	if got := b.CSS(); got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
}

func TestFinalizeLengths(t *testing.T) {
	r := Resolve(Params{Color: "ff0000", FontSize: "40,20"}, nil)
	r.Finalize(3)

	a := r.Attrs
	for name, l := range map[string]int{
		"Colors":         len(a.Colors),
		"AccentColors":   len(a.AccentColors),
		"FontSizes":      len(a.FontSizes),
		"IconSizes":      len(a.IconSizes),
		"Aligns":         len(a.Aligns),
		"VerticalAligns": len(a.VerticalAligns),
	} {
		if l != 3 {
			t.Errorf("%s has length %d, want 3", name, l)
		}
	}
	if want := []string{"40px", "20px", "20px"}; !reflect.DeepEqual(a.FontSizes, want) {
		t.Errorf("FontSizes = %v, want %v", a.FontSizes, want)
	}
}

func TestFinalizeIconSizeFallsBackToFontSize(t *testing.T) {
	r := Resolve(Params{FontSize: "48"}, nil)
	r.Finalize(1)
	if r.Attrs.IconSizes[0] != 48 {
		t.Errorf("IconSizes[0] = %d, want font size 48", r.Attrs.IconSizes[0])
	}
}
