package style

import (
	"strconv"
	"strings"

	"github.com/zzaoclub/imgx/pkg/colorx"
)

// Attributes holds the per-line style arrays. After Finalize every array has
// length exactly equal to the parsed line count.
type Attributes struct {
	Colors         []string `json:"colors,omitempty"`
	AccentColors   []string `json:"accentColors,omitempty"`
	FontSizes      []string `json:"fontSizes,omitempty"`
	IconSizes      []int    `json:"iconSizes,omitempty"`
	Aligns         []string `json:"aligns,omitempty"`
	VerticalAligns []string `json:"verticalAligns,omitempty"`
}

// Background is a solid color or a two-stop linear gradient.
// Gradient is set (both stops) iff Solid is empty.
type Background struct {
	Solid        string `json:"solid,omitempty"`
	GradientFrom string `json:"gradientFrom,omitempty"`
	GradientTo   string `json:"gradientTo,omitempty"`
}

// IsGradient reports whether the background is a two-stop gradient.
func (b Background) IsGradient() bool { return b.GradientFrom != "" && b.GradientTo != "" }

// IsZero reports whether no background was resolved at all.
func (b Background) IsZero() bool { return b.Solid == "" && !b.IsGradient() }

// CSS returns the background as a CSS value usable by the compositor.
func (b Background) CSS() string {
	if b.IsGradient() {
		return "linear-gradient(to right, " + b.GradientFrom + ", " + b.GradientTo + ")"
	}
	return b.Solid
}

// Resolved is the flattened set of final style values for one request.
// It is built once by Resolve and read-only afterwards.
type Resolved struct {
	Background Background
	FontFamily string
	Padding    string
	FontSize   int
	IconSize   int
	Ratio      float64

	// Content-wrap decoration.
	TextWrapBgColor string
	TextWrapShadow  string
	TextWrapPadding string
	TextWrapRounded string

	Attrs Attributes

	// Extra carries template-specific props that the typed fields do not
	// model (e.g. matrix cell size, title/subtitle colors).
	Extra map[string]string
}

// Defaults mirrored from the preset-less entry points.
const (
	DefaultFontFamily = "YouSheBiaoTiHei"
	DefaultPadding    = "30px"
	DefaultFontSize   = 30
	DefaultRatio      = 1.0
	MinRatio          = 0.1
	MaxRatio          = 10.0
)

// Params is the raw caller-supplied style input after transport decoding.
// String fields hold comma-separated lists where the attribute is per-line.
type Params struct {
	BgColor     string
	Ratio       string
	Padding     string
	FontFamily  string
	ColorRandom bool

	TextWrapBgColor string
	TextWrapShadow  string
	TextWrapPadding string
	TextWrapRounded string

	Color       string
	AccentColor string
	IconSize    string
	FontSize    string
	Align       string
	VAlign      string

	Extra map[string]string
}

// Resolve merges caller params over built-in defaults and applies the
// random-color policy: when ColorRandom is set and the caller supplied no
// explicit background, an adjacent-hue gradient is generated and the text
// and accent colors are derived from its luminance. Explicit colors always
// win over randomized ones.
func Resolve(p Params, gen *colorx.Generator) Resolved {
	r := Resolved{
		FontFamily:      coalesce(p.FontFamily, DefaultFontFamily),
		Padding:         coalesce(p.Padding, DefaultPadding),
		Ratio:           clampRatio(parseFloatOr(p.Ratio, DefaultRatio)),
		FontSize:        parseIntOr(strings.TrimSuffix(p.FontSize, "px"), DefaultFontSize),
		IconSize:        parseIntOr(strings.TrimSuffix(p.IconSize, "px"), 0),
		TextWrapShadow:  coalesce(p.TextWrapShadow, "none"),
		TextWrapPadding: coalesce(p.TextWrapPadding, "0px"),
		TextWrapRounded: coalesce(p.TextWrapRounded, "none"),
		Extra:           p.Extra,
	}
	if r.FontSize <= 0 {
		r.FontSize = int(r.Ratio * DefaultFontSize)
	}

	r.Background = ParseBackground(p.BgColor)
	if p.TextWrapBgColor != "" {
		r.TextWrapBgColor = ParseBackground(p.TextWrapBgColor).Solid
	}

	if strings.Contains(p.FontSize, ",") {
		r.Attrs.FontSizes = CanonSizes(SplitList(p.FontSize))
	}
	if strings.Contains(p.IconSize, ",") {
		for _, v := range SplitList(p.IconSize) {
			r.Attrs.IconSizes = append(r.Attrs.IconSizes, parseIntOr(strings.TrimSuffix(v, "px"), DefaultFontSize))
		}
	}
	if p.Color != "" {
		r.Attrs.Colors = CanonColors(SplitList(p.Color))
	}
	if p.AccentColor != "" {
		r.Attrs.AccentColors = CanonColors(SplitList(p.AccentColor))
	}
	if p.Align != "" {
		r.Attrs.Aligns = SplitList(p.Align)
	}
	if p.VAlign != "" {
		r.Attrs.VerticalAligns = SplitList(p.VAlign)
	}

	if p.ColorRandom && gen != nil {
		applyRandomFill(&r, gen)
	}
	return r
}

// applyRandomFill fills background and text colors that the caller left
// unset. Generated colors never override explicit ones.
func applyRandomFill(r *Resolved, gen *colorx.Generator) {
	from, to := gen.AdjacentGradient()
	if r.Background.IsZero() {
		r.Background = Background{GradientFrom: "#" + from, GradientTo: "#" + to}
	}
	if len(r.Attrs.Colors) == 0 {
		r.Attrs.Colors = []string{"#" + colorx.GradientContrastText(from, to, colorx.TextColorOptions{})}
	}
	if len(r.Attrs.AccentColors) == 0 {
		r.Attrs.AccentColors = []string{"#" + gen.RandomBright()}
	}
}

// Finalize expands every per-line array to lineCount entries and fills
// per-line fallbacks for arrays the caller never supplied.
func (r *Resolved) Finalize(lineCount int) {
	if lineCount <= 0 {
		return
	}
	if len(r.Attrs.Colors) == 0 {
		r.Attrs.Colors = []string{"#" + colorx.DefaultDarkText}
	}
	if len(r.Attrs.AccentColors) == 0 {
		r.Attrs.AccentColors = r.Attrs.Colors[:1]
	}
	if len(r.Attrs.FontSizes) == 0 {
		r.Attrs.FontSizes = []string{strconv.Itoa(r.FontSize) + "px"}
	}
	if len(r.Attrs.IconSizes) == 0 {
		size := r.IconSize
		if size <= 0 {
			size = r.FontSize
		}
		r.Attrs.IconSizes = []int{size}
	}
	if len(r.Attrs.Aligns) == 0 {
		r.Attrs.Aligns = []string{"center"}
	}
	if len(r.Attrs.VerticalAligns) == 0 {
		r.Attrs.VerticalAligns = []string{"center"}
	}

	r.Attrs.Colors = CanonColors(AdjustLen(lineCount, r.Attrs.Colors))
	r.Attrs.AccentColors = CanonColors(AdjustLen(lineCount, r.Attrs.AccentColors))
	r.Attrs.FontSizes = CanonSizes(AdjustLen(lineCount, r.Attrs.FontSizes))
	r.Attrs.IconSizes = AdjustLen(lineCount, r.Attrs.IconSizes)
	r.Attrs.Aligns = AdjustLen(lineCount, r.Attrs.Aligns)
	r.Attrs.VerticalAligns = AdjustLen(lineCount, r.Attrs.VerticalAligns)
}

// ParseBackground interprets a raw background value: "rrggbb" (or "#rrggbb")
// is a solid color, "color1-color2" a two-stop gradient, and values with
// commas (rgba lists) pass through as solid verbatim.
func ParseBackground(v string) Background {
	if v == "" {
		return Background{}
	}
	if strings.Contains(v, ",") {
		return Background{Solid: v}
	}
	stops := strings.SplitN(v, "-", 2)
	if len(stops) == 2 && stops[0] != "" && stops[1] != "" {
		return Background{
			GradientFrom: CanonColor(stops[0]),
			GradientTo:   CanonColor(stops[1]),
		}
	}
	return Background{Solid: CanonColor(v)}
}

func clampRatio(ratio float64) float64 {
	if ratio < MinRatio {
		return MinRatio
	}
	if ratio > MaxRatio {
		return MaxRatio
	}
	return ratio
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func parseFloatOr(v string, fallback float64) float64 {
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseIntOr(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
