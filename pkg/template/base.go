package template

import (
	"strconv"

	"github.com/zzaoclub/imgx/pkg/content"
)

// BaseID is the general-purpose multi-line text template.
const BaseID = "base"

// Base lays out the parsed content lines in a vertical stack, each line a
// horizontal run of plain text, accent spans, and inline icon glyphs, inside
// an optional decorated content wrap over the resolved background.
func Base(p *Props) *Node {
	s := p.Style

	root := Div("w-full", "h-full", "flex", "items-center", "justify-center").
		Set("padding", s.Padding).
		Set("fontFamily", s.FontFamily)
	if s.Background.IsGradient() {
		root.Set("backgroundImage", s.Background.CSS())
	} else if s.Background.Solid != "" {
		root.Set("backgroundColor", s.Background.Solid)
	}

	wrap := Div("flex", "w-full", "h-full").
		Class("rounded-"+s.TextWrapRounded).
		Set("backgroundColor", s.TextWrapBgColor).
		Set("padding", s.TextWrapPadding).
		Set("justifyContent", alignValue(first(s.Attrs.VerticalAligns)))

	column := Div("flex", "flex-col", "w-full")
	for i, line := range p.Content {
		column.Add(baseLine(line, i, p))
	}

	root.Add(wrap.Add(column))
	return root
}

func baseLine(line content.Line, i int, p *Props) *Node {
	s := p.Style
	div := Div("font-bold", "flex").
		Set("color", at(s.Attrs.Colors, i)).
		Set("fontSize", at(s.Attrs.FontSizes, i)).
		Set("justifyContent", alignValue(at(s.Attrs.Aligns, i)))

	for _, part := range line {
		switch part.Kind {
		case content.Icon:
			size := strconv.Itoa(atInt(s.Attrs.IconSizes, i)) + "px"
			div.Add(Span("").Class("flex").
				Set("width", size).
				Set("height", size).
				Set("backgroundImage", "url("+part.GlyphData+")").
				Set("backgroundRepeat", "no-repeat").
				Set("backgroundSize", "100% 100%"))
		case content.Accent:
			div.Add(Span(part.Text).Class("text-nowrap").
				Set("color", at(s.Attrs.AccentColors, i)))
		default:
			div.Add(Span(part.Text).Class("text-nowrap"))
		}
	}
	return div
}

// alignValue maps shorthand alignment names onto flexbox values; values
// already in flexbox vocabulary pass through.
func alignValue(v string) string {
	switch v {
	case "left", "top", "start":
		return "flex-start"
	case "right", "bottom", "end":
		return "flex-end"
	case "":
		return "center"
	}
	return v
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func at(vals []string, i int) string {
	if i < len(vals) {
		return vals[i]
	}
	return first(vals)
}

func atInt(vals []int, i int) int {
	if i < len(vals) {
		return vals[i]
	}
	if len(vals) > 0 {
		return vals[0]
	}
	return content.DefaultIconSize
}
