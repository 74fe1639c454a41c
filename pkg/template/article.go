package template

import (
	"strconv"
	"strings"
)

// ArticleID is the title/subtitle/author cover template.
const ArticleID = "article"

// Relative sizes of the subtitle and author lines when the caller supplies
// only a title font size.
const (
	subtitleScale = 0.55
	authorScale   = 0.4
)

// Article lays out an article cover: a framed card holding a title, an
// optional subtitle, and a right-aligned author byline. Content arrives
// through the "title", "subtitle" and "author" props rather than parsed
// text lines, so the template serves multi-slot presets. The card frame is
// styled with the borderColor, borderWidth and borderRadius props; slot
// colors with titleColor, subtitleColor and authorColor.
func Article(p *Props) *Node {
	s := p.Style
	x := s.Extra

	root := Div("w-full", "h-full", "flex", "items-center", "justify-center").
		Set("padding", s.Padding).
		Set("fontFamily", s.FontFamily)
	if s.Background.IsGradient() {
		root.Set("backgroundImage", s.Background.CSS())
	} else if s.Background.Solid != "" {
		root.Set("backgroundColor", s.Background.Solid)
	}

	card := Div("flex", "flex-col", "w-full", "h-full", "justify-center", "gap-4").
		Set("backgroundColor", s.TextWrapBgColor).
		Set("padding", s.TextWrapPadding).
		Set("borderColor", x["borderColor"]).
		Set("borderWidth", x["borderWidth"]).
		Set("borderRadius", x["borderRadius"])

	baseColor := first(s.Attrs.Colors)
	titleSize := first(s.Attrs.FontSizes)

	if title := x["title"]; title != "" {
		card.Add(Div("flex", "font-bold").
			Set("justifyContent", alignValue(first(s.Attrs.Aligns))).
			Set("color", coalesce(x["titleColor"], baseColor)).
			Set("fontSize", titleSize).
			Add(Span(title)))
	}
	if subtitle := x["subtitle"]; subtitle != "" {
		card.Add(Div("flex").
			Set("justifyContent", alignValue(first(s.Attrs.Aligns))).
			Set("color", coalesce(x["subtitleColor"], baseColor)).
			Set("fontSize", scaledSize(titleSize, subtitleScale)).
			Add(Span(subtitle)))
	}
	if author := x["author"]; author != "" {
		card.Add(Div("flex", "justify-end").
			Set("color", coalesce(x["authorColor"], baseColor)).
			Set("fontSize", scaledSize(titleSize, authorScale)).
			Add(Span(author)))
	}

	root.Add(card)
	return root
}

// scaledSize multiplies a pixel size by factor. Non-pixel values pass
// through unchanged.
func scaledSize(v string, factor float64) string {
	n, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return v
	}
	return strconv.Itoa(int(n*factor)) + "px"
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
