// Package content parses the cover-image text mini-language into typed
// line parts.
//
// The mini-language is deliberately tiny: lines are delimited by a splitter
// character (default "+", "/" for URL-path entry points), and within a line
// two bracket syntaxes mark special runs:
//
//	[twemoji:fire]  an icon reference, resolved to inline glyph data
//	*important*     an accent span, rendered in the accent color
//
// Everything else is plain text. Malformed or unterminated brackets are not
// errors; an unmatched "[" or "*" is ordinary text.
package content

import (
	"regexp"
	"strings"
)

// Kind classifies a TextPart.
type Kind int

const (
	// Plain is ordinary text.
	Plain Kind = iota
	// Accent is text rendered in the line's accent color.
	Accent
	// Icon is an inline icon with resolved glyph data.
	Icon
)

// String returns the kind name for logs and test failures.
func (k Kind) String() string {
	switch k {
	case Accent:
		return "accent"
	case Icon:
		return "icon"
	default:
		return "plain"
	}
}

// TextPart is one atomic run within a line.
//
// IconRef is set iff Kind == Icon. GlyphData holds the resolved glyph as an
// SVG data URL; when icon resolution fails the part degrades to Plain with
// Text set to the literal bracket contents, so GlyphData is never empty on
// an Icon part.
type TextPart struct {
	Text      string `json:"text"`
	Kind      Kind   `json:"kind"`
	IconRef   string `json:"iconRef,omitempty"`
	GlyphData string `json:"glyphData,omitempty"`
}

// Line is an ordered sequence of parts; render order is slice order.
type Line []TextPart

// ParsedContent holds one Line per splitter-delimited input segment.
// It is created fresh per request and never mutated after parsing.
type ParsedContent []Line

// ResolveFunc resolves an icon reference ("prefix:name") at the requested
// pixel size into glyph data (an SVG data URL). It returns ok=false when the
// icon cannot be resolved; the parser then degrades the part to plain text.
type ResolveFunc func(ref string, sizePx int) (data string, ok bool)

// DefaultSplitter separates lines in query/body text input.
const DefaultSplitter = "+"

// DefaultIconSize is the glyph size requested when no icon-size attribute
// applies.
const DefaultIconSize = 30

// partRegex recognizes both bracket syntaxes in a single alternation so that
// leftmost-match-first precedence is unambiguous: whichever construct opens
// earliest wins, and spans never nest.
var partRegex = regexp.MustCompile(`\[(.*?)\]|\*(.*?)\*`)

// Parse splits raw into lines on splitter and scans each line into parts.
// An empty raw yields an empty ParsedContent. resolve may be nil, in which
// case every icon candidate degrades to plain text.
func Parse(raw, splitter string, resolve ResolveFunc, iconSize int) ParsedContent {
	if raw == "" {
		return ParsedContent{}
	}
	if splitter == "" {
		splitter = DefaultSplitter
	}
	if iconSize <= 0 {
		iconSize = DefaultIconSize
	}

	segments := strings.Split(raw, splitter)
	parsed := make(ParsedContent, 0, len(segments))
	for _, seg := range segments {
		parsed = append(parsed, ParseLine(seg, resolve, iconSize))
	}
	return parsed
}

// ParseLine scans a single line left to right, emitting plain runs between
// matches and typed parts for each bracket construct.
func ParseLine(line string, resolve ResolveFunc, iconSize int) Line {
	parts := Line{}
	last := 0

	for _, m := range partRegex.FindAllStringSubmatchIndex(line, -1) {
		if m[0] > last {
			parts = append(parts, TextPart{Text: line[last:m[0]], Kind: Plain})
		}

		switch {
		case m[2] >= 0: // [inner] icon candidate
			inner := line[m[2]:m[3]]
			parts = append(parts, resolveIconPart(inner, resolve, iconSize))
		case m[4] >= 0: // *inner* accent
			parts = append(parts, TextPart{Text: line[m[4]:m[5]], Kind: Accent})
		}
		last = m[1]
	}

	if last < len(line) {
		parts = append(parts, TextPart{Text: line[last:], Kind: Plain})
	}
	return parts
}

// resolveIconPart turns an icon candidate into an Icon part, or degrades it
// to Plain when resolution fails. The bracket contents survive as literal
// text so a broken icon never blanks the line.
func resolveIconPart(ref string, resolve ResolveFunc, iconSize int) TextPart {
	if resolve != nil {
		if data, ok := resolve(ref, iconSize); ok {
			return TextPart{Text: ref, Kind: Icon, IconRef: ref, GlyphData: data}
		}
	}
	return TextPart{Text: ref, Kind: Plain}
}
