package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/zzaoclub/imgx/pkg/fonts"
	"github.com/zzaoclub/imgx/pkg/template"
)

// Option configures SVG composition.
type Option func(*composer)

// WithFontLoader enables @font-face embedding: every font family the tree
// references that the loader can find is inlined into the document. Families
// the loader can't find degrade to the fallback font stack.
func WithFontLoader(loader *fonts.Loader) Option {
	return func(c *composer) { c.fontLoader = loader }
}

type gradient struct {
	id       string
	from, to string
}

type composer struct {
	fontLoader *fonts.Loader

	body      bytes.Buffer
	gradients []gradient
	families  map[string]bool
}

// Compose lays out the node tree at the given dimensions and writes it as
// an SVG document.
func Compose(root *template.Node, width, height int, opts ...Option) ([]byte, error) {
	c := &composer{families: make(map[string]bool)}
	for _, opt := range opts {
		opt(c)
	}

	// The root always fills the full canvas.
	b := measure(root, float64(width), float64(height), defaultInherited())
	b.w, b.h = float64(width), float64(height)
	b.explicitW, b.explicitH = true, true
	arrange(b, 0, 0)

	c.emit(b, defaultInherited())

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)
	c.writeDefs(&buf)
	buf.Write(c.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func (c *composer) writeDefs(buf *bytes.Buffer) {
	faces := c.fontFaces()
	if len(c.gradients) == 0 && faces == "" {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, g := range c.gradients {
		fmt.Fprintf(buf, `    <linearGradient id=%q x1="0%%" y1="0%%" x2="100%%" y2="0%%">`+"\n", g.id)
		fmt.Fprintf(buf, `      <stop offset="0%%" stop-color=%q/>`+"\n", g.from)
		fmt.Fprintf(buf, `      <stop offset="100%%" stop-color=%q/>`+"\n", g.to)
		buf.WriteString("    </linearGradient>\n")
	}
	if faces != "" {
		fmt.Fprintf(buf, "    <style>%s</style>\n", faces)
	}
	buf.WriteString("  </defs>\n")
}

func (c *composer) fontFaces() string {
	if c.fontLoader == nil {
		return ""
	}
	var sb strings.Builder
	for family := range c.families {
		font, err := c.fontLoader.Load(family)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb,
			"@font-face{font-family:'%s';src:url(data:font/ttf;base64,%s);}",
			family, font.Base64())
	}
	return sb.String()
}

func (c *composer) emit(b *box, in inherited) {
	style := b.node.Style
	in = in.apply(style)
	if in.fontFamily != "" {
		c.families[in.fontFamily] = true
	}

	radius, _ := lengthPx(style["borderRadius"], 0, in.fontSize)

	if bg := style["backgroundColor"]; bg != "" && bg != "transparent" {
		fmt.Fprintf(&c.body, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill=%q/>`+"\n",
			b.x, b.y, b.w, b.h, radius, cssColor(bg))
	}

	if bc := style["borderColor"]; bc != "" {
		bw, ok := lengthPx(style["borderWidth"], 0, in.fontSize)
		if !ok || bw <= 0 {
			bw = 1
		}
		// Stroke inset by half its width so the border stays inside the box.
		fmt.Fprintf(&c.body, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="none" stroke=%q stroke-width="%.1f"/>`+"\n",
			b.x+bw/2, b.y+bw/2, b.w-bw, b.h-bw, radius, cssColor(bc), bw)
	}

	if img := style["backgroundImage"]; img != "" {
		if from, to, ok := parseLinearGradient(img); ok {
			id := fmt.Sprintf("grad%d", len(c.gradients)+1)
			c.gradients = append(c.gradients, gradient{id: id, from: from, to: to})
			fmt.Fprintf(&c.body, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="url(#%s)"/>`+"\n",
				b.x, b.y, b.w, b.h, radius, id)
		} else if url, ok := parseImageURL(img); ok {
			fmt.Fprintf(&c.body, `  <image x="%.1f" y="%.1f" width="%.1f" height="%.1f" href=%q preserveAspectRatio="none"/>`+"\n",
				b.x, b.y, b.w, b.h, url)
		}
	}

	if b.node.Tag == "span" && b.node.Text != "" {
		c.emitText(b, in)
	}

	for _, child := range b.children {
		c.emit(child, in)
	}
}

func (c *composer) emitText(b *box, in inherited) {
	var escaped bytes.Buffer
	_ = xml.EscapeText(&escaped, []byte(b.node.Text))

	family := in.fontFamily
	if family == "" {
		family = fonts.FallbackFamily
	}

	attrs := fmt.Sprintf(`font-size="%.0f" fill=%q font-family=%q`, in.fontSize, cssColor(in.color), family)
	if in.fontWeight != "" {
		attrs += fmt.Sprintf(` font-weight=%q`, in.fontWeight)
	}
	fmt.Fprintf(&c.body, `  <text x="%.1f" y="%.1f" dominant-baseline="central" %s>%s</text>`+"\n",
		b.x, b.y+b.h/2, attrs, escaped.String())
}

// cssColor normalizes short color inputs: bare rgb triples get wrapped,
// everything else passes through.
func cssColor(v string) string {
	if strings.Contains(v, ",") && !strings.HasPrefix(v, "rgb") {
		return "rgba(" + v + ")"
	}
	return v
}

// parseLinearGradient extracts the two stops of a
// "linear-gradient(to right, from, to)" value.
func parseLinearGradient(v string) (from, to string, ok bool) {
	inner, found := strings.CutPrefix(v, "linear-gradient(")
	if !found {
		return "", "", false
	}
	inner = strings.TrimSuffix(inner, ")")
	parts := strings.Split(inner, ",")
	if len(parts) < 3 {
		return "", "", false
	}
	return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]), true
}

// parseImageURL extracts the payload of a "url(...)" value.
func parseImageURL(v string) (string, bool) {
	inner, found := strings.CutPrefix(v, "url(")
	if !found {
		return "", false
	}
	return strings.TrimSuffix(inner, ")"), true
}

// RenderError composes a small standalone SVG carrying an error message,
// served in place of an image when the request names an unknown preset.
func RenderError(msg string, width, height int) []byte {
	if width <= 0 {
		width = 300
	}
	if height <= 0 {
		height = 100
	}
	var escaped bytes.Buffer
	_ = xml.EscapeText(&escaped, []byte(msg))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <text x="%d" y="%d" text-anchor="middle" dominant-baseline="central" fill="red" font-size="26" font-family=%q>%s</text>`+"\n",
		width/2, height/2, fonts.FallbackFamily, escaped.String())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
