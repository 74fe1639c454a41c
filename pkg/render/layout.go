package render

import (
	"strconv"
	"strings"

	"github.com/zzaoclub/imgx/pkg/template"
)

// remPx is the pixel size of one rem in the layout model.
const remPx = 16

// box is a laid-out node: the node plus its absolute frame.
type box struct {
	node *template.Node
	x, y float64
	w, h float64

	explicitW bool
	explicitH bool

	children []*box
}

// inherited carries the text properties that cascade from containers into
// text runs.
type inherited struct {
	fontSize   float64
	fontFamily string
	fontWeight string
	color      string
}

func defaultInherited() inherited {
	return inherited{fontSize: 16, color: "#000000"}
}

func (in inherited) apply(style map[string]string) inherited {
	if v, ok := lengthPx(style["fontSize"], 0, in.fontSize); ok && v > 0 {
		in.fontSize = v
	}
	if v := style["fontFamily"]; v != "" {
		in.fontFamily = v
	}
	if v := style["fontWeight"]; v != "" {
		in.fontWeight = v
	}
	if v := style["color"]; v != "" {
		in.color = v
	}
	return in
}

// lengthPx parses a CSS length into pixels. pctBase resolves percentages,
// emBase resolves em units. Bare numbers count as pixels.
func lengthPx(v string, pctBase, emBase float64) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	switch {
	case strings.HasSuffix(v, "px"):
		return parseFloat(strings.TrimSuffix(v, "px"))
	case strings.HasSuffix(v, "rem"):
		if f, ok := parseFloat(strings.TrimSuffix(v, "rem")); ok {
			return f * remPx, true
		}
	case strings.HasSuffix(v, "em"):
		if f, ok := parseFloat(strings.TrimSuffix(v, "em")); ok {
			return f * emBase, true
		}
	case strings.HasSuffix(v, "%"):
		if f, ok := parseFloat(strings.TrimSuffix(v, "%")); ok {
			return f / 100 * pctBase, true
		}
	default:
		return parseFloat(v)
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// measureText approximates the rendered width of a text run. CJK glyphs
// occupy a full em, everything else a bit over half.
func measureText(text string, fontSize float64) float64 {
	var w float64
	for _, r := range text {
		if r >= 0x2E80 {
			w += fontSize
		} else {
			w += fontSize * 0.55
		}
	}
	return w
}

func isColumn(n *template.Node) bool {
	return n.Style["flexDirection"] == "column"
}

func padPx(n *template.Node, base float64) float64 {
	v, _ := lengthPx(n.Style["padding"], base, remPx)
	return v
}

func gapPx(n *template.Node, column bool) float64 {
	key := "columnGap"
	if column {
		key = "rowGap"
	}
	if v, ok := lengthPx(n.Style[key], 0, remPx); ok {
		return v
	}
	v, _ := lengthPx(n.Style["gap"], 0, remPx)
	return v
}

// measure computes the size of n and its subtree given the available space.
func measure(n *template.Node, availW, availH float64, in inherited) *box {
	b := &box{node: n}
	in = in.apply(n.Style)

	if w, ok := lengthPx(n.Style["width"], availW, in.fontSize); ok {
		b.w, b.explicitW = w, true
	}
	if h, ok := lengthPx(n.Style["height"], availH, in.fontSize); ok {
		b.h, b.explicitH = h, true
	}

	if n.Tag == "span" {
		if !b.explicitW {
			b.w = measureText(n.Text, in.fontSize)
		}
		if !b.explicitH {
			b.h = in.fontSize * 1.4
		}
		return b
	}

	pad := padPx(n, availW)
	innerW, innerH := availW-2*pad, availH-2*pad
	if b.explicitW {
		innerW = b.w - 2*pad
	}
	if b.explicitH {
		innerH = b.h - 2*pad
	}

	column := isColumn(n)
	gap := gapPx(n, column)

	var main, cross float64
	for _, child := range n.Children {
		cb := measure(child, innerW, innerH, in)
		b.children = append(b.children, cb)
		if column {
			main += cb.h
			cross = max(cross, cb.w)
		} else {
			main += cb.w
			cross = max(cross, cb.h)
		}
	}
	if len(b.children) > 1 {
		main += gap * float64(len(b.children)-1)
	}

	if !b.explicitW {
		if column {
			b.w = cross + 2*pad
		} else {
			b.w = main + 2*pad
		}
	}
	if !b.explicitH {
		if column {
			b.h = main + 2*pad
		} else {
			b.h = cross + 2*pad
		}
	}
	return b
}

// arrange assigns absolute positions to b's subtree with b's top-left at
// (x, y), distributing children along the main axis per justifyContent and
// aligning them on the cross axis per alignItems.
func arrange(b *box, x, y float64) {
	b.x, b.y = x, y
	n := b.node
	if len(b.children) == 0 {
		return
	}

	pad := padPx(n, b.w)
	cx, cy := x+pad, y+pad
	cw, ch := b.w-2*pad, b.h-2*pad

	column := isColumn(n)
	gap := gapPx(n, column)

	contentMain := cw
	if column {
		contentMain = ch
	}
	var used float64
	for _, cb := range b.children {
		if column {
			used += cb.h
		} else {
			used += cb.w
		}
	}
	used += gap * float64(len(b.children)-1)
	free := contentMain - used

	offset := 0.0
	switch n.Style["justifyContent"] {
	case "center":
		offset = free / 2
	case "flex-end":
		offset = free
	case "space-between":
		if len(b.children) > 1 {
			gap += free / float64(len(b.children)-1)
		}
	}

	align := n.Style["alignItems"]
	pos := offset
	for _, cb := range b.children {
		crossSize, crossAvail := cb.w, cw
		if column {
			crossSize, crossAvail = cb.h, ch
		}

		crossOff := 0.0
		switch align {
		case "center":
			crossOff = (crossAvail - crossSize) / 2
		case "flex-end":
			crossOff = crossAvail - crossSize
		case "flex-start":
		default:
			// Stretch: containers without an explicit cross size fill it.
			if cb.node.Tag != "span" {
				if column && !cb.explicitW {
					cb.w = cw
				} else if !column && !cb.explicitH {
					cb.h = ch
				}
			}
		}

		if column {
			arrange(cb, cx+crossOff, cy+pos)
			pos += cb.h + gap
		} else {
			arrange(cb, cx+pos, cy+crossOff)
			pos += cb.w + gap
		}
	}
}
