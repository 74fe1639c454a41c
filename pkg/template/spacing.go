package template

import "strings"

// gapSizes maps Tailwind spacing scale steps to CSS lengths.
var gapSizes = map[string]string{
	"0":   "0",
	"px":  "1px",
	"0.5": "0.125rem",
	"1":   "0.25rem",
	"1.5": "0.375rem",
	"2":   "0.5rem",
	"2.5": "0.625rem",
	"3":   "0.75rem",
	"3.5": "0.875rem",
	"4":   "1rem",
	"5":   "1.25rem",
	"6":   "1.5rem",
	"7":   "1.75rem",
	"8":   "2rem",
	"9":   "2.25rem",
	"10":  "2.5rem",
	"11":  "2.75rem",
	"12":  "3rem",
	"14":  "3.5rem",
	"16":  "4rem",
	"20":  "5rem",
	"24":  "6rem",
	"28":  "7rem",
	"32":  "8rem",
	"36":  "9rem",
	"40":  "10rem",
	"44":  "11rem",
	"48":  "12rem",
	"52":  "13rem",
	"56":  "14rem",
	"60":  "15rem",
	"64":  "16rem",
	"72":  "18rem",
	"80":  "20rem",
	"96":  "24rem",
}

// spacingPrefixes maps spacing class prefixes to the style property they
// set. Longer prefixes must be tried before "gap" so "gap-x-2" doesn't
// match as gap with size "x-2".
var spacingPrefixes = []struct {
	prefix   string
	property string
}{
	{"gap-x", "columnGap"},
	{"gap-y", "rowGap"},
	{"space-x", "marginLeft"},
	{"space-y", "marginTop"},
	{"gap", "gap"},
}

// utilityClasses maps single-purpose utility classes to their style
// property and value.
var utilityClasses = map[string]struct{ prop, value string }{
	"flex":            {"display", "flex"},
	"flex-col":        {"flexDirection", "column"},
	"flex-row":        {"flexDirection", "row"},
	"items-center":    {"alignItems", "center"},
	"items-start":     {"alignItems", "flex-start"},
	"items-end":       {"alignItems", "flex-end"},
	"justify-center":  {"justifyContent", "center"},
	"justify-start":   {"justifyContent", "flex-start"},
	"justify-end":     {"justifyContent", "flex-end"},
	"justify-between": {"justifyContent", "space-between"},
	"w-full":          {"width", "100%"},
	"h-full":          {"height", "100%"},
	"font-bold":       {"fontWeight", "700"},
	"text-nowrap":     {"whiteSpace", "nowrap"},
}

var roundedSizes = map[string]string{
	"none": "0",
	"sm":   "2px",
	"md":   "6px",
	"lg":   "8px",
	"xl":   "12px",
	"2xl":  "16px",
	"3xl":  "24px",
	"full": "9999px",
}

// ResolveClass resolves one utility class into a style property and value.
// Returns ok=false for classes the renderer has no mapping for; Normalize
// carries those verbatim under the "class" style entry.
func ResolveClass(cls string) (prop, value string, ok bool) {
	if u, found := utilityClasses[cls]; found {
		return u.prop, u.value, true
	}
	for _, s := range spacingPrefixes {
		if size, found := strings.CutPrefix(cls, s.prefix+"-"); found {
			if v, known := gapSizes[size]; known {
				return s.property, v, true
			}
		}
	}
	if cls == "rounded" {
		return "borderRadius", "4px", true
	}
	if size, found := strings.CutPrefix(cls, "rounded-"); found {
		if v, known := roundedSizes[size]; known {
			return "borderRadius", v, true
		}
	}
	return "", "", false
}

// Normalize resolves every node's utility classes into explicit style
// properties and injects display:flex on containers that don't declare a
// display. Classes without a mapping are preserved verbatim, space-joined,
// under the "class" style entry so downstream consumers still see them.
// The tree is modified in place; after Normalize no node carries classes.
// Explicit style values win over class-derived ones.
func Normalize(n *Node) {
	if n == nil {
		return
	}

	resolved := make(map[string]string)
	var unresolved []string
	for _, cls := range n.Classes {
		if prop, value, ok := ResolveClass(cls); ok {
			resolved[prop] = value
		} else {
			unresolved = append(unresolved, cls)
		}
	}
	if len(unresolved) > 0 {
		if n.Style == nil {
			n.Style = make(map[string]string)
		}
		if prev := n.Style["class"]; prev != "" {
			unresolved = append([]string{prev}, unresolved...)
		}
		n.Style["class"] = strings.Join(unresolved, " ")
	}
	if n.Tag != "span" && resolved["display"] == "" && n.Style["display"] == "" {
		resolved["display"] = "flex"
	}
	for prop, value := range resolved {
		if _, explicit := n.Style[prop]; !explicit {
			if n.Style == nil {
				n.Style = make(map[string]string)
			}
			n.Style[prop] = value
		}
	}
	n.Classes = nil

	for _, child := range n.Children {
		Normalize(child)
	}
}
