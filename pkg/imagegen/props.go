package imagegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zzaoclub/imgx/pkg/preset"
	"github.com/zzaoclub/imgx/pkg/style"
)

// Style properties that hold one value per content line.
var arrayProps = map[string]bool{
	"fontSizes":      true,
	"iconSizes":      true,
	"colors":         true,
	"accentColors":   true,
	"aligns":         true,
	"verticalAligns": true,
}

// Properties that take a "#" color prefix when given bare hex.
var colorProps = map[string]bool{
	"colors":          true,
	"accentColors":    true,
	"bgColor":         true,
	"titleColor":      true,
	"subtitleColor":   true,
	"authorColor":     true,
	"textWrapBgColor": true,
	"borderColor":     true,
	"pixelColor":      true,
}

// Properties that take a "px" suffix when given bare numbers.
var sizeProps = map[string]bool{
	"fontSizes":       true,
	"padding":         true,
	"textWrapPadding": true,
	"borderWidth":     true,
	"borderRadius":    true,
}

// Properties that are plain numbers without a unit.
var numberProps = map[string]bool{
	"iconSizes": true,
}

// NormalizeProps canonicalizes raw style properties from a request or a
// preset file: array properties become string slices (splitting on commas),
// color values get their "#" prefix, unit sizes their "px" suffix, and the
// preset's props schema refines types for keys the name doesn't identify.
// Empty values are dropped.
func NormalizeProps(raw map[string]any, p *preset.Preset) map[string]any {
	normalized := make(map[string]any, len(raw))
	for key, value := range raw {
		if value == nil {
			continue
		}
		if s, isStr := value.(string); isStr && s == "" {
			continue
		}

		if arrayProps[key] {
			normalized[key] = normalizeList(key, value, p)
			continue
		}
		normalized[key] = normalizeValue(key, value, p)
	}
	return normalized
}

func normalizeList(key string, value any, p *preset.Preset) []any {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	default:
		for _, s := range style.SplitList(fmt.Sprint(v)) {
			items = append(items, s)
		}
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, normalizeValue(key, item, p))
	}
	return out
}

func normalizeValue(key string, value any, p *preset.Preset) any {
	s := strings.TrimSpace(fmt.Sprint(value))

	switch {
	case colorProps[key]:
		return style.CanonColor(s)
	case sizeProps[key]:
		return style.CanonSize(s)
	case numberProps[key]:
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return value
	}

	if p != nil && p.SchemaType(key) == "size" {
		if n, err := strconv.Atoi(strings.TrimSuffix(s, "px")); err == nil {
			return n
		}
	}
	return value
}

// mergeProps overlays custom properties onto preset defaults.
func mergeProps(defaults, custom map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(custom))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range custom {
		merged[k] = v
	}
	return merged
}

// paramsFromProps converts a merged normalized prop map into typed style
// parameters. Known keys map to fields; everything else lands in Extra for
// template-specific use.
func paramsFromProps(props map[string]any) style.Params {
	p := style.Params{Extra: make(map[string]string)}

	for key, value := range props {
		s := flatten(value)
		switch key {
		case "bgColor":
			p.BgColor = s
		case "ratio":
			p.Ratio = s
		case "padding":
			p.Padding = s
		case "fontFamily":
			p.FontFamily = s
		case "colorRandom":
			p.ColorRandom = s == "1" || strings.EqualFold(s, "true")
		case "textWrapBgColor":
			p.TextWrapBgColor = s
		case "textWrapShadow":
			p.TextWrapShadow = s
		case "textWrapPadding":
			p.TextWrapPadding = s
		case "textWrapRounded":
			p.TextWrapRounded = s
		case "colors":
			p.Color = s
		case "accentColors":
			p.AccentColor = s
		case "fontSizes":
			p.FontSize = s
		case "iconSizes":
			p.IconSize = s
		case "aligns":
			p.Align = s
		case "verticalAligns":
			p.VAlign = s
		default:
			p.Extra[key] = s
		}
	}
	return p
}

// flatten renders a normalized prop value as the comma-list string form the
// style resolver consumes.
func flatten(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(v, ",")
	default:
		return fmt.Sprint(v)
	}
}

// toMatrix converts a JSON-decoded grid ([]any of []any) into matrix cells.
func toMatrix(value any) [][]string {
	rows, ok := value.([][]string)
	if ok {
		return rows
	}
	raw, ok := value.([]any)
	if !ok {
		return nil
	}

	matrix := make([][]string, 0, len(raw))
	for _, rowVal := range raw {
		cells, ok := rowVal.([]any)
		if !ok {
			continue
		}
		row := make([]string, len(cells))
		for i, cell := range cells {
			if s, ok := cell.(string); ok {
				row[i] = s
			}
		}
		matrix = append(matrix, row)
	}
	return matrix
}
