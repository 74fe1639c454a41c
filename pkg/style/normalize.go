// Package style resolves per-request style properties: it expands per-line
// attribute arrays to match the parsed line count, canonicalizes color and
// size values, and merges preset defaults with caller overrides.
package style

import (
	"strconv"
	"strings"

	"github.com/zzaoclub/imgx/pkg/errors"
)

// AdjustLen expands or truncates attrs so its length equals lineCount.
// Shorter arrays are padded by repeating the last supplied element; longer
// arrays are truncated. Empty attrs are returned unchanged: padding has no
// source element, so emptiness must be rejected upstream (ValidateAttrs)
// rather than silently defaulted here.
func AdjustLen[T any](lineCount int, attrs []T) []T {
	switch {
	case len(attrs) == 0 || len(attrs) == lineCount:
		return attrs
	case len(attrs) > lineCount:
		return attrs[:lineCount]
	}
	adjusted := make([]T, lineCount)
	copy(adjusted, attrs)
	for i := len(attrs); i < lineCount; i++ {
		adjusted[i] = attrs[len(attrs)-1]
	}
	return adjusted
}

// ValidateAttrs rejects empty attribute arrays when lines exist: AdjustLen
// cannot pad without a source element.
func ValidateAttrs[T any](name string, lineCount int, attrs []T) error {
	if lineCount >= 1 && len(attrs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s requires at least one value for %d lines", name, lineCount)
	}
	return nil
}

// CanonColor canonicalizes a color value to carry exactly one leading "#".
// Values containing a comma are raw color lists (e.g. "rgba(0,0,0,0.4)")
// and pass through opaque.
func CanonColor(v string) string {
	if v == "" || strings.Contains(v, ",") {
		return v
	}
	return "#" + strings.TrimLeft(v, "#")
}

// CanonSize canonicalizes a size value to carry a unit: purely numeric
// values get a "px" suffix, values already carrying px/em/rem/% pass
// through unchanged.
func CanonSize(v string) string {
	if v == "" {
		return v
	}
	if hasUnit(v) {
		return v
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return v + "px"
	}
	return v
}

func hasUnit(v string) bool {
	for _, unit := range []string{"px", "em", "rem", "%"} {
		if strings.HasSuffix(v, unit) {
			return true
		}
	}
	return false
}

// CanonColors applies CanonColor across a slice.
func CanonColors(vs []string) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = CanonColor(v)
	}
	return out
}

// CanonSizes applies CanonSize across a slice.
func CanonSizes(vs []string) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = CanonSize(v)
	}
	return out
}

// SplitList splits a comma-separated attribute value into trimmed non-empty
// elements. A single value yields a one-element slice.
func SplitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
