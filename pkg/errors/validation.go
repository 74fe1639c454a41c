package errors

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scale bounds accepted by all render entry points.
const (
	MinScale = 0.5
	MaxScale = 5.0
)

// MaxTextLength is the maximum accepted length for path/body text input.
// The bound keeps render cost predictable; longer input is rejected with
// TEXT_TOO_LONG before any rendering work begins.
const MaxTextLength = 200

// ValidateScale parses a scale parameter and validates it against
// [MinScale, MaxScale]. An empty value yields the default scale of 1.
// Non-numeric or out-of-range values are an error, never silently clamped.
func ValidateScale(raw string) (float64, error) {
	if raw == "" {
		return 1, nil
	}
	scale, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, New(ErrCodeInvalidScale, "scale %q is not a number", raw)
	}
	if scale < MinScale || scale > MaxScale {
		return 0, New(ErrCodeInvalidScale, "scale must be between %g and %g, got %g", MinScale, MaxScale, scale)
	}
	return scale, nil
}

// ValidateFormat checks that format is one of the supported output formats.
// An empty value yields the default format "png".
func ValidateFormat(raw string) (string, error) {
	switch raw {
	case "":
		return "png", nil
	case "svg", "png":
		return raw, nil
	}
	return "", New(ErrCodeInvalidFormat, "unsupported format %q (expected svg or png)", raw)
}

// ValidateText validates raw content text for length and safety. Length is
// counted in runes, not bytes, so CJK text gets the full budget.
func ValidateText(text string) error {
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return New(ErrCodeTextTooLong, "text too long (%d characters, max %d)", n, MaxTextLength)
	}
	for _, r := range text {
		if r == '\x00' || (unicode.IsControl(r) && r != '\n' && r != '\t') {
			return New(ErrCodeInvalidInput, "text contains invalid control characters")
		}
	}
	return nil
}

// presetCodeRegex matches valid preset codes: short alphanumeric identifiers
// with optional hyphens, as stored in the preset store.
var presetCodeRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,63}$`)

// ValidatePresetCode validates a preset code for safety and shape.
// It rejects codes that could be used for path traversal against
// file-backed preset stores.
func ValidatePresetCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidInput, "preset code cannot be empty")
	}
	if strings.ContainsAny(code, "/\\") || strings.Contains(code, "..") {
		return New(ErrCodeInvalidInput, "preset code contains invalid characters")
	}
	if !presetCodeRegex.MatchString(code) {
		return New(ErrCodeInvalidInput, "invalid preset code %q", code)
	}
	return nil
}

// hexColorRegex matches a bare or #-prefixed 3/6/8-digit hex color.
var hexColorRegex = regexp.MustCompile(`^#?(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateHexColor checks that v is a plausible hex color value.
// Comma-separated raw color lists (e.g. "rgba(0,0,0,0.5)") are treated as
// opaque pass-through values and are not validated here.
func ValidateHexColor(v string) error {
	if v == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if strings.Contains(v, ",") {
		return nil
	}
	if !hexColorRegex.MatchString(v) {
		return New(ErrCodeInvalidColor, "invalid hex color %q", v)
	}
	return nil
}

// iconRefRegex matches icon references of the form "prefix:name" where both
// segments are lowercase alphanumeric with hyphens.
var iconRefRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*:[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsIconRef reports whether v looks like an icon reference ("prefix:name").
func IsIconRef(v string) bool {
	return iconRefRegex.MatchString(v)
}
