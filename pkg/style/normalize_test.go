package style

import (
	"reflect"
	"testing"
)

func TestAdjustLen(t *testing.T) {
	tests := []struct {
		name      string
		lineCount int
		attrs     []string
		want      []string
	}{
		{"equal length unchanged", 3, []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"pads repeating last", 4, []string{"a", "b"}, []string{"a", "b", "b", "b"}},
		{"single pads all", 3, []string{"x"}, []string{"x", "x", "x"}},
		{"truncates extras", 2, []string{"a", "b", "c", "d"}, []string{"a", "b"}},
		{"empty returned unchanged", 3, []string{}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustLen(tt.lineCount, tt.attrs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AdjustLen(%d, %v) = %v, want %v", tt.lineCount, tt.attrs, got, tt.want)
			}
		})
	}
}

func TestAdjustLenInvariant(t *testing.T) {
	// For all lineCount >= 1 and non-empty attrs, output length == lineCount.
	for lineCount := 1; lineCount <= 8; lineCount++ {
		for attrLen := 1; attrLen <= 8; attrLen++ {
			attrs := make([]int, attrLen)
			for i := range attrs {
				attrs[i] = i
			}
			if got := AdjustLen(lineCount, attrs); len(got) != lineCount {
				t.Errorf("AdjustLen(%d, len %d) has length %d", lineCount, attrLen, len(got))
			}
		}
	}
}

func TestValidateAttrs(t *testing.T) {
	if err := ValidateAttrs("colors", 2, []string{}); err == nil {
		t.Error("empty attrs with lines should be rejected")
	}
	if err := ValidateAttrs("colors", 2, []string{"#fff"}); err != nil {
		t.Errorf("non-empty attrs should pass: %v", err)
	}
	if err := ValidateAttrs("colors", 0, []string{}); err != nil {
		t.Errorf("zero lines need no attrs: %v", err)
	}
}

func TestCanonColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ff0000", "#ff0000"},
		{"#ff0000", "#ff0000"},
		{"##ff0000", "#ff0000"},
		{"ff0000,00ff00", "ff0000,00ff00"}, // raw list passes through
		{"rgba(0,0,0,0.4)", "rgba(0,0,0,0.4)"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CanonColor(tt.in); got != tt.want {
			t.Errorf("CanonColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonSize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"30", "30px"},
		{"30px", "30px"},
		{"1.5rem", "1.5rem"},
		{"2em", "2em"},
		{"50%", "50%"},
		{"auto", "auto"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CanonSize(tt.in); got != tt.want {
			t.Errorf("CanonSize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" a, b ,,c ")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList = %v, want %v", got, want)
	}
	if SplitList("") != nil {
		t.Error("SplitList(\"\") should be nil")
	}
}
