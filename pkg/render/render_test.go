package render

import (
	"strings"
	"testing"

	"github.com/zzaoclub/imgx/pkg/template"
)

func TestLengthPx(t *testing.T) {
	tests := []struct {
		in      string
		pctBase float64
		want    float64
		ok      bool
	}{
		{"20px", 0, 20, true},
		{"1rem", 0, 16, true},
		{"0.5rem", 0, 8, true},
		{"100%", 500, 500, true},
		{"50%", 400, 200, true},
		{"30", 0, 30, true},
		{"0", 0, 0, true},
		{"", 0, 0, false},
		{"auto", 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := lengthPx(tt.in, tt.pctBase, 16)
		if got != tt.want || ok != tt.ok {
			t.Errorf("lengthPx(%q) = (%g, %v), want (%g, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMeasureTextCJKWiderThanLatin(t *testing.T) {
	latin := measureText("abcd", 30)
	cjk := measureText("你好世界", 30)
	if cjk <= latin {
		t.Errorf("CJK width %.1f should exceed Latin width %.1f", cjk, latin)
	}
	if cjk != 120 {
		t.Errorf("4 CJK glyphs at 30px = %.1f, want 120", cjk)
	}
}

func TestLayoutCentersChild(t *testing.T) {
	child := template.Div().Set("width", "100px").Set("height", "50px")
	root := template.Div().
		Set("display", "flex").
		Set("justifyContent", "center").
		Set("alignItems", "center")
	root.Add(child)
	template.Normalize(root)

	b := measure(root, 500, 200, defaultInherited())
	b.w, b.h = 500, 200
	b.explicitW, b.explicitH = true, true
	arrange(b, 0, 0)

	cb := b.children[0]
	if cb.x != 200 || cb.y != 75 {
		t.Errorf("child at (%.1f, %.1f), want (200, 75)", cb.x, cb.y)
	}
}

func TestLayoutColumnStacksWithGap(t *testing.T) {
	root := template.Div("flex", "flex-col").Set("gap", "10px")
	for range 3 {
		root.Add(template.Div().Set("width", "50px").Set("height", "20px"))
	}
	template.Normalize(root)

	b := measure(root, 500, 500, defaultInherited())
	arrange(b, 0, 0)

	if b.h != 80 { // 3*20 + 2*10
		t.Errorf("intrinsic height = %.1f, want 80", b.h)
	}
	if b.children[1].y != 30 || b.children[2].y != 60 {
		t.Errorf("children at y %.1f, %.1f; want 30, 60",
			b.children[1].y, b.children[2].y)
	}
}

func TestLayoutStretchFillsCross(t *testing.T) {
	child := template.Div().Set("height", "20px")
	root := template.Div("flex", "flex-col")
	root.Add(child)
	template.Normalize(root)

	b := measure(root, 400, 100, defaultInherited())
	b.w, b.explicitW = 400, true
	arrange(b, 0, 0)

	if b.children[0].w != 400 {
		t.Errorf("stretched child width = %.1f, want 400", b.children[0].w)
	}
}

func TestLayoutPaddingInsets(t *testing.T) {
	child := template.Div().Set("width", "10px").Set("height", "10px")
	root := template.Div("flex").Set("padding", "30px")
	root.Add(child)
	template.Normalize(root)

	b := measure(root, 500, 500, defaultInherited())
	arrange(b, 0, 0)

	if b.children[0].x != 30 || b.children[0].y != 30 {
		t.Errorf("child at (%.1f, %.1f), want (30, 30)", b.children[0].x, b.children[0].y)
	}
}

func TestComposeSolidBackground(t *testing.T) {
	root := template.Div("w-full", "h-full").Set("backgroundColor", "#336699")
	template.Normalize(root)

	svg, err := Compose(root, 500, 212)
	if err != nil {
		t.Fatalf("Compose() failed: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, `viewBox="0 0 500 212"`) {
		t.Errorf("missing viewBox: %s", out)
	}
	if !strings.Contains(out, `fill="#336699"`) {
		t.Errorf("missing background rect: %s", out)
	}
}

func TestComposeBorderStroke(t *testing.T) {
	root := template.Div("w-full", "h-full").
		Set("backgroundColor", "#1e293b").
		Set("borderColor", "#f6c90e").
		Set("borderWidth", "2px").
		Set("borderRadius", "16px")
	template.Normalize(root)

	svg, err := Compose(root, 400, 200)
	if err != nil {
		t.Fatalf("Compose() failed: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, `stroke="#f6c90e"`) {
		t.Errorf("missing border stroke: %s", out)
	}
	if !strings.Contains(out, `stroke-width="2.0"`) {
		t.Errorf("missing border width: %s", out)
	}
	if !strings.Contains(out, `fill="none"`) {
		t.Errorf("border rect must not fill the box: %s", out)
	}
}

func TestComposeGradientBackground(t *testing.T) {
	root := template.Div("w-full", "h-full").
		Set("backgroundImage", "linear-gradient(to right, #ff0000, #00ff00)")
	template.Normalize(root)

	svg, err := Compose(root, 300, 100)
	if err != nil {
		t.Fatalf("Compose() failed: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, `<linearGradient id="grad1"`) {
		t.Errorf("missing gradient def: %s", out)
	}
	if !strings.Contains(out, `stop-color="#ff0000"`) || !strings.Contains(out, `stop-color="#00ff00"`) {
		t.Errorf("missing gradient stops: %s", out)
	}
	if !strings.Contains(out, `fill="url(#grad1)"`) {
		t.Errorf("rect not filled with gradient: %s", out)
	}
}

func TestComposeTextEscaped(t *testing.T) {
	root := template.Div("w-full", "h-full").Set("fontSize", "30px")
	root.Add(template.Span("a < b & c"))
	template.Normalize(root)

	svg, err := Compose(root, 300, 100)
	if err != nil {
		t.Fatalf("Compose() failed: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, "a &lt; b &amp; c") {
		t.Errorf("text not escaped: %s", out)
	}
	if !strings.Contains(out, `font-size="30"`) {
		t.Errorf("font size not inherited: %s", out)
	}
}

func TestComposeIconImage(t *testing.T) {
	icon := template.Span("").
		Set("width", "30px").
		Set("height", "30px").
		Set("backgroundImage", "url(data:image/svg+xml;base64,Zm9v)")
	root := template.Div("w-full", "h-full").Add(icon)
	template.Normalize(root)

	svg, err := Compose(root, 300, 100)
	if err != nil {
		t.Fatalf("Compose() failed: %v", err)
	}
	if !strings.Contains(string(svg), `<image x=`) {
		t.Errorf("missing image element: %s", svg)
	}
	if !strings.Contains(string(svg), `href="data:image/svg+xml;base64,Zm9v"`) {
		t.Errorf("missing image href: %s", svg)
	}
}

func TestComposeDeterministic(t *testing.T) {
	build := func() *template.Node {
		root := template.Div("w-full", "h-full", "flex", "items-center", "justify-center").
			Set("backgroundColor", "#111111").
			Set("fontSize", "24px")
		root.Add(template.Span("hello"))
		template.Normalize(root)
		return root
	}

	a, _ := Compose(build(), 400, 200)
	b, _ := Compose(build(), 400, 200)
	if string(a) != string(b) {
		t.Error("identical trees composed to different SVG")
	}
}

func TestRenderError(t *testing.T) {
	svg := RenderError("Preset not found", 300, 100)
	out := string(svg)
	if !strings.Contains(out, "Preset not found") {
		t.Errorf("missing message: %s", out)
	}
	if !strings.Contains(out, `viewBox="0 0 300 100"`) {
		t.Errorf("missing dimensions: %s", out)
	}

	if !strings.Contains(string(RenderError("x", 0, 0)), `viewBox="0 0 300 100"`) {
		t.Error("zero dimensions should fall back to 300x100")
	}
}

func TestParseLinearGradient(t *testing.T) {
	from, to, ok := parseLinearGradient("linear-gradient(to right, #aabbcc, #112233)")
	if !ok || from != "#aabbcc" || to != "#112233" {
		t.Errorf("got (%q, %q, %v)", from, to, ok)
	}
	if _, _, ok := parseLinearGradient("url(data:foo)"); ok {
		t.Error("url() must not parse as gradient")
	}
}

func TestCSSColor(t *testing.T) {
	if got := cssColor("243,244,212"); got != "rgba(243,244,212)" {
		t.Errorf("cssColor = %q", got)
	}
	if got := cssColor("#ffffff"); got != "#ffffff" {
		t.Errorf("cssColor = %q", got)
	}
	if got := cssColor("rgba(0,0,0,0.5)"); got != "rgba(0,0,0,0.5)" {
		t.Errorf("cssColor = %q", got)
	}
}
