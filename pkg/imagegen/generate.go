// Package imagegen orchestrates image generation: it merges request
// parameters over preset defaults, parses content, resolves style, renders
// the preset's template, and converts the result to the requested format.
package imagegen

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zzaoclub/imgx/pkg/cache"
	"github.com/zzaoclub/imgx/pkg/colorx"
	"github.com/zzaoclub/imgx/pkg/content"
	"github.com/zzaoclub/imgx/pkg/errors"
	"github.com/zzaoclub/imgx/pkg/fonts"
	"github.com/zzaoclub/imgx/pkg/httputil"
	"github.com/zzaoclub/imgx/pkg/icons"
	"github.com/zzaoclub/imgx/pkg/observability"
	"github.com/zzaoclub/imgx/pkg/preset"
	"github.com/zzaoclub/imgx/pkg/render"
	"github.com/zzaoclub/imgx/pkg/style"
	"github.com/zzaoclub/imgx/pkg/template"
)

// renderCacheTTL bounds how long rendered bytes stay in the render cache.
const renderCacheTTL = time.Hour

// Request describes one image to generate.
type Request struct {
	// PresetCode selects the preset.
	PresetCode string

	// Segments are the decoded text path segments, mapped onto the
	// preset's content keys in order.
	Segments []string

	// ContentProps are explicit content overrides (POST body); they win
	// over Segments for the same key.
	ContentProps map[string]string

	// StyleProps are raw caller style properties before normalization.
	StyleProps map[string]any

	// Format is "svg" or "png"; empty means png.
	Format string

	// Scale is the raw scale parameter; empty means 1. Only applies to
	// png output.
	Scale string
}

// Result is a generated image plus the metadata the HTTP layer needs.
type Result struct {
	Data        []byte
	ContentType string
	Validator   httputil.CacheValidator

	// Placeholder is set when Data is the error image for an unknown
	// preset rather than a real render.
	Placeholder bool
}

// Config wires a Generator's collaborators.
type Config struct {
	Presets    preset.Store
	Icons      icons.Resolver
	Templates  *template.Adapter
	Rasterizer render.Rasterizer
	Cache      cache.Cache
	FontLoader *fonts.Loader
	Rand       *colorx.Generator
	Logger     *log.Logger
}

// Generator renders preset-driven images. Safe for concurrent use.
type Generator struct {
	presets    preset.Store
	icons      icons.Resolver
	templates  *template.Adapter
	rasterizer render.Rasterizer
	cache      cache.Cache
	fontLoader *fonts.Loader
	rand       *colorx.Generator
	logger     *log.Logger
}

// New creates a Generator. Presets and Templates are required; a nil Cache
// disables render caching and a nil Rasterizer limits output to SVG.
func New(cfg Config) *Generator {
	g := &Generator{
		presets:    cfg.Presets,
		icons:      cfg.Icons,
		templates:  cfg.Templates,
		rasterizer: cfg.Rasterizer,
		cache:      cfg.Cache,
		fontLoader: cfg.FontLoader,
		rand:       cfg.Rand,
		logger:     cfg.Logger,
	}
	if g.cache == nil {
		g.cache = cache.NewNullCache()
	}
	if g.rand == nil {
		g.rand = colorx.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	return g
}

// canonical is the full resolved parameter set of one render. It keys the
// render cache and derives the response validator, so any two requests that
// canonicalize identically share bytes and ETag.
type canonical struct {
	Preset  string            `json:"preset"`
	Content map[string]string `json:"content"`
	Text    string            `json:"text,omitempty"`
	Style   map[string]any    `json:"style"`
	Format  string            `json:"format"`
	Scale   float64           `json:"scale"`
}

// Generate renders one image.
//
// Validation failures (scale, format, text length) return INVALID_* errors
// before any rendering work. An unknown preset is not an error: it yields a
// placeholder error image with Placeholder set, so embedded <img> tags show
// a diagnostic instead of a broken image.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	format, err := errors.ValidateFormat(req.Format)
	if err != nil {
		return nil, err
	}
	scale, err := errors.ValidateScale(req.Scale)
	if err != nil {
		return nil, err
	}
	for _, seg := range req.Segments {
		if err := errors.ValidateText(seg); err != nil {
			return nil, err
		}
	}

	// Malformed codes can't match any preset; skip the store round trip.
	if err := errors.ValidatePresetCode(req.PresetCode); err != nil {
		return g.placeholder(req.PresetCode)
	}

	p, err := g.presets.GetByCode(ctx, req.PresetCode)
	if errors.Is(err, errors.ErrCodePresetNotFound) {
		return g.placeholder(req.PresetCode)
	}
	if err != nil {
		return nil, err
	}

	customStyle := NormalizeProps(req.StyleProps, p)
	presetStyle := NormalizeProps(p.StyleProps, p)
	mergedStyle := mergeProps(presetStyle, customStyle)

	contentProps, rawText := g.contentFor(p, req)

	canon := canonical{
		Preset:  p.Code,
		Content: contentProps,
		Text:    rawText,
		Style:   mergedStyle,
		Format:  format,
		Scale:   scale,
	}
	validator, err := httputil.Validator(canon)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "derive validator")
	}
	key := cache.Key("render", canon)

	if data, hit, cacheErr := g.cache.Get(ctx, key); cacheErr == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		return &Result{Data: data, ContentType: contentType(format), Validator: validator}, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	observability.Render().OnRenderStart(ctx, p.Code, format)
	data, err := g.render(ctx, p, contentProps, rawText, mergedStyle, format, scale)
	observability.Render().OnRenderComplete(ctx, p.Code, format, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if err := g.cache.Set(ctx, key, data, renderCacheTTL); err != nil {
		g.logger.Warn("render cache write failed", "error", err)
	}
	observability.Cache().OnCacheSet(ctx, "render", len(data))
	return &Result{Data: data, ContentType: contentType(format), Validator: validator}, nil
}

func (g *Generator) render(ctx context.Context, p *preset.Preset, contentProps map[string]string, rawText string, mergedStyle map[string]any, format string, scale float64) ([]byte, error) {
	params := paramsFromProps(mergedStyle)
	resolved := style.Resolve(params, g.rand)
	for key, value := range contentProps {
		if resolved.Extra == nil {
			resolved.Extra = make(map[string]string)
		}
		resolved.Extra[key] = value
	}

	iconSize := resolved.IconSize
	if iconSize <= 0 {
		iconSize = resolved.FontSize
	}
	parsed := content.Parse(rawText, content.DefaultSplitter, g.resolveFunc(ctx), iconSize)
	lineCount := len(parsed)
	if lineCount == 0 {
		lineCount = 1
	}
	resolved.Finalize(lineCount)

	props := &template.Props{
		Width:   p.Width,
		Height:  p.Height,
		Content: parsed,
		Style:   &resolved,
	}
	if m, ok := p.ContentProps["characterMatrix"]; ok {
		props.Matrix = toMatrix(m)
	}
	if len(props.Matrix) == 0 && rawText != "" && strings.EqualFold(p.Template, template.PixelMatrixID) {
		props.Matrix = textMatrix(rawText, &resolved)
	}

	node, err := g.templates.Render(ctx, p.Template, props)
	if err != nil {
		return nil, err
	}

	var opts []render.Option
	if g.fontLoader != nil {
		opts = append(opts, render.WithFontLoader(g.fontLoader))
	}
	svg, err := render.Compose(node, p.Width, p.Height, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "compose template %q", p.Template)
	}

	if format == "svg" {
		return svg, nil
	}
	if g.rasterizer == nil {
		return nil, errors.New(errors.ErrCodeRasterize, "png output not available without a rasterizer")
	}
	return g.rasterizer.ToPNG(ctx, svg, scale)
}

// contentFor maps request segments onto the preset's content keys and
// merges explicit content overrides. For single-text presets all segments
// collapse into one raw text string with line splitters.
func (g *Generator) contentFor(p *preset.Preset, req Request) (props map[string]string, rawText string) {
	props = make(map[string]string)
	for key, value := range p.ContentProps {
		if key == "characterMatrix" {
			continue
		}
		if s, ok := value.(string); ok {
			props[key] = s
		} else {
			props[key] = fmt.Sprint(value)
		}
	}

	if p.ContentKeys.IsSingleText() {
		switch {
		case len(req.Segments) > 1:
			rawText = strings.Join(req.Segments, content.DefaultSplitter)
		case len(req.Segments) == 1 && req.Segments[0] != "":
			rawText = req.Segments[0]
		case req.ContentProps["text"] != "":
			rawText = req.ContentProps["text"]
		default:
			rawText = props["text"]
		}
		delete(props, "text")
	} else {
		for i, value := range req.Segments {
			if i < len(p.ContentKeys) && value != "" {
				props[p.ContentKeys[i]] = value
			}
		}
	}

	for key, value := range req.ContentProps {
		if key == "text" && p.ContentKeys.IsSingleText() {
			continue
		}
		if value != "" {
			props[key] = value
		}
	}
	return props, rawText
}

// textMatrix builds a pixel matrix from raw text for pixel-matrix presets
// that carry no explicit characterMatrix. Digit strings (versions, dates)
// use the digit glyphs; everything else the letter glyphs.
func textMatrix(text string, resolved *style.Resolved) [][]string {
	fill := resolved.Extra["pixelColor"]
	if fill == "" && len(resolved.Attrs.Colors) > 0 {
		fill = resolved.Attrs.Colors[0]
	}
	if strings.Trim(text, "0123456789.") == "" {
		return template.DigitsMatrix(text, fill)
	}
	return template.LettersMatrix(text, fill)
}

// resolveFunc adapts the icon client to the content parser's callback.
func (g *Generator) resolveFunc(ctx context.Context) content.ResolveFunc {
	if g.icons == nil {
		return nil
	}
	return func(ref string, sizePx int) (string, bool) {
		if !errors.IsIconRef(ref) {
			return "", false
		}
		data, err := g.icons.Resolve(ctx, ref, sizePx)
		if err != nil {
			g.logger.Debug("content icon degraded to text", "ref", ref, "error", err)
			return "", false
		}
		return data, true
	}
}

// placeholder builds the unknown-preset error image. It is served with a
// 200 status so embedded <img> tags display the diagnostic.
func (g *Generator) placeholder(code string) (*Result, error) {
	validator, err := httputil.Validator(canonical{Preset: code, Format: "error"})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "derive validator")
	}
	return &Result{
		Data:        render.RenderError("Preset not found", 300, 100),
		ContentType: "image/svg+xml",
		Validator:   validator,
		Placeholder: true,
	}, nil
}

func contentType(format string) string {
	if format == "svg" {
		return "image/svg+xml"
	}
	return "image/png"
}
