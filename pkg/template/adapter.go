package template

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/zzaoclub/imgx/pkg/errors"
	"github.com/zzaoclub/imgx/pkg/icons"
)

// DefaultPropIconSize is the glyph size for icon references passed as
// template props (as opposed to inline content icons, which follow the
// per-line icon size).
const DefaultPropIconSize = 50

// placeholderGlyph is a gray cross PNG shown when an icon prop fails to
// resolve, so the layout keeps its dimensions instead of collapsing.
const placeholderGlyph = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAEAAAABACAYAAACqaXHeAAAAAXNSR0IArs4c6QAAAmdJREFUeF7tmQtuwyAMhsPJtp5s28nWnYzVU4gcYoNNWHGKI01aVajNx+8HJCyTP2Hy9S8OwBUwOQEPgckF4EnQQ8BDYHICHgKTC8CrgIeAh8DkBDwESgKIMb6HEO4SkWjGpt+DOfC/1AaeJ5kj8YlVQIzxe1mWPwcfPn6FED4pEOsiPiRjYX6MEX7nDY3HP8vaQXPBVnpuHAip/ySA1UlsCAySxqix4UErh0WA4oRVgh2zSfcQwo2wBZBF/msAcMZyp0hY8UFKEkppTA5xBQiq3D0MbAoA6T8HAMs/GWwGwCiqxmNnTwlA7P+/A2hc/CHGXxHAFusFSJsKrgyAkuMh0WVZ+xB2VwZAJT8KAJRcNsm9GoBDSa0tsPY9zqg1NeGxz0iC0jJpXgEAjmqLU7eIwW47zNT/bgpQ+KTqA8jdqBVuqkXtBWBthVXNlKRr5ELAKgCqokj3Ra4A5uAhNbRrhTsr4MzG6ACchNA9ByT6JzpLPYDMKHyEY2z+PCUJEic+sAt/Up/aAZS0X5N47XsEuVgGNfF3ug9QGivWeQdA3wNQfQB1hofrMvW9pTUFiM7mTHIj47am0CsAgDVIjsPFO0IOhDUAZ2r39QGs/URLB9e0+IK9MWUQlTlVH9+S/JAt0SUMjFdnWKIhORjjnBd2cXDihN0XvZCh8gBzd0AqqgeAPMa1LzfSGmDBP9wLmFrmJzYGl1W2mpwGgDs57a61vhrTwKi9HusGQOOUpbEOwNJujPDFFTCCuiWbrgBLuzHCF1fACOqWbLoCLO3GCF9cASOoW7LpCrC0GyN8cQWMoG7J5vQK+AVP7kZf9uNYzQAAAABJRU5ErkJggg=="

// Adapter resolves a preset's template and renders it with icon props
// inlined and the resulting tree normalized for the compositor.
type Adapter struct {
	registry *Registry
	icons    icons.Resolver
	logger   *log.Logger
}

// NewAdapter creates an Adapter. resolver may be nil, in which case icon
// props fall back to the placeholder glyph and matrix icon cells to
// transparent.
func NewAdapter(registry *Registry, resolver icons.Resolver, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{registry: registry, icons: resolver, logger: logger}
}

// Render looks up templateID, inlines icon props, invokes the template and
// normalizes the tree. Returns a TEMPLATE_NOT_FOUND error for unknown IDs.
func (a *Adapter) Render(ctx context.Context, templateID string, props *Props) (*Node, error) {
	fn, ok := a.registry.Get(templateID)
	if !ok {
		return nil, errors.New(errors.ErrCodeTemplateNotFound, "template %q not found", templateID)
	}

	a.inlineExtraIcons(ctx, props)
	a.inlineMatrixIcons(ctx, props)

	node := fn(props)
	Normalize(node)
	return node, nil
}

// inlineExtraIcons replaces style extras of the form "[set:name]" or
// "[set:name:64]" with resolved glyph data. Failed lookups get the
// placeholder glyph so the template still renders something of the right
// shape.
func (a *Adapter) inlineExtraIcons(ctx context.Context, props *Props) {
	for key, value := range props.Style.Extra {
		ref, size, ok := parseIconProp(value)
		if !ok {
			continue
		}
		data, err := a.resolve(ctx, ref, size)
		if err != nil {
			a.logger.Debug("icon prop failed, using placeholder", "key", key, "ref", ref, "error", err)
			data = placeholderGlyph
		}
		props.Style.Extra[key] = data
	}
}

// inlineMatrixIcons replaces icon-reference matrix cells with glyph data at
// the pixel cell size. Repeated cells resolve once; failures degrade to
// transparent cells.
func (a *Adapter) inlineMatrixIcons(ctx context.Context, props *Props) {
	if len(props.Matrix) == 0 {
		return
	}
	size := extraInt(props.Style.Extra, "pixelSize", defaultPixelSize)

	seen := make(map[string]string)
	for _, row := range props.Matrix {
		for i, cell := range row {
			if !errors.IsIconRef(cell) {
				continue
			}
			data, done := seen[cell]
			if !done {
				var err error
				data, err = a.resolve(ctx, cell, size)
				if err != nil {
					a.logger.Debug("matrix icon failed, cell left transparent", "ref", cell, "error", err)
					data = ""
				}
				seen[cell] = data
			}
			row[i] = data
		}
	}
}

func (a *Adapter) resolve(ctx context.Context, ref string, size int) (string, error) {
	if a.icons == nil {
		return "", errors.New(errors.ErrCodeIconNotFound, "no icon resolver configured")
	}
	return a.icons.Resolve(ctx, ref, size)
}

// parseIconProp recognizes "[set:name]" and "[set:name:size]" prop values.
func parseIconProp(v string) (ref string, size int, ok bool) {
	if !strings.HasPrefix(v, "[") || !strings.HasSuffix(v, "]") {
		return "", 0, false
	}
	inner := v[1 : len(v)-1]
	parts := strings.Split(inner, ":")
	if len(parts) < 2 {
		return "", 0, false
	}
	size = DefaultPropIconSize
	if len(parts) >= 3 {
		if n, err := strconv.Atoi(parts[2]); err == nil && n > 0 {
			size = n
		}
	}
	return parts[0] + ":" + parts[1], size, true
}
