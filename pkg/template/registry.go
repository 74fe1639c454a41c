package template

import (
	"strings"
	"sync"

	"github.com/zzaoclub/imgx/pkg/content"
	"github.com/zzaoclub/imgx/pkg/style"
)

// Props is the input a template renders from. Content and Style are always
// set; Matrix only for pixel-grid templates.
type Props struct {
	Width  int
	Height int

	Content content.ParsedContent
	Style   *style.Resolved

	// Matrix holds pixel-grid cells: "" for transparent, a color value,
	// an icon reference ("twemoji:star-struck"), or resolved glyph data.
	Matrix [][]string
}

// Func builds the layout tree for one render.
type Func func(p *Props) *Node

// Registry maps template IDs to template functions. Lookup is
// case-insensitive so preset files can use either "Base" or "base".
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Func
}

// NewRegistry creates a Registry with the built-in templates registered.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Func)}
	r.Register(BaseID, Base)
	r.Register(ArticleID, Article)
	r.Register(PixelMatrixID, PixelMatrix)
	return r
}

// Register adds or replaces a template under id.
func (r *Registry) Register(id string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[strings.ToLower(id)] = fn
}

// Get returns the template registered under id.
func (r *Registry) Get(id string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.templates[strings.ToLower(id)]
	return fn, ok
}

// IDs returns the registered template IDs.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	return ids
}
