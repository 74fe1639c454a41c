// Package preset defines the image presets that drive rendering: the
// template to use, the output dimensions, and the default content and style
// properties that request parameters are merged over.
//
// Presets are loaded from a directory of JSON files ([FileStore]) or from a
// MongoDB collection ([MongoStore]). Both implement [Store].
package preset

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// Preset describes a renderable image configuration.
type Preset struct {
	Code         string         `json:"code" bson:"code"`
	Name         string         `json:"name" bson:"name"`
	Description  string         `json:"description,omitempty" bson:"description,omitempty"`
	Template     string         `json:"template" bson:"template"`
	Width        int            `json:"width" bson:"width"`
	Height       int            `json:"height" bson:"height"`
	ContentProps map[string]any `json:"contentProps" bson:"contentProps"`
	StyleProps   map[string]any `json:"styleProps" bson:"styleProps"`
	ContentKeys  ContentKeys    `json:"contentKeys" bson:"contentKeys"`
	PropsSchema  []PropSpec     `json:"propsSchema,omitempty" bson:"propsSchema,omitempty"`
}

// PropSpec documents one customizable property of a preset. The schema is
// surfaced through the preset listing API and refines value normalization
// for properties whose type can't be inferred from the name.
type PropSpec struct {
	Key     string `json:"key" bson:"key"`
	Type    string `json:"type" bson:"type"` // "text", "color", "size", "list"
	Label   string `json:"label,omitempty" bson:"label,omitempty"`
	Default any    `json:"default,omitempty" bson:"default,omitempty"`
}

// ContentKeys lists the content slots of a preset's template in the order
// path segments map onto them. Stored either as a JSON array or as a
// comma-separated string; both forms decode to the same value.
type ContentKeys []string

// UnmarshalJSON accepts both ["title","subtitle"] and "title,subtitle".
func (k *ContentKeys) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*k = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k = nil
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*k = append(*k, part)
		}
	}
	return nil
}

// IsSingleText reports whether the preset has exactly one content slot named
// "text", in which case all path segments feed that one slot as lines.
func (k ContentKeys) IsSingleText() bool {
	return len(k) == 1 && k[0] == "text"
}

// SchemaType returns the declared type for key from the schema, or "" when
// the schema doesn't mention it.
func (p *Preset) SchemaType(key string) string {
	for _, spec := range p.PropsSchema {
		if spec.Key == key {
			return spec.Type
		}
	}
	return ""
}

// Store provides access to presets.
type Store interface {
	// GetByCode returns the preset with the given code, or a
	// PRESET_NOT_FOUND error.
	GetByCode(ctx context.Context, code string) (*Preset, error)

	// LoadAll returns all presets, ordered by code.
	LoadAll(ctx context.Context) ([]*Preset, error)
}

// Cached wraps a Store with an in-memory cache that loads the full preset
// set once and serves all reads from memory. Presets change rarely; a
// restart picks up edits. A failed load is not latched: the next read
// retries, so a transient store outage at startup doesn't poison the
// process.
type Cached struct {
	store Store

	mu     sync.Mutex
	loaded bool
	byCode map[string]*Preset
	all    []*Preset
}

// NewCached wraps store with load-once in-memory caching.
func NewCached(store Store) *Cached {
	return &Cached{store: store}
}

func (c *Cached) load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}
	all, err := c.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	c.all = all
	c.byCode = make(map[string]*Preset, len(all))
	for _, p := range all {
		c.byCode[p.Code] = p
	}
	c.loaded = true
	return nil
}

// GetByCode implements [Store].
func (c *Cached) GetByCode(ctx context.Context, code string) (*Preset, error) {
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	if p, ok := c.byCode[code]; ok {
		return p, nil
	}
	return nil, errNotFound(code)
}

// LoadAll implements [Store].
func (c *Cached) LoadAll(ctx context.Context) ([]*Preset, error) {
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c.all, nil
}
