package preset

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/zzaoclub/imgx/pkg/errors"
)

func writePreset(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

const coverPreset = `{
	"code": "001",
	"name": "Article Cover",
	"description": "2.35:1",
	"template": "base",
	"width": 500,
	"height": 212,
	"contentProps": {"text": "Hello"},
	"styleProps": {"fontSizes": [30], "padding": "30px"},
	"contentKeys": ["text"]
}`

func TestFileStoreLoadAll(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "002.json", `{"code":"002","name":"Square","template":"base","width":500,"height":500,"contentProps":{},"styleProps":{},"contentKeys":["text"]}`)
	writePreset(t, dir, "001.json", coverPreset)
	writePreset(t, dir, "README.md", "not a preset")
	writePreset(t, dir, "nocode.json", `{"name":"missing code"}`)

	all, err := NewFileStore(dir).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("LoadAll() returned %d presets, want 2", len(all))
	}
	if all[0].Code != "001" || all[1].Code != "002" {
		t.Errorf("presets not sorted by code: %s, %s", all[0].Code, all[1].Code)
	}
	if all[0].Width != 500 || all[0].Height != 212 {
		t.Errorf("dimensions = %dx%d, want 500x212", all[0].Width, all[0].Height)
	}
}

func TestFileStoreGetByCode(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "001.json", coverPreset)
	store := NewFileStore(dir)

	p, err := store.GetByCode(context.Background(), "001")
	if err != nil {
		t.Fatalf("GetByCode() failed: %v", err)
	}
	if p.Name != "Article Cover" || p.Template != "base" {
		t.Errorf("unexpected preset: %+v", p)
	}

	_, err = store.GetByCode(context.Background(), "999")
	if !errors.Is(err, errors.ErrCodePresetNotFound) {
		t.Errorf("GetByCode(999) error = %v, want PRESET_NOT_FOUND", err)
	}
}

func TestFileStoreMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "bad.json", `{not json`)

	if _, err := NewFileStore(dir).LoadAll(context.Background()); !errors.Is(err, errors.ErrCodeStore) {
		t.Errorf("LoadAll() error = %v, want STORE_ERROR", err)
	}
}

type countingStore struct {
	*FileStore
	loads int
}

func (c *countingStore) LoadAll(ctx context.Context) ([]*Preset, error) {
	c.loads++
	return c.FileStore.LoadAll(ctx)
}

func TestCachedLoadsOnce(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "001.json", coverPreset)

	inner := &countingStore{FileStore: NewFileStore(dir)}
	cached := NewCached(inner)
	ctx := context.Background()

	for range 3 {
		if _, err := cached.GetByCode(ctx, "001"); err != nil {
			t.Fatalf("GetByCode() failed: %v", err)
		}
	}
	if _, err := cached.LoadAll(ctx); err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if inner.loads != 1 {
		t.Errorf("underlying store loaded %d times, want 1", inner.loads)
	}

	if _, err := cached.GetByCode(ctx, "999"); !errors.Is(err, errors.ErrCodePresetNotFound) {
		t.Errorf("GetByCode(999) error = %v, want PRESET_NOT_FOUND", err)
	}
}

type flakyStore struct {
	*FileStore
	failures int
	loads    int
}

func (f *flakyStore) LoadAll(ctx context.Context) ([]*Preset, error) {
	f.loads++
	if f.loads <= f.failures {
		return nil, errors.New(errors.ErrCodeStore, "store unavailable")
	}
	return f.FileStore.LoadAll(ctx)
}

func TestCachedRetriesAfterFailedLoad(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "001.json", coverPreset)

	inner := &flakyStore{FileStore: NewFileStore(dir), failures: 1}
	cached := NewCached(inner)
	ctx := context.Background()

	if _, err := cached.GetByCode(ctx, "001"); !errors.Is(err, errors.ErrCodeStore) {
		t.Fatalf("first load error = %v, want STORE_ERROR", err)
	}
	p, err := cached.GetByCode(ctx, "001")
	if err != nil {
		t.Fatalf("second load must retry, got: %v", err)
	}
	if p.Code != "001" {
		t.Errorf("preset code = %q, want 001", p.Code)
	}
	if _, err := cached.LoadAll(ctx); err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if inner.loads != 2 {
		t.Errorf("underlying store loaded %d times, want 2", inner.loads)
	}
}

func TestContentKeysUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"array", `["title","subtitle"]`, []string{"title", "subtitle"}},
		{"comma string", `"title,subtitle"`, []string{"title", "subtitle"}},
		{"spaced string", `"title, subtitle , author"`, []string{"title", "subtitle", "author"}},
		{"single", `"text"`, []string{"text"}},
		{"empty string", `""`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var keys ContentKeys
			if err := json.Unmarshal([]byte(tt.in), &keys); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.in, err)
			}
			if len(keys) != len(tt.want) {
				t.Fatalf("got %v, want %v", keys, tt.want)
			}
			for i := range keys {
				if keys[i] != tt.want[i] {
					t.Errorf("got %v, want %v", keys, tt.want)
				}
			}
		})
	}
}

func TestIsSingleText(t *testing.T) {
	if !(ContentKeys{"text"}).IsSingleText() {
		t.Error("[text] should be single-text")
	}
	if (ContentKeys{"title", "subtitle"}).IsSingleText() {
		t.Error("[title subtitle] should not be single-text")
	}
	if (ContentKeys{"title"}).IsSingleText() {
		t.Error("[title] should not be single-text")
	}
}

func TestSchemaType(t *testing.T) {
	p := &Preset{PropsSchema: []PropSpec{
		{Key: "borderWidth", Type: "size"},
		{Key: "titleColor", Type: "color"},
	}}
	if got := p.SchemaType("borderWidth"); got != "size" {
		t.Errorf("SchemaType(borderWidth) = %q, want size", got)
	}
	if got := p.SchemaType("unknown"); got != "" {
		t.Errorf("SchemaType(unknown) = %q, want empty", got)
	}
}
