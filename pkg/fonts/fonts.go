// Package fonts locates and loads the display fonts referenced by templates.
//
// Font files are not embedded in the binary; they are looked up on disk at
// startup, first in the configured fonts directory and then through the
// system font paths. Loaded font data is cached and base64-encoded once so
// SVG documents can inline it as a @font-face data URL.
package fonts

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"

	"github.com/zzaoclub/imgx/pkg/errors"
)

// DefaultFamily is the display font templates use when a preset doesn't
// name one.
const DefaultFamily = "YouSheBiaoTiHei"

// FallbackFamily is the CSS font stack used when the display font can't be
// loaded; rendering continues with system fonts.
const FallbackFamily = `'YouSheBiaoTiHei', 'PingFang SC', 'Microsoft YaHei', sans-serif`

// Loader resolves font family names to font file data.
// Results are cached per family for the lifetime of the Loader.
type Loader struct {
	dir string

	mu     sync.Mutex
	loaded map[string]*Font
}

// Font is a loaded font file.
type Font struct {
	Family string
	Path   string
	data   []byte

	b64     string
	b64Once sync.Once
}

// Data returns the raw font bytes.
func (f *Font) Data() []byte { return f.data }

// Base64 returns the font data base64-encoded for inlining into a
// @font-face src data URL. Encoded once and cached.
func (f *Font) Base64() string {
	f.b64Once.Do(func() {
		f.b64 = base64.StdEncoding.EncodeToString(f.data)
	})
	return f.b64
}

// NewLoader creates a Loader that searches dir before the system font
// paths. An empty dir searches system paths only.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir, loaded: make(map[string]*Font)}
}

// Load finds and reads the font file for family. It tries the loader's
// directory first (family name with common extensions), then falls back to
// a system-wide search. Returns a FONT_NOT_FOUND error when no file
// matches; callers should degrade to [FallbackFamily].
func (l *Loader) Load(family string) (*Font, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.loaded[family]; ok {
		return f, nil
	}

	path, err := l.find(family)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "read font file %s", path)
	}

	f := &Font{Family: family, Path: path, data: data}
	l.loaded[family] = f
	return f, nil
}

func (l *Loader) find(family string) (string, error) {
	if l.dir != "" {
		for _, ext := range []string{".ttf", ".otf", ".woff2", ".woff"} {
			path := filepath.Join(l.dir, family+ext)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	// findfont matches on filename substrings, case-insensitively.
	path, err := findfont.Find(family + ".ttf")
	if err == nil && matchesFamily(path, family) {
		return path, nil
	}
	return "", errors.New(errors.ErrCodeFontNotFound, "font %q not found", family)
}

// matchesFamily guards against findfont's loose substring matching handing
// back an unrelated system font.
func matchesFamily(path, family string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.Contains(base, strings.ToLower(family))
}
