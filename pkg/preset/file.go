package preset

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zzaoclub/imgx/pkg/errors"
)

func errNotFound(code string) error {
	return errors.New(errors.ErrCodePresetNotFound, "preset %q not found", code)
}

// FileStore loads presets from a directory of JSON files. Files that don't
// end in .json or don't carry a code are skipped; a malformed JSON file is
// a load error rather than a silent skip.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore reading from dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// LoadAll implements [Store].
func (s *FileStore) LoadAll(ctx context.Context) ([]*Preset, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read preset directory %s", s.dir)
	}

	var presets []*Preset
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "read preset file %s", path)
		}
		var p Preset
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "parse preset file %s", path)
		}
		if p.Code == "" {
			continue
		}
		presets = append(presets, &p)
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].Code < presets[j].Code })
	return presets, nil
}

// GetByCode implements [Store].
func (s *FileStore) GetByCode(ctx context.Context, code string) (*Preset, error) {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, errNotFound(code)
}
