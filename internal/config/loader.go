package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/vk/modreg/internal/ctxlog"
	"github.com/vk/modreg/internal/fsutil"
)

// Loader reads manifest files into a Model.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// MultiLoader dispatches manifest files to a Loader by file extension.
// Directories are walked recursively.
type MultiLoader struct {
	byExt map[string]Loader
}

// NewMultiLoader creates a MultiLoader. Keys are extensions including the
// dot, e.g. ".hcl".
func NewMultiLoader(byExt map[string]Loader) *MultiLoader {
	return &MultiLoader{byExt: byExt}
}

// Load implements Loader.
func (l *MultiLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	exts := make([]string, 0, len(l.byExt))
	for ext := range l.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	files, err := fsutil.FindFiles(paths, exts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	model := &Model{}
	for _, file := range files {
		loader, ok := l.byExt[filepath.Ext(file)]
		if !ok {
			return nil, fmt.Errorf("no loader for manifest %s", file)
		}
		m, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	logger.Debug("Manifests loaded.", "files", len(files), "units", len(model.Units), "entries", len(model.Entries))
	return model, nil
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, paths ...string) (*Model, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, paths ...string) (*Model, error) {
	return f(ctx, paths...)
}
