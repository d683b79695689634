// Package yamlconf is the YAML implementation of config.Loader. The document
// shape mirrors the HCL manifest: top-level `entries` and a `packages` list
// whose items carry a `name` and a list of `units`.
package yamlconf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/modreg/internal/config"
	"github.com/vk/modreg/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type file struct {
	Entries  []string   `yaml:"entries"`
	Packages []*pkgNode `yaml:"packages"`
}

type pkgNode struct {
	Name  string      `yaml:"name"`
	Units []*unitNode `yaml:"units"`
}

type unitNode struct {
	Module   string `yaml:"module"`
	Path     string `yaml:"path"`
	Factory  string `yaml:"factory"`
	Source   string `yaml:"source"`
	Function string `yaml:"function"`
	// Kept as a node so a null value can be treated like an absent key.
	Exports yaml.Node `yaml:"exports"`
}

// Loader reads YAML manifests.
type Loader struct{}

// NewLoader creates a new YAML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader. A file may hold several documents.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := &config.Model{}
	for _, path := range paths {
		m, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}

	logger.Debug("YAML loading complete.", "units", len(model.Units), "entries", len(model.Entries))
	return model, nil
}

func (l *Loader) loadFile(path string) (*config.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML file %s: %w", path, err)
	}
	defer f.Close()

	model := &config.Model{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	for {
		var doc file
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
		}

		model.Entries = append(model.Entries, doc.Entries...)
		for _, pkg := range doc.Packages {
			for _, unit := range pkg.Units {
				u, err := translateUnit(path, pkg.Name, unit)
				if err != nil {
					return nil, err
				}
				model.Units = append(model.Units, u)
			}
		}
	}
	return model, nil
}

func translateUnit(path, pkg string, unit *unitNode) (*config.Unit, error) {
	u := &config.Unit{
		Package:  pkg,
		Module:   unit.Module,
		Path:     unit.Path,
		Factory:  unit.Factory,
		Source:   unit.Source,
		Function: unit.Function,
		File:     path,
	}
	if isNull(&unit.Exports) {
		return u, nil
	}

	var exports any
	if err := unit.Exports.Decode(&exports); err != nil {
		return nil, fmt.Errorf("unit %s: exports: %w", u, err)
	}
	u.Exports = stringKeys(exports)
	u.HasExports = true
	return u, nil
}

// isNull matches both a missing key and an explicit `exports: null`, so YAML
// reads the same way as an HCL null attribute.
func isNull(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// stringKeys rewrites maps decoded with non-string keys (`{1: one}`) into
// map[string]any so exports stay JSON-renderable.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}
