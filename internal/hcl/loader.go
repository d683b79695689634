package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/modreg/internal/config"
	"github.com/vk/modreg/internal/ctxlog"
	"github.com/vk/modreg/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	evalCtx *hcl.EvalContext
}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{evalCtx: &hcl.EvalContext{Functions: functions()}}
}

// Load parses every given file. Paths must name .hcl files; directory
// walking is config.MultiLoader's job.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range paths {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		model.Entries = append(model.Entries, root.Entries...)
		for _, pkg := range root.Packages {
			for _, unit := range pkg.Units {
				u, err := l.translateUnit(file, pkg.Name, unit)
				if err != nil {
					return nil, err
				}
				model.Units = append(model.Units, u)
			}
		}
	}

	logger.Debug("HCL loading complete.", "units", len(model.Units), "entries", len(model.Entries))
	return model, nil
}

func (l *Loader) translateUnit(file, pkg string, unit *schema.Unit) (*config.Unit, error) {
	u := &config.Unit{
		Package:  pkg,
		Module:   unit.Module,
		Path:     unit.Path,
		Factory:  unit.Factory,
		Source:   unit.Source,
		Function: unit.Function,
		File:     file,
	}

	if unit.Exports == nil {
		return u, nil
	}
	val, diags := unit.Exports.Value(l.evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("unit %s: failed to evaluate exports: %w", u, diags)
	}
	if val.IsNull() {
		return u, nil
	}

	exports, err := ToGo(val)
	if err != nil {
		return nil, fmt.Errorf("unit %s: exports: %w", u, err)
	}
	u.Exports = exports
	u.HasExports = true
	return u, nil
}
