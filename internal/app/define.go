package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/modreg/internal/config"
	"github.com/vk/modreg/internal/ctxlog"
	"github.com/vk/modreg/internal/registry"
)

// defineUnits defines every manifest unit in order and registers its factory.
// Units without a body only add keys, so they must alias an earlier unit.
func (a *App) defineUnits(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, u := range a.model.Units {
		kind, err := u.Kind()
		if err != nil {
			return err
		}

		rec, err := a.env.Define(u.Package, u.Module, u.Path)
		if err != nil {
			return fmt.Errorf("unit %s: %w", u, err)
		}
		if kind == config.BodyNone {
			logger.Debug("Unit declares keys only.", "id", rec.ID())
			continue
		}

		factory, err := a.factoryFor(u, kind, rec.ID())
		if err != nil {
			return fmt.Errorf("unit %s: %w", u, err)
		}
		if err := rec.Register(factory); err != nil {
			return fmt.Errorf("unit %s: %w", u, err)
		}
		logger.Debug("Unit defined.", "id", rec.ID(), "body", kind.String())
	}
	return nil
}

func (a *App) factoryFor(u *config.Unit, kind config.BodyKind, name string) (registry.Factory, error) {
	switch kind {
	case config.BodyFactory:
		f, ok := a.catalog.Factory(u.Factory)
		if !ok {
			return nil, fmt.Errorf("unknown factory %q, available: %v", u.Factory, a.catalog.Names())
		}
		return f, nil
	case config.BodySource:
		return a.host.Body(name, u.Source)
	case config.BodyFunction:
		return a.host.Function(name, u.Function)
	case config.BodyExports:
		return literalFactory(u.Exports), nil
	}
	return nil, fmt.Errorf("unsupported body kind %s", kind)
}

// literalFactory exports a manifest value. Maps fill the default exports
// object in key order; anything else replaces it.
func literalFactory(value any) registry.Factory {
	return func(m *registry.Module) error {
		obj, ok := value.(map[string]any)
		if !ok {
			m.Exports = value
			return nil
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		exports := m.Exports.(*registry.Exports)
		for _, k := range keys {
			exports.Set(k, obj[k])
		}
		return nil
	}
}
