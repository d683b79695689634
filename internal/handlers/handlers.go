// Package handlers is the catalog of named Go factories that compiled-in
// modules contribute. Manifests bind a unit to one of these names.
package handlers

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/modreg/internal/registry"
)

// Module is implemented by every Go package that ships factories.
type Module interface {
	Register(c *Catalog)
}

// Catalog holds the registered factories by name.
type Catalog struct {
	all map[string]registry.Factory
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		all: make(map[string]registry.Factory),
	}
}

// RegisterFactory adds a named factory. Registering the same name twice is a
// programming error and panics.
func (c *Catalog) RegisterFactory(name string, f registry.Factory) {
	if _, exists := c.all[name]; exists {
		panic(fmt.Sprintf("factory with name '%s' already registered", name))
	}
	if f == nil {
		panic(fmt.Sprintf("factory '%s' is nil", name))
	}
	slog.Debug("Registering factory.", "name", name)
	c.all[name] = f
}

// Factory returns the named factory.
func (c *Catalog) Factory(name string) (registry.Factory, bool) {
	f, ok := c.all[name]
	return f, ok
}

// Names returns every registered name in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.all))
	for name := range c.all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
