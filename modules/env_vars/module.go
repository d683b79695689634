package env_vars

import (
	"os"
	"sort"
	"strings"

	"github.com/vk/modreg/internal/handlers"
	"github.com/vk/modreg/internal/registry"
)

// FactoryName is the catalog name manifests use to bind this factory.
const FactoryName = "env_vars"

// Module implements the handlers.Module interface for this package.
type Module struct {
	// Environ overrides os.Environ, for tests.
	Environ func() []string
}

// Factory exports every environment variable as a string, in name order.
func (m *Module) Factory(mod *registry.Module) error {
	environ := os.Environ
	if m.Environ != nil {
		environ = m.Environ
	}

	vars := make(map[string]string)
	for _, e := range environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			vars[pair[0]] = pair[1]
		}
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	exports := mod.Exports.(*registry.Exports)
	for _, name := range names {
		exports.Set(name, vars[name])
	}
	return nil
}

// Register registers the factory with the catalog.
func (m *Module) Register(c *handlers.Catalog) {
	c.RegisterFactory(FactoryName, m.Factory)
}
