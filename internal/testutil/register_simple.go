package testutil

import (
	"github.com/vk/modreg/internal/handlers"
	"github.com/vk/modreg/internal/registry"
)

// SimpleModule is a test helper for creating a mock Go module that
// contributes a fixed set of named factories.
type SimpleModule struct {
	Factories map[string]registry.Factory
}

// Register implements the handlers.Module interface.
func (m *SimpleModule) Register(c *handlers.Catalog) {
	for name, f := range m.Factories {
		c.RegisterFactory(name, f)
	}
}
