package print

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/modreg/internal/handlers"
	"github.com/vk/modreg/internal/registry"
)

// FactoryName is the catalog name manifests use to bind this factory.
const FactoryName = "print"

// Module implements the handlers.Module interface for this package.
type Module struct {
	Out io.Writer
}

// Factory exports "print", which writes its arguments separated by spaces
// and followed by a newline.
func (m *Module) Factory(mod *registry.Module) error {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}

	fn := func(args ...any) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, fmt.Sprint(a))
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
	}
	mod.Exports.(*registry.Exports).Set("print", fn)
	return nil
}

// Register registers the factory with the catalog.
func (m *Module) Register(c *handlers.Catalog) {
	c.RegisterFactory(FactoryName, m.Factory)
}
