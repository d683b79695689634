package app

import (
	"io"

	"github.com/vk/modreg/internal/config"
	"github.com/vk/modreg/internal/handlers"
	"github.com/vk/modreg/internal/hcl"
	"github.com/vk/modreg/internal/yamlconf"
	"github.com/vk/modreg/modules/env_vars"
	"github.com/vk/modreg/modules/http_client"
	"github.com/vk/modreg/modules/print"
)

// coreModules is the list of Go modules compiled into the binary. print
// writes to the application's output.
func coreModules(outW io.Writer) []handlers.Module {
	return []handlers.Module{
		&env_vars.Module{},
		&print.Module{Out: outW},
		&http_client.Module{},
	}
}

// DefaultLoader reads HCL and YAML manifests.
func DefaultLoader() *config.MultiLoader {
	yamlLoader := yamlconf.NewLoader()
	return config.NewMultiLoader(map[string]config.Loader{
		".hcl":  hcl.NewLoader(),
		".yaml": yamlLoader,
		".yml":  yamlLoader,
	})
}
