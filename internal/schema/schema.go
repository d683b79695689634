// Package schema holds the gohcl decoding targets for HCL manifests.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// File is the top-level structure of a manifest file.
type File struct {
	Entries  []string   `hcl:"entries,optional"`
	Packages []*Package `hcl:"package,block"`
}

// Package groups the units defined under one package name.
type Package struct {
	Name  string  `hcl:"name,label"`
	Units []*Unit `hcl:"unit,block"`
}

// Unit represents a `unit` block: one define call plus the factory that
// gets registered on the resulting record.
type Unit struct {
	Module string `hcl:"module,optional"`
	Path   string `hcl:"path,optional"`

	Factory  string `hcl:"factory,optional"`
	Source   string `hcl:"source,optional"`
	Function string `hcl:"function,optional"`

	// Exports is evaluated lazily. When the attribute is absent gohcl sets a
	// static expression evaluating to null.
	Exports hcl.Expression `hcl:"exports,optional"`
}
