package config

import (
	"errors"
	"fmt"
	"strings"
)

// Model is everything the loaders found, merged across files.
type Model struct {
	Entries []string
	Units   []*Unit
}

// BodyKind says how a unit's factory is produced.
type BodyKind int

const (
	// BodyNone declares identity only. Such a unit aliases a record that an
	// earlier unit defined and registered.
	BodyNone BodyKind = iota
	// BodyFactory binds a named Go factory from the catalog.
	BodyFactory
	// BodySource is a CommonJS-style JavaScript body.
	BodySource
	// BodyFunction is a JavaScript expression evaluating to a factory function.
	BodyFunction
	// BodyExports is a literal value used as the module's exports.
	BodyExports
)

// String implements fmt.Stringer.
func (k BodyKind) String() string {
	switch k {
	case BodyFactory:
		return "factory"
	case BodySource:
		return "source"
	case BodyFunction:
		return "function"
	case BodyExports:
		return "exports"
	default:
		return "none"
	}
}

// Unit is one define + register pair.
type Unit struct {
	Package string
	Module  string
	Path    string

	Factory    string
	Source     string
	Function   string
	Exports    any
	HasExports bool

	// File is the manifest the unit came from.
	File string
}

// Kind returns the body kind set on u, or an error when more than one is set.
func (u *Unit) Kind() (BodyKind, error) {
	var kinds []BodyKind
	if u.Factory != "" {
		kinds = append(kinds, BodyFactory)
	}
	if u.Source != "" {
		kinds = append(kinds, BodySource)
	}
	if u.Function != "" {
		kinds = append(kinds, BodyFunction)
	}
	if u.HasExports {
		kinds = append(kinds, BodyExports)
	}

	switch len(kinds) {
	case 1:
		return kinds[0], nil
	case 0:
		return BodyNone, nil
	default:
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.String()
		}
		return BodyNone, fmt.Errorf("unit %s sets more than one body: %s", u, strings.Join(names, ", "))
	}
}

// String identifies the unit in error messages.
func (u *Unit) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%q", u.Package)
	if u.Module != "" {
		fmt.Fprintf(&sb, " module %q", u.Module)
	}
	if u.Path != "" {
		fmt.Fprintf(&sb, " path %q", u.Path)
	}
	if u.File != "" {
		fmt.Fprintf(&sb, " (%s)", u.File)
	}
	return sb.String()
}

// Merge appends other's entries and units to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Entries = append(m.Entries, other.Entries...)
	m.Units = append(m.Units, other.Units...)
}

// Validate checks every unit for a usable identity and at most one body.
func (m *Model) Validate() error {
	var errs []error
	for _, u := range m.Units {
		if u.Package == "" {
			errs = append(errs, fmt.Errorf("unit %s: package name is required", u))
		}
		if u.Module == "" && u.Path == "" {
			errs = append(errs, fmt.Errorf("unit %s: module or path is required", u))
		}
		if _, err := u.Kind(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
