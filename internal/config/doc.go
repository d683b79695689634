// Package config defines the format-agnostic manifest model: which units to
// define in which packages, what code each one is bound to, and which
// identifiers to require as entry points.
//
// Concrete loaders (HCL, YAML) live in their own packages and implement
// Loader. MultiLoader picks one per file by extension.
package config
