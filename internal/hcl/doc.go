// Package hcl is the HCL implementation of config.Loader. It parses manifest
// files with hclparse, decodes them into the internal/schema structs with
// gohcl and translates the result into a config.Model, converting literal
// `exports` values from cty into plain Go values.
package hcl
