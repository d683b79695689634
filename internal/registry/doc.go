// Package registry is the module registry and loader at the core of modreg.
//
// An Environment holds packages. Each package has two independent keyspaces
// mapping to the same kind of value, a *Record: one keyed by module name
// ("." for the package main, "./lib/x" for sub-modules) and one keyed by
// source path ("pkg/lib/x.js"). A record may be reachable from both.
//
// Compiled units take part in two steps. At build time they call Define to
// obtain their record and Register to attach a Factory. At run time
// Require (or the Module.Require handed to a factory) resolves an identifier
// with the resolve package, then calls Load on the record it found. Load runs
// the factory at most once and caches whatever the factory left in
// Module.Exports. A require cycle that reaches a record whose factory is
// still running gets that record's in-progress exports back instead of
// recursing.
//
// Define, Get and the Record identity accessors are safe for concurrent use.
// Loading is not: Register, Load and every factory they trigger must run on
// one goroutine.
package registry
