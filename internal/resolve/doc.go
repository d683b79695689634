// Package resolve turns a requested module identifier into the ordered list
// of registry keys that should be tried for it.
//
// Two modes exist. Relative identifiers (starting with ".") are resolved
// against the source path of the requiring record and tried in the path
// keyspace of that record's package, with a fixed list of suffixes. Bare
// identifiers are resolved in the module-name keyspace by moving trailing
// path segments from the package side to the module side, e.g.
// "a/b/c" tries ("a/b/c", "."), ("a/b", "./c") and ("a", "./b/c").
//
// Nothing here holds state; the registry package owns the keyspaces.
package resolve
