package resolve

import (
	"fmt"
	"strings"
)

// Mode identifies which resolution algorithm produced a candidate list.
type Mode int

const (
	// ModePackage resolves bare specifiers against module-name keys.
	ModePackage Mode = iota
	// ModeRelative resolves "./" and "../" identifiers against path keys.
	ModeRelative
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModePackage:
		return "package"
	case ModeRelative:
		return "relative"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MainKey is the module-name key of a package's default export.
const MainKey = "."

// DefaultSuffixes is the order of suffixes appended to a relative base candidate.
var DefaultSuffixes = []string{
	"",
	".js",
	"/index.js",
	".ejs",
	"/index.ejs",
	".cjs",
	"/index.cjs",
}

// Candidate is a single (package, key) pair to look up. Key is a source path
// in relative mode and a module name in package mode.
type Candidate struct {
	Package string
	Key     string
}

// String implements fmt.Stringer.
func (c Candidate) String() string {
	return c.Package + ":" + c.Key
}

// Origin is the identity of the requiring record, if any.
type Origin struct {
	Package string
	Path    string
}

// IsRelative reports whether id is resolved against a calling record.
func IsRelative(id string) bool {
	return strings.HasPrefix(id, ".")
}

// Candidates selects the resolution mode for id and returns the ordered
// candidates. Relative mode is used only when id starts with "." and an
// origin is given; everything else is a bare specifier.
func Candidates(id string, from *Origin, suffixes []string) (Mode, []Candidate) {
	if from != nil && IsRelative(id) {
		return ModeRelative, Relative(id, *from, suffixes)
	}
	return ModePackage, Package(id)
}

// Relative returns the path candidates for a relative id requested by from.
// A nil suffixes slice means DefaultSuffixes.
func Relative(id string, from Origin, suffixes []string) []Candidate {
	if suffixes == nil {
		suffixes = DefaultSuffixes
	}
	base := Base(id, from.Path)

	out := make([]Candidate, 0, len(suffixes))
	for _, suffix := range suffixes {
		key := base + suffix
		if base == "" {
			// Directory-less ids cannot produce "/index.js"; try "index.js".
			if suffix == "" || !strings.HasPrefix(suffix, "/") {
				continue
			}
			key = suffix[1:]
		}
		out = append(out, Candidate{Package: from.Package, Key: key})
	}
	return out
}

// Base computes the base path candidate for a relative id requested from the
// file at fromPath. Every leading "../" pops one directory, then one leading
// "./" is stripped and the remainder is appended to the directory.
func Base(id, fromPath string) string {
	dir := strings.Split(fromPath, "/")
	dir = dir[:len(dir)-1]

	rest := id
	for strings.HasPrefix(rest, "../") {
		rest = rest[len("../"):]
		dir = pop(dir)
	}
	rest = strings.TrimPrefix(rest, "./")

	switch rest {
	case "..":
		dir = pop(dir)
		rest = ""
	case ".":
		rest = ""
	}

	segments := make([]string, 0, len(dir)+1)
	segments = append(segments, dir...)
	if rest != "" {
		segments = append(segments, rest)
	}
	return strings.Join(segments, "/")
}

func pop(dir []string) []string {
	if len(dir) == 0 {
		return dir
	}
	return dir[:len(dir)-1]
}

// Package returns the module-name candidates for a bare specifier: first the
// whole id as a package main, then every split point from right to left.
func Package(id string) []Candidate {
	out := []Candidate{{Package: id, Key: MainKey}}

	segments := strings.Split(id, "/")
	for i := len(segments) - 1; i > 0; i-- {
		out = append(out, Candidate{
			Package: strings.Join(segments[:i], "/"),
			Key:     "./" + strings.Join(segments[i:], "/"),
		})
	}
	return out
}

// Specifier is the inverse of Package: the bare id that resolves to module
// mod of package pkg.
func Specifier(pkg, mod string) string {
	if mod == MainKey || mod == "" {
		return pkg
	}
	return pkg + "/" + strings.TrimPrefix(mod, "./")
}
