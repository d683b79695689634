package registry

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/vk/modreg/internal/resolve"
)

// Package is one namespace of records with its two keyspaces.
type Package struct {
	name     string
	byModule map[string]*Record
	byPath   map[string]*Record
}

func newPackage(name string) *Package {
	return &Package{
		name:     name,
		byModule: make(map[string]*Record),
		byPath:   make(map[string]*Record),
	}
}

// Environment holds every package known to one process (or one test).
type Environment struct {
	id       string
	logger   *slog.Logger
	observer Observer
	suffixes []string

	mu       sync.RWMutex
	packages map[string]*Package
}

// Option configures an Environment.
type Option func(*Environment)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Environment) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver installs an Observer.
func WithObserver(o Observer) Option {
	return func(e *Environment) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithSuffixes replaces the relative-resolution suffix list.
func WithSuffixes(suffixes ...string) Option {
	return func(e *Environment) {
		e.suffixes = append([]string(nil), suffixes...)
	}
}

// New creates an empty Environment.
func New(opts ...Option) *Environment {
	e := &Environment{
		id:       uuid.NewString(),
		logger:   slog.Default(),
		observer: nopObserver{},
		suffixes: resolve.DefaultSuffixes,
		packages: make(map[string]*Package),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("env", e.id)
	return e
}

// ID returns the instance ID attached to this environment's log lines.
func (e *Environment) ID() string {
	return e.id
}

// Define returns the record for (pkg, mod, path), creating it if needed.
//
// If path is already taken and mod is new, mod becomes an alias of the
// existing record. A taken mod, or a taken path with no mod, is an
// *AlreadyDefinedError.
func (e *Environment) Define(pkg, mod, path string) (*Record, error) {
	if pkg == "" {
		return nil, ErrInvalidIdentity
	}
	if mod == "" && path == "" {
		return nil, ErrInvalidIdentity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.packages[pkg]
	if !ok {
		p = newPackage(pkg)
		e.packages[pkg] = p
	}

	if mod != "" {
		if _, taken := p.byModule[mod]; taken {
			return nil, &AlreadyDefinedError{Package: pkg, Key: mod, Keyspace: KeyspaceModule}
		}
	}

	if path != "" {
		if existing, taken := p.byPath[path]; taken {
			if mod == "" {
				return nil, &AlreadyDefinedError{Package: pkg, Key: path, Keyspace: KeyspacePath}
			}
			p.byModule[mod] = existing
			existing.adoptModule(mod)
			e.logger.Debug("Aliased module to existing path.", "package", pkg, "module", mod, "path", path)
			e.observer.Defined(existing, true)
			return existing, nil
		}
	}

	rec := &Record{env: e, pkg: pkg, module: mod, path: path}
	if mod != "" {
		p.byModule[mod] = rec
	}
	if path != "" {
		p.byPath[path] = rec
	}
	e.logger.Debug("Defined module.", "package", pkg, "module", mod, "path", path)
	e.observer.Defined(rec, false)
	return rec, nil
}

// Get resolves id to a record without loading it. from is the requiring
// record; relative identifiers are only resolved relatively when it is set.
func (e *Environment) Get(id string, from *Record) (*Record, error) {
	rec, nf := e.find(id, from)
	if nf != nil {
		e.observer.Unresolved(nf)
		return nil, nf
	}
	return rec, nil
}

// find is Get without reporting misses to the observer, for callers that
// treat a miss as an expected outcome.
func (e *Environment) find(id string, from *Record) (*Record, *NotFoundError) {
	var origin *resolve.Origin
	if from != nil {
		origin = from.origin()
	}
	mode, candidates := resolve.Candidates(id, origin, e.suffixes)

	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, c := range candidates {
		if rec := e.lookupLocked(c, mode); rec != nil {
			return rec, nil
		}
	}

	nf := &NotFoundError{ID: id, Mode: mode, Candidates: candidates}
	if from != nil {
		nf.From = from.ID()
	}
	return nil, nf
}

func (e *Environment) lookupLocked(c resolve.Candidate, mode resolve.Mode) *Record {
	p, ok := e.packages[c.Package]
	if !ok {
		return nil
	}
	if mode == resolve.ModeRelative {
		return p.byPath[c.Key]
	}
	return p.byModule[c.Key]
}

// Require resolves a bare id and loads it.
func (e *Environment) Require(id string) (any, error) {
	rec, err := e.Get(id, nil)
	if err != nil {
		return nil, err
	}
	return rec.Load()
}

// Lookup returns the record stored under key in one keyspace of pkg, or nil.
func (e *Environment) Lookup(pkg, key string, ks Keyspace) *Record {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.packages[pkg]
	if !ok {
		return nil
	}
	if ks == KeyspacePath {
		return p.byPath[key]
	}
	return p.byModule[key]
}

// Packages returns the package names in sorted order.
func (e *Environment) Packages() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.packages))
	for name := range e.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns every distinct record, ordered by package then ID.
func (e *Environment) Records() []*Record {
	e.mu.RLock()
	defer e.mu.RUnlock()

	seen := make(map[*Record]struct{})
	var out []*Record
	add := func(r *Record) {
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	for _, p := range e.packages {
		for _, r := range p.byModule {
			add(r)
		}
		for _, r := range p.byPath {
			add(r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].pkg != out[j].pkg {
			return out[i].pkg < out[j].pkg
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

// Reset drops every package. Records handed out earlier keep working but
// can no longer be found.
func (e *Environment) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.packages = make(map[string]*Package)
	e.logger.Debug("Environment reset.")
}
