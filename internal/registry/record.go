package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/vk/modreg/internal/resolve"
)

// State is the lifecycle position of a Record.
type State int

const (
	// Unregistered records were defined but have no factory yet.
	Unregistered State = iota
	// Registered records have a factory that has not run.
	Registered
	// Loading records are running their factory. A record whose factory
	// failed stays here.
	Loading
	// Loaded records have cached exports.
	Loaded
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Unregistered:
		return "unregistered"
	case Registered:
		return "registered"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Factory is the code body of a compiled unit. It populates or replaces
// m.Exports and may require other modules through m.
type Factory func(m *Module) error

// RequireFunc resolves an identifier and loads the record it names.
type RequireFunc func(id string) (any, error)

// Record is one compiled unit: its identity, its factory and, once loaded,
// its exports. Records are created by Environment.Define and owned by the
// package keyspaces they were inserted into.
type Record struct {
	env *Environment

	pkg  string
	path string

	// module can gain a value when a later Define aliases this record, so
	// it is read and written under nameMu.
	nameMu sync.RWMutex
	module string

	state   State
	factory Factory
	exports any
	current *Module
	err     error
}

// Package returns the owning package name.
func (r *Record) Package() string { return r.pkg }

// ModuleName returns the module-name key, or "" for path-only records.
func (r *Record) ModuleName() string {
	r.nameMu.RLock()
	defer r.nameMu.RUnlock()
	return r.module
}

// adoptModule sets the module name if the record has none yet.
func (r *Record) adoptModule(mod string) {
	r.nameMu.Lock()
	defer r.nameMu.Unlock()
	if r.module == "" {
		r.module = mod
	}
}

// Path returns the source-path key, or "" for module-only records.
func (r *Record) Path() string { return r.path }

// State returns the lifecycle state.
func (r *Record) State() State { return r.state }

// ID returns a printable identity. Records with a module name use the bare
// specifier that resolves to them; path-only records use "pkg:path".
func (r *Record) ID() string {
	if mod := r.ModuleName(); mod != "" {
		return resolve.Specifier(r.pkg, mod)
	}
	return r.pkg + ":" + r.path
}

// String implements fmt.Stringer.
func (r *Record) String() string {
	return r.ID()
}

func (r *Record) origin() *resolve.Origin {
	return &resolve.Origin{Package: r.pkg, Path: r.path}
}

// Register attaches the factory. It can be called once per record.
func (r *Record) Register(factory Factory) error {
	if factory == nil {
		return fmt.Errorf("%w: nil factory for %s", ErrInvalidFactory, r.ID())
	}
	if r.state != Unregistered {
		return fmt.Errorf("%w: %s", ErrFactoryAlreadyRegistered, r.ID())
	}
	r.factory = factory
	r.state = Registered
	r.env.logger.Debug("Registered module factory.", "id", r.ID())
	return nil
}

// Load runs the factory on first use and returns the exports. Later calls
// return the cached value without running the factory again. A call made
// while the factory is still running, through a require cycle, returns the
// exports object as it currently stands.
func (r *Record) Load() (any, error) {
	switch r.state {
	case Loaded:
		return r.exports, nil
	case Loading:
		if r.err != nil {
			return nil, r.err
		}
		r.env.logger.Debug("Require cycle reached a loading module, returning its partial exports.", "id", r.ID())
		return r.current.Exports, nil
	case Unregistered:
		return nil, &MissingRegistrationError{ID: r.ID()}
	}

	r.state = Loading
	m := &Module{Exports: NewExports(), record: r}
	r.current = m
	r.env.logger.Debug("Loading module.", "id", r.ID())

	start := time.Now()
	err := r.factory(m)
	r.env.observer.Loaded(r, time.Since(start), err)
	if err != nil {
		r.err = fmt.Errorf("%w: %s: %w", ErrFactoryFailed, r.ID(), err)
		return nil, r.err
	}

	r.exports = m.Exports
	r.current = nil
	r.state = Loaded
	r.env.logger.Debug("Module loaded.", "id", r.ID())
	return r.exports, nil
}

// CreateRequire returns a require function whose relative identifiers are
// resolved against this record's path.
func (r *Record) CreateRequire() RequireFunc {
	return func(id string) (any, error) {
		rec, err := r.env.Get(id, r)
		if err != nil {
			return nil, err
		}
		return rec.Load()
	}
}
