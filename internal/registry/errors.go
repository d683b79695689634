package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/modreg/internal/resolve"
)

var (
	// ErrModuleAlreadyDefined is matched by every key collision at Define
	// time and by a second Register on the same record.
	ErrModuleAlreadyDefined = errors.New("module already defined")
	// ErrModuleNotFound is matched by *NotFoundError.
	ErrModuleNotFound = errors.New("module not found")
	// ErrMissingRegistration is matched by *MissingRegistrationError.
	ErrMissingRegistration = errors.New("module has no registered factory")
	// ErrInvalidFactory is returned when Register is given no callable factory.
	ErrInvalidFactory = errors.New("invalid module factory")
	// ErrInvalidIdentity is returned by Define for an empty package name or a
	// record that would be reachable through neither keyspace.
	ErrInvalidIdentity = errors.New("invalid module identity")
	// ErrFactoryFailed wraps the error a factory returned.
	ErrFactoryFailed = errors.New("module factory failed")

	// ErrFactoryAlreadyRegistered is returned by a second Register call.
	ErrFactoryAlreadyRegistered = fmt.Errorf("%w: factory already registered", ErrModuleAlreadyDefined)
)

// Keyspace names one of the two per-package lookup tables.
type Keyspace string

const (
	KeyspaceModule Keyspace = "module"
	KeyspacePath   Keyspace = "path"
)

// AlreadyDefinedError reports a key collision in Define.
type AlreadyDefinedError struct {
	Package  string
	Key      string
	Keyspace Keyspace
}

func (e *AlreadyDefinedError) Error() string {
	return fmt.Sprintf("module already defined: package %q already has %s %q", e.Package, e.Keyspace, e.Key)
}

// Is makes errors.Is(err, ErrModuleAlreadyDefined) match.
func (e *AlreadyDefinedError) Is(target error) bool {
	return target == ErrModuleAlreadyDefined
}

// NotFoundError reports an identifier for which every candidate missed.
// Candidates is in the order the lookups were attempted.
type NotFoundError struct {
	ID         string
	From       string
	Mode       resolve.Mode
	Candidates []resolve.Candidate
}

func (e *NotFoundError) Error() string {
	tried := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		tried = append(tried, c.String())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "module not found: %q", e.ID)
	if e.From != "" {
		fmt.Fprintf(&sb, " (required from %s)", e.From)
	}
	fmt.Fprintf(&sb, "; %s lookup tried [%s]", e.Mode, strings.Join(tried, ", "))
	return sb.String()
}

// Is makes errors.Is(err, ErrModuleNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrModuleNotFound
}

// MissingRegistrationError reports a Load on a record without a factory.
type MissingRegistrationError struct {
	ID string
}

func (e *MissingRegistrationError) Error() string {
	return fmt.Sprintf("module %s was defined but never registered", e.ID)
}

// Is makes errors.Is(err, ErrMissingRegistration) match.
func (e *MissingRegistrationError) Is(target error) bool {
	return target == ErrMissingRegistration
}
