package registry

// Module is the context a factory runs with. Exports starts as a fresh
// *Exports; the factory may fill it in or replace it with any value.
type Module struct {
	Exports any

	record *Record
}

// ID returns the identity of the record being loaded.
func (m *Module) ID() string { return m.record.ID() }

// Path returns the source path of the record being loaded.
func (m *Module) Path() string { return m.record.path }

// Package returns the package of the record being loaded.
func (m *Module) Package() string { return m.record.pkg }

// Record returns the record being loaded.
func (m *Module) Record() *Record { return m.record }

// Require resolves id relative to this module and loads it.
func (m *Module) Require(id string) (any, error) {
	return m.record.CreateRequire()(id)
}

// CreateRequire returns a require function anchored somewhere else. target
// may be a *Record, a *Module, or an identifier that resolves (from this
// module) to a record. Any other target, or one that does not resolve,
// anchors the function at this module.
func (m *Module) CreateRequire(target any) RequireFunc {
	anchor := m.record
	switch t := target.(type) {
	case *Record:
		if t != nil {
			anchor = t
		}
	case *Module:
		if t != nil {
			anchor = t.record
		}
	case string:
		rec, nf := m.record.env.find(t, m.record)
		if nf == nil {
			anchor = rec
		} else {
			m.record.env.logger.Debug("CreateRequire target did not resolve, anchoring at caller.", "id", m.ID(), "target", t)
		}
	}
	return anchor.CreateRequire()
}
