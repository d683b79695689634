package registry

// Exports is the object a factory starts with in Module.Exports. It keeps
// insertion order and is always handled by pointer, so two requires of the
// same module can be compared with ==.
type Exports struct {
	keys   []string
	values map[string]any
}

// NewExports returns an empty exports object.
func NewExports() *Exports {
	return &Exports{values: make(map[string]any)}
}

// Get returns the named export.
func (e *Exports) Get(name string) (any, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Has reports whether name has been exported.
func (e *Exports) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Set adds or replaces an export. New names are appended to Keys.
func (e *Exports) Set(name string, v any) {
	if _, ok := e.values[name]; !ok {
		e.keys = append(e.keys, name)
	}
	e.values[name] = v
}

// Delete removes an export and reports whether it existed.
func (e *Exports) Delete(name string) bool {
	if _, ok := e.values[name]; !ok {
		return false
	}
	delete(e.values, name)
	for i, k := range e.keys {
		if k == name {
			e.keys = append(e.keys[:i], e.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the export names in insertion order.
func (e *Exports) Keys() []string {
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

// Len returns the number of exports.
func (e *Exports) Len() int {
	return len(e.keys)
}
