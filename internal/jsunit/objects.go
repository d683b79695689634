package jsunit

import (
	"github.com/dop251/goja"
	"github.com/vk/modreg/internal/registry"
)

// exportsObject is the goja.DynamicObject view of a *registry.Exports.
type exportsObject struct {
	h *Host
	e *registry.Exports
}

func (o *exportsObject) Get(key string) goja.Value {
	v, ok := o.e.Get(key)
	if !ok {
		return nil
	}
	return o.h.ToValue(v)
}

func (o *exportsObject) Set(key string, val goja.Value) bool {
	o.e.Set(key, o.h.FromValue(val))
	return true
}

func (o *exportsObject) Has(key string) bool {
	return o.e.Has(key)
}

func (o *exportsObject) Delete(key string) bool {
	o.e.Delete(key)
	return true
}

func (o *exportsObject) Keys() []string {
	return o.e.Keys()
}

var moduleKeys = []string{"exports", "id", "path", "package", "require", "createRequire"}

// moduleObject is the `module` argument of a JS factory. Assigning
// module.exports writes through to the registry.Module, so a require cycle
// that reaches this module afterwards sees the replacement.
type moduleObject struct {
	h             *Host
	m             *registry.Module
	require       goja.Value
	createRequire goja.Value
}

func (o *moduleObject) Get(key string) goja.Value {
	switch key {
	case "exports":
		return o.h.ToValue(o.m.Exports)
	case "id":
		return o.h.rt.ToValue(o.m.ID())
	case "path":
		return o.h.rt.ToValue(o.m.Path())
	case "package":
		return o.h.rt.ToValue(o.m.Package())
	case "require":
		return o.require
	case "createRequire":
		return o.createRequire
	}
	return nil
}

func (o *moduleObject) Set(key string, val goja.Value) bool {
	if key != "exports" {
		return false
	}
	o.m.Exports = o.h.FromValue(val)
	return true
}

func (o *moduleObject) Has(key string) bool {
	for _, k := range moduleKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (o *moduleObject) Delete(string) bool {
	return false
}

func (o *moduleObject) Keys() []string {
	return moduleKeys
}
