package jsunit

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/vk/modreg/internal/registry"
)

// DefaultGlobalName is the binding Expose uses when given an empty name.
const DefaultGlobalName = "modreg"

// Expose publishes the Environment to JavaScript under the global name:
//
//	name.define(pkg, mod, path) -> record
//	name.require(id)            -> exports
//	name.get(id)                -> record
//
// A record object has id, package, module and path properties and the
// methods register(fn), load() and state().
func (h *Host) Expose(name string) error {
	if name == "" {
		name = DefaultGlobalName
	}

	global := h.rt.NewObject()
	if err := global.Set("define", func(call goja.FunctionCall) goja.Value {
		rec, err := h.env.Define(
			call.Argument(0).String(),
			optString(call.Argument(1)),
			optString(call.Argument(2)),
		)
		if err != nil {
			h.throw(err)
		}
		return h.recordObject(rec)
	}); err != nil {
		return err
	}
	if err := global.Set("require", func(call goja.FunctionCall) goja.Value {
		v, err := h.env.Require(call.Argument(0).String())
		if err != nil {
			h.throw(err)
		}
		return h.ToValue(v)
	}); err != nil {
		return err
	}
	if err := global.Set("get", func(call goja.FunctionCall) goja.Value {
		rec, err := h.env.Get(call.Argument(0).String(), nil)
		if err != nil {
			h.throw(err)
		}
		return h.recordObject(rec)
	}); err != nil {
		return err
	}

	if err := h.rt.Set(name, global); err != nil {
		return fmt.Errorf("expose environment as %q: %w", name, err)
	}
	h.logger.Debug("Environment exposed to JavaScript.", "global", name)
	return nil
}

// Run evaluates a script in the host runtime, typically one that uses the
// exposed global to define and register units.
func (h *Host) Run(name, src string) (goja.Value, error) {
	h.enter()
	defer h.leave()
	v, err := h.rt.RunScript(name, src)
	if err != nil {
		return nil, h.unwrap(name, err)
	}
	return v, nil
}

func (h *Host) recordObject(rec *registry.Record) goja.Value {
	obj := h.rt.NewObject()
	_ = obj.Set("id", rec.ID())
	_ = obj.Set("package", rec.Package())
	_ = obj.Set("module", rec.ModuleName())
	_ = obj.Set("path", rec.Path())
	_ = obj.Set("state", func(goja.FunctionCall) goja.Value {
		return h.rt.ToValue(rec.State().String())
	})
	_ = obj.Set("register", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			h.throw(fmt.Errorf("%w: register expects a function for %s", registry.ErrInvalidFactory, rec.ID()))
		}
		if err := rec.Register(h.factory(rec.ID(), fn)); err != nil {
			h.throw(err)
		}
		return goja.Undefined()
	})
	_ = obj.Set("load", func(goja.FunctionCall) goja.Value {
		v, err := rec.Load()
		if err != nil {
			h.throw(err)
		}
		return h.ToValue(v)
	})
	return obj
}

func optString(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	return v.String()
}
