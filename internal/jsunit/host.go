package jsunit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dop251/goja"
	"github.com/vk/modreg/internal/registry"
)

// Host owns the goja runtime and the JS views of registry values.
// A Host is not safe for concurrent use.
type Host struct {
	rt     *goja.Runtime
	env    *registry.Environment
	logger *slog.Logger

	views  map[*registry.Exports]*goja.Object
	viewed map[*goja.Object]*registry.Exports
	thrown map[*goja.Object]error
	// depth counts JS calls in progress; thrown is emptied when it drops to 0.
	depth int
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger used for tracing and console output.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a Host bound to env.
func New(env *registry.Environment, opts ...Option) *Host {
	h := &Host{
		rt:     goja.New(),
		env:    env,
		logger: slog.Default(),
		views:  make(map[*registry.Exports]*goja.Object),
		viewed: make(map[*goja.Object]*registry.Exports),
		thrown: make(map[*goja.Object]error),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.installConsole()
	return h
}

// Runtime returns the underlying goja runtime.
func (h *Host) Runtime() *goja.Runtime {
	return h.rt
}

// Body compiles a CommonJS unit body into a factory.
func (h *Host) Body(name, body string) (registry.Factory, error) {
	src := "(function (module, exports, require) {\n" + body + "\n})"
	return h.compile(name, src)
}

// Function compiles src, a JavaScript expression that must evaluate to a
// function taking (module, exports, require), into a factory.
func (h *Host) Function(name, src string) (registry.Factory, error) {
	return h.compile(name, "("+src+"\n)")
}

func (h *Host) compile(name, src string) (registry.Factory, error) {
	prog, err := goja.Compile(name, src, false)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	v, err := h.rt.RunProgram(prog)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", name, err)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not evaluate to a function", registry.ErrInvalidFactory, name)
	}
	return h.factory(name, fn), nil
}

func (h *Host) factory(name string, fn goja.Callable) registry.Factory {
	return func(m *registry.Module) error {
		module := h.rt.NewDynamicObject(&moduleObject{
			h:             h,
			m:             m,
			require:       h.requireValue(m.Require),
			createRequire: h.createRequireValue(m),
		})
		h.logger.Debug("Running JS factory.", "name", name, "id", m.ID())
		h.enter()
		defer h.leave()
		_, err := fn(goja.Undefined(), module, h.ToValue(m.Exports), module.Get("require"))
		if err != nil {
			return h.unwrap(name, err)
		}
		return nil
	}
}

// unwrap maps a JS exception back to the Go error it carries, when the
// exception is one a Go callback threw and JS let through unchanged.
func (h *Host) unwrap(name string, err error) error {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		if obj, ok := ex.Value().(*goja.Object); ok {
			if goErr, ok := h.thrown[obj]; ok {
				delete(h.thrown, obj)
				return fmt.Errorf("%s: %w", name, goErr)
			}
		}
	}
	return fmt.Errorf("%s: %w", name, err)
}

func (h *Host) enter() { h.depth++ }

// leave ends a JS call. Once no call is in progress no exception object can
// still be in flight, including ones JS caught, so the map is reset.
func (h *Host) leave() {
	h.depth--
	if h.depth == 0 {
		clear(h.thrown)
	}
}

// throw raises err as a JS exception from inside a Go callback.
func (h *Host) throw(err error) {
	obj := h.rt.NewGoError(err)
	h.thrown[obj] = err
	panic(obj)
}

func (h *Host) requireValue(req registry.RequireFunc) goja.Value {
	return h.rt.ToValue(func(call goja.FunctionCall) goja.Value {
		v, err := req(call.Argument(0).String())
		if err != nil {
			h.throw(err)
		}
		return h.ToValue(v)
	})
}

func (h *Host) createRequireValue(m *registry.Module) goja.Value {
	return h.rt.ToValue(func(call goja.FunctionCall) goja.Value {
		var target any
		if arg := call.Argument(0); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
			target = arg.String()
		}
		return h.requireValue(m.CreateRequire(target))
	})
}

// ToValue converts a Go value for JavaScript. *registry.Exports becomes a
// live view that is created once per exports object.
func (h *Host) ToValue(v any) goja.Value {
	switch t := v.(type) {
	case goja.Value:
		return t
	case *registry.Exports:
		if obj, ok := h.views[t]; ok {
			return obj
		}
		obj := h.rt.NewDynamicObject(&exportsObject{h: h, e: t})
		h.views[t] = obj
		h.viewed[obj] = t
		return obj
	default:
		return h.rt.ToValue(v)
	}
}

// FromValue converts a JavaScript value for Go. Objects are kept as
// *goja.Object so identity survives the round trip; views go back to the
// *registry.Exports they wrap.
func (h *Host) FromValue(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	if obj, ok := v.(*goja.Object); ok {
		if e, ok := h.viewed[obj]; ok {
			return e
		}
		return obj
	}
	return v.Export()
}

func (h *Host) installConsole() {
	console := h.rt.NewObject()
	logAt := func(level slog.Level) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			args := make([]any, len(call.Arguments))
			for i, arg := range call.Arguments {
				args[i] = arg.Export()
			}
			h.logger.Log(context.Background(), level, "console", "args", args)
			return goja.Undefined()
		}
	}
	_ = console.Set("log", logAt(slog.LevelInfo))
	_ = console.Set("debug", logAt(slog.LevelDebug))
	_ = console.Set("warn", logAt(slog.LevelWarn))
	_ = console.Set("error", logAt(slog.LevelError))
	_ = h.rt.Set("console", console)
}
