package app

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"unsafe"

	"github.com/dop251/goja"
	"github.com/vk/modreg/internal/jsunit"
	"github.com/vk/modreg/internal/registry"
)

const (
	functionPlaceholder = "[function]"
	circularPlaceholder = "[circular]"
)

// field is one key of an ordered JSON object.
type field struct {
	Key   string
	Value any
}

// object is a JSON object that keeps its key order.
type object []field

// MarshalJSON implements json.Marshaler.
func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// sliceKey identifies a slice by its backing array and length.
type sliceKey struct {
	data unsafe.Pointer
	n    int
}

// renderer turns exports into JSON-friendly values. Go and JS functions
// become a placeholder, and so does any container met again while it is
// still being rendered.
type renderer struct {
	host   *jsunit.Host
	active map[any]bool
}

func newRenderer(host *jsunit.Host) *renderer {
	return &renderer{host: host, active: make(map[any]bool)}
}

func (r *renderer) render(results []field) ([]byte, error) {
	out := make(object, len(results))
	for i, f := range results {
		out[i] = field{Key: f.Key, Value: r.plain(f.Value)}
	}
	return json.MarshalIndent(out, "", "  ")
}

func (r *renderer) plain(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case *registry.Exports:
		if r.enter(t) {
			return circularPlaceholder
		}
		defer delete(r.active, t)
		out := make(object, 0, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out = append(out, field{Key: k, Value: r.plain(val)})
		}
		return out
	case *goja.Object:
		return r.jsObject(t)
	case goja.Value:
		return r.plain(r.host.FromValue(t))
	case map[string]any:
		if r.enter(reflect.ValueOf(t).UnsafePointer()) {
			return circularPlaceholder
		}
		defer delete(r.active, reflect.ValueOf(t).UnsafePointer())
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = r.plain(val)
		}
		return out
	case []any:
		if len(t) > 0 {
			key := sliceKey{reflect.ValueOf(t).UnsafePointer(), len(t)}
			if r.enter(key) {
				return circularPlaceholder
			}
			defer delete(r.active, key)
		}
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = r.plain(val)
		}
		return out
	}

	if reflect.ValueOf(v).Kind() == reflect.Func {
		return functionPlaceholder
	}
	return v
}

func (r *renderer) jsObject(obj *goja.Object) any {
	if _, ok := goja.AssertFunction(obj); ok {
		return functionPlaceholder
	}
	if r.enter(obj) {
		return circularPlaceholder
	}
	defer delete(r.active, obj)

	if obj.ClassName() == "Array" {
		n := int(obj.Get("length").ToInteger())
		out := make([]any, n)
		for i := range n {
			out[i] = r.plain(r.host.FromValue(obj.Get(strconv.Itoa(i))))
		}
		return out
	}

	keys := obj.Keys()
	out := make(object, 0, len(keys))
	for _, k := range keys {
		out = append(out, field{Key: k, Value: r.plain(r.host.FromValue(obj.Get(k)))})
	}
	return out
}

// enter marks key as being rendered and reports whether it already was.
func (r *renderer) enter(key any) bool {
	if r.active[key] {
		return true
	}
	r.active[key] = true
	return false
}
