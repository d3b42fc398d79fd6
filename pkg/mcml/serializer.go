// serializer.go implements the registry that turns substituted values into text.
package mcml

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
)

// FailedSerialization is substituted when a serializer cannot convert a value.
const FailedSerialization = "(failed to convert value to JSON)"

// Serializer converts values of the types it declares into a string, usually
// JSON for item or entity hovers. Serialize must not panic and must not fail;
// use NewSerializer to get that guarantee for an arbitrary function.
type Serializer interface {
	Types() []reflect.Type
	Serialize(v any) string
}

type funcSerializer[T any] struct {
	fn func(T) (string, error)
}

// NewSerializer adapts fn into a Serializer for values of type T. Errors and
// panics raised by fn are reported as FailedSerialization.
func NewSerializer[T any](fn func(T) (string, error)) Serializer {
	return funcSerializer[T]{fn: fn}
}

func (s funcSerializer[T]) Types() []reflect.Type {
	return []reflect.Type{reflect.TypeOf((*T)(nil)).Elem()}
}

func (s funcSerializer[T]) Serialize(v any) (out string) {
	defer func() {
		if recover() != nil {
			out = FailedSerialization
		}
	}()
	tv, ok := v.(T)
	if !ok {
		return FailedSerialization
	}
	str, err := s.fn(tv)
	if err != nil {
		return FailedSerialization
	}
	return str
}

type jsonSerializer struct {
	types []reflect.Type
}

// JSONSerializer serializes the given types with encoding/json.
func JSONSerializer(types ...reflect.Type) Serializer {
	return jsonSerializer{types: types}
}

func (s jsonSerializer) Types() []reflect.Type { return s.types }

func (s jsonSerializer) Serialize(v any) (out string) {
	defer func() {
		if recover() != nil {
			out = FailedSerialization
		}
	}()
	data, err := json.Marshal(v)
	if err != nil {
		return FailedSerialization
	}
	return string(data)
}

// LazySerializer defers building a serializer until a value is first
// serialized. The constructor runs at most once, even under concurrent use.
type LazySerializer struct {
	types []reflect.Type
	build func() Serializer

	once sync.Once
	impl Serializer
}

// NewLazySerializer returns a serializer for types whose implementation is
// created by build on first use.
func NewLazySerializer(build func() Serializer, types ...reflect.Type) *LazySerializer {
	return &LazySerializer{types: types, build: build}
}

func (l *LazySerializer) Types() []reflect.Type { return l.types }

func (l *LazySerializer) Serialize(v any) (out string) {
	defer func() {
		if recover() != nil {
			out = FailedSerialization
		}
	}()
	l.once.Do(func() {
		l.impl = l.build()
	})
	if l.impl == nil {
		return FailedSerialization
	}
	return l.impl.Serialize(v)
}

// Registry maps runtime types to serializers. It is read-only after
// NewRegistry returns, so one registry may be shared by many parsers.
type Registry struct {
	byType map[reflect.Type]Serializer
}

// NewRegistry indexes serializers by every type they declare. A later
// serializer replaces an earlier one for the same type.
func NewRegistry(serializers ...Serializer) *Registry {
	reg := &Registry{byType: make(map[reflect.Type]Serializer)}
	for _, s := range serializers {
		if s == nil {
			continue
		}
		for _, t := range s.Types() {
			if t != nil {
				reg.byType[t] = s
			}
		}
	}
	return reg
}

// Lookup returns the serializer registered for t.
func (r *Registry) Lookup(t reflect.Type) (Serializer, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.byType[t]
	return s, ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byType)
}

// Text converts a replacement value into the text substituted for its placeholder.
func (r *Registry) Text(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(string); ok {
		return s
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "null"
	}
	if s, ok := r.Lookup(reflect.TypeOf(v)); ok {
		return s.Serialize(v)
	}
	return fmt.Sprint(v)
}
