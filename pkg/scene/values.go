package scene

import "reflect"

// valueEntry holds one shared value plus the version counter its readers'
// dependency probes compare against.
type valueEntry struct {
	value   any
	version uint64
}

func (w *World) valueEntryFor(t reflect.Type) *valueEntry {
	e, ok := w.values[t]
	if !ok {
		e = &valueEntry{}
		w.values[t] = e
	}
	return e
}

// SetValue stores a shared value of type T, replacing any previous value and
// marking it changed for every subtree that read it.
func SetValue[T any](w *World, value T) {
	e := w.valueEntryFor(reflect.TypeFor[T]())
	e.value = value
	e.version++
}

// Value returns the shared value of type T, if one has been set.
func Value[T any](w *World) (T, bool) {
	var zero T
	e, ok := w.values[reflect.TypeFor[T]()]
	if !ok || e.value == nil {
		return zero, false
	}
	return e.value.(T), true
}

// UpdateValue mutates the shared value of type T in place and marks it
// changed. When no value of type T exists, fn receives a zero value which is
// then stored.
func UpdateValue[T any](w *World, fn func(*T)) {
	e := w.valueEntryFor(reflect.TypeFor[T]())
	var v T
	if e.value != nil {
		v = e.value.(T)
	}
	fn(&v)
	e.value = v
	e.version++
}

// ValueVersion returns the write-version of the shared value with the given
// type. Zero means the value has never been written.
func (w *World) ValueVersion(t reflect.Type) uint64 {
	if e, ok := w.values[t]; ok {
		return e.version
	}
	return 0
}
