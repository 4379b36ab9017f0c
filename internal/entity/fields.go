package entity

import (
	"fmt"
	"maps"
)

// Fields holds the caller supplied values of a resource. A key holding nil
// counts as not supplied.
type Fields map[string]any

func (f Fields) Has(name string) bool {
	v, ok := f[name]
	return ok && v != nil
}

func (f Fields) Get(name string) (any, bool) {
	if !f.Has(name) {
		return nil, false
	}
	return f[name], true
}

// String returns the value rendered as a string, used for ids and titles.
func (f Fields) String(name string) (string, bool) {
	v, ok := f.Get(name)
	if !ok {
		return "", false
	}

	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

func (f Fields) Clone() Fields {
	clone := make(Fields, len(f))
	maps.Copy(clone, f)
	return clone
}

// With returns a copy of f with name set to value.
func (f Fields) With(name string, value any) Fields {
	clone := f.Clone()
	clone[name] = value
	return clone
}
