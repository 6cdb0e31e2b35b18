package model

import (
	"fmt"
	"sort"
)

// ParameterSet maps parameter names to resolved values.
type ParameterSet map[string]Value

// NewParameterSet returns an empty set.
func NewParameterSet() ParameterSet {
	return make(ParameterSet)
}

// Get returns the value bound to name.
func (p ParameterSet) Get(name string) (Value, bool) {
	v, ok := p[name]
	return v, ok
}

// Set binds name to value, replacing any previous binding.
func (p ParameterSet) Set(name string, value Value) {
	p[name] = value
}

// Has reports whether name is bound.
func (p ParameterSet) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Clone returns a shallow copy of the set.
func (p ParameterSet) Clone() ParameterSet {
	out := make(ParameterSet, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge copies every binding of other into p, overriding existing ones.
func (p ParameterSet) Merge(other ParameterSet) {
	for k, v := range other {
		p[k] = v
	}
}

// Name returns the project name. It fails unless "name" is bound to a
// non-empty string.
func (p ParameterSet) Name() (string, error) {
	v, ok := p[ParamName]
	if !ok {
		return "", fmt.Errorf("parameter %q is not set", ParamName)
	}
	s, ok := v.(StringValue)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %s", ParamName, v.Kind())
	}
	if s == "" {
		return "", fmt.Errorf("parameter %q is empty", ParamName)
	}
	return string(s), nil
}

// Bindings converts the set into the map handed to the template engine.
// Booleans compare by truth in conditions; "==" against a literal does
// not match them.
func (p ParameterSet) Bindings() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		if v != nil {
			out[k] = binding(v)
		}
	}
	return out
}

// Keys returns the bound names in lexical order.
func (p ParameterSet) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
