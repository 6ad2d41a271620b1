package flavor

import (
	"fmt"
	"strconv"
)

// Map is an insertion-ordered mapping from string keys to literal values.
// Values are one of: string, int64, float64, bool, nil, []any, or *Map.
//
// Ordering matters for two reasons: include merging is last-write-wins in
// statement order, and warnings about unconsumed keys are emitted in the
// order the keys appeared.
type Map struct {
	keys []string
	vals map[string]any
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{vals: make(map[string]any)}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Set assigns key to value. Reassigning an existing key overwrites its value
// without changing its position.
func (m *Map) Set(key string, value any) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = value
}

// Pop removes key and returns its value and whether it was present.
func (m *Map) Pop(key string) (any, bool) {
	v, ok := m.vals[key]
	if !ok {
		return nil, false
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Update merges other into m, overwriting existing keys. Keys new to m are
// appended in other's order.
func (m *Map) Update(other *Map) {
	for _, k := range other.keys {
		m.Set(k, other.vals[k])
	}
}

// FormatValue renders a literal value as a string, for use as a template
// substitution value.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
