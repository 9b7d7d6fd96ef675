// Package memory stores variable bindings shared across traversals.
//
// A Memory is referenced, never owned, by processing tokens. It carries no
// locking: callers must enforce single-writer-at-a-time discipline across
// traversals.
package memory

type Memory struct {
	values map[string][]byte
}

// New creates an empty variable memory.
func New() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Memorize binds value to the variable id, replacing any prior binding.
// The value is copied.
func (m *Memory) Memorize(id string, value []byte) {
	buf := make([]byte, len(value))
	copy(buf, value)
	m.values[id] = buf
}

// Recall returns the value bound to id.
func (m *Memory) Recall(id string) ([]byte, bool) {
	v, ok := m.values[id]
	if !ok {
		return nil, false
	}
	buf := make([]byte, len(v))
	copy(buf, v)
	return buf, true
}

// Known reports whether id has a binding.
func (m *Memory) Known(id string) bool {
	_, ok := m.values[id]
	return ok
}

// Forget removes the binding for id.
func (m *Memory) Forget(id string) {
	delete(m.values, id)
}

// Len returns the number of bindings.
func (m *Memory) Len() int {
	return len(m.values)
}

// Duplicate returns an independent copy of the memory. Mutating the copy
// leaves the source untouched.
func (m *Memory) Duplicate() *Memory {
	dup := New()
	for id, v := range m.values {
		dup.Memorize(id, v)
	}
	return dup
}
