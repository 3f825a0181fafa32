// Package symbols provides address keyed symbol management for label names.
package symbols

// Manager provides generic symbol tracking by address.
// T is the type of symbol being managed.
type Manager[T any] struct {
	items map[uint32]T
}

// New creates a new symbol manager.
func New[T any]() *Manager[T] {
	return &Manager[T]{
		items: make(map[uint32]T),
	}
}

// Get returns the item at the given address.
func (m *Manager[T]) Get(address uint32) (T, bool) {
	item, ok := m.items[address]
	return item, ok
}

// Set sets the item at the given address.
func (m *Manager[T]) Set(address uint32, item T) {
	m.items[address] = item
}

// Has returns whether an item exists at the given address.
func (m *Manager[T]) Has(address uint32) bool {
	_, ok := m.items[address]
	return ok
}

// Len returns the number of items in the manager.
func (m *Manager[T]) Len() int {
	return len(m.items)
}
