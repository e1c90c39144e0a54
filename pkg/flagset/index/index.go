package index

// Index maps keys to values and remembers insertion order.
type Index[K comparable, V any] struct {
	entries map[K]V
	order   []K
}

// New creates a new empty index.
func New[K comparable, V any]() *Index[K, V] {
	return &Index[K, V]{
		entries: make(map[K]V),
	}
}

// Add inserts value under key. It returns false and leaves the index
// unchanged if key is already present.
func (x *Index[K, V]) Add(key K, value V) bool {
	if _, ok := x.entries[key]; ok {
		return false
	}
	x.entries[key] = value
	x.order = append(x.order, key)
	return true
}

// Get returns the value for a key and whether it exists.
func (x *Index[K, V]) Get(key K) (V, bool) {
	v, ok := x.entries[key]
	return v, ok
}

// Has returns true if the key exists in the index.
func (x *Index[K, V]) Has(key K) bool {
	_, ok := x.entries[key]
	return ok
}

// Keys returns all keys in insertion order.
func (x *Index[K, V]) Keys() []K {
	keys := make([]K, len(x.order))
	copy(keys, x.order)
	return keys
}

// Len returns the number of entries in the index.
func (x *Index[K, V]) Len() int {
	return len(x.order)
}

// Range calls fn for each entry in insertion order until fn returns false.
func (x *Index[K, V]) Range(fn func(K, V) bool) {
	for _, k := range x.order {
		if !fn(k, x.entries[k]) {
			return
		}
	}
}
