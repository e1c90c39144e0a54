// Package index provides a generic write-once index for values keyed by a
// comparable key.
//
// Index is built during construction of a larger structure and then only read.
// It never overwrites an entry: Add reports false when the key is already
// present, which lets callers turn a collision into their own error.
//
// # Basic Usage
//
//	byName := index.New[string, *Slot]()
//	if !byName.Add("foobar", slot) {
//	    existing, _ := byName.Get("foobar")
//	    return fmt.Errorf("duplicate name, first declared in %s", existing.Scope())
//	}
//
//	slot, ok := byName.Get("foobar")
//
// # Ordering
//
// Keys and Range visit entries in insertion order, so anything derived from an
// index (listings, persisted documents) is stable from run to run.
//
// # Thread Safety
//
// Index performs no locking. Populate it from a single goroutine before
// sharing it; concurrent reads afterwards are safe because nothing mutates it.
package index
