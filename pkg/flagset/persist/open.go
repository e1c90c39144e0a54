package persist

import (
	"fmt"
	"log/slog"
)

// Open constructs a store for the named backend.
//
//   - "file" (or ""): FileStore at path, DefaultPath when path is empty
//   - "memory": MemoryStore, path ignored
//   - "sqlite": SQLiteStore at path
//   - "badger": BadgerStore in directory path
func Open(backend, path string, logger *slog.Logger) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendBadger:
		return NewBadgerStore(BadgerConfig{Path: path, SyncWrites: true, Logger: logger})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
