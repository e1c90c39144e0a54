// Package persist provides storage backends for flag state.
//
// A Store holds one Document per flag set: the enabled state of every
// canonical flag, keyed by its declared name. Aliases are never stored.
package persist

import (
	"errors"

	"github.com/google/uuid"
)

// Store persists flag documents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Load retrieves the stored document.
	// Returns ErrNotFound if nothing has been saved yet.
	Load() (Document, error)

	// Save replaces the stored document.
	Save(doc Document) error

	// Name identifies the backend in logs and metrics.
	Name() string

	// Close releases any resources (connections, files).
	Close() error
}

// Record is the persisted state of one canonical flag.
type Record struct {
	Name    string
	ID      uuid.UUID
	Enabled bool
}

// Document is the persisted state of a flag set, in declaration order.
type Document struct {
	Records []Record
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d.Records == nil {
		return Document{}
	}
	records := make([]Record, len(d.Records))
	copy(records, d.Records)
	return Document{Records: records}
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// DefaultPath is where the file store keeps its document unless told otherwise.
const DefaultPath = "resources/config/experiments.json"

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no document has been stored.
	ErrNotFound = errors.New("flag document not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("flag store closed")

	// ErrUnsupportedFormat indicates a file extension the file store cannot encode.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrUnknownBackend indicates Open was given a backend name it does not know.
	ErrUnknownBackend = errors.New("unknown store backend")
)
