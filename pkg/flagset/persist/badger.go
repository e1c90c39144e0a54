package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// badgerPrefix namespaces flag keys inside the database.
var badgerPrefix = []byte("flag/")

// BadgerConfig holds configuration for a BadgerStore.
type BadgerConfig struct {
	// Path is the directory for BadgerDB files.
	// Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger receives BadgerDB's internal logging.
	// If nil, BadgerDB's internal logging is disabled.
	Logger *slog.Logger
}

// BadgerStore persists flag documents to an embedded BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	mu     sync.RWMutex
	closed bool
}

// badgerRecord is the value stored under each flag key.
type badgerRecord struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Enabled  bool   `json:"enabled"`
	Position int    `json:"position"`
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// NewBadgerStore opens a BadgerDB-backed store.
func NewBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Name implements Store.
func (s *BadgerStore) Name() string {
	return BackendBadger
}

// Save implements Store. Keys from the previous document that are absent
// from doc are removed in the same transaction.
func (s *BadgerStore) Save(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		for _, key := range existingKeys(txn) {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		for i, rec := range doc.Records {
			value, err := json.Marshal(badgerRecord{
				Name:     rec.Name,
				ID:       rec.ID.String(),
				Enabled:  rec.Enabled,
				Position: i,
			})
			if err != nil {
				return err
			}
			key := append(append([]byte{}, badgerPrefix...), rec.Name...)
			if err := txn.Set(key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save flags: %w", err)
	}
	return nil
}

// existingKeys collects every flag key visible to txn.
func existingKeys(txn *badger.Txn) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = badgerPrefix

	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys
}

// Load implements Store.
func (s *BadgerStore) Load() (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Document{}, ErrStoreClosed
	}

	var stored []badgerRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = badgerPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var rec badgerRecord
			if err := json.Unmarshal(value, &rec); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			stored = append(stored, rec)
		}
		return nil
	})
	if err != nil {
		return Document{}, fmt.Errorf("load flags: %w", err)
	}
	if len(stored) == 0 {
		return Document{}, ErrNotFound
	}

	sort.Slice(stored, func(i, j int) bool {
		return stored[i].Position < stored[j].Position
	})

	doc := Document{Records: make([]Record, 0, len(stored))}
	for _, rec := range stored {
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			return Document{}, fmt.Errorf("flag %q: %w", rec.Name, err)
		}
		doc.Records = append(doc.Records, Record{Name: rec.Name, ID: id, Enabled: rec.Enabled})
	}
	return doc, nil
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
