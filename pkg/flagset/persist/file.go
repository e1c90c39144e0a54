package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// FileStore keeps the document in a single JSON or YAML file.
// The format is chosen by extension: .json, .yaml or .yml.
//
// On disk the document is an object keyed by declared flag name:
//
//	{
//	  "FooBar": {
//	    "id": "5f0c...",
//	    "enabled": true
//	  }
//	}
type FileStore struct {
	path   string
	format string
	mu     sync.Mutex
	closed bool
}

// fileRecord is the on-disk shape of a Record.
type fileRecord struct {
	ID      string `json:"id" yaml:"id"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// NewFileStore creates a file store at path. An empty path means DefaultPath.
// The file itself is not touched until Load or Save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultPath
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return &FileStore{path: path, format: ext}, nil
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Name implements Store.
func (s *FileStore) Name() string {
	return BackendFile
}

// Load implements Store.
func (s *FileStore) Load() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Document{}, ErrStoreClosed
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	records := map[string]fileRecord{}
	if s.format == ".json" {
		err = json.Unmarshal(data, &records)
	} else {
		err = yaml.Unmarshal(data, &records)
	}
	if err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", s.path, err)
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := Document{Records: make([]Record, 0, len(names))}
	for _, name := range names {
		rec := Record{Name: name, Enabled: records[name].Enabled}
		if raw := records[name].ID; raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return Document{}, fmt.Errorf("decode %s: flag %q: %w", s.path, name, err)
			}
			rec.ID = id
		}
		doc.Records = append(doc.Records, rec)
	}
	return doc, nil
}

// Save implements Store. The parent directory is created if missing and the
// file is replaced atomically.
func (s *FileStore) Save(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	records := make(map[string]fileRecord, len(doc.Records))
	for _, rec := range doc.Records {
		records[rec.Name] = fileRecord{ID: rec.ID.String(), Enabled: rec.Enabled}
	}

	data, err := s.encode(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// encode renders records with two-space indentation. Both encoders sort map
// keys, so output is stable.
func (s *FileStore) encode(records map[string]fileRecord) ([]byte, error) {
	if s.format == ".json" {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
