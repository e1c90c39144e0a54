package persist_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/randalmurphal/flagset/pkg/flagset/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileStore_DefaultPath(t *testing.T) {
	store, err := persist.NewFileStore("")
	require.NoError(t, err)
	assert.Equal(t, persist.DefaultPath, store.Path())
}

func TestNewFileStore_UnsupportedExtension(t *testing.T) {
	_, err := persist.NewFileStore("flags.toml")
	assert.ErrorIs(t, err, persist.ErrUnsupportedFormat)
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources", "config", "experiments.json")
	store, err := persist.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(sampleDocument()))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_JSONLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	store, err := persist.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(sampleDocument()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `{
  "Baz": {
    "id": "22222222-2222-5222-8222-222222222222",
    "enabled": false
  },
  "FooBar": {
    "id": "11111111-1111-5111-8111-111111111111",
    "enabled": true
  }
}
`
	assert.Equal(t, want, string(data))
}

func TestFileStore_YAMLLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.yml")
	store, err := persist.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(sampleDocument()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `Baz:
  id: 22222222-2222-5222-8222-222222222222
  enabled: false
FooBar:
  id: 11111111-1111-5111-8111-111111111111
  enabled: true
`
	assert.Equal(t, want, string(data))
}

func TestFileStore_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"invalid json", "flags.json", `{"FooBar": `},
		{"wrong json shape", "flags.json", `["FooBar"]`},
		{"invalid yaml", "flags.yaml", "FooBar: [unclosed"},
		{"bad id", "flags.json", `{"FooBar": {"id": "not-a-uuid", "enabled": true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			store, err := persist.NewFileStore(path)
			require.NoError(t, err)

			_, err = store.Load()
			assert.Error(t, err)
			assert.NotErrorIs(t, err, persist.ErrNotFound)
		})
	}
}

func TestFileStore_MissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"FooBar": {"enabled": true}}`), 0o644))

	store, err := persist.NewFileStore(path)
	require.NoError(t, err)

	doc, err := store.Load()
	require.NoError(t, err)
	require.Len(t, doc.Records, 1)
	assert.Equal(t, "FooBar", doc.Records[0].Name)
	assert.True(t, doc.Records[0].Enabled)
	assert.Equal(t, uuid.Nil, doc.Records[0].ID)
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	store, err := persist.NewFileStore(filepath.Join(dir, "flags.json"))
	require.NoError(t, err)

	for range 3 {
		require.NoError(t, store.Save(sampleDocument()))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "flags.json", entries[0].Name())
}

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "flags.db")

	store1, err := persist.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.Save(sampleDocument()))
	require.NoError(t, store1.Close())

	// Second store instance (reopening the database)
	store2, err := persist.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	doc, err := store2.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleDocument(), doc)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := persist.NewSQLiteStore("/nonexistent/path/db.sqlite")
	assert.Error(t, err)
}

func TestBadgerStore_Persistence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")

	store1, err := persist.NewBadgerStore(persist.BadgerConfig{Path: dir})
	require.NoError(t, err)
	require.NoError(t, store1.Save(sampleDocument()))
	require.NoError(t, store1.Close())

	store2, err := persist.NewBadgerStore(persist.BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer store2.Close()

	doc, err := store2.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleDocument(), doc)
}

func TestBadgerStore_RequiresPath(t *testing.T) {
	_, err := persist.NewBadgerStore(persist.BadgerConfig{})
	assert.Error(t, err)
}
