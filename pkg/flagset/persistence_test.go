package flagset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/randalmurphal/flagset/pkg/flagset"
	"github.com/randalmurphal/flagset/pkg/flagset/identity"
	"github.com/randalmurphal/flagset/pkg/flagset/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore loads nothing and refuses every save.
type failingStore struct {
	saves int
}

func (s *failingStore) Load() (persist.Document, error) {
	return persist.Document{}, errors.New("backend unavailable")
}

func (s *failingStore) Save(persist.Document) error {
	s.saves++
	return errors.New("disk full")
}

func (s *failingStore) Name() string { return "failing" }
func (s *failingStore) Close() error { return nil }

type mutationCall struct {
	flag    string
	enabled bool
	ok      bool
}

type persistCall struct {
	op      string
	backend string
	err     error
}

// recordingMetrics captures every metrics call.
type recordingMetrics struct {
	mu        sync.Mutex
	mutations []mutationCall
	persists  []persistCall
}

func (m *recordingMetrics) RecordMutation(_ context.Context, flag string, enabled, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations = append(m.mutations, mutationCall{flag, enabled, ok})
}

func (m *recordingMetrics) RecordPersist(_ context.Context, op, backend string, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persists = append(m.persists, persistCall{op, backend, err})
}

func TestSave_EverySuccessfulSet(t *testing.T) {
	store := persist.NewMemoryStore()
	reg := newCore(t, flagset.WithStore(store))
	assert.Equal(t, 0, store.Saves(), "construction does not save")

	require.True(t, reg.Enable("FooBar"))
	assert.Equal(t, 1, store.Saves())

	require.True(t, reg.Enable("FooBar"))
	assert.Equal(t, 2, store.Saves(), "unchanged values are still saved")

	require.True(t, reg.Disable("LegacyFoo"))
	assert.Equal(t, 3, store.Saves())

	assert.False(t, reg.Enable("missing"))
	assert.False(t, reg.TrySetByID(uuid.New(), true))
	assert.Equal(t, 3, store.Saves(), "failed sets do not save")
}

func TestSave_DocumentExcludesAliases(t *testing.T) {
	store := persist.NewMemoryStore()
	reg := newCore(t, flagset.WithStore(store))
	require.True(t, reg.Enable("LegacyFoo"))

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []persist.Record{
		{Name: "FooBar", ID: identity.FlagID(coreScope, "FooBar"), Enabled: true},
		{Name: "Baz", ID: identity.FlagID(coreScope, "Baz"), Enabled: false},
	}, doc.Records)

	assert.Equal(t, doc, reg.Document())
}

func TestSave_FailureDoesNotAffectSet(t *testing.T) {
	store := &failingStore{}
	reg := newCore(t, flagset.WithStore(store))

	assert.True(t, reg.Enable("FooBar"))
	assert.True(t, reg.IsEnabled("FooBar"))
	assert.Equal(t, 1, store.saves)

	assert.NotPanics(t, reg.Save)
}

func TestSave_NoStore(t *testing.T) {
	reg := newCore(t)
	assert.NotPanics(t, reg.Save)
	assert.True(t, reg.Enable("FooBar"))
	assert.False(t, reg.Load())
	assert.NoError(t, reg.Close())
}

func TestLoad_RoundTripThroughFreshRegistry(t *testing.T) {
	store := persist.NewMemoryStore()

	first := newCore(t, flagset.WithStore(store))
	require.True(t, first.Enable("Baz"))
	require.True(t, first.Enable("LegacyFoo"))

	second := newCore(t, flagset.WithStore(store))
	assert.True(t, second.IsEnabled("Baz"))
	assert.True(t, second.IsEnabled("FooBar"))
	assert.True(t, second.IsEnabled("LegacyFoo"))
	assert.Equal(t, first.Flags(), second.Flags())
}

func TestLoad_RoundTripThroughFile(t *testing.T) {
	for _, name := range []string{"experiments.json", "experiments.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config", name)

			store, err := persist.NewFileStore(path)
			require.NoError(t, err)
			first := newCore(t, flagset.WithStore(store))
			require.True(t, first.Enable("FooBar"))
			require.NoError(t, first.Close())

			store, err = persist.NewFileStore(path)
			require.NoError(t, err)
			second := newCore(t, flagset.WithStore(store))
			defer second.Close()

			assert.True(t, second.IsEnabled("FooBar"))
			assert.False(t, second.IsEnabled("Baz"))
		})
	}
}

func TestLoad_SkipsAliasAndUnknownRecords(t *testing.T) {
	store := persist.NewMemoryStoreWith(persist.Document{Records: []persist.Record{
		{Name: "LegacyFoo", Enabled: true},
		{Name: "Retired", ID: uuid.New(), Enabled: true},
		{Name: "baz", ID: identity.FlagID(coreScope, "Baz"), Enabled: true},
	}})

	reg := newCore(t, flagset.WithStore(store))

	assert.False(t, reg.IsEnabled("FooBar"), "alias records are ignored")
	assert.True(t, reg.IsEnabled("Baz"), "names match case-insensitively")
	assert.Equal(t, 0, store.Saves(), "loading never saves")
}

func TestLoad_MismatchedIDAppliedByName(t *testing.T) {
	store := persist.NewMemoryStoreWith(persist.Document{Records: []persist.Record{
		{Name: "FooBar", ID: uuid.MustParse("11111111-1111-5111-8111-111111111111"), Enabled: true},
	}})

	reg := newCore(t, flagset.WithStore(store))

	f, ok := reg.TryGet("FooBar")
	require.True(t, ok)
	assert.True(t, f.Enabled)
	assert.Equal(t, identity.FlagID(coreScope, "FooBar"), f.ID, "the derived id wins")
}

func TestLoad_Failures(t *testing.T) {
	t.Run("nothing stored", func(t *testing.T) {
		reg := newCore(t, flagset.WithStore(persist.NewMemoryStore()))
		assert.False(t, reg.Load())
	})

	t.Run("missing file", func(t *testing.T) {
		store, err := persist.NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
		require.NoError(t, err)
		reg := newCore(t, flagset.WithStore(store))
		assert.False(t, reg.Load())
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "experiments.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"FooBar": {"enabled": tru`), 0o644))

		store, err := persist.NewFileStore(path)
		require.NoError(t, err)
		reg := newCore(t, flagset.WithStore(store))

		assert.False(t, reg.Load())
		assert.False(t, reg.IsEnabled("FooBar"))
	})

	t.Run("store error", func(t *testing.T) {
		reg := newCore(t, flagset.WithStore(&failingStore{}))
		assert.False(t, reg.Load())
	})
}

func TestLoad_ExplicitAfterAutoLoadDisabled(t *testing.T) {
	store := persist.NewMemoryStoreWith(persist.Document{Records: []persist.Record{
		{Name: "FooBar", Enabled: true},
	}})

	reg := newCore(t, flagset.WithStore(store), flagset.WithAutoLoad(false))
	assert.False(t, reg.IsEnabled("FooBar"))

	assert.True(t, reg.Load())
	assert.True(t, reg.IsEnabled("FooBar"))
}

func TestLoad_OverwritesInitialValues(t *testing.T) {
	store := persist.NewMemoryStoreWith(persist.Document{Records: []persist.Record{
		{Name: "On", Enabled: false},
	}})

	reg, err := flagset.New([]flagset.Declaration{
		flagset.DeclareEnabled("a", "On"),
		flagset.DeclareEnabled("a", "Untouched"),
	}, flagset.WithLogger(quietLogger()), flagset.WithStore(store))
	require.NoError(t, err)

	assert.False(t, reg.IsEnabled("On"))
	assert.True(t, reg.IsEnabled("Untouched"))
}

func TestMetrics(t *testing.T) {
	metrics := &recordingMetrics{}
	store := persist.NewMemoryStore()
	reg := newCore(t, flagset.WithStore(store), flagset.WithMetrics(metrics))

	require.True(t, reg.Enable("LegacyFoo"))
	require.False(t, reg.Disable("missing"))

	assert.Equal(t, []mutationCall{
		{flag: "foobar", enabled: true, ok: true},
		{flag: "missing", enabled: false, ok: false},
	}, metrics.mutations)

	require.Len(t, metrics.persists, 2)
	assert.Equal(t, "load", metrics.persists[0].op)
	assert.ErrorIs(t, metrics.persists[0].err, persist.ErrNotFound)
	assert.Equal(t, persistCall{op: "save", backend: persist.BackendMemory}, metrics.persists[1])
}

func TestOptions_NilValuesIgnored(t *testing.T) {
	reg, err := flagset.New(coreDeclarations(),
		flagset.WithLogger(nil),
		flagset.WithMetrics(nil),
		flagset.WithSpanManager(nil),
		flagset.WithStore(persist.NewMemoryStore()),
	)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		reg.Enable("FooBar")
		reg.Load()
	})
}
