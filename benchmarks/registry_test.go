package benchmarks

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/flagset/pkg/flagset"
	"github.com/randalmurphal/flagset/pkg/flagset/persist"
)

// declarations builds n flags plus one alias per ten flags.
func declarations(n int) []flagset.Declaration {
	decls := make([]flagset.Declaration, 0, n+n/10)
	for i := 0; i < n; i++ {
		decls = append(decls, flagset.Declare("bench.Scope", flagName(i)))
	}
	for i := 0; i < n; i += 10 {
		decls = append(decls, flagset.DeclareAlias("bench.Scope", "Legacy"+flagName(i), flagName(i)))
	}
	return decls
}

func flagName(i int) string {
	return fmt.Sprintf("Flag%04d", i)
}

func newRegistry(b *testing.B, n int, opts ...flagset.Option) *flagset.Registry {
	b.Helper()
	opts = append([]flagset.Option{flagset.WithLogger(nil)}, opts...)
	reg, err := flagset.New(declarations(n), opts...)
	if err != nil {
		b.Fatal(err)
	}
	return reg
}

// BenchmarkNew measures registration of flag sets of different sizes.
func BenchmarkNew(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		decls := declarations(n)
		b.Run(fmt.Sprintf("flags=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := flagset.New(decls, flagset.WithLogger(nil)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkIsEnabled measures lookups by name, by alias and by identifier.
func BenchmarkIsEnabled(b *testing.B) {
	reg := newRegistry(b, 1000)
	f, _ := reg.TryGet(flagName(500))

	b.Run("name", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = reg.IsEnabled("flag0500")
		}
	})

	b.Run("alias", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = reg.IsEnabled("LegacyFlag0500")
		}
	})

	b.Run("id", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = reg.IsEnabledByID(f.ID)
		}
	})

	b.Run("parallel", func(b *testing.B) {
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_ = reg.IsEnabled("flag0500")
			}
		})
	})
}

// BenchmarkTrySet_NoStore measures in-memory mutation.
func BenchmarkTrySet_NoStore(b *testing.B) {
	reg := newRegistry(b, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.TrySet(flagName(i%1000), i%2 == 0)
	}
}

// BenchmarkTrySet_Stores measures mutation including the save each set triggers.
func BenchmarkTrySet_Stores(b *testing.B) {
	stores := []struct {
		name string
		open func(b *testing.B) persist.Store
	}{
		{"memory", func(b *testing.B) persist.Store { return persist.NewMemoryStore() }},
		{"json", func(b *testing.B) persist.Store {
			s, err := persist.NewFileStore(filepath.Join(b.TempDir(), "experiments.json"))
			if err != nil {
				b.Fatal(err)
			}
			return s
		}},
		{"sqlite", func(b *testing.B) persist.Store {
			s, err := persist.NewSQLiteStore(filepath.Join(b.TempDir(), "flags.db"))
			if err != nil {
				b.Fatal(err)
			}
			return s
		}},
		{"badger", func(b *testing.B) persist.Store {
			s, err := persist.NewBadgerStore(persist.BadgerConfig{InMemory: true})
			if err != nil {
				b.Fatal(err)
			}
			return s
		}},
	}

	for _, st := range stores {
		b.Run(st.name, func(b *testing.B) {
			reg := newRegistry(b, 100, flagset.WithStore(st.open(b)))
			defer reg.Close()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				reg.TrySet(flagName(i%100), i%2 == 0)
			}
		})
	}
}
