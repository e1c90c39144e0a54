package identity_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/randalmurphal/flagset/pkg/flagset/identity"
	"github.com/stretchr/testify/assert"
)

func TestFlagID_Deterministic(t *testing.T) {
	first := identity.FlagID("experiments.Core", "FooBar")
	for range 10 {
		assert.Equal(t, first, identity.FlagID("experiments.Core", "FooBar"))
	}
}

func TestFlagID_IsVersion5(t *testing.T) {
	id := identity.FlagID("experiments.Core", "FooBar")
	assert.Equal(t, uuid.Version(5), id.Version())
	assert.Equal(t, uuid.RFC4122, id.Variant())
}

func TestFlagID_MatchesDerivation(t *testing.T) {
	ns := uuid.NewSHA1(identity.RootNamespace, []byte("experiments.Core"))
	want := uuid.NewSHA1(ns, []byte("FooBar"))

	assert.Equal(t, ns, identity.ScopeNamespace("experiments.Core"))
	assert.Equal(t, want, identity.FlagID("experiments.Core", "FooBar"))
}

func TestFlagID_Distinct(t *testing.T) {
	tests := []struct {
		name          string
		scopeA, nameA string
		scopeB, nameB string
	}{
		{"same name different scope", "a", "Baz", "b", "Baz"},
		{"different name same scope", "a", "Foo", "a", "Bar"},
		{"case differs", "a", "FooBar", "a", "foobar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t,
				identity.FlagID(tt.scopeA, tt.nameA),
				identity.FlagID(tt.scopeB, tt.nameB))
		})
	}
}

func TestRootNamespace(t *testing.T) {
	assert.Equal(t, "c68012b3-d666-4204-84eb-4976f2b570ab", identity.RootNamespace.String())
}
