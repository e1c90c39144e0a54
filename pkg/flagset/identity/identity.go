// Package identity derives stable flag identifiers.
//
// Identifiers are name-based (UUIDv5) so the same (scope, name) pair yields
// the same UUID in every process and every build. Each declaring scope gets
// its own namespace derived from RootNamespace, which keeps identically named
// flags in different scopes apart in the identifier space.
//
//	id := identity.FlagID("experiments.Core", "FooBar")
package identity

import "github.com/google/uuid"

// RootNamespace seeds every scope namespace.
var RootNamespace = uuid.MustParse("c68012b3-d666-4204-84eb-4976f2b570ab")

// ScopeNamespace returns the namespace UUID for flags declared in scope.
func ScopeNamespace(scope string) uuid.UUID {
	return uuid.NewSHA1(RootNamespace, []byte(scope))
}

// FlagID returns the identifier for the flag declared as name in scope.
// The name is used exactly as declared; callers must not lower-case it.
func FlagID(scope, name string) uuid.UUID {
	return uuid.NewSHA1(ScopeNamespace(scope), []byte(name))
}
