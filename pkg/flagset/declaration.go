package flagset

import (
	"fmt"
	"strings"
)

// Kind distinguishes real flags from aliases in a declaration list.
type Kind int

const (
	// KindFlag declares a canonical flag with its own identity and value.
	KindFlag Kind = iota

	// KindAlias declares a name that forwards to another flag.
	KindAlias
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindAlias:
		return "alias"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Declaration describes one slot of a flag set.
//
// A flag set is an ordered list of declarations, usually a package-level
// table:
//
//	var coreFlags = []flagset.Declaration{
//	    flagset.Declare("experiments.Core", "FooBar"),
//	    flagset.Declare("experiments.Core", "Baz"),
//	    flagset.DeclareAlias("experiments.Core", "LegacyFoo", "FooBar"),
//	}
type Declaration struct {
	// Kind is KindFlag or KindAlias.
	Kind Kind
	// Scope names the declaring type or module. It seeds the flag's
	// identifier namespace and is reported in registration errors.
	Scope string
	// Name is the declared name. Lookups ignore case.
	Name string
	// Target is the name an alias forwards to. Empty for flags.
	Target string
	// Initial is a flag's value before anything is loaded.
	Initial bool
}

// Declare declares a flag that starts disabled.
func Declare(scope, name string) Declaration {
	return Declaration{Kind: KindFlag, Scope: scope, Name: name}
}

// DeclareEnabled declares a flag that starts enabled.
func DeclareEnabled(scope, name string) Declaration {
	return Declaration{Kind: KindFlag, Scope: scope, Name: name, Initial: true}
}

// DeclareAlias declares name as an alias of target.
func DeclareAlias(scope, name, target string) Declaration {
	return Declaration{Kind: KindAlias, Scope: scope, Name: name, Target: target}
}

// validate checks the fields registration depends on.
func (d Declaration) validate() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return fmt.Errorf("%w: %s in %q has no name", ErrInvalidDeclaration, d.Kind, d.Scope)
	case strings.TrimSpace(d.Scope) == "":
		return fmt.Errorf("%w: %s %q has no scope", ErrInvalidDeclaration, d.Kind, d.Name)
	case d.Kind == KindAlias && strings.TrimSpace(d.Target) == "":
		return fmt.Errorf("%w: alias %q in %q has no target", ErrInvalidDeclaration, d.Name, d.Scope)
	case d.Kind != KindFlag && d.Kind != KindAlias:
		return fmt.Errorf("%w: %q in %q has unknown kind %s", ErrInvalidDeclaration, d.Name, d.Scope, d.Kind)
	}
	return nil
}

// normalize lower-cases a name for the by-name index.
func normalize(name string) string {
	return strings.ToLower(name)
}
