package config

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/flagset/pkg/flagset"
)

// DefaultScope applies when neither an entry nor the document names a scope.
const DefaultScope = "config"

// ErrNoFlags is returned by Declarations when cfg has no flags list.
var ErrNoFlags = errors.New("config has no flags list")

// flagEntry is one item of the flags list.
type flagEntry struct {
	Name    string `validate:"required"`
	Scope   string `validate:"required"`
	AliasOf string
	Enabled bool `validate:"excluded_with=AliasOf"`
}

// Declarations reads the flags list of cfg:
//
//	scope: experiments.Core
//	flags:
//	  - name: FooBar
//	  - name: Baz
//	    enabled: true
//	  - name: LegacyFoo
//	    alias_of: FooBar
//	  - name: Other
//	    scope: experiments.Server
//
// An entry without a scope uses the top-level scope, or DefaultScope.
// Entries with alias_of declare aliases and cannot set enabled. Name
// collisions are not checked here; flagset.New reports them.
func Declarations(cfg Config) ([]flagset.Declaration, error) {
	items, ok := cfg.List("flags")
	if !ok {
		return nil, ErrNoFlags
	}
	scope := cfg.String("scope", DefaultScope)

	decls := make([]flagset.Declaration, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("flags[%d]: expected a mapping, got %T", i, item)
		}
		raw := New(m)
		e := flagEntry{
			Name:    raw.String("name", ""),
			Scope:   raw.String("scope", scope),
			AliasOf: raw.String("alias_of", ""),
			Enabled: raw.Bool("enabled", false),
		}
		if err := settingsValidate.Struct(e); err != nil {
			return nil, fmt.Errorf("flags[%d]: %w", i, err)
		}

		switch {
		case e.AliasOf != "":
			decls = append(decls, flagset.DeclareAlias(e.Scope, e.Name, e.AliasOf))
		case e.Enabled:
			decls = append(decls, flagset.DeclareEnabled(e.Scope, e.Name))
		default:
			decls = append(decls, flagset.Declare(e.Scope, e.Name))
		}
	}
	return decls, nil
}
