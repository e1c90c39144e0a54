/*
Package flagset provides a registry of experimental feature flags.

# Overview

A flag set is a fixed list of boolean flags declared in code. Each flag has a
declared name, looked up case-insensitively, and a UUID derived from its
declaring scope and name, so identifiers are the same in every process and
can be stored or passed around instead of names. A flag set may also declare
aliases: extra names that forward every read and write to another flag.

# Basic Usage

Declare the flags once and build a Registry during start-up:

	var experiments = []flagset.Declaration{
	    flagset.Declare("experiments.Core", "FooBar"),
	    flagset.Declare("experiments.Core", "Baz"),
	    flagset.DeclareAlias("experiments.Core", "LegacyFoo", "FooBar"),
	}

	store, err := persist.NewFileStore(persist.DefaultPath)
	if err != nil {
	    log.Fatal(err)
	}
	reg, err := flagset.New(experiments, flagset.WithStore(store))
	if err != nil {
	    log.Fatal(err) // duplicate or invalid declaration
	}

	reg.Enable("LegacyFoo")   // enables FooBar
	reg.IsEnabled("foobar")   // true

Pass the Registry to whatever needs flag checks; there is no global instance.

# Failure Model

Only construction can fail. Two declarations with the same case-insensitive
name, whether flags or aliases and whatever their scopes, make New return a
*RegistrationError. After that every operation reports success as a bool:
unknown names and identifiers, aliases whose target does not exist, and
missing or unreadable persisted state all yield false and leave flag values
untouched. Save failures are logged and do not undo the in-memory change.

# Persistence

With a store configured, New loads persisted state after registration and
every successful set saves the whole flag set. Aliases are never written;
persisted entries that name an alias are ignored on load. See package
persist for the available backends.

# Thread Safety

The indices are built in New and never modified afterwards, so concurrent
lookups are safe. Setting a flag is not synchronized with lookups or with
other sets: callers that set flags while other goroutines use the Registry
must provide their own mutual exclusion.
*/
package flagset
