/*
Package config reads flag set declarations and process settings from YAML
or JSON files.

# Overview

Flag sets are normally declared in code. Tools such as flagctl, which have no
compiled-in flag set, read the declarations from a config file instead, along
with where flag state is stored:

	scope: experiments.Core
	store:
	  backend: sqlite
	  path: state/flags.db
	log_level: debug
	flags:
	  - name: FooBar
	  - name: Baz
	  - name: LegacyFoo
	    alias_of: FooBar

# Basic Usage

	cfg, err := config.FromFile("flags.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	settings, err := config.SettingsFrom(cfg)
	if err != nil {
	    log.Fatal(err)
	}
	decls, err := config.Declarations(cfg)
	if err != nil {
	    log.Fatal(err)
	}

	store, err := settings.OpenStore(logger)
	if err != nil {
	    log.Fatal(err)
	}
	reg, err := flagset.New(decls, settings.RegistryOptions(store, logger)...)

# Accessors

Config wraps the decoded map. String and Bool return the supplied default
when a key is missing or has the wrong type; Section and List report whether
the key held a mapping or a sequence.

# Validation

Settings and flag entries are checked with go-playground/validator. Invalid
values are returned as validator.ValidationErrors wrapped with context.
*/
package config
