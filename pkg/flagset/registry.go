package flagset

import (
	"strings"

	"github.com/google/uuid"
	"github.com/randalmurphal/flagset/pkg/flagset/identity"
	"github.com/randalmurphal/flagset/pkg/flagset/index"
	"github.com/randalmurphal/flagset/pkg/flagset/observability"
)

// Registry indexes the slots of one flag set by name and by identifier.
//
// Names share one case-insensitive namespace across flags and aliases.
// Only canonical flags have identifiers.
type Registry struct {
	byID   *index.Index[uuid.UUID, *Slot]
	byName *index.Index[string, entry]
	cfg    registryConfig
}

// New registers decls and, when a store is configured, loads persisted state.
//
// Registration fails on the first invalid declaration or name collision and
// no Registry is returned. A collision is reported as a *RegistrationError
// wrapping ErrDuplicateName.
func New(decls []Declaration, opts ...Option) (*Registry, error) {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{
		byID:   index.New[uuid.UUID, *Slot](),
		byName: index.New[string, entry](),
		cfg:    cfg,
	}
	if err := r.registerAll(decls); err != nil {
		return nil, err
	}

	if cfg.store != nil && cfg.autoLoad {
		r.Load()
	}
	return r, nil
}

// MustNew is like New but panics if registration fails. Use it for flag sets
// declared in code, where a collision is a programming error.
func MustNew(decls []Declaration, opts ...Option) *Registry {
	r, err := New(decls, opts...)
	if err != nil {
		panic("flagset: " + err.Error())
	}
	return r
}

// registerAll runs once, from New. Flags are registered before aliases so an
// alias can be checked against the complete set of canonical flags.
func (r *Registry) registerAll(decls []Declaration) error {
	var aliases []Declaration
	for _, d := range decls {
		if err := d.validate(); err != nil {
			return err
		}
		if d.Kind == KindAlias {
			aliases = append(aliases, d)
			continue
		}

		name := normalize(d.Name)
		slot := &Slot{
			scope: d.Scope,
			value: Flag{
				ID:      identity.FlagID(d.Scope, d.Name),
				Name:    d.Name,
				Enabled: d.Initial,
			},
		}
		if err := r.checkUnique(KindFlag, name, d.Scope); err != nil {
			return err
		}
		r.byID.Add(slot.value.ID, slot)
		r.byName.Add(name, slot)
	}

	for _, d := range aliases {
		name := normalize(d.Name)
		alias := &AliasSlot{registry: r, name: name, target: d.Target, scope: d.Scope}
		if err := r.checkUnique(KindAlias, name, d.Scope); err != nil {
			return err
		}
		r.byName.Add(name, alias)
	}

	// Targets resolve lazily; a missing one is a runtime miss, not a
	// registration failure.
	for _, d := range aliases {
		if _, ok := r.canonical(d.Target); !ok {
			observability.LogDanglingAlias(r.cfg.logger, normalize(d.Name), d.Target, d.Scope)
		}
	}

	observability.LogRegistered(r.cfg.logger, r.byID.Len(), len(aliases))
	return nil
}

func (r *Registry) checkUnique(kind Kind, name, scope string) error {
	existing, ok := r.byName.Get(name)
	if !ok {
		return nil
	}
	return &RegistrationError{
		Kind:          kind,
		Name:          name,
		Scope:         scope,
		ExistingScope: existing.DeclaredIn(),
	}
}

// lookup finds a flag or alias by case-insensitive name. Blank names never match.
func (r *Registry) lookup(name string) (entry, bool) {
	if strings.TrimSpace(name) == "" {
		return nil, false
	}
	return r.byName.Get(normalize(name))
}

// canonical finds the slot of a real flag by name. Aliases are not followed.
func (r *Registry) canonical(name string) (*Slot, bool) {
	e, ok := r.lookup(name)
	if !ok {
		return nil, false
	}
	slot, ok := e.(*Slot)
	return slot, ok
}

// IsEnabled reports whether the flag or alias called name resolves to an
// enabled flag.
func (r *Registry) IsEnabled(name string) bool {
	f, ok := r.TryGet(name)
	return ok && f.Enabled
}

// IsEnabledByID reports whether the flag with identifier id is enabled.
func (r *Registry) IsEnabledByID(id uuid.UUID) bool {
	f, ok := r.TryGetByID(id)
	return ok && f.Enabled
}

// TryGet returns the current value of the flag or alias called name.
// A value read through an alias is marked as such; see Flag.Alias.
func (r *Registry) TryGet(name string) (Flag, bool) {
	e, ok := r.lookup(name)
	if !ok {
		return Flag{}, false
	}
	return e.Resolve()
}

// TryGetByID returns the current value of the flag with identifier id.
func (r *Registry) TryGetByID(id uuid.UUID) (Flag, bool) {
	slot, ok := r.byID.Get(id)
	if !ok {
		return Flag{}, false
	}
	return slot.Get(), true
}

// Slot returns the slot of the canonical flag called name.
func (r *Registry) Slot(name string) (*Slot, bool) {
	return r.canonical(name)
}

// Alias returns the alias called name.
func (r *Registry) Alias(name string) (*AliasSlot, bool) {
	e, ok := r.lookup(name)
	if !ok {
		return nil, false
	}
	alias, ok := e.(*AliasSlot)
	return alias, ok
}

// TrySet sets the flag or alias called name. Setting an alias sets its
// target. It returns false, changing nothing, if name is unknown or is an
// alias whose target does not exist.
func (r *Registry) TrySet(name string, enabled bool) bool {
	e, ok := r.lookup(name)
	if !ok {
		r.recordMutation(name, enabled, false)
		return false
	}

	switch e := e.(type) {
	case *Slot:
		return r.set(e, enabled)
	case *AliasSlot:
		f, ok := e.Get()
		if !ok {
			r.recordMutation(name, enabled, false)
			return false
		}
		return r.TrySetFlag(f, enabled)
	}
	return false
}

// TrySetByID sets the flag with identifier id.
func (r *Registry) TrySetByID(id uuid.UUID, enabled bool) bool {
	slot, ok := r.byID.Get(id)
	if !ok {
		r.recordMutation(id.String(), enabled, false)
		return false
	}
	return r.set(slot, enabled)
}

// TrySetFlag sets the flag f refers to. If f was read through an alias, the
// alias is resolved again first so the write lands on the current canonical
// flag; it fails if the alias no longer resolves.
func (r *Registry) TrySetFlag(f Flag, enabled bool) bool {
	if aliasName, ok := f.Alias(); ok {
		alias, ok := r.Alias(aliasName)
		if !ok {
			r.recordMutation(aliasName, enabled, false)
			return false
		}
		target, ok := r.canonical(alias.Target())
		if !ok {
			r.recordMutation(aliasName, enabled, false)
			return false
		}
		f = target.Get()
	}

	slot, ok := r.byID.Get(f.ID)
	if !ok {
		r.recordMutation(f.Name, enabled, false)
		return false
	}
	return r.set(slot, enabled)
}

// set rebinds slot to a new value and persists.
func (r *Registry) set(slot *Slot, enabled bool) bool {
	slot.value = slot.value.With(enabled)

	observability.LogFlagChanged(r.cfg.logger, slot.value.Name, slot.value.ID, enabled)
	r.recordMutation(normalize(slot.value.Name), enabled, true)

	r.Save()
	return true
}

// Enable is TrySet(name, true).
func (r *Registry) Enable(name string) bool { return r.TrySet(name, true) }

// Disable is TrySet(name, false).
func (r *Registry) Disable(name string) bool { return r.TrySet(name, false) }

// EnableByID is TrySetByID(id, true).
func (r *Registry) EnableByID(id uuid.UUID) bool { return r.TrySetByID(id, true) }

// DisableByID is TrySetByID(id, false).
func (r *Registry) DisableByID(id uuid.UUID) bool { return r.TrySetByID(id, false) }

// EnableFlag is TrySetFlag(f, true).
func (r *Registry) EnableFlag(f Flag) bool { return r.TrySetFlag(f, true) }

// DisableFlag is TrySetFlag(f, false).
func (r *Registry) DisableFlag(f Flag) bool { return r.TrySetFlag(f, false) }

// Flags returns the current value of every canonical flag in declaration order.
func (r *Registry) Flags() []Flag {
	flags := make([]Flag, 0, r.byID.Len())
	r.byID.Range(func(_ uuid.UUID, slot *Slot) bool {
		flags = append(flags, slot.Get())
		return true
	})
	return flags
}

// Aliases maps each alias name (lower-cased) to its declared target.
func (r *Registry) Aliases() map[string]string {
	aliases := make(map[string]string)
	r.byName.Range(func(name string, e entry) bool {
		if alias, ok := e.(*AliasSlot); ok {
			aliases[name] = alias.Target()
		}
		return true
	})
	return aliases
}

// Len returns the number of canonical flags.
func (r *Registry) Len() int {
	return r.byID.Len()
}
