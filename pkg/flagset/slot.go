package flagset

// entry is what the by-name index holds: a canonical slot or an alias.
type entry interface {
	// Resolve returns the current canonical flag value.
	Resolve() (Flag, bool)
	// DeclaredIn returns the declaring scope.
	DeclaredIn() string
}

// Slot holds the current value of one canonical flag.
// Slots are created by New and live as long as their Registry.
type Slot struct {
	scope string
	value Flag
}

var _ entry = (*Slot)(nil)

// Get returns the flag's current value.
func (s *Slot) Get() Flag {
	return s.value
}

// Resolve implements entry. A slot always resolves to itself.
func (s *Slot) Resolve() (Flag, bool) {
	return s.value, true
}

// DeclaredIn returns the scope that declared the flag.
func (s *Slot) DeclaredIn() string {
	return s.scope
}

// AliasSlot forwards every read to the flag named by its target.
// It has no value of its own.
type AliasSlot struct {
	registry *Registry
	name     string
	target   string
	scope    string
}

var _ entry = (*AliasSlot)(nil)

// Name returns the alias's lower-cased name.
func (a *AliasSlot) Name() string {
	return a.name
}

// Target returns the name the alias forwards to, as declared.
func (a *AliasSlot) Target() string {
	return a.target
}

// DeclaredIn returns the scope that declared the alias.
func (a *AliasSlot) DeclaredIn() string {
	return a.scope
}

// Get returns the target flag's current value, marked as read through this
// alias. It reports false when the target is not a registered canonical flag.
func (a *AliasSlot) Get() (Flag, bool) {
	slot, ok := a.registry.canonical(a.target)
	if !ok {
		return Flag{}, false
	}
	f := slot.Get()
	f.via = a.name
	return f, true
}

// Resolve implements entry.
func (a *AliasSlot) Resolve() (Flag, bool) {
	return a.Get()
}
