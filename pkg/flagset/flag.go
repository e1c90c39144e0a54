package flagset

import "github.com/google/uuid"

// Flag is the value of one experimental flag: its identity plus whether it
// is enabled. Flags are values; changing a flag produces a new Flag through
// With, and only the Registry rebinds a slot to that new value.
type Flag struct {
	// ID is derived from the declaring scope and declared name.
	ID uuid.UUID
	// Name is the flag's declared name, with its original casing.
	Name string
	// Enabled reports whether the flag is on.
	Enabled bool

	// via is the lower-cased alias name this value was resolved through,
	// or empty for a value read from the flag's own name or ID.
	via string
}

// With returns a copy of f with Enabled set to enabled.
// The copy has the same identity and is no longer marked as alias-derived.
func (f Flag) With(enabled bool) Flag {
	return Flag{ID: f.ID, Name: f.Name, Enabled: enabled}
}

// Alias returns the alias name f was resolved through, if any.
func (f Flag) Alias() (string, bool) {
	return f.via, f.via != ""
}

// IsEnabled reports whether the flag is on.
func (f Flag) IsEnabled() bool {
	return f.Enabled
}

// String returns the declared name.
func (f Flag) String() string {
	return f.Name
}
