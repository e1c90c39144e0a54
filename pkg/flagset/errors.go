package flagset

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry construction. Nothing after construction
// returns an error; runtime failures are reported as false.
var (
	// ErrDuplicateName indicates two declarations share a case-insensitive name.
	ErrDuplicateName = errors.New("duplicate flag name")

	// ErrInvalidDeclaration indicates a declaration is missing a required field.
	ErrInvalidDeclaration = errors.New("invalid flag declaration")
)

// RegistrationError reports a name collision found while registering.
type RegistrationError struct {
	// Kind is the kind of the declaration that collided.
	Kind Kind
	// Name is the lower-cased name both declarations share.
	Name string
	// Scope declared the rejected entry.
	Scope string
	// ExistingScope declared the entry that was registered first.
	ExistingScope string
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("cannot add %s %q in %q: a flag with that name is already defined in %q",
		e.Kind, e.Name, e.Scope, e.ExistingScope)
}

// Unwrap returns ErrDuplicateName for errors.Is support.
func (e *RegistrationError) Unwrap() error {
	return ErrDuplicateName
}
