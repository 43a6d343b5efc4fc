package note

import "errors"

var (
	// ErrInvalidInput indicates invalid note input.
	ErrInvalidInput = errors.New("invalid note input")
	// ErrTypeRestricted indicates the note type needs a plan with the
	// rich-notes entitlement.
	ErrTypeRestricted = errors.New("note type requires rich notes entitlement")
)
