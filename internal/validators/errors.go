package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput is the general structural failure, currently raised
	// for display names outside the 1-255 character range.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidLoginID is raised for login ids outside 3-50 characters or
	// containing characters beyond [A-Za-z0-9._-].
	ErrInvalidLoginID = errors.New("invalid login id")

	// ErrInvalidPassword is raised for secrets shorter than 8 characters.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidRole is raised for role values outside the closed
	// CUSTOMER/TELLER/ADMIN enumeration.
	ErrInvalidRole = errors.New("invalid role")

	// ErrNoFieldsToUpdate is raised for partial updates that supply no
	// fields at all.
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
)
