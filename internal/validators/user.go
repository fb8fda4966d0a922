package validators

import (
	"context"
	"fmt"
	"regexp"

	"github.com/corebank/identity/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldLoginID targets the unique login identifier.
	FieldLoginID = "login_id"

	// FieldDisplayName targets the human-readable display name.
	FieldDisplayName = "display_name"

	// FieldSecret targets the plaintext secret supplied at creation or
	// password change. The secret itself never leaves the validator.
	FieldSecret = "password"

	// FieldRole targets the authorization role value.
	FieldRole = "role"
)

// Login id structural limits.
const (
	loginIDMinLen = 3
	loginIDMaxLen = 50

	displayNameMinLen = 1
	displayNameMaxLen = 255

	secretMinLen = 8
)

var loginIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateLoginID checks length (3-50) and character set [A-Za-z0-9._-].
func ValidateLoginID(loginID string) error {
	if len(loginID) < loginIDMinLen || len(loginID) > loginIDMaxLen {
		return fmt.Errorf("%w: length must be %d-%d characters", ErrInvalidLoginID, loginIDMinLen, loginIDMaxLen)
	}

	if !loginIDPattern.MatchString(loginID) {
		return fmt.Errorf("%w: only letters, digits, '.', '-' and '_' are allowed", ErrInvalidLoginID)
	}

	return nil
}

// ValidateDisplayName checks length (1-255).
func ValidateDisplayName(displayName string) error {
	if len(displayName) < displayNameMinLen || len(displayName) > displayNameMaxLen {
		return fmt.Errorf("%w: display name must be %d-%d characters", ErrInvalidInput, displayNameMinLen, displayNameMaxLen)
	}

	return nil
}

// ValidateSecret checks the minimum secret length (8).
func ValidateSecret(secret string) error {
	if len(secret) < secretMinLen {
		return fmt.Errorf("%w: secret must be at least %d characters", ErrInvalidPassword, secretMinLen)
	}

	return nil
}

// ValidateRole checks membership in the closed role enumeration.
func ValidateRole(role string) error {
	if _, err := models.ParseRole(role); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRole, err)
	}

	return nil
}

// UserValidator implements the Validator interface for the user-facing
// request models: CreateUserRequest and UpdateUserRequest.
//
// It supports both value and pointer receivers for every model type and
// allows optional field-level scoping via variadic field name arguments.
// Checks run in a fixed order (login id, display name, secret, role) and the
// first failure short-circuits.
type UserValidator struct {
}

// NewUserValidator constructs a new UserValidator
// and returns it as the Validator interface.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of value.
func (v *UserValidator) Validate(ctx context.Context, value any, fields ...string) error {
	switch request := value.(type) {
	case models.CreateUserRequest:
		return v.validateCreate(request, fields...)
	case *models.CreateUserRequest:
		return v.validateCreate(*request, fields...)
	case models.UpdateUserRequest:
		return v.validateUpdate(request, fields...)
	case *models.UpdateUserRequest:
		return v.validateUpdate(*request, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
}

// validateCreate validates a CreateUserRequest. Without field scoping every
// field is checked; the role is only checked when supplied, since creation
// defaults it to CUSTOMER.
func (v *UserValidator) validateCreate(request models.CreateUserRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLoginID, FieldDisplayName, FieldSecret}
		if request.Role != "" {
			fields = append(fields, FieldRole)
		}
	}

	for _, field := range fields {
		var err error
		switch field {
		case FieldLoginID:
			err = ValidateLoginID(request.LoginID)
		case FieldDisplayName:
			err = ValidateDisplayName(request.DisplayName)
		case FieldSecret:
			err = ValidateSecret(request.Secret)
		case FieldRole:
			err = ValidateRole(request.Role)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownField, field)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// validateUpdate validates an UpdateUserRequest. Only supplied fields are
// checked; a request carrying no fields at all is rejected.
func (v *UserValidator) validateUpdate(request models.UpdateUserRequest, fields ...string) error {
	if request.Empty() {
		return ErrNoFieldsToUpdate
	}

	if len(fields) == 0 {
		if request.DisplayName != nil {
			fields = append(fields, FieldDisplayName)
		}
		if request.Secret != nil {
			fields = append(fields, FieldSecret)
		}
		if request.Role != nil {
			fields = append(fields, FieldRole)
		}
	}

	for _, field := range fields {
		var err error
		switch field {
		case FieldDisplayName:
			if request.DisplayName != nil {
				err = ValidateDisplayName(*request.DisplayName)
			}
		case FieldSecret:
			if request.Secret != nil {
				err = ValidateSecret(*request.Secret)
			}
		case FieldRole:
			if request.Role != nil {
				err = ValidateRole(*request.Role)
			}
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownField, field)
		}

		if err != nil {
			return err
		}
	}

	return nil
}
