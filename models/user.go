package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role is the coarse-grained authorization tier assigned to a user.
// It is a closed enumeration: any value outside the declared constants is
// rejected at every boundary crossing (request parsing and database reads).
type Role string

const (
	// RoleCustomer is the default role assigned at account creation.
	RoleCustomer Role = "CUSTOMER"

	// RoleTeller marks bank employees operating on customer accounts.
	RoleTeller Role = "TELLER"

	// RoleAdmin marks platform administrators.
	RoleAdmin Role = "ADMIN"
)

// Roles lists every member of the role enumeration.
var Roles = []Role{RoleCustomer, RoleTeller, RoleAdmin}

// ParseRole converts a raw string into a [Role], rejecting anything outside
// the enumeration. Storage reads and request decoding must go through this
// function rather than casting.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}

	return role, nil
}

// Valid reports whether the role is a member of the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleTeller, RoleAdmin:
		return true
	}

	return false
}

func (r Role) String() string {
	return string(r)
}

// User represents an identity record of the banking platform.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the surrogate unique identifier assigned by the database
	// at creation. Immutable.
	UserID int64 `json:"user_id"`

	// LoginID is the user-chosen unique login identifier.
	// Case-sensitive, immutable after creation.
	LoginID string `json:"login_id"`

	// DisplayName is the human-readable name of the user.
	// It is non-sensitive and may be shown in UI.
	DisplayName string `json:"display_name"`

	// CredentialHash stores the salted one-way hash of the user's secret.
	// This value MUST be a derived value (bcrypt output), never plaintext.
	// It is never serialized outward.
	CredentialHash string `json:"-"`

	// Role is the authorization tier of the user. Defaults to CUSTOMER.
	Role Role `json:"role"`

	// IsActive reports whether the account currently accepts logins.
	// Deactivation is the only removal semantics; rows are never deleted.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the account was created. Immutable.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed by the database on every mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Snapshot serializes the user for audit trail storage. The JSON encoding of
// [User] omits CredentialHash, so snapshots are credential-free by
// construction.
func (u User) Snapshot() (json.RawMessage, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("error building user snapshot: %w", err)
	}

	return data, nil
}

// Summary trims the user down to the fields sibling services need for
// authorization decisions.
func (u User) Summary() UserSummary {
	return UserSummary{
		UserID:   u.UserID,
		LoginID:  u.LoginID,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

// UserSummary is the compact user representation returned by bulk
// validation.
type UserSummary struct {
	UserID   int64  `json:"user_id"`
	LoginID  string `json:"login_id"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"is_active"`
}

// UserUpdate describes a partial update of the mutable user fields.
// Nil fields are left unchanged.
type UserUpdate struct {
	DisplayName    *string
	CredentialHash *string
	Role           *Role
}

// Empty reports whether the update carries no field changes.
func (u UserUpdate) Empty() bool {
	return u.DisplayName == nil && u.CredentialHash == nil && u.Role == nil
}

// UserFilter narrows a user listing. Nil filters match everything;
// Limit bounds the result size (0 means the service default applies).
type UserFilter struct {
	Role     *Role
	IsActive *bool
	Limit    int
}
