package service

import (
	"context"

	"github.com/corebank/identity/models"
)

// LifecycleService orchestrates every state change of a user record:
// creation, partial edits, and activation toggles. It validates input,
// hashes secrets, and delegates persistence to the user repository, which
// keeps the audit trail atomic with each mutation. User records are never
// mutated through any other path.
type LifecycleService interface {
	CreateUser(ctx context.Context, request models.CreateUserRequest) (models.User, error)
	EditUser(ctx context.Context, loginID string, request models.UpdateUserRequest) (models.User, error)
	ActivateUser(ctx context.Context, loginID string) (models.User, error)
	DeactivateUser(ctx context.Context, loginID string) (models.User, error)
	ViewUser(ctx context.Context, loginID string) (models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	UserAudit(ctx context.Context, loginID string, limit int) ([]models.AuditEntry, error)
}

// VerificationService is the read-only authorization surface consumed by
// sibling services (Auth, Accounts, Transactions). It never mutates user
// rows.
type VerificationService interface {
	// VerifyCredentials checks a login id / secret pair. Missing user,
	// wrong secret and inactive account all produce the same uniform
	// invalid result; the distinction never crosses the API boundary.
	VerifyCredentials(ctx context.Context, loginID, secret string) (models.VerifyResponse, error)

	// GetRole returns role and activation state by surrogate id.
	GetRole(ctx context.Context, userID int64) (models.RoleStatusResponse, error)

	// GetStatus returns activation state and role by login id.
	GetStatus(ctx context.Context, loginID string) (models.RoleStatusResponse, error)

	// ValidateRole compares a user's role against a required one. A
	// mismatch is a regular response, not an error.
	ValidateRole(ctx context.Context, loginID string, requiredRole string) (models.ValidateRoleResponse, error)

	// BulkValidate partitions login ids into existing and missing users.
	BulkValidate(ctx context.Context, loginIDs []string) (models.BulkValidateResponse, error)
}
