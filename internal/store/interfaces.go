package store

import (
	"context"
	"database/sql"

	"github.com/corebank/identity/models"
)

// UserRepository is the storage contract for identity records. Every
// mutating method executes the user change and its audit entry inside one
// transaction: either both commit or neither does. Mutations on the same
// row serialize through a row lock, so at most one of two concurrent
// conflicting transitions wins and the loser observes a well-defined
// rejection.
type UserRepository interface {
	// Create persists a new user and the CREATE audit entry. Fails with
	// ErrUserAlreadyExists if the login id collides.
	Create(ctx context.Context, user models.User) (models.User, error)

	// GetByLoginID returns the user with the given login id or
	// ErrUserNotFound.
	GetByLoginID(ctx context.Context, loginID string) (models.User, error)

	// GetByID returns the user with the given surrogate id or
	// ErrUserNotFound.
	GetByID(ctx context.Context, userID int64) (models.User, error)

	// Update applies a partial update (display name, credential hash,
	// role), refreshes updated_at, and records the UPDATE audit entry with
	// before/after snapshots. Fails with ErrUserNotFound if absent.
	Update(ctx context.Context, loginID string, update models.UserUpdate) (models.User, error)

	// SetActive flips the activation state and records the
	// ACTIVATE/INACTIVATE audit entry. Fails with ErrUserAlreadyActive or
	// ErrUserAlreadyInactive when the requested state already holds.
	SetActive(ctx context.Context, loginID string, active bool) (models.User, error)

	// List returns users matching the filter in ascending user_id order,
	// bounded by filter.Limit.
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)

	// BulkGet partitions the given login ids into found users and missing
	// ids. Every input id lands in exactly one of the two sets.
	BulkGet(ctx context.Context, loginIDs []string) ([]models.User, []string, error)
}

// AuditRepository appends and reads the immutable audit trail. Record runs
// against the Querier it is handed, so a user mutation and its audit entry
// share one transaction.
type AuditRepository interface {
	// Record appends one audit entry and returns it with server-assigned
	// fields (AuditID, CreatedAt) populated.
	Record(ctx context.Context, q Querier, entry models.AuditEntry) (models.AuditEntry, error)

	// ListByUserID returns the audit entries for a user in ascending
	// audit_id order, bounded by limit.
	ListByUserID(ctx context.Context, userID int64, limit int) ([]models.AuditEntry, error)
}

// Querier is the subset of database operations Record needs; both *sql.DB
// and *sql.Tx satisfy it.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
