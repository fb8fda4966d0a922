package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an attempt to create a user
	// fails because the login id is already taken. Enforced by the UNIQUE
	// constraint on users.login_id, so concurrent creations resolve to one
	// winner.
	ErrUserAlreadyExists = errors.New("login id already exists")

	// ErrUserNotFound is returned when a lookup or mutation targets a login
	// id or user id that does not exist in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyActive is returned when an activation targets a user
	// whose account is already active. The transition is rejected, not
	// silently accepted, so callers always observe the no-op.
	ErrUserAlreadyActive = errors.New("user is already active")

	// ErrUserAlreadyInactive is returned when a deactivation targets a user
	// whose account is already inactive.
	ErrUserAlreadyInactive = errors.New("user is already inactive")

	// ErrNothingToUpdate is returned when an update carries no field
	// changes at all.
	ErrNothingToUpdate = errors.New("no fields to update")

	// ErrInvalidStoredRole is returned when a role value read from the
	// database falls outside the closed enumeration. The stored
	// representation is never trusted.
	ErrInvalidStoredRole = errors.New("stored role is outside the enumeration")

	// ErrInvalidAuditAction is returned when an audit entry carries an
	// action outside the closed enumeration.
	ErrInvalidAuditAction = errors.New("invalid audit action")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan user row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan user rows")
)
