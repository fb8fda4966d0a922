package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/corebank/identity/internal/logger"
	"github.com/corebank/identity/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles identity record persistence against the "users" table and keeps
// the audit trail in lockstep: every mutating method opens one transaction,
// applies the row change, appends the audit entry through the injected
// [AuditRepository], and commits — or rolls the whole thing back.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
	audit  AuditRepository
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection, audit recorder and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, audit AuditRepository, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		audit:  audit,
		logger: logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one users row. The stored role string is re-validated
// against the enumeration on every read.
func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var role string

	err := row.Scan(
		&user.UserID,
		&user.LoginID,
		&user.DisplayName,
		&user.CredentialHash,
		&role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.Role, err = models.ParseRole(role)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidStoredRole, err)
	}

	return user, nil
}

// Create persists a new user record and the CREATE audit entry in one
// transaction, returning the fully populated [models.User] with
// server-assigned fields (UserID, CreatedAt, UpdatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists]. The
//     uniqueness constraint, not a check-then-insert, closes the race
//     between concurrent creations.
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Audit write failure → the user INSERT is rolled back.
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error beginning transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, createUser, user.LoginID, user.DisplayName, user.CredentialHash, user.Role.String())

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Str("login_id", user.LoginID).Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	snapshot, err := created.Snapshot()
	if err != nil {
		return models.User{}, err
	}

	if _, err := r.audit.Record(ctx, tx, models.AuditEntry{
		UserID:  created.UserID,
		Action:  models.AuditActionCreate,
		NewData: snapshot,
	}); err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error recording audit entry, rolling back")
		return models.User{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error committing transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}

// GetByLoginID retrieves a user record by its unique login id.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) GetByLoginID(ctx context.Context, loginID string) (models.User, error) {
	return r.getOne(ctx, findUserByLoginID, loginID)
}

// GetByID retrieves a user record by its surrogate numeric id.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) GetByID(ctx context.Context, userID int64) (models.User, error) {
	return r.getOne(ctx, findUserByID, userID)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.getOne").Msg("error fetching user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// Update applies a partial update to the mutable user fields and records the
// UPDATE audit entry with before/after snapshots, all in one transaction.
//
// The pre-image is read with SELECT ... FOR UPDATE, which serializes
// concurrent mutations of the same row: the loser of a race blocks until the
// winner commits and then operates on the committed state.
func (r *userRepository) Update(ctx context.Context, loginID string, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.Empty() {
		return models.User{}, ErrNothingToUpdate
	}

	query, args, err := buildUserUpdateQuery(loginID, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error building update query")
		return models.User{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error beginning transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	old, err := scanUser(tx.QueryRowContext(ctx, lockUserByLoginID, loginID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.Update").Str("login_id", loginID).Msg("error locking user row")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	updated, err := scanUser(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Str("login_id", loginID).Msg("error updating user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := r.recordWithSnapshots(ctx, tx, models.AuditActionUpdate, old, updated); err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error recording audit entry, rolling back")
		return models.User{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error committing transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// SetActive flips the activation state of a user and records the matching
// ACTIVATE/INACTIVATE audit entry in one transaction.
//
// The current state is read under a row lock; a request for the state that
// already holds is rejected with [ErrUserAlreadyActive] or
// [ErrUserAlreadyInactive] so that of two racing toggles exactly one wins.
func (r *userRepository) SetActive(ctx context.Context, loginID string, active bool) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetActive").Msg("error beginning transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	old, err := scanUser(tx.QueryRowContext(ctx, lockUserByLoginID, loginID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.SetActive").Str("login_id", loginID).Msg("error locking user row")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if old.IsActive == active {
		if active {
			return models.User{}, ErrUserAlreadyActive
		}
		return models.User{}, ErrUserAlreadyInactive
	}

	updated, err := scanUser(tx.QueryRowContext(ctx, setUserActive, loginID, active))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetActive").Str("login_id", loginID).Msg("error updating activation state")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	action := models.AuditActionActivate
	if !active {
		action = models.AuditActionInactivate
	}

	if err := r.recordWithSnapshots(ctx, tx, action, old, updated); err != nil {
		log.Err(err).Str("func", "*userRepository.SetActive").Msg("error recording audit entry, rolling back")
		return models.User{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.SetActive").Msg("error committing transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// List returns users matching the filter in ascending user_id order.
func (r *userRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUserListQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.List").Msg("error building list query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.List").Msg("error executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.List").Msg("error scanning user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// BulkGet partitions the given login ids into found users and missing ids.
// Duplicated input ids are collapsed; every distinct id lands in exactly one
// of the two result sets.
func (r *userRepository) BulkGet(ctx context.Context, loginIDs []string) ([]models.User, []string, error) {
	log := logger.FromContext(ctx)

	if len(loginIDs) == 0 {
		return nil, nil, nil
	}

	query, args, err := buildBulkGetQuery(loginIDs)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.BulkGet").Msg("error building bulk query")
		return nil, nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.BulkGet").Msg("error executing bulk query")
		return nil, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	found := make(map[string]struct{}, len(loginIDs))
	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.BulkGet").Msg("error scanning user row")
			return nil, nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
		found[user.LoginID] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	var missing []string
	seen := make(map[string]struct{}, len(loginIDs))
	for _, loginID := range loginIDs {
		if _, ok := seen[loginID]; ok {
			continue
		}
		seen[loginID] = struct{}{}

		if _, ok := found[loginID]; !ok {
			missing = append(missing, loginID)
		}
	}

	return users, missing, nil
}

// recordWithSnapshots appends an audit entry carrying before/after snapshots
// of the mutated user. Runs against the caller's transaction.
func (r *userRepository) recordWithSnapshots(ctx context.Context, tx Querier, action models.AuditAction, old, updated models.User) error {
	oldSnapshot, err := old.Snapshot()
	if err != nil {
		return err
	}

	newSnapshot, err := updated.Snapshot()
	if err != nil {
		return err
	}

	_, err = r.audit.Record(ctx, tx, models.AuditEntry{
		UserID:  updated.UserID,
		Action:  action,
		OldData: oldSnapshot,
		NewData: newSnapshot,
	})

	return err
}
