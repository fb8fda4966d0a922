package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corebank/identity/models"
)

// userColumns is the canonical column list scanned into [models.User].
const userColumns = `user_id, login_id, display_name, credential_hash, role, is_active, created_at, updated_at`

const (
	createUser = `INSERT INTO users (login_id, display_name, credential_hash, role)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + userColumns + `;`

	findUserByLoginID = `SELECT ` + userColumns + `
    FROM users
    WHERE login_id = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	// lockUserByLoginID serializes concurrent mutations of one row and
	// yields the pre-image for the audit old_data snapshot.
	lockUserByLoginID = `SELECT ` + userColumns + `
    FROM users
    WHERE login_id = $1
    FOR UPDATE;`

	setUserActive = `UPDATE users
    SET is_active = $2, updated_at = NOW()
    WHERE login_id = $1
    RETURNING ` + userColumns + `;`

	insertAuditEntry = `INSERT INTO audit_log (user_id, action, old_data, new_data)
    VALUES ($1, $2, $3, $4)
    RETURNING audit_id, user_id, action, old_data, new_data, created_at;`

	findAuditByUserID = `SELECT audit_id, user_id, action, old_data, new_data, created_at
    FROM audit_log
    WHERE user_id = $1
    ORDER BY audit_id ASC
    LIMIT $2;`
)

// buildUserUpdateQuery builds the partial UPDATE for the mutable user fields.
// Only supplied fields produce SET clauses; updated_at is always refreshed in
// the same statement so readers never observe a half-written pair.
func buildUserUpdateQuery(loginID string, update models.UserUpdate) (string, []any, error) {
	builder := sq.Update("users").
		Set("updated_at", sq.Expr("NOW()"))

	if update.DisplayName != nil {
		builder = builder.Set("display_name", *update.DisplayName)
	}

	if update.CredentialHash != nil {
		builder = builder.Set("credential_hash", *update.CredentialHash)
	}

	if update.Role != nil {
		builder = builder.Set("role", update.Role.String())
	}

	query, args, err := builder.
		Where(sq.Eq{"login_id": loginID}).
		Suffix("RETURNING " + userColumns).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUserListQuery builds the filtered user listing. Absent filters match
// everything; ordering is always ascending user_id.
func buildUserListQuery(filter models.UserFilter) (string, []any, error) {
	builder := sq.Select(userColumns).
		From("users").
		OrderBy("user_id ASC")

	if filter.Role != nil {
		builder = builder.Where(sq.Eq{"role": filter.Role.String()})
	}

	if filter.IsActive != nil {
		builder = builder.Where(sq.Eq{"is_active": *filter.IsActive})
	}

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildBulkGetQuery builds the IN lookup used by bulk validation.
func buildBulkGetQuery(loginIDs []string) (string, []any, error) {
	query, args, err := sq.Select(userColumns).
		From("users").
		Where(sq.Eq{"login_id": loginIDs}).
		OrderBy("user_id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
