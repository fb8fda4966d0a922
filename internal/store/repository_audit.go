package store

import (
	"context"
	"fmt"

	"github.com/corebank/identity/internal/logger"
	"github.com/corebank/identity/models"
)

// auditRepository is the PostgreSQL-backed implementation of
// [AuditRepository] over the append-only "audit_log" table. Entries are
// written once and never updated or deleted; there is no corresponding
// mutation method by design of the table contract.
type auditRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAuditRepository constructs an [AuditRepository] backed by the provided
// database connection and logger.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{
		db:     db,
		logger: logger,
	}
}

// Record appends one audit entry through the supplied [Querier]. Passing the
// enclosing transaction keeps the entry atomic with the user mutation it
// describes: a failed INSERT here propagates up and rolls both back.
func (r *auditRepository) Record(ctx context.Context, q Querier, entry models.AuditEntry) (models.AuditEntry, error) {
	log := logger.FromContext(ctx)

	if !entry.Action.Valid() {
		return models.AuditEntry{}, fmt.Errorf("%w: %q", ErrInvalidAuditAction, entry.Action)
	}

	row := q.QueryRowContext(ctx, insertAuditEntry, entry.UserID, entry.Action.String(), []byte(entry.OldData), []byte(entry.NewData))

	recorded, err := scanAuditEntry(row)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.Record").Int64("user_id", entry.UserID).Msg("error recording audit entry")
		return models.AuditEntry{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return recorded, nil
}

// ListByUserID returns the audit entries for one user in ascending audit_id
// order, bounded by limit.
func (r *auditRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]models.AuditEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findAuditByUserID, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.ListByUserID").Int64("user_id", userID).Msg("error executing audit query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			log.Err(err).Str("func", "*auditRepository.ListByUserID").Msg("error scanning audit row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// scanAuditEntry reads one audit_log row. The stored action string is
// re-validated against the enumeration on every read.
func scanAuditEntry(row rowScanner) (models.AuditEntry, error) {
	var entry models.AuditEntry
	var action string
	var oldData, newData []byte

	err := row.Scan(
		&entry.AuditID,
		&entry.UserID,
		&action,
		&oldData,
		&newData,
		&entry.CreatedAt,
	)
	if err != nil {
		return models.AuditEntry{}, err
	}

	entry.Action = models.AuditAction(action)
	if !entry.Action.Valid() {
		return models.AuditEntry{}, fmt.Errorf("%w: %q", ErrInvalidAuditAction, action)
	}

	entry.OldData = oldData
	entry.NewData = newData

	return entry, nil
}
