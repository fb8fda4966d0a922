package store

import "github.com/corebank/identity/internal/logger"

// Storages aggregates every repository the service layer depends on.
type Storages struct {
	UserRepository  UserRepository
	AuditRepository AuditRepository
}

// NewStorages wires the repositories over one shared connection pool. The
// audit repository is injected into the user repository so user mutations
// and their audit entries commit together.
func NewStorages(db *DB, logger *logger.Logger) Storages {
	audit := NewAuditRepository(db, logger)

	return Storages{
		UserRepository:  NewUserRepository(db, audit, logger),
		AuditRepository: audit,
	}
}
