package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/corebank/identity/internal/config"
	"github.com/corebank/identity/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps the shared *sql.DB connection pool handed to every repository at
// construction. Components never reach for ambient globals; the pool travels
// by explicit injection from main.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectPostgres opens the connection pool described by cfg and verifies
// reachability with a bounded ping-retry loop. Transient failures (connection
// refused, cannot-connect-now) are retried cfg.ConnectAttempts times with
// cfg.ConnectBackoff in between; recognised non-retryable PostgreSQL errors
// abort immediately.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)

	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	// ping database with bounded retry
	var pingErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pingErr = conn.PingContext(ctx)
		if pingErr == nil {
			break
		}

		var pgErr *pgconn.PgError
		if errors.As(pingErr, &pgErr) && ClassifyPgError(pgErr) == NonRetryable {
			break
		}

		log.Warn().Err(pingErr).
			Str("func", "NewConnectPostgres").
			Int("attempt", attempt).
			Int("attempts", attempts).
			Msg("database ping failed")

		if attempt < attempts {
			time.Sleep(cfg.ConnectBackoff)
		}
	}
	if pingErr != nil {
		log.Err(pingErr).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, pingErr
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	return db, nil
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
