package service

import (
	"context"
	"fmt"

	"github.com/corebank/identity/internal/config"
	"github.com/corebank/identity/internal/crypto"
	"github.com/corebank/identity/internal/logger"
	"github.com/corebank/identity/internal/store"
	"github.com/corebank/identity/internal/validators"
	"github.com/corebank/identity/models"
)

// lifecycleService is the concrete implementation of [LifecycleService].
// It composes the validation layer, the credential codec and the user
// repository; the repository in turn guarantees that every mutation commits
// together with its audit entry.
type lifecycleService struct {
	// userRepository is the data-access layer used to persist and look up
	// identity records.
	userRepository store.UserRepository

	// auditRepository serves the read side of the audit trail. Writes go
	// through the user repository's transactions, never through here.
	auditRepository store.AuditRepository

	// validator guards every mutation with the pure validation chain.
	validator validators.Validator

	// codec turns plaintext secrets into salted credential hashes. The
	// plaintext never travels past this service.
	codec crypto.CredentialCodec

	// defaultListLimit and maxListLimit bound user listings.
	defaultListLimit int
	maxListLimit     int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewLifecycleService constructs a [LifecycleService] wired to the given
// repositories and populated with limits from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewLifecycleService(
	userRepository store.UserRepository,
	auditRepository store.AuditRepository,
	validator validators.Validator,
	codec crypto.CredentialCodec,
	cfg config.App,
	logger *logger.Logger,
) LifecycleService {
	return &lifecycleService{
		userRepository:   userRepository,
		auditRepository:  auditRepository,
		validator:        validator,
		codec:            codec,
		defaultListLimit: cfg.DefaultListLimit,
		maxListLimit:     cfg.MaxListLimit,
		logger:           logger,
	}
}

// CreateUser creates a new identity record.
//
// The flow is validate → hash secret → persist. An omitted role defaults to
// CUSTOMER. Concurrent creations with the same login id resolve to exactly
// one success; the rest observe [store.ErrUserAlreadyExists] raised by the
// storage uniqueness constraint.
func (s *lifecycleService) CreateUser(ctx context.Context, request models.CreateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		log.Debug().Err(err).Str("login_id", request.LoginID).Msg("create request rejected by validation")
		return models.User{}, err
	}

	role := models.RoleCustomer
	if request.Role != "" {
		// validated above, parse cannot fail here
		role, _ = models.ParseRole(request.Role)
	}

	credentialHash, err := s.codec.Hash(request.Secret)
	if err != nil {
		log.Err(err).Str("login_id", request.LoginID).Msg("error hashing credential")
		return models.User{}, fmt.Errorf("error hashing credential: %w", err)
	}

	created, err := s.userRepository.Create(ctx, models.User{
		LoginID:        request.LoginID,
		DisplayName:    request.DisplayName,
		CredentialHash: credentialHash,
		Role:           role,
	})
	if err != nil {
		log.Err(err).Str("login_id", request.LoginID).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", created.UserID).Str("login_id", created.LoginID).Msg("user created")

	return created, nil
}

// EditUser applies a partial update. Only supplied fields are validated and
// changed; a supplied secret is re-hashed before it reaches the repository.
func (s *lifecycleService) EditUser(ctx context.Context, loginID string, request models.UpdateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		log.Debug().Err(err).Str("login_id", loginID).Msg("edit request rejected by validation")
		return models.User{}, err
	}

	update := models.UserUpdate{
		DisplayName: request.DisplayName,
	}

	if request.Secret != nil {
		credentialHash, err := s.codec.Hash(*request.Secret)
		if err != nil {
			log.Err(err).Str("login_id", loginID).Msg("error hashing credential")
			return models.User{}, fmt.Errorf("error hashing credential: %w", err)
		}
		update.CredentialHash = &credentialHash
	}

	if request.Role != nil {
		// validated above, parse cannot fail here
		role, _ := models.ParseRole(*request.Role)
		update.Role = &role
	}

	updated, err := s.userRepository.Update(ctx, loginID, update)
	if err != nil {
		log.Err(err).Str("login_id", loginID).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	log.Info().Int64("user_id", updated.UserID).Str("login_id", loginID).Msg("user updated")

	return updated, nil
}

// ActivateUser flips a user to the active state. Activating an already
// active user fails with [store.ErrUserAlreadyActive]; the transition is
// observable, never silently absorbed.
func (s *lifecycleService) ActivateUser(ctx context.Context, loginID string) (models.User, error) {
	return s.setActive(ctx, loginID, true)
}

// DeactivateUser flips a user to the inactive state. Deactivation is the
// only removal semantics this system has; the record itself survives.
func (s *lifecycleService) DeactivateUser(ctx context.Context, loginID string) (models.User, error) {
	return s.setActive(ctx, loginID, false)
}

func (s *lifecycleService) setActive(ctx context.Context, loginID string, active bool) (models.User, error) {
	log := logger.FromContext(ctx)

	updated, err := s.userRepository.SetActive(ctx, loginID, active)
	if err != nil {
		log.Err(err).Str("login_id", loginID).Bool("active", active).Msg("activation transition ended with error")
		return models.User{}, fmt.Errorf("activation transition ended with error: %w", err)
	}

	log.Info().Int64("user_id", updated.UserID).Str("login_id", loginID).Bool("active", active).Msg("activation state changed")

	return updated, nil
}

// ViewUser returns a single user by login id.
func (s *lifecycleService) ViewUser(ctx context.Context, loginID string) (models.User, error) {
	user, err := s.userRepository.GetByLoginID(ctx, loginID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	return user, nil
}

// ListUsers returns users matching the filter, bounded by the configured
// limits. A zero limit falls back to the default; anything above the cap is
// clamped.
func (s *lifecycleService) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	if filter.Limit < 0 {
		return nil, ErrInvalidListLimit
	}

	if filter.Limit == 0 {
		filter.Limit = s.defaultListLimit
	}

	if filter.Limit > s.maxListLimit {
		filter.Limit = s.maxListLimit
	}

	users, err := s.userRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("user listing ended with error: %w", err)
	}

	return users, nil
}

// UserAudit returns the audit trail of a user in ascending order. The
// lookup fails with [store.ErrUserNotFound] when the login id is unknown,
// so callers can tell "no user" from "no history".
func (s *lifecycleService) UserAudit(ctx context.Context, loginID string, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = s.defaultListLimit
	}

	if limit > s.maxListLimit {
		limit = s.maxListLimit
	}

	user, err := s.userRepository.GetByLoginID(ctx, loginID)
	if err != nil {
		return nil, fmt.Errorf("user lookup ended with error: %w", err)
	}

	entries, err := s.auditRepository.ListByUserID(ctx, user.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("audit listing ended with error: %w", err)
	}

	return entries, nil
}
