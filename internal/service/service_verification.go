// SPDX-License-Identifier: Apache-2.0
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/corebank/identity/internal/crypto"
	"github.com/corebank/identity/internal/logger"
	"github.com/corebank/identity/internal/store"
	"github.com/corebank/identity/internal/validators"
	"github.com/corebank/identity/models"
)

// verificationService answers the read-side questions other services ask
// about identities: does this credential check out, what role does the user
// hold, are these accounts in good standing.
type verificationService struct {
	userRepository store.UserRepository
	codec          crypto.CredentialCodec
	logger         *logger.Logger
}

// NewVerificationService constructs a [VerificationService].
func NewVerificationService(
	userRepository store.UserRepository,
	codec crypto.CredentialCodec,
	logger *logger.Logger,
) VerificationService {
	return &verificationService{
		userRepository: userRepository,
		codec:          codec,
		logger:         logger,
	}
}

// VerifyCredentials checks a login id / secret pair.
//
// Unknown user, wrong secret and inactive account all produce the same
// uniform {IsValid: false} answer with a nil error, so the response shape
// leaks nothing about which accounts exist. The concrete reason is logged
// at debug level only. Infrastructure failures still surface as errors.
func (s *verificationService) VerifyCredentials(ctx context.Context, loginID, secret string) (models.VerifyResponse, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.GetByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug().Msg("verification failed: unknown login id")
			return models.VerifyResponse{IsValid: false}, nil
		}
		log.Err(err).Msg("verification lookup ended with error")
		return models.VerifyResponse{}, fmt.Errorf("verification lookup ended with error: %w", err)
	}

	if !s.codec.Verify(secret, user.CredentialHash) {
		log.Debug().Msg("verification failed: credential mismatch")
		return models.VerifyResponse{IsValid: false}, nil
	}

	if !user.IsActive {
		log.Debug().Msg("verification failed: inactive user")
		return models.VerifyResponse{IsValid: false}, nil
	}

	return models.VerifyResponse{
		IsValid:  true,
		UserID:   user.UserID,
		Role:     user.Role,
		IsActive: true,
	}, nil
}

// GetRole returns the role of the user with the given numeric id.
func (s *verificationService) GetRole(ctx context.Context, userID int64) (models.RoleStatusResponse, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return models.RoleStatusResponse{}, fmt.Errorf("role lookup ended with error: %w", err)
	}

	return models.RoleStatusResponse{Role: user.Role, IsActive: user.IsActive}, nil
}

// GetStatus returns the role and activation state of the user with the
// given login id.
func (s *verificationService) GetStatus(ctx context.Context, loginID string) (models.RoleStatusResponse, error) {
	user, err := s.userRepository.GetByLoginID(ctx, loginID)
	if err != nil {
		return models.RoleStatusResponse{}, fmt.Errorf("status lookup ended with error: %w", err)
	}

	return models.RoleStatusResponse{Role: user.Role, IsActive: user.IsActive}, nil
}

// ValidateRole reports whether the user holds exactly the required role.
// A mismatch is an answer, not an error: Matches is false and ActualRole
// carries what the user really holds. Unknown users and malformed role
// names do fail.
func (s *verificationService) ValidateRole(ctx context.Context, loginID string, requiredRole string) (models.ValidateRoleResponse, error) {
	required, err := models.ParseRole(requiredRole)
	if err != nil {
		return models.ValidateRoleResponse{}, fmt.Errorf("%w: %s", validators.ErrInvalidRole, requiredRole)
	}

	user, err := s.userRepository.GetByLoginID(ctx, loginID)
	if err != nil {
		return models.ValidateRoleResponse{}, fmt.Errorf("role validation lookup ended with error: %w", err)
	}

	return models.ValidateRoleResponse{
		Matches:    user.Role == required,
		ActualRole: user.Role,
	}, nil
}

// BulkValidate partitions login ids into known users and unknown ids.
// Every distinct input id lands in exactly one of the two sets, so
// ValidCount plus InvalidCount always accounts for the whole input.
// Activation state is reported per summary, not used for partitioning.
func (s *verificationService) BulkValidate(ctx context.Context, loginIDs []string) (models.BulkValidateResponse, error) {
	log := logger.FromContext(ctx)

	found, missing, err := s.userRepository.BulkGet(ctx, loginIDs)
	if err != nil {
		log.Err(err).Msg("bulk validation ended with error")
		return models.BulkValidateResponse{}, fmt.Errorf("bulk validation ended with error: %w", err)
	}

	response := models.BulkValidateResponse{
		Valid:   make([]models.UserSummary, 0, len(found)),
		Invalid: missing,
	}

	for _, user := range found {
		response.Valid = append(response.Valid, user.Summary())
	}

	response.ValidCount = len(response.Valid)
	response.InvalidCount = len(response.Invalid)

	return response, nil
}
