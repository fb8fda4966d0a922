package service

import (
	"github.com/corebank/identity/internal/config"
	"github.com/corebank/identity/internal/crypto"
	"github.com/corebank/identity/internal/logger"
	"github.com/corebank/identity/internal/store"
	"github.com/corebank/identity/internal/validators"
)

type Services struct {
	LifecycleService    LifecycleService
	VerificationService VerificationService
}

func NewServices(storages store.Storages, cfg config.App, logger *logger.Logger) *Services {
	codec := crypto.NewCredentialCodec(cfg.BcryptCost)
	validator := validators.NewUserValidator()

	return &Services{
		LifecycleService:    NewLifecycleService(storages.UserRepository, storages.AuditRepository, validator, codec, cfg, logger),
		VerificationService: NewVerificationService(storages.UserRepository, codec, logger),
	}
}
