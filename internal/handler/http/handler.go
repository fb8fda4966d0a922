package http

import (
	"context"

	"github.com/corebank/identity/internal/logger"
	"github.com/corebank/identity/internal/service"
)

// Pinger reports whether the storage backing the service is reachable.
// *store.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	services *service.Services

	health Pinger

	logger *logger.Logger
}

func NewHandler(services *service.Services, health Pinger, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		health:   health,
		logger:   logger,
	}
}
