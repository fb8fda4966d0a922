package http

import (
	"net/http"

	"github.com/corebank/identity/internal/logger"
	"github.com/corebank/identity/internal/utils"
)

// healthCheck reports liveness of the service and reachability of its
// storage. A failing DB ping answers 503 so load balancers stop routing
// here until the connection recovers.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.health.PingContext(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.healthCheck").Msg("database is unreachable")
		utils.WriteJSON(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
