package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/corebank/identity/internal/logger"
	"github.com/corebank/identity/internal/utils"
	"github.com/corebank/identity/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.LifecycleService.CreateUser(ctx, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Str("login_id", request.LoginID).Msg("error creating user")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) viewUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	loginID := chi.URLParam(r, "loginID")

	user, err := h.services.LifecycleService.ViewUser(ctx, loginID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.viewUser").Str("login_id", loginID).Msg("error looking up user")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) editUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	loginID := chi.URLParam(r, "loginID")

	var request models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.editUser").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.LifecycleService.EditUser(ctx, loginID, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.editUser").Str("login_id", loginID).Msg("error updating user")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) activateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	loginID := chi.URLParam(r, "loginID")

	user, err := h.services.LifecycleService.ActivateUser(ctx, loginID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.activateUser").Str("login_id", loginID).Msg("error activating user")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	loginID := chi.URLParam(r, "loginID")

	user, err := h.services.LifecycleService.DeactivateUser(ctx, loginID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.deactivateUser").Str("login_id", loginID).Msg("error deactivating user")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) userAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	loginID := chi.URLParam(r, "loginID")

	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			log.Err(err).Str("func", "*Handler.userAudit").Msg("invalid limit query parameter")
			http.Error(w, "invalid limit query parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.services.LifecycleService.UserAudit(ctx, loginID, limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.userAudit").Str("login_id", loginID).Msg("error listing audit trail")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}
