package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/corebank/identity/internal/logger"
	"github.com/corebank/identity/internal/utils"
	"github.com/corebank/identity/internal/validators"
	"github.com/corebank/identity/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var filter models.UserFilter
	query := r.URL.Query()

	if rawRole := query.Get("role"); rawRole != "" {
		role, err := models.ParseRole(rawRole)
		if err != nil {
			log.Err(err).Str("func", "*Handler.listUsers").Msg("invalid role query parameter")
			writeError(w, fmt.Errorf("%w: %s", validators.ErrInvalidRole, rawRole))
			return
		}
		filter.Role = &role
	}

	if rawActive := query.Get("is_active"); rawActive != "" {
		active, err := strconv.ParseBool(rawActive)
		if err != nil {
			log.Err(err).Str("func", "*Handler.listUsers").Msg("invalid is_active query parameter")
			http.Error(w, "invalid is_active query parameter", http.StatusBadRequest)
			return
		}
		filter.IsActive = &active
	}

	if rawLimit := query.Get("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			log.Err(err).Str("func", "*Handler.listUsers").Msg("invalid limit query parameter")
			http.Error(w, "invalid limit query parameter", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	users, err := h.services.LifecycleService.ListUsers(ctx, filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listUsers").Msg("error listing users")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	loginID := chi.URLParam(r, "loginID")

	user, err := h.services.LifecycleService.ViewUser(ctx, loginID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getUser").Str("login_id", loginID).Msg("error looking up user")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) verifyCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.verifyCredentials").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.VerificationService.VerifyCredentials(ctx, request.LoginID, request.Secret)
	if err != nil {
		log.Err(err).Str("func", "*Handler.verifyCredentials").Msg("error verifying credentials")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) validateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ValidateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.validateRole").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.VerificationService.ValidateRole(ctx, request.LoginID, request.RequiredRole)
	if err != nil {
		log.Err(err).Str("func", "*Handler.validateRole").Str("login_id", request.LoginID).Msg("error validating role")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) getRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRole").Msg("invalid user id")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	response, err := h.services.VerificationService.GetRole(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRole").Int64("user_id", userID).Msg("error looking up role")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	loginID := chi.URLParam(r, "loginID")

	response, err := h.services.VerificationService.GetStatus(ctx, loginID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStatus").Str("login_id", loginID).Msg("error looking up status")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) bulkValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.BulkValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.bulkValidate").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.VerificationService.BulkValidate(ctx, request.LoginIDs)
	if err != nil {
		log.Err(err).Str("func", "*Handler.bulkValidate").Msg("error bulk-validating users")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
