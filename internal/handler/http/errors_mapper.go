package http

import (
	"errors"
	"net/http"

	"github.com/corebank/identity/internal/service"
	"github.com/corebank/identity/internal/store"
	"github.com/corebank/identity/internal/utils"
	"github.com/corebank/identity/internal/validators"
	"github.com/corebank/identity/models"
)

// errorDescriptor couples the HTTP status of a failure with the stable
// machine-readable kind that goes into the response body. Kinds are part of
// the API contract; sibling services match on them, not on message text.
type errorDescriptor struct {
	status int
	kind   string
}

var errorDescriptorMap = map[error]errorDescriptor{
	validators.ErrInvalidInput:     {http.StatusBadRequest, "InvalidInput"},
	validators.ErrInvalidLoginID:   {http.StatusBadRequest, "InvalidLoginID"},
	validators.ErrInvalidPassword:  {http.StatusBadRequest, "InvalidPassword"},
	validators.ErrInvalidRole:      {http.StatusBadRequest, "InvalidRole"},
	validators.ErrNoFieldsToUpdate: {http.StatusBadRequest, "NoFieldsToUpdate"},
	validators.ErrUnknownField:     {http.StatusBadRequest, "InvalidInput"},

	service.ErrInvalidListLimit: {http.StatusBadRequest, "InvalidListLimit"},

	store.ErrUserAlreadyExists:   {http.StatusConflict, "UserAlreadyExists"},
	store.ErrUserNotFound:        {http.StatusNotFound, "UserNotFound"},
	store.ErrUserAlreadyActive:   {http.StatusConflict, "UserAlreadyActive"},
	store.ErrUserAlreadyInactive: {http.StatusConflict, "UserAlreadyInactive"},

	store.ErrBuildingSQLQuery:     {http.StatusInternalServerError, "InternalError"},
	store.ErrExecutingQuery:       {http.StatusInternalServerError, "InternalError"},
	store.ErrBeginningTransaction: {http.StatusInternalServerError, "InternalError"},
	store.ErrCommitingTransaction: {http.StatusInternalServerError, "InternalError"},
	store.ErrScanningRow:          {http.StatusInternalServerError, "InternalError"},
	store.ErrScanningRows:         {http.StatusInternalServerError, "InternalError"},
	store.ErrInvalidStoredRole:    {http.StatusInternalServerError, "InternalError"},
	store.ErrInvalidAuditAction:   {http.StatusInternalServerError, "InternalError"},
}

func describeError(err error) errorDescriptor {
	for target, descriptor := range errorDescriptorMap {
		if errors.Is(err, target) {
			return descriptor
		}
	}
	return errorDescriptor{http.StatusInternalServerError, "InternalError"}
}

// writeError maps err to its descriptor and emits the JSON error body.
// Internal failures get a generic message so storage details never leak to
// callers; everything client-caused carries the sentinel's own text.
func writeError(w http.ResponseWriter, err error) {
	descriptor := describeError(err)

	message := err.Error()
	if descriptor.status == http.StatusInternalServerError {
		message = "internal error"
	}

	utils.WriteJSON(w, models.ErrorResponse{
		ErrorKind: descriptor.kind,
		Message:   message,
	}, descriptor.status)
}
