package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/corebank/identity/internal/store"
	"github.com/corebank/identity/internal/validators"
	"github.com/corebank/identity/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// createUser
// ─────────────────────────────────────────────

func TestCreateUser_Success(t *testing.T) {
	lifecycle := &mockLifecycleService{
		createUserFn: func(_ context.Context, request models.CreateUserRequest) (models.User, error) {
			assert.Equal(t, "alice", request.LoginID)
			return aliceFixture, nil
		},
	}

	h := newTestHandler(t, lifecycle, &mockVerificationService{})
	req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(jsonBody(t, models.CreateUserRequest{
		LoginID:     "alice",
		DisplayName: "Alice A.",
		Secret:      "s3cret-pw",
	})))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"login_id":"alice"`)
	// the stored hash must never appear in any response
	assert.NotContains(t, rec.Body.String(), "credential_hash")
	assert.NotContains(t, rec.Body.String(), "$2a$10$stored")
}

func TestCreateUser_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &mockLifecycleService{}, &mockVerificationService{})
	req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUser_Conflict(t *testing.T) {
	lifecycle := &mockLifecycleService{
		createUserFn: func(_ context.Context, _ models.CreateUserRequest) (models.User, error) {
			return models.User{}, store.ErrUserAlreadyExists
		},
	}

	h := newTestHandler(t, lifecycle, &mockVerificationService{})
	req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(jsonBody(t, models.CreateUserRequest{
		LoginID: "alice",
	})))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "UserAlreadyExists", decodeErrorResponse(t, rec.Body.Bytes()).ErrorKind)
}

func TestCreateUser_ValidationError(t *testing.T) {
	lifecycle := &mockLifecycleService{
		createUserFn: func(_ context.Context, _ models.CreateUserRequest) (models.User, error) {
			return models.User{}, validators.ErrInvalidLoginID
		},
	}

	h := newTestHandler(t, lifecycle, &mockVerificationService{})
	req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(jsonBody(t, models.CreateUserRequest{
		LoginID: "x",
	})))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "InvalidLoginID", decodeErrorResponse(t, rec.Body.Bytes()).ErrorKind)
}

// ─────────────────────────────────────────────
// viewUser
// ─────────────────────────────────────────────

func TestViewUser_Success(t *testing.T) {
	lifecycle := &mockLifecycleService{
		viewUserFn: func(_ context.Context, loginID string) (models.User, error) {
			assert.Equal(t, "alice", loginID)
			return aliceFixture, nil
		},
	}

	h := newTestHandler(t, lifecycle, &mockVerificationService{})
	req := httptest.NewRequest(http.MethodGet, "/api/user/alice", nil)
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"login_id":"alice"`)
	assert.NotContains(t, rec.Body.String(), "credential_hash")
}

func TestViewUser_NotFound(t *testing.T) {
	lifecycle := &mockLifecycleService{
		viewUserFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}

	h := newTestHandler(t, lifecycle, &mockVerificationService{})
	req := httptest.NewRequest(http.MethodGet, "/api/user/ghost", nil)
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "UserNotFound", decodeErrorResponse(t, rec.Body.Bytes()).ErrorKind)
}

// ─────────────────────────────────────────────
// editUser
// ─────────────────────────────────────────────

func TestEditUser_Success(t *testing.T) {
	displayName := "Alice Renamed"
	lifecycle := &mockLifecycleService{
		editUserFn: func(_ context.Context, loginID string, request models.UpdateUserRequest) (models.User, error) {
			assert.Equal(t, "alice", loginID)
			require.NotNil(t, request.DisplayName)
			assert.Equal(t, displayName, *request.DisplayName)
			updated := aliceFixture
			updated.DisplayName = *request.DisplayName
			return updated, nil
		},
	}

	h := newTestHandler(t, lifecycle, &mockVerificationService{})
	req := httptest.NewRequest(http.MethodPatch, "/api/user/alice", strings.NewReader(jsonBody(t, models.UpdateUserRequest{
		DisplayName: &displayName,
	})))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"display_name":"Alice Renamed"`)
}

func TestEditUser_NoFields(t *testing.T) {
	lifecycle := &mockLifecycleService{
		editUserFn: func(_ context.Context, _ string, _ models.UpdateUserRequest) (models.User, error) {
			return models.User{}, validators.ErrNoFieldsToUpdate
		},
	}

	h := newTestHandler(t, lifecycle, &mockVerificationService{})
	req := httptest.NewRequest(http.MethodPatch, "/api/user/alice", strings.NewReader("{}"))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "NoFieldsToUpdate", decodeErrorResponse(t, rec.Body.Bytes()).ErrorKind)
}

// ─────────────────────────────────────────────
// activateUser / deactivateUser
// ─────────────────────────────────────────────

func TestActivateUser_AlreadyActive(t *testing.T) {
	lifecycle := &mockLifecycleService{
		activateUserFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrUserAlreadyActive
		},
	}

	h := newTestHandler(t, lifecycle, &mockVerificationService{})
	req := httptest.NewRequest(http.MethodPost, "/api/user/alice/activate", nil)
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "UserAlreadyActive", decodeErrorResponse(t, rec.Body.Bytes()).ErrorKind)
}

func TestDeactivateUser_Success(t *testing.T) {
	lifecycle := &mockLifecycleService{
		deactivateUserFn: func(_ context.Context, loginID string) (models.User, error) {
			assert.Equal(t, "alice", loginID)
			deactivated := aliceFixture
			deactivated.IsActive = false
			return deactivated, nil
		},
	}

	h := newTestHandler(t, lifecycle, &mockVerificationService{})
	req := httptest.NewRequest(http.MethodPost, "/api/user/alice/deactivate", nil)
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_active":false`)
}

// ─────────────────────────────────────────────
// userAudit
// ─────────────────────────────────────────────

func TestUserAudit_Success(t *testing.T) {
	lifecycle := &mockLifecycleService{
		userAuditFn: func(_ context.Context, loginID string, limit int) ([]models.AuditEntry, error) {
			assert.Equal(t, "alice", loginID)
			assert.Equal(t, 5, limit)
			return []models.AuditEntry{
				{AuditID: 1, UserID: 7, Action: models.AuditActionCreate},
			}, nil
		},
	}

	h := newTestHandler(t, lifecycle, &mockVerificationService{})
	req := httptest.NewRequest(http.MethodGet, "/api/user/alice/audit?limit=5", nil)
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"action":"CREATE"`)
}

func TestUserAudit_InvalidLimit(t *testing.T) {
	h := newTestHandler(t, &mockLifecycleService{}, &mockVerificationService{})
	req := httptest.NewRequest(http.MethodGet, "/api/user/alice/audit?limit=abc", nil)
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
