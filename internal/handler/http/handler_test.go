// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/corebank/identity/internal/logger"
	"github.com/corebank/identity/internal/service"
	"github.com/corebank/identity/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock LifecycleService
// ─────────────────────────────────────────────

// mockLifecycleService implements service.LifecycleService for unit tests.
// Each method field can be overridden per test case.
type mockLifecycleService struct {
	createUserFn     func(ctx context.Context, request models.CreateUserRequest) (models.User, error)
	editUserFn       func(ctx context.Context, loginID string, request models.UpdateUserRequest) (models.User, error)
	activateUserFn   func(ctx context.Context, loginID string) (models.User, error)
	deactivateUserFn func(ctx context.Context, loginID string) (models.User, error)
	viewUserFn       func(ctx context.Context, loginID string) (models.User, error)
	listUsersFn      func(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	userAuditFn      func(ctx context.Context, loginID string, limit int) ([]models.AuditEntry, error)
}

func (m *mockLifecycleService) CreateUser(ctx context.Context, request models.CreateUserRequest) (models.User, error) {
	return m.createUserFn(ctx, request)
}

func (m *mockLifecycleService) EditUser(ctx context.Context, loginID string, request models.UpdateUserRequest) (models.User, error) {
	return m.editUserFn(ctx, loginID, request)
}

func (m *mockLifecycleService) ActivateUser(ctx context.Context, loginID string) (models.User, error) {
	return m.activateUserFn(ctx, loginID)
}

func (m *mockLifecycleService) DeactivateUser(ctx context.Context, loginID string) (models.User, error) {
	return m.deactivateUserFn(ctx, loginID)
}

func (m *mockLifecycleService) ViewUser(ctx context.Context, loginID string) (models.User, error) {
	return m.viewUserFn(ctx, loginID)
}

func (m *mockLifecycleService) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	return m.listUsersFn(ctx, filter)
}

func (m *mockLifecycleService) UserAudit(ctx context.Context, loginID string, limit int) ([]models.AuditEntry, error) {
	return m.userAuditFn(ctx, loginID, limit)
}

// ─────────────────────────────────────────────
// Mock VerificationService
// ─────────────────────────────────────────────

type mockVerificationService struct {
	verifyCredentialsFn func(ctx context.Context, loginID, secret string) (models.VerifyResponse, error)
	getRoleFn           func(ctx context.Context, userID int64) (models.RoleStatusResponse, error)
	getStatusFn         func(ctx context.Context, loginID string) (models.RoleStatusResponse, error)
	validateRoleFn      func(ctx context.Context, loginID string, requiredRole string) (models.ValidateRoleResponse, error)
	bulkValidateFn      func(ctx context.Context, loginIDs []string) (models.BulkValidateResponse, error)
}

func (m *mockVerificationService) VerifyCredentials(ctx context.Context, loginID, secret string) (models.VerifyResponse, error) {
	return m.verifyCredentialsFn(ctx, loginID, secret)
}

func (m *mockVerificationService) GetRole(ctx context.Context, userID int64) (models.RoleStatusResponse, error) {
	return m.getRoleFn(ctx, userID)
}

func (m *mockVerificationService) GetStatus(ctx context.Context, loginID string) (models.RoleStatusResponse, error) {
	return m.getStatusFn(ctx, loginID)
}

func (m *mockVerificationService) ValidateRole(ctx context.Context, loginID string, requiredRole string) (models.ValidateRoleResponse, error) {
	return m.validateRoleFn(ctx, loginID, requiredRole)
}

func (m *mockVerificationService) BulkValidate(ctx context.Context, loginIDs []string) (models.BulkValidateResponse, error) {
	return m.bulkValidateFn(ctx, loginIDs)
}

// ─────────────────────────────────────────────
// Mock Pinger
// ─────────────────────────────────────────────

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(_ context.Context) error {
	return m.err
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler backed by the given mocks. Requests are
// served through the full router so URL parameters resolve the same way
// they do in production.
func newTestHandler(t *testing.T, lifecycle service.LifecycleService, verification service.VerificationService) *Handler {
	t.Helper()
	svcs := &service.Services{
		LifecycleService:    lifecycle,
		VerificationService: verification,
	}
	return NewHandler(svcs, &mockPinger{}, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// decodeErrorResponse parses the error body emitted by the error mapper.
func decodeErrorResponse(t *testing.T, body []byte) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

// aliceFixture is a convenience fixture used across multiple tests.
var aliceFixture = models.User{
	UserID:         7,
	LoginID:        "alice",
	DisplayName:    "Alice A.",
	CredentialHash: "$2a$10$stored",
	Role:           models.RoleCustomer,
	IsActive:       true,
}
