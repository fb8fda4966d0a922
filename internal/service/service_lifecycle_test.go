// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/corebank/identity/internal/logger"
	"github.com/corebank/identity/internal/store"
	"github.com/corebank/identity/internal/validators"
	"github.com/corebank/identity/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn       func(ctx context.Context, user models.User) (models.User, error)
	getByLoginIDFn func(ctx context.Context, loginID string) (models.User, error)
	getByIDFn      func(ctx context.Context, userID int64) (models.User, error)
	updateFn       func(ctx context.Context, loginID string, update models.UserUpdate) (models.User, error)
	setActiveFn    func(ctx context.Context, loginID string, active bool) (models.User, error)
	listFn         func(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	bulkGetFn      func(ctx context.Context, loginIDs []string) ([]models.User, []string, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) GetByLoginID(ctx context.Context, loginID string) (models.User, error) {
	if m.getByLoginIDFn != nil {
		return m.getByLoginIDFn(ctx, loginID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID int64) (models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) Update(ctx context.Context, loginID string, update models.UserUpdate) (models.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, loginID, update)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) SetActive(ctx context.Context, loginID string, active bool) (models.User, error) {
	if m.setActiveFn != nil {
		return m.setActiveFn(ctx, loginID, active)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockUserRepository) BulkGet(ctx context.Context, loginIDs []string) ([]models.User, []string, error) {
	if m.bulkGetFn != nil {
		return m.bulkGetFn(ctx, loginIDs)
	}
	return nil, nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.AuditRepository
// ─────────────────────────────────────────────

type mockAuditRepository struct {
	recordFn       func(ctx context.Context, q store.Querier, entry models.AuditEntry) (models.AuditEntry, error)
	listByUserIDFn func(ctx context.Context, userID int64, limit int) ([]models.AuditEntry, error)
}

func (m *mockAuditRepository) Record(ctx context.Context, q store.Querier, entry models.AuditEntry) (models.AuditEntry, error) {
	if m.recordFn != nil {
		return m.recordFn(ctx, q, entry)
	}
	return entry, nil
}

func (m *mockAuditRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]models.AuditEntry, error) {
	if m.listByUserIDFn != nil {
		return m.listByUserIDFn(ctx, userID, limit)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: validators.Validator
// ─────────────────────────────────────────────

type mockValidator struct {
	validateFn func(ctx context.Context, value any, fields ...string) error
}

func (m *mockValidator) Validate(ctx context.Context, value any, fields ...string) error {
	if m.validateFn != nil {
		return m.validateFn(ctx, value, fields...)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: crypto.CredentialCodec
// ─────────────────────────────────────────────

type mockCodec struct {
	hashFn   func(secret string) (string, error)
	verifyFn func(secret, credentialHash string) bool
}

func (m *mockCodec) Hash(secret string) (string, error) {
	if m.hashFn != nil {
		return m.hashFn(secret)
	}
	return "hashed:" + secret, nil
}

func (m *mockCodec) Verify(secret, credentialHash string) bool {
	if m.verifyFn != nil {
		return m.verifyFn(secret, credentialHash)
	}
	return false
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestLifecycleService(users *mockUserRepository, audit *mockAuditRepository, validator *mockValidator, codec *mockCodec) *lifecycleService {
	return &lifecycleService{
		userRepository:   users,
		auditRepository:  audit,
		validator:        validator,
		codec:            codec,
		defaultListLimit: 50,
		maxListLimit:     500,
		logger:           logger.Nop(),
	}
}

var errStorage = errors.New("storage error")

func strPtr(s string) *string { return &s }

// ─────────────────────────────────────────────
// CreateUser
// ─────────────────────────────────────────────

func TestLifecycleService_CreateUser_Success(t *testing.T) {
	users := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "alice", user.LoginID)
			assert.Equal(t, "Alice A.", user.DisplayName)
			assert.Equal(t, "hashed:s3cret-pw", user.CredentialHash)
			assert.Equal(t, models.RoleCustomer, user.Role)
			user.UserID = 7
			return user, nil
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	created, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		LoginID:     "alice",
		DisplayName: "Alice A.",
		Secret:      "s3cret-pw",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.UserID)
	assert.Equal(t, models.RoleCustomer, created.Role)
}

func TestLifecycleService_CreateUser_ExplicitRole(t *testing.T) {
	users := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, models.RoleTeller, user.Role)
			return user, nil
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	_, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		LoginID:     "bob",
		DisplayName: "Bob",
		Secret:      "s3cret-pw",
		Role:        "TELLER",
	})

	require.NoError(t, err)
}

func TestLifecycleService_CreateUser_ValidationError(t *testing.T) {
	validator := &mockValidator{
		validateFn: func(_ context.Context, _ any, _ ...string) error {
			return validators.ErrInvalidLoginID
		},
	}
	users := &mockUserRepository{
		createFn: func(_ context.Context, _ models.User) (models.User, error) {
			t.Fatal("repository must not be reached on validation failure")
			return models.User{}, nil
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, validator, &mockCodec{})

	_, err := svc.CreateUser(context.Background(), models.CreateUserRequest{LoginID: "x"})

	require.ErrorIs(t, err, validators.ErrInvalidLoginID)
}

func TestLifecycleService_CreateUser_AlreadyExists(t *testing.T) {
	users := &mockUserRepository{
		createFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrUserAlreadyExists
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	_, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		LoginID:     "alice",
		DisplayName: "Alice",
		Secret:      "s3cret-pw",
	})

	require.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

func TestLifecycleService_CreateUser_HashError(t *testing.T) {
	codec := &mockCodec{
		hashFn: func(_ string) (string, error) {
			return "", errors.New("cost out of range")
		},
	}
	svc := newTestLifecycleService(&mockUserRepository{}, &mockAuditRepository{}, &mockValidator{}, codec)

	_, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		LoginID:     "alice",
		DisplayName: "Alice",
		Secret:      "s3cret-pw",
	})

	require.Error(t, err)
}

// ─────────────────────────────────────────────
// EditUser
// ─────────────────────────────────────────────

func TestLifecycleService_EditUser_PartialFields(t *testing.T) {
	users := &mockUserRepository{
		updateFn: func(_ context.Context, loginID string, update models.UserUpdate) (models.User, error) {
			assert.Equal(t, "alice", loginID)
			require.NotNil(t, update.DisplayName)
			assert.Equal(t, "Alice Renamed", *update.DisplayName)
			assert.Nil(t, update.CredentialHash)
			assert.Nil(t, update.Role)
			return models.User{UserID: 7, LoginID: loginID, DisplayName: *update.DisplayName}, nil
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	updated, err := svc.EditUser(context.Background(), "alice", models.UpdateUserRequest{
		DisplayName: strPtr("Alice Renamed"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", updated.DisplayName)
}

func TestLifecycleService_EditUser_SecretIsHashed(t *testing.T) {
	users := &mockUserRepository{
		updateFn: func(_ context.Context, _ string, update models.UserUpdate) (models.User, error) {
			require.NotNil(t, update.CredentialHash)
			assert.Equal(t, "hashed:new-s3cret", *update.CredentialHash)
			return models.User{}, nil
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	_, err := svc.EditUser(context.Background(), "alice", models.UpdateUserRequest{
		Secret: strPtr("new-s3cret"),
	})

	require.NoError(t, err)
}

func TestLifecycleService_EditUser_RoleChange(t *testing.T) {
	users := &mockUserRepository{
		updateFn: func(_ context.Context, _ string, update models.UserUpdate) (models.User, error) {
			require.NotNil(t, update.Role)
			assert.Equal(t, models.RoleAdmin, *update.Role)
			assert.Nil(t, update.DisplayName)
			assert.Nil(t, update.CredentialHash)
			return models.User{}, nil
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	_, err := svc.EditUser(context.Background(), "alice", models.UpdateUserRequest{
		Role: strPtr("ADMIN"),
	})

	require.NoError(t, err)
}

func TestLifecycleService_EditUser_NotFound(t *testing.T) {
	users := &mockUserRepository{
		updateFn: func(_ context.Context, _ string, _ models.UserUpdate) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	_, err := svc.EditUser(context.Background(), "ghost", models.UpdateUserRequest{
		DisplayName: strPtr("Ghost"),
	})

	require.ErrorIs(t, err, store.ErrUserNotFound)
}

// ─────────────────────────────────────────────
// ActivateUser / DeactivateUser
// ─────────────────────────────────────────────

func TestLifecycleService_ActivateUser_Success(t *testing.T) {
	users := &mockUserRepository{
		setActiveFn: func(_ context.Context, loginID string, active bool) (models.User, error) {
			assert.Equal(t, "alice", loginID)
			assert.True(t, active)
			return models.User{UserID: 7, LoginID: loginID, IsActive: true}, nil
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	user, err := svc.ActivateUser(context.Background(), "alice")

	require.NoError(t, err)
	assert.True(t, user.IsActive)
}

func TestLifecycleService_ActivateUser_AlreadyActive(t *testing.T) {
	users := &mockUserRepository{
		setActiveFn: func(_ context.Context, _ string, _ bool) (models.User, error) {
			return models.User{}, store.ErrUserAlreadyActive
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	_, err := svc.ActivateUser(context.Background(), "alice")

	require.ErrorIs(t, err, store.ErrUserAlreadyActive)
}

func TestLifecycleService_DeactivateUser_Success(t *testing.T) {
	users := &mockUserRepository{
		setActiveFn: func(_ context.Context, loginID string, active bool) (models.User, error) {
			assert.False(t, active)
			return models.User{UserID: 7, LoginID: loginID, IsActive: false}, nil
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	user, err := svc.DeactivateUser(context.Background(), "alice")

	require.NoError(t, err)
	assert.False(t, user.IsActive)
}

// ─────────────────────────────────────────────
// ViewUser / ListUsers
// ─────────────────────────────────────────────

func TestLifecycleService_ViewUser_NotFound(t *testing.T) {
	users := &mockUserRepository{
		getByLoginIDFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	_, err := svc.ViewUser(context.Background(), "ghost")

	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestLifecycleService_ListUsers_DefaultAndClampedLimit(t *testing.T) {
	var gotLimit int
	users := &mockUserRepository{
		listFn: func(_ context.Context, filter models.UserFilter) ([]models.User, error) {
			gotLimit = filter.Limit
			return nil, nil
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	_, err := svc.ListUsers(context.Background(), models.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)

	_, err = svc.ListUsers(context.Background(), models.UserFilter{Limit: 10_000})
	require.NoError(t, err)
	assert.Equal(t, 500, gotLimit)
}

func TestLifecycleService_ListUsers_NegativeLimit(t *testing.T) {
	users := &mockUserRepository{
		listFn: func(_ context.Context, _ models.UserFilter) ([]models.User, error) {
			t.Fatal("repository must not be reached for a negative limit")
			return nil, nil
		},
	}
	svc := newTestLifecycleService(users, &mockAuditRepository{}, &mockValidator{}, &mockCodec{})

	_, err := svc.ListUsers(context.Background(), models.UserFilter{Limit: -1})

	require.ErrorIs(t, err, ErrInvalidListLimit)
}

// ─────────────────────────────────────────────
// UserAudit
// ─────────────────────────────────────────────

func TestLifecycleService_UserAudit_Success(t *testing.T) {
	users := &mockUserRepository{
		getByLoginIDFn: func(_ context.Context, loginID string) (models.User, error) {
			assert.Equal(t, "alice", loginID)
			return models.User{UserID: 7, LoginID: loginID}, nil
		},
	}
	audit := &mockAuditRepository{
		listByUserIDFn: func(_ context.Context, userID int64, limit int) ([]models.AuditEntry, error) {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, 50, limit)
			return []models.AuditEntry{
				{AuditID: 1, UserID: 7, Action: models.AuditActionCreate},
				{AuditID: 2, UserID: 7, Action: models.AuditActionUpdate},
			}, nil
		},
	}
	svc := newTestLifecycleService(users, audit, &mockValidator{}, &mockCodec{})

	entries, err := svc.UserAudit(context.Background(), "alice", 0)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.AuditActionCreate, entries[0].Action)
}

func TestLifecycleService_UserAudit_UnknownUser(t *testing.T) {
	users := &mockUserRepository{
		getByLoginIDFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}
	audit := &mockAuditRepository{
		listByUserIDFn: func(_ context.Context, _ int64, _ int) ([]models.AuditEntry, error) {
			t.Fatal("audit repository must not be reached for an unknown user")
			return nil, nil
		},
	}
	svc := newTestLifecycleService(users, audit, &mockValidator{}, &mockCodec{})

	_, err := svc.UserAudit(context.Background(), "ghost", 0)

	require.ErrorIs(t, err, store.ErrUserNotFound)
}
