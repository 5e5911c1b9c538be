package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prism-lt/prism-api/internal/models"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
)

type mockUserRepo struct {
	byUsername map[string]*models.User
	byID       map[string]*models.User
	created    []*models.User
	updated    *models.User
	deletedID  string
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := m.byUsername[username]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.byID[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	users := []models.User{}
	for _, user := range m.byID {
		if user.Role == role {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.updated = user
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return nil
}

func newUserService(repo *mockUserRepo) *UserService {
	return NewUserService(repo, validator.New(), zap.NewNop())
}

func TestUserServiceRegisterDefaultsToSuperuser(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newUserService(repo)

	user, err := svc.Register(context.Background(), RegisterUserRequest{Username: "jonas", Password: "secret1"}, models.RoleSuperuser)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperuser, user.Role)
	assert.True(t, user.Active)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	require.Len(t, repo.created, 1)
}

func TestUserServiceRegisterAdminRequiresAdminCaller(t *testing.T) {
	svc := newUserService(&mockUserRepo{})

	_, err := svc.Register(context.Background(), RegisterUserRequest{Username: "jonas", Password: "secret1", Role: "admin"}, models.RoleSuperuser)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
	assert.Equal(t, "Only admins can create other admin accounts", appErr.Message)

	user, err := svc.Register(context.Background(), RegisterUserRequest{Username: "jonas", Password: "secret1", Role: "admin"}, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestUserServiceRegisterDuplicateUsername(t *testing.T) {
	repo := &mockUserRepo{byUsername: map[string]*models.User{
		"jonas": {ID: "u1", Username: "jonas"},
	}}
	svc := newUserService(repo)

	_, err := svc.Register(context.Background(), RegisterUserRequest{Username: "jonas", Password: "secret1"}, models.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, "User already exists", appErrors.FromError(err).Message)
}

func TestUserServiceRegisterShortPassword(t *testing.T) {
	svc := newUserService(&mockUserRepo{})

	_, err := svc.Register(context.Background(), RegisterUserRequest{Username: "jonas", Password: "123"}, models.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceListReturnsOnlySuperusers(t *testing.T) {
	repo := &mockUserRepo{byID: map[string]*models.User{
		"u1": {ID: "u1", Username: "admin", Role: models.RoleAdmin},
		"u2": {ID: "u2", Username: "jonas", Role: models.RoleSuperuser},
	}}
	svc := newUserService(repo)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "jonas", users[0].Username)
}

func TestUserServiceUpdateAdminForbidden(t *testing.T) {
	repo := &mockUserRepo{byID: map[string]*models.User{
		"u1": {ID: "u1", Username: "admin", Role: models.RoleAdmin},
	}}
	svc := newUserService(repo)

	username := "other"
	_, err := svc.Update(context.Background(), "u1", UpdateUserRequest{Username: &username})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
	assert.Equal(t, "Cannot modify admin accounts", appErr.Message)
}

func TestUserServiceUpdateDuplicateUsername(t *testing.T) {
	repo := &mockUserRepo{
		byID: map[string]*models.User{
			"u2": {ID: "u2", Username: "jonas", Role: models.RoleSuperuser},
		},
		byUsername: map[string]*models.User{
			"petras": {ID: "u3", Username: "petras", Role: models.RoleSuperuser},
		},
	}
	svc := newUserService(repo)

	username := "petras"
	_, err := svc.Update(context.Background(), "u2", UpdateUserRequest{Username: &username})
	require.Error(t, err)
	assert.Equal(t, "Username already exists", appErrors.FromError(err).Message)
}

func TestUserServiceUpdatePartialFields(t *testing.T) {
	user := &models.User{ID: "u2", Username: "jonas", Role: models.RoleSuperuser, PasswordHash: "old-hash", Active: true}
	repo := &mockUserRepo{byID: map[string]*models.User{"u2": user}}
	svc := newUserService(repo)

	active := false
	updated, err := svc.Update(context.Background(), "u2", UpdateUserRequest{Active: &active})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, "jonas", updated.Username)
	assert.Equal(t, "old-hash", updated.PasswordHash)
	require.NotNil(t, repo.updated)
}

func TestUserServiceDeleteAdminForbidden(t *testing.T) {
	repo := &mockUserRepo{byID: map[string]*models.User{
		"u1": {ID: "u1", Username: "admin", Role: models.RoleAdmin},
	}}
	svc := newUserService(repo)

	err := svc.Delete(context.Background(), "u1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
	assert.Equal(t, "Cannot delete admin accounts", appErr.Message)
	assert.Empty(t, repo.deletedID)
}

func TestUserServiceDeleteSuperuser(t *testing.T) {
	repo := &mockUserRepo{byID: map[string]*models.User{
		"u2": {ID: "u2", Username: "jonas", Role: models.RoleSuperuser},
	}}
	svc := newUserService(repo)

	require.NoError(t, svc.Delete(context.Background(), "u2"))
	assert.Equal(t, "u2", repo.deletedID)
}
