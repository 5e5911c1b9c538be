package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/prism-lt/prism-api/internal/middleware"
	"github.com/prism-lt/prism-api/internal/models"
	"github.com/prism-lt/prism-api/internal/service"
)

type authRepoMock struct {
	users map[string]*models.User
}

func (m *authRepoMock) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *authRepoMock) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func newAuthHandler(t *testing.T, users map[string]*models.User) *AuthHandler {
	auth := service.NewAuthService(&authRepoMock{users: users}, nil, nil, service.AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "prism-api",
	})
	return NewAuthHandler(auth, nil)
}

func newTestContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader([]byte{})
	} else {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func seedUser(t *testing.T, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "u1",
		Username:     "vadas",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Active:       true,
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	user := seedUser(t, "slaptazodis")
	handler := newAuthHandler(t, map[string]*models.User{"u1": user})

	payload, _ := json.Marshal(models.LoginRequest{Username: "vadas", Password: "slaptazodis"})
	c, w := newTestContext(t, http.MethodPost, "/auth/login", payload)

	handler.Login(c)
	require.Equal(t, http.StatusOK, w.Code)

	var res models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "u1", res.ID)
	assert.Equal(t, models.RoleAdmin, res.Role)
	assert.NotEmpty(t, res.Token)
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	user := seedUser(t, "slaptazodis")
	handler := newAuthHandler(t, map[string]*models.User{"u1": user})

	payload, _ := json.Marshal(models.LoginRequest{Username: "vadas", Password: "neteisingas"})
	c, w := newTestContext(t, http.MethodPost, "/auth/login", payload)

	handler.Login(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestAuthHandlerLoginInvalidBody(t *testing.T) {
	handler := newAuthHandler(t, nil)

	c, w := newTestContext(t, http.MethodPost, "/auth/login", []byte(`{"username":`))

	handler.Login(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please provide username and password")
}

func TestAuthHandlerMeWithoutClaims(t *testing.T) {
	handler := newAuthHandler(t, nil)

	c, w := newTestContext(t, http.MethodGet, "/auth/me", nil)

	handler.Me(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	user := seedUser(t, "slaptazodis")
	handler := newAuthHandler(t, map[string]*models.User{"u1": user})

	c, w := newTestContext(t, http.MethodGet, "/auth/me", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin})

	handler.Me(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"vadas"`)
	assert.NotContains(t, w.Body.String(), "password")
}
