package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

const testSecret = "test-secret"

func newJWTAuthService(users map[string]*models.User) *service.AuthService {
	return service.NewAuthService(&authRepoMock{users: users}, nil, nil, service.AuthConfig{
		Secret:     testSecret,
		Expiration: time.Hour,
		Issuer:     "prism-api",
	})
}

func signToken(t *testing.T, user *models.User) string {
	now := time.Now().UTC()
	claims := models.JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newJWTContext(t *testing.T, authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/soldiers", nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c.Request = req
	return c, w
}

func TestJWTMiddlewareMissingHeader(t *testing.T) {
	c, w := newJWTContext(t, "")

	JWT(newJWTAuthService(nil))(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareMalformedScheme(t *testing.T) {
	c, w := newJWTContext(t, "Token abc")

	JWT(newJWTAuthService(nil))(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	user := &models.User{ID: "u1", Username: "vadas", Role: models.RoleAdmin, Active: true}
	c, w := newJWTContext(t, "Bearer "+signToken(t, user))

	JWT(newJWTAuthService(map[string]*models.User{"u1": user}))(c)
	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)

	claimsValue, exists := c.Get(ContextUserKey)
	require.True(t, exists)
	claims, ok := claimsValue.(*models.JWTClaims)
	require.True(t, ok)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestJWTMiddlewareDeactivatedAccount(t *testing.T) {
	user := &models.User{ID: "u1", Username: "vadas", Role: models.RoleSuperuser, Active: false}
	c, w := newJWTContext(t, "Bearer "+signToken(t, user))

	JWT(newJWTAuthService(map[string]*models.User{"u1": user}))(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Account is deactivated")
}

func TestJWTMiddlewareDeletedAccount(t *testing.T) {
	user := &models.User{ID: "ghost", Username: "ghost", Role: models.RoleSuperuser, Active: true}
	c, w := newJWTContext(t, "Bearer "+signToken(t, user))

	JWT(newJWTAuthService(nil))(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
