package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prism-lt/prism-api/internal/middleware"
	"github.com/prism-lt/prism-api/internal/models"
	"github.com/prism-lt/prism-api/internal/service"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func currentUserID(c *gin.Context) string {
	claims := claimsFromContext(c)
	if claims == nil {
		return ""
	}
	return claims.UserID
}

// dateQuery parses an optional YYYY-MM-DD query parameter.
func dateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := service.ParseDay(raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
