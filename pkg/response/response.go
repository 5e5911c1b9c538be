package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/prism-lt/prism-api/pkg/errors"
)

// JSON sends a success payload as-is.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message responds with a `{message}` body, the contract used for deletions.
func Message(c *gin.Context, text string) {
	JSON(c, http.StatusOK, gin.H{"message": text})
}

// Error converts the error to the common `{message}` body with its HTTP status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, gin.H{"message": appErr.Message})
}
