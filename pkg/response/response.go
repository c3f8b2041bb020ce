package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

// The API keeps the original wire contract: bare payloads for reads, a
// "Success" wrapper for creates/deletes and an "Updated fields" wrapper for
// partial updates, with every error shaped as {"Error": <message>}.

// JSON sends a bare success payload.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// Created responds with HTTP 201 and the payload under "Success".
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, gin.H{"Success": data})
}

// Success responds with HTTP 200 and the payload under "Success".
func Success(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, gin.H{"Success": data})
}

// Updated responds with HTTP 200 and the applied fields under "Updated fields".
func Updated(c *gin.Context, fields interface{}) {
	JSON(c, http.StatusOK, gin.H{"Updated fields": fields})
}

// Error maps the error onto its HTTP status with an {"Error": ...} body.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"Error": appErr.Message})
}
