package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/childcare-api/internal/middleware"
	"github.com/noah-isme/childcare-api/internal/models"
	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
	"github.com/noah-isme/childcare-api/pkg/response"
)

// identity pulls the resolved caller off the context, failing the request
// when the auth middleware did not run.
func identity(c *gin.Context) (models.Identity, bool) {
	ident, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.Identity{}, false
	}
	return ident, true
}

// intParam parses a numeric path parameter, failing the request on garbage.
func intParam(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" parameter"))
		return 0, false
	}
	return value, true
}

// bindJSON decodes the request body, shaping decode failures as validation
// errors.
func bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return false
	}
	return true
}
