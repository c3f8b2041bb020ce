package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/childcare-api/internal/models"
	"github.com/noah-isme/childcare-api/internal/service"
	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
	"github.com/noah-isme/childcare-api/pkg/response"
)

// ContextIdentityKey is the gin context key storing the resolved caller.
const ContextIdentityKey = "currentIdentity"

// JWT protects routes by requiring a valid access token. The token only
// carries the user id; the role is resolved from the database here so flag
// changes apply to the very next request.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		ident, err := authService.ResolveIdentity(c.Request.Context(), claims)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextIdentityKey, ident)
		c.Next()
	}
}

// Identity returns the resolved caller stored by the JWT middleware.
func Identity(c *gin.Context) (models.Identity, bool) {
	value, ok := c.Get(ContextIdentityKey)
	if !ok {
		return models.Identity{}, false
	}
	ident, ok := value.(*models.Identity)
	if !ok || ident == nil {
		return models.Identity{}, false
	}
	return *ident, true
}
