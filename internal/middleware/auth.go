package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDContextKey   = "user_id"
	userRoleContextKey = "user_role"
)

// TokenVerifier verifies a bearer token and returns the authenticated user's
// identity. It is satisfied by a closure over the auth module's TokenService
// so this package stays free of JWT specifics.
type TokenVerifier func(token string) (userID uint, role string, err error)

// AuthConfig controls the bearer-token authentication middleware.
type AuthConfig struct {
	Verify TokenVerifier
	// PublicPaths are exact request paths that bypass authentication.
	PublicPaths []string
}

// Auth returns a gin middleware that requires a valid "Authorization: Bearer"
// token on every request whose path is not listed as public. Requests failing
// authentication are aborted with a 401 JSON envelope.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	public := make(map[string]struct{}, len(cfg.PublicPaths))
	for _, p := range cfg.PublicPaths {
		public[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := public[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		userID, role, err := cfg.Verify(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(userIDContextKey, userID)
		c.Set(userRoleContextKey, role)
		c.Next()
	}
}

// GetUserID extracts the authenticated user's ID from the gin.Context.
// Returns 0 if the request is unauthenticated.
func GetUserID(c *gin.Context) uint {
	if v, exists := c.Get(userIDContextKey); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetUserRole extracts the authenticated user's role from the gin.Context.
func GetUserRole(c *gin.Context) string {
	if v, exists := c.Get(userRoleContextKey); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": message,
		"data":    nil,
	})
}
