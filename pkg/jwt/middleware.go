package jwt

import (
	"strconv"
	"strings"

	"github.com/jerealeksanteri/rounds-api-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserIDKey is the gin.Context key for the caller's user id.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey is the gin.Context key for the caller's username.
	ContextUsernameKey = "username"
	// ContextClaimsKey is the gin.Context key for the parsed claims.
	ContextClaimsKey = "jwt_claims"
)

// AuthMiddleware extracts and validates "Authorization: Bearer <token>" and
// stores the caller's identity in the gin.Context. Every service operation
// downstream takes this resolved caller id explicitly.
func (s *JWTService) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "Authorization header must be Bearer <token>")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			response.Unauthorized(c, "token must not be empty")
			c.Abort()
			return
		}

		claims, err := s.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "token invalid or expired")
			c.Abort()
			return
		}

		username := ""
		if claims.Data != nil {
			if u, ok := claims.Data["username"].(string); ok {
				username = u
			}
		}

		c.Set(ContextUserIDKey, claims.Subject)
		c.Set(ContextUsernameKey, username)
		c.Set(ContextClaimsKey, claims)

		c.Next()
	}
}

// GetUserID returns the caller's user id from the gin.Context, 0 when the
// context carries no valid identity.
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ContextUserIDKey); exists {
		if idStr, ok := userID.(string); ok {
			if id, err := strconv.ParseUint(idStr, 10, 32); err == nil {
				return uint(id)
			}
		}
	}
	return 0
}

// GetUsername returns the caller's username from the gin.Context.
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(ContextUsernameKey); exists {
		if name, ok := username.(string); ok {
			return name
		}
	}
	return ""
}

// GetClaims returns the parsed claims from the gin.Context.
func GetClaims(c *gin.Context) *CustomClaims {
	if claims, exists := c.Get(ContextClaimsKey); exists {
		if cl, ok := claims.(*CustomClaims); ok {
			return cl
		}
	}
	return nil
}
