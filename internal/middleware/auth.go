package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/auth"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/logger"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
)

const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
	ContextEmailKey  = "email"
)

// AuthMiddleware validates the bearer token and stores the caller's
// identity in the Gin context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), claims.Subject)
		c.Request = c.Request.WithContext(ctx)

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextRoleKey, models.RoleName(claims.Role))
		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}

// RequireRoles allows the request only when the caller holds one of the
// given roles. Role comparison is case-insensitive.
func RequireRoles(roles ...models.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		if !models.HasAnyRole(role, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}

// GetUserID returns the authenticated caller's ID.
func GetUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}

// GetUserRole returns the authenticated caller's role name.
func GetUserRole(c *gin.Context) (models.RoleName, bool) {
	val, exists := c.Get(ContextRoleKey)
	if !exists {
		return "", false
	}

	if role, ok := val.(models.RoleName); ok {
		return role, true
	}
	if s, ok := val.(string); ok {
		return models.RoleName(s), true
	}
	return "", false
}
