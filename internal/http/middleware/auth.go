package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey = "auth_user_id"
	roleKey   = "auth_role"
)

// RequireAuth validates the Bearer token and stores its claims on the
// context. Requests without a valid token are rejected.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token", "code": "unauthorized"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token", "code": "unauthorized"})
			return
		}

		if v, ok := claims["user_id"].(float64); ok {
			c.Set(userIDKey, int64(v))
		}
		if v, ok := claims["role"].(string); ok {
			c.Set(roleKey, v)
		}
		c.Next()
	}
}

// RequireRole gates a route group to the listed roles. Must run after
// RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role", "code": "forbidden"})
	}
}

// GetUserID returns the authenticated user id, 0 when unauthenticated.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// GetRole returns the authenticated role, empty when unauthenticated.
func GetRole(c *gin.Context) string {
	if v, ok := c.Get(roleKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
