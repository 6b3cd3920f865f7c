package middleware

import (
	"github.com/buildsuite/site_ops_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey and roleKey hold the authenticated identity in the request
// context. The auth middleware is the only writer.
const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetRoleFromContext retrieves the acting role from the request.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	role, ok := c.Request.Context().Value(roleKey).(domain.Role)
	if !ok || !role.IsValid() {
		return "", false
	}
	return role, true
}

// GetActorFromContext bundles the authenticated identity into the Actor value
// every core call takes explicitly.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	role, ok := GetRoleFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: userID, Role: role}, true
}
