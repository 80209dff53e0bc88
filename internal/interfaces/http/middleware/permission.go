package middleware

import (
	"net/http"
	"strings"

	"github.com/foodcrm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireResource creates middleware that checks permission for a resource
// with the action derived from the HTTP method:
//   - GET -> read
//   - POST -> create
//   - PUT/PATCH -> update
//   - DELETE -> delete
func RequireResource(resource string) gin.HandlerFunc {
	return RequireResourceWithConfig(resource, PermissionConfig{})
}

// RequireResourceWithConfig creates middleware with custom config
func RequireResourceWithConfig(resource string, cfg PermissionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		permission := resource + ":" + methodToAction(c.Request.Method)
		checkPermission(c, cfg, permission)
	}
}

// RequireAction creates middleware that checks a fixed resource:action
// permission regardless of the HTTP method. Routes whose action does not
// follow from the method use this, such as sending email over POST
// (emails:send) or moving a deal between stages (deals:update).
func RequireAction(resource, action string) gin.HandlerFunc {
	return RequireActionWithConfig(resource, action, PermissionConfig{})
}

// RequireActionWithConfig creates fixed-permission middleware with custom config
func RequireActionWithConfig(resource, action string, cfg PermissionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		checkPermission(c, cfg, resource+":"+action)
	}
}

func checkPermission(c *gin.Context, cfg PermissionConfig, permission string) {
	claims := GetJWTClaims(c)
	if claims == nil {
		handlePermissionDenied(c, cfg, permission, "No authentication claims found")
		return
	}

	if !claims.HasPermission(permission) {
		handlePermissionDenied(c, cfg, permission, "Role lacks required permission")
		return
	}

	c.Next()
}

// methodToAction converts HTTP method to permission action
func methodToAction(method string) string {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// handlePermissionDenied handles permission denied scenarios
func handlePermissionDenied(c *gin.Context, cfg PermissionConfig, permission, reason string) {
	if cfg.Logger != nil {
		claims := GetJWTClaims(c)
		userID := ""
		role := ""
		if claims != nil {
			userID = claims.Subject
			role = claims.Role
		}

		cfg.Logger.Warn("permission denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.String("role", role),
			zap.String("required_permission", permission),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
		dto.ErrCodeForbidden,
		"Access denied: insufficient permissions",
	))
}

// HasPermission is a helper function to check permission in handlers
func HasPermission(c *gin.Context, permission string) bool {
	claims := GetJWTClaims(c)
	if claims == nil {
		return false
	}
	return claims.HasPermission(permission)
}
