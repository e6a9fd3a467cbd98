package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/infrastructure/auth"
	"github.com/lensflow/backend/internal/interfaces/http/dto"
)

// RoleGuardConfig holds configuration for the role guard
type RoleGuardConfig struct {
	Logger *zap.Logger
}

// RequireRole creates middleware that requires the caller's role to sit
// at or above minRole in the hierarchy
// chairman > company_admin > branch_head > staff.
func RequireRole(minRole auth.Role) gin.HandlerFunc {
	return RequireRoleWithConfig(minRole, RoleGuardConfig{})
}

// RequireRoleWithConfig creates role-guard middleware with custom config
func RequireRoleWithConfig(minRole auth.Role, cfg RoleGuardConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortForbidden(c, cfg, minRole, "no authentication claims in context")
			return
		}

		if !claims.Role.AtLeast(minRole) {
			abortForbidden(c, cfg, minRole, "role below required level")
			return
		}

		c.Next()
	}
}

// HasRole reports whether the caller's role is at or above minRole,
// for checks inside handlers
func HasRole(c *gin.Context, minRole auth.Role) bool {
	claims := GetJWTClaims(c)
	return claims != nil && claims.Role.AtLeast(minRole)
}

func abortForbidden(c *gin.Context, cfg RoleGuardConfig, minRole auth.Role, reason string) {
	if cfg.Logger != nil {
		role := ""
		if claims := GetJWTClaims(c); claims != nil {
			role = claims.Role.String()
		}
		cfg.Logger.Warn("role guard denied request",
			zap.String("reason", reason),
			zap.String("role", role),
			zap.String("required", minRole.String()),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))
	}

	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponse(dto.ErrCodeForbidden, "Access denied: insufficient role"))
}
