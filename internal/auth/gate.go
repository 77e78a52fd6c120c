package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonasLeetTheWay/clashon-go/internal/config"
	"github.com/JonasLeetTheWay/clashon-go/internal/models"
)

// Context keys set by RequireAdminToken.
const (
	AdminIDKey   = "adminID"
	AdminRoleKey = "adminRole"
)

// AccessCheck decides whether a request may reach the admin routes.
type AccessCheck func(c *gin.Context) error

// AllowAll admits every request.
func AllowAll(*gin.Context) error { return nil }

// RequireAdminToken admits requests carrying a valid admin bearer token.
func RequireAdminToken(cfg *config.Config) AccessCheck {
	return func(c *gin.Context) error {
		header := c.GetHeader("Authorization")
		if header == "" {
			return errors.New("Authorization header required")
		}
		tokenString, err := ExtractTokenFromHeader(header)
		if err != nil {
			return err
		}
		claims, err := ValidateToken(cfg, tokenString)
		if err != nil {
			return ErrInvalidToken
		}
		if claims.Role != models.RoleAdmin && claims.Role != models.RoleSuperAdmin {
			return errors.New("Not authorized as admin")
		}

		c.Set(AdminIDKey, claims.AdminID)
		c.Set(AdminRoleKey, claims.Role)
		return nil
	}
}

// CheckFor picks the gate matching the configuration.
func CheckFor(cfg *config.Config) AccessCheck {
	if cfg.AdminAuthRequired {
		return RequireAdminToken(cfg)
	}
	return AllowAll
}

// Middleware aborts with 403 when check rejects the request.
func Middleware(check AccessCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := check(c); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.Next()
	}
}
