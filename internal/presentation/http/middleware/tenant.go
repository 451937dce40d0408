package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	infraRepo "github.com/sangkips/gopos-api/internal/infrastructure/repository"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
)

// RequireTenant ensures the authenticated caller resolved to a tenant
// partition. It must run after AuthMiddleware.
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := infraRepo.GetTenantID(c.Request.Context()); !ok {
			response.BadRequest(c, "Tenant context required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetTenantID returns the tenant ID from the gin context, or uuid.Nil
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantID, exists := c.Get(ContextTenantID)
	if !exists {
		return uuid.Nil
	}
	id, ok := tenantID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// GetUserID returns the authenticated user ID from the gin context, or uuid.Nil
func GetUserID(c *gin.Context) uuid.UUID {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil
	}
	id, ok := userID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
