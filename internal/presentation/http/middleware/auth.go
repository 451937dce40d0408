package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/sangkips/gopos-api/internal/domain/policy"
	infraRepo "github.com/sangkips/gopos-api/internal/infrastructure/repository"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gopos-api/pkg/utils"
)

// Gin context keys set by AuthMiddleware
const (
	ContextUserID   = "user_id"
	ContextTenantID = "tenant_id"
	ContextRole     = "user_role"
	ContextPolicy   = "policy"
)

// AuthMiddleware creates a JWT authentication middleware. On success the
// caller's policy and tenant are attached to both the gin context and the
// request context.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			if utils.IsExpired(err) {
				response.Unauthorized(c, "Token has expired")
			} else {
				response.Unauthorized(c, "Invalid or expired token")
			}
			c.Abort()
			return
		}

		role := enum.Role(claims.Role)
		if !role.IsValid() {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		p := policy.For(policy.Identity{
			UserID:   claims.UserID,
			TenantID: claims.TenantID,
			Role:     role,
			Name:     claims.Name,
			Phone:    claims.Phone,
		})

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextTenantID, claims.TenantID)
		c.Set(ContextRole, role)
		c.Set(ContextPolicy, p)

		ctx := infraRepo.WithTenant(c.Request.Context(), claims.TenantID)
		ctx = policy.WithPolicy(ctx, p)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Authorize rejects callers whose policy does not grant action on resource
func Authorize(action policy.Action, resource policy.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPolicy(c)
		if !ok {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if !p.Can(action, resource) {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetPolicy returns the policy attached by AuthMiddleware
func GetPolicy(c *gin.Context) (*policy.Policy, bool) {
	v, exists := c.Get(ContextPolicy)
	if !exists {
		return nil, false
	}
	p, ok := v.(*policy.Policy)
	return p, ok && p != nil
}
