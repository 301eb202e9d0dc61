package middleware

import (
	"context"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// principalKey stores the authenticated caller in the request context.
const principalKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying the authenticated caller.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipalFromCtx retrieves the authenticated caller from a standard context.
func GetPrincipalFromCtx(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

// GetPrincipal retrieves the authenticated caller of a Gin request.
// It returns false when the auth middleware did not run or rejected the request.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	return GetPrincipalFromCtx(c.Request.Context())
}

// GetUserIDFromContext retrieves the authenticated user ID of a Gin request.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	p, ok := GetPrincipal(c)
	if !ok || p.UserID == "" {
		return "", false
	}
	return p.UserID, true
}
