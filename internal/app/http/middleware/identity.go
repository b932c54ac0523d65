package middleware

import (
	"context"
	"fmt"
	"strings"

	"course-gate/internal/api/apierr"
	"course-gate/internal/domain/access"
	"course-gate/internal/domain/apperr"
	"course-gate/internal/domain/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (access.Identity, error)
}

// OptionalIdentity attaches the caller to the context. No Authorization header
// means an anonymous caller; a malformed or invalid one is rejected.
func OptionalIdentity(resolver IdentityResolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(identityKey, access.Anonymous())
			c.Next()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == authHeader || tokenString == "" {
			apierr.Abort(c, log, fmt.Errorf("bearer token malformed: %w", apperr.ErrUnauthenticated))
			return
		}

		id, err := resolver.Resolve(c.Request.Context(), tokenString)
		if err != nil {
			apierr.Abort(c, log, err)
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireIdentity rejects anonymous callers. Use after OptionalIdentity.
func RequireIdentity(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c).IsAnonymous() {
			apierr.Abort(c, log, fmt.Errorf("authorization header missing: %w", apperr.ErrUnauthenticated))
			return
		}
		c.Next()
	}
}

// RequireRole admits only callers holding role.
func RequireRole(role users.Role, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if id.IsAnonymous() {
			apierr.Abort(c, log, fmt.Errorf("role %s: %w", role, apperr.ErrUnauthenticated))
			return
		}
		if id.Role != role {
			apierr.Abort(c, log, fmt.Errorf("role %s required: %w", role, apperr.ErrForbidden))
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the caller, or Anonymous when none was attached.
func IdentityFrom(c *gin.Context) access.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return access.Anonymous()
	}
	id, ok := v.(access.Identity)
	if !ok {
		return access.Anonymous()
	}
	return id
}
