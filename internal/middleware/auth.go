package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-connect/internal/access"
	"github.com/BruksfildServices01/barber-connect/internal/auth"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

const (
	ContextActor       = "actor"
	ContextUserID      = "userID"
	ContextUserRole    = "userRole"
	ContextTokenExpiry = "tokenExpiry"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (*access.Actor, time.Time, error)
}

// AuthMiddleware authenticates the request when an Authorization header is
// present. Requests without one continue anonymously; whether that is enough
// is up to the route's policy.
func AuthMiddleware(tokens TokenParser, revoked auth.RevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			httperr.Unauthorized(c, "invalid_authorization_header", "Authorization header must be 'Bearer <token>'.")
			return
		}

		actor, expires, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), actor.TokenID)
		if err != nil {
			_ = c.Error(err)
			httperr.Internal(c, "internal_error", "Could not verify token.")
			return
		}
		if isRevoked {
			httperr.Unauthorized(c, "token_revoked", "Token has been revoked.")
			return
		}

		c.Set(ContextActor, actor)
		c.Set(ContextUserID, actor.UserID)
		c.Set(ContextUserRole, actor.Role)
		c.Set(ContextTokenExpiry, expires)

		c.Next()
	}
}

// ActorFrom returns the authenticated actor, or nil for anonymous requests.
func ActorFrom(c *gin.Context) *access.Actor {
	v, ok := c.Get(ContextActor)
	if !ok {
		return nil
	}
	actor, _ := v.(*access.Actor)
	return actor
}

// TokenExpiry is the expiry of the bearer token that authenticated c.
func TokenExpiry(c *gin.Context) time.Time {
	v, ok := c.Get(ContextTokenExpiry)
	if !ok {
		return time.Time{}
	}
	exp, _ := v.(time.Time)
	return exp
}

// Gate runs policy against the request before the handler. Owner checks that
// need the loaded resource happen in the use case instead.
func Gate(policy access.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := policy.Check(access.Request{
			Method: c.Request.Method,
			Actor:  ActorFrom(c),
		})
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.Next()
	}
}

// RequireRole is Gate(access.RequireRole(roles)).
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return Gate(access.RequireRole(roles))
}
