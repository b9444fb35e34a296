package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kritika/internal/apperrors"
	"kritika/internal/services"
)

const identityKey = "identity"

// AuthRequired is a Fiber middleware rejecting requests without a valid
// Bearer access token. The asserted identity lands in the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// An upstream AuthOptional may already have resolved the identity.
		if Identity(c) != nil {
			return c.Next()
		}
		identity, err := bearerIdentity(c, authService)
		if err != nil {
			return apperrors.Respond(c, err)
		}
		if identity == nil {
			return apperrors.Respond(c, apperrors.Unauthorized("authorization header is required"))
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// AuthOptional resolves an identity when a token is present and lets
// anonymous requests through. A malformed or expired token is still
// rejected rather than silently downgraded to anonymous.
func AuthOptional(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := bearerIdentity(c, authService)
		if err != nil {
			return apperrors.Respond(c, err)
		}
		if identity != nil {
			c.Locals(identityKey, identity)
		}
		return c.Next()
	}
}

// Identity returns the authenticated identity stored by the auth
// middleware, or nil for anonymous requests.
func Identity(c *fiber.Ctx) *services.Identity {
	identity, _ := c.Locals(identityKey).(*services.Identity)
	return identity
}

func bearerIdentity(c *fiber.Ctx, authService *services.AuthService) (*services.Identity, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, apperrors.Unauthorized("authorization header format must be 'Bearer <token>'")
	}
	return authService.ValidateAccess(parts[1])
}
