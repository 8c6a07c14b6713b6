package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/ports"
)

const (
	localIdentity = "identity"
	localToken    = "token"
)

// RequireAuth validates the bearer token and stores the caller identity
// and the raw Authorization header in the request locals. WebSocket
// upgrades may pass the token as the access_token query parameter.
func RequireAuth(resolver ports.IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" && websocket.IsWebSocketUpgrade(c) {
			if t := c.Query("access_token"); t != "" {
				header = "Bearer " + t
			}
		}

		id, err := resolver.Identify(header)
		if err != nil {
			return errUnauthorized(c, "missing or invalid access token")
		}

		c.Locals(localIdentity, *id)
		c.Locals(localToken, header)
		withLogAttrs(c, "user_id", id.UserID)
		return c.Next()
	}
}

// RequireRole rejects callers whose role is not listed.
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := identity(c).Role
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return errForbidden(c, "role "+string(role)+" may not access this resource")
	}
}

func identity(c *fiber.Ctx) domain.Identity {
	id, _ := c.Locals(localIdentity).(domain.Identity)
	return id
}

// bearer returns the Authorization header forwarded to peer services.
func bearer(c *fiber.Ctx) string {
	t, _ := c.Locals(localToken).(string)
	return t
}

var (
	anyRole   = RequireRole(domain.RoleOwner, domain.RoleUser)
	ownerOnly = RequireRole(domain.RoleOwner)
)
