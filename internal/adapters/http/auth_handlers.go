package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

type registerRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=OWNER USER"`
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	Role        domain.Role `json:"role"`
}

// RegisterHandler creates an account.
func RegisterHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := bindJSON(c, &req); err != nil {
			return writeDomainError(c, err)
		}
		user, err := deps.Auth.Register(c.UserContext(), req.Login, req.Password, domain.Role(req.Role))
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// LoginHandler exchanges credentials for an access token.
func LoginHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := bindJSON(c, &req); err != nil {
			return writeDomainError(c, err)
		}
		token, role, err := deps.Auth.Login(c.UserContext(), req.Login, req.Password)
		if err != nil {
			return writeDomainError(c, err)
		}
		c.Set("Cache-Control", "no-store")
		return c.JSON(tokenResponse{AccessToken: token, Role: role})
	}
}
