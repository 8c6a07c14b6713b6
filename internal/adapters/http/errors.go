package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

// APIError is the JSON body of every error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// newError writes an APIError carrying the request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

func errUnauthorized(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusUnauthorized, "unauthorized", msg)
}

func errForbidden(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusForbidden, "forbidden", msg)
}

// domainStatuses maps the sentinel errors of the core to HTTP answers.
// The first match wins.
var domainStatuses = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "not_found"},
	{domain.ErrAlreadyExists, fiber.StatusConflict, "conflict"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "bad_request"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "unauthorized"},
	{domain.ErrForbidden, fiber.StatusForbidden, "forbidden"},
}

// writeDomainError translates a use case error into an APIError response.
// Unclassified errors are logged and hidden behind a generic 500.
func writeDomainError(c *fiber.Ctx, err error) error {
	for _, m := range domainStatuses {
		if errors.Is(err, m.target) {
			return newError(c, m.status, m.code, err.Error())
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(c, fiber.StatusServiceUnavailable, "timeout", "request timed out")
	}

	LoggerFromCtx(c.UserContext()).Error("request failed",
		"method", c.Method(), "path", c.Path(), "error", err)
	return newError(c, fiber.StatusInternalServerError, "internal_error", "internal error")
}
