package http

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

type ctxKey int

const loggerKey ctxKey = iota

// RequestIDLogMiddleware seeds the request-scoped logger with the fiber
// request ID. Handlers and use cases reach it through LoggerFromCtx.
func RequestIDLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid, _ := c.Locals("requestid").(string); rid != "" {
			withLogAttrs(c, "request_id", rid)
		}
		return c.Next()
	}
}

// withLogAttrs extends the request-scoped logger with args.
func withLogAttrs(c *fiber.Ctx, args ...any) {
	ctx := c.UserContext()
	c.SetUserContext(context.WithValue(ctx, loggerKey, LoggerFromCtx(ctx).With(args...)))
}

// LoggerFromCtx returns the request-scoped logger, or the default logger
// outside a request.
func LoggerFromCtx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
