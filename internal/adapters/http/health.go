package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// HealthHandler returns a basic liveness check.
func HealthHandler() fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).String(),
			"version": Version,
		})
	}
}

// readinessCheck probes one backend the service depends on.
type readinessCheck struct {
	name  string
	probe func(ctx context.Context) error
}

var errNATSDisconnected = errors.New("disconnected")

// readinessChecks lists the backends configured in deps. Backends left
// out of the configuration are not probed.
func readinessChecks(deps *Dependencies) []readinessCheck {
	var checks []readinessCheck
	if deps.DB != nil {
		checks = append(checks, readinessCheck{"database", deps.DB.Ping})
	}
	if deps.NATS != nil {
		checks = append(checks, readinessCheck{"nats", func(context.Context) error {
			if !deps.NATS.IsConnected() {
				return errNATSDisconnected
			}
			return nil
		}})
	}
	if deps.Cache != nil {
		checks = append(checks, readinessCheck{"cache", deps.Cache.Ping})
	}
	return checks
}

// ReadyHandler probes every configured backend and answers 503 when any
// of them fails.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return readyHandler(readinessChecks(deps))
}

func readyHandler(checks []readinessCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		results := make(map[string]string, len(checks))
		code, status := fiber.StatusOK, "ready"
		for _, check := range checks {
			if err := check.probe(ctx); err != nil {
				results[check.name] = "error: " + err.Error()
				code, status = fiber.StatusServiceUnavailable, "not ready"
				continue
			}
			results[check.name] = "ok"
		}

		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"checks": results,
		})
	}
}
