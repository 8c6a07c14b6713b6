// Package app holds the bootstrap shared by the service binaries:
// configuration, logging, tracing, storage and the fiber server lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/wayfarer/internal/adapters/peers"
	"github.com/samirrijal/wayfarer/internal/adapters/postgres"
	"github.com/samirrijal/wayfarer/internal/adapters/valkey"
	"github.com/samirrijal/wayfarer/internal/pkg/auth"
	"github.com/samirrijal/wayfarer/internal/pkg/config"
	"github.com/samirrijal/wayfarer/internal/pkg/logging"
	"github.com/samirrijal/wayfarer/internal/pkg/telemetry"
)

const (
	bodyLimit       = 1024 * 1024
	shutdownTimeout = 10 * time.Second
	poolStatsEvery  = 15 * time.Second
)

// Runtime carries what every service binary needs after start-up.
// Close releases everything Init and the Open* helpers acquired.
type Runtime struct {
	Service string
	Config  *config.Config
	Tokens  *auth.TokenManager

	closers []func()
}

// Init loads configuration for service, installs the default logger and,
// when enabled, the OTLP tracer.
func Init(ctx context.Context, service string) (*Runtime, error) {
	cfg, err := config.Load(service)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logging.Setup(service, cfg.Log.Level, cfg.Log.Format)

	rt := &Runtime{Service: service, Config: cfg}

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			rt.closers = append(rt.closers, shutdown)
		}
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}
	rt.Tokens = tokens
	return rt, nil
}

// Close runs the registered cleanups in reverse order.
func (rt *Runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}

// OnClose registers fn to run on Close.
func (rt *Runtime) OnClose(fn func()) {
	rt.closers = append(rt.closers, fn)
}

// UsesMemory reports whether the in-process store is configured.
func (rt *Runtime) UsesMemory() bool {
	return rt.Config.Storage.Driver == config.DriverMemory
}

// OpenDB connects to PostgreSQL and starts reporting pool metrics.
func (rt *Runtime) OpenDB(ctx context.Context) (*postgres.DB, error) {
	db, err := postgres.New(ctx, rt.Config.Database.DSN(), rt.Config.Database.MaxConns)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	go db.ReportPoolStats(ctx, poolStatsEvery)
	rt.OnClose(db.Close)
	return db, nil
}

// OpenCache connects to Valkey with keys scoped to the service. A disabled
// or unreachable cache yields nil and the service runs uncached.
func (rt *Runtime) OpenCache() *valkey.Cache {
	if !rt.Config.Valkey.Enabled {
		return nil
	}
	cache, err := valkey.New(rt.Config.Valkey.Addr, rt.Service+":")
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		return nil
	}
	rt.OnClose(cache.Close)
	return cache
}

// Peer builds the transport options for a peer service rooted at baseURL.
func (rt *Runtime) Peer(baseURL string) peers.Options {
	p := rt.Config.Peers
	return peers.Options{
		BaseURL:       baseURL,
		Timeout:       p.Timeout,
		RatePerSecond: p.RatePerSecond,
		Breaker: peers.BreakerSettings{
			MaxRequests:  p.Breaker.MaxRequests,
			Interval:     p.Breaker.Interval,
			Timeout:      p.Breaker.Timeout,
			MinRequests:  p.Breaker.MinRequests,
			FailureRatio: p.Breaker.FailureRatio,
		},
	}
}

// NewServer creates the fiber app with panic recovery and CORS.
func (rt *Runtime) NewServer(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(rt.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Config.Server.WriteTimeout) * time.Second,
		BodyLimit:    bodyLimit,
		AppName:      name,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: rt.Config.Server.AllowOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       3600,
	}))
	return app
}

// Serve listens on the configured port until SIGINT or SIGTERM, then
// drains in-flight requests.
func (rt *Runtime) Serve(app *fiber.App) error {
	addr := fmt.Sprintf(":%d", rt.Config.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr)
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		slog.Info("shutdown signal received, draining connections", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
	slog.Info("server stopped")
	return nil
}
