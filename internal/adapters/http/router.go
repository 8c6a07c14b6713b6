package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/pkg/metrics"
)

const requestTimeout = 15 * time.Second

func withTimeout(h fiber.Handler) fiber.Handler {
	return timeout.NewWithContext(h, requestTimeout)
}

// SetupRoutes registers the shared middleware, health and metrics
// endpoints, and the REST routes of every service set in deps.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting per IP; peers share an IP so the ceiling is generous
	app.Use(limiter.New(limiter.Config{
		Max:        600,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	app.Use(DeprecationMiddleware(deprecatedRoutes))

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/health", HealthHandler())
	app.Get("/ready", ReadyHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	v1 := app.Group("/api/v1")

	if deps.Auth != nil {
		auth := v1.Group("/auth")
		auth.Post("/register", withTimeout(RegisterHandler(deps)))
		auth.Post("/login", withTimeout(LoginHandler(deps)))
	}

	if deps.Identity == nil {
		return
	}
	authn := RequireAuth(deps.Identity)

	if deps.Places != nil {
		place := v1.Group("/place", authn)
		place.Get("/", anyRole, withTimeout(ListPlacesHandler(deps)))
		place.Get("/near", anyRole, withTimeout(NearPlacesHandler(deps, "")))
		place.Get("/tag", anyRole, withTimeout(NearPlacesHandler(deps, "tag")))
		place.Get("/name", anyRole, withTimeout(NearPlacesHandler(deps, "name")))
		place.Get("/:id", anyRole, withTimeout(GetPlaceHandler(deps)))
		place.Post("/", ownerOnly, withTimeout(CreatePlaceHandler(deps)))
		place.Patch("/:id/name", ownerOnly, withTimeout(UpdatePlaceNameHandler(deps)))
		place.Patch("/:id/description", ownerOnly, withTimeout(UpdatePlaceDescriptionHandler(deps)))
		if deps.Deleter != nil {
			place.Delete("/:id", ownerOnly, withTimeout(DeletePlaceHandler(deps)))
		}

		// GraphQL
		app.Post("/graphql", authn, anyRole, GraphQLHandler(deps))

		// WebSocket
		if deps.NATS != nil {
			app.Use("/ws", func(c *fiber.Ctx) error {
				if websocket.IsWebSocketUpgrade(c) {
					return c.Next()
				}
				return fiber.ErrUpgradeRequired
			}, authn)
			app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
		}
	}

	if deps.Routes != nil {
		route := v1.Group("/route", authn, anyRole)
		route.Get("/", withTimeout(ListRoutesHandler(deps)))
		route.Get("/by-place/:id", withTimeout(RoutesByPlaceHandler(deps)))
		route.Get("/:id", withTimeout(GetRouteHandler(deps)))
		route.Post("/", withTimeout(CreateRouteHandler(deps)))
		route.Delete("/:id", withTimeout(DeleteRouteHandler(deps)))
	}

	if deps.Feedback != nil {
		feedback := v1.Group("/feedback", authn, anyRole)
		for _, target := range []domain.FeedbackTarget{domain.TargetPlace, domain.TargetRoute} {
			prefix := "/" + string(target)
			feedback.Post(prefix, withTimeout(CreateFeedbackHandler(deps, target)))
			feedback.Get(prefix+"/:id", withTimeout(ListFeedbackHandler(deps, target)))
			feedback.Delete(prefix+"/batch/:id", ownerOnly, withTimeout(DeleteFeedbackBatchHandler(deps, target)))
			feedback.Delete(prefix+"/:id", withTimeout(DeleteFeedbackHandler(deps, target)))
		}
	}

	if deps.Favorites != nil {
		favorites := v1.Group("/favorites", authn, anyRole)
		favorites.Post("/", withTimeout(AddFavoriteHandler(deps)))
		favorites.Get("/user", withTimeout(UserFavoritesHandler(deps)))
		favorites.Get("/:id", withTimeout(GetFavoriteHandler(deps)))
		favorites.Delete("/place/:id", ownerOnly, withTimeout(DeleteFavoritesByPlaceHandler(deps)))
		favorites.Delete("/:id", withTimeout(DeleteFavoriteHandler(deps)))
	}
}
