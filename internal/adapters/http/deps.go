package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/wayfarer/internal/adapters/postgres"
	"github.com/samirrijal/wayfarer/internal/adapters/valkey"
	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers. A service binary
// sets only the services it hosts; routes are registered for the non-nil ones.
type Dependencies struct {
	Places    *usecases.PlaceService
	Deleter   ports.PlaceDeleter
	Routes    *usecases.RouteService
	Feedback  *usecases.FeedbackService
	Favorites *usecases.FavoritesService
	Auth      *usecases.AuthService
	Identity  ports.IdentityResolver
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache
}
