package ports

import (
	"context"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishPlaceCreated(ctx context.Context, place *domain.Place) error
	PublishPlaceDeleted(ctx context.Context, placeID string) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// RemoteOutcome describes how a remote capability call resolved.
// Fallback is true when the primary path was unavailable and the
// capability degraded to its empty result.
type RemoteOutcome struct {
	Capability string
	Fallback   bool
}

// FeedbackClient is the feedback service as seen by its peers.
// Calls never fail: transport problems resolve to a no-op outcome.
type FeedbackClient interface {
	DeleteForPlace(ctx context.Context, placeID, token string) RemoteOutcome
	DeleteForRoute(ctx context.Context, routeID, token string) RemoteOutcome
}

// FavoritesClient is the favorites service as seen by its peers.
type FavoritesClient interface {
	DeleteForPlace(ctx context.Context, placeID, token string) RemoteOutcome
}

// PlaceClient checks place existence in the place service.
// Any failure resolves to false.
type PlaceClient interface {
	PlaceExists(ctx context.Context, placeID, token string) bool
}

// RouteClient checks route existence in the route service.
type RouteClient interface {
	RouteExists(ctx context.Context, routeID, token string) bool
}

// IdentityResolver derives the caller identity from a raw access token.
type IdentityResolver interface {
	Identify(token string) (*domain.Identity, error)
}

// TokenIssuer creates access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// PlaceDeleter runs the cascading delete of a place. A place that is
// missing or not owned by ownerID yields domain.ErrNotFound.
type PlaceDeleter interface {
	DeletePlace(ctx context.Context, id, ownerID, token string) error
}
