package ports

import (
	"context"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

// PlaceRepository persists places and answers proximity queries.
// Lookups of a missing place return an error wrapping domain.ErrNotFound.
type PlaceRepository interface {
	// Save inserts the place when ID is empty (assigning one) and updates
	// name, tags and description otherwise.
	Save(ctx context.Context, place *domain.Place) error
	GetByID(ctx context.Context, id string) (*domain.Place, error)
	// FindByIDAndOwner is the combined existence and ownership lookup.
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Place, error)
	FindByLocation(ctx context.Context, point domain.GeoPoint) (*domain.Place, error)
	List(ctx context.Context) ([]domain.Place, error)
	// Delete removes the place. Deleting a missing place is not an error.
	Delete(ctx context.Context, id string) error
	// FindNear returns places within q.RadiusKm of q.Center (great-circle
	// distance on a sphere), nearest first, with DistanceKm populated.
	FindNear(ctx context.Context, q domain.NearQuery) ([]domain.Place, error)
}

// RouteRepository persists routes.
type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id string) (*domain.Route, error)
	List(ctx context.Context) ([]domain.Route, error)
	ListByPlace(ctx context.Context, placeID string) ([]domain.Route, error)
	Delete(ctx context.Context, id string) error
}

// FeedbackRepository persists place and route feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, target domain.FeedbackTarget, fb *domain.Feedback) error
	GetByID(ctx context.Context, target domain.FeedbackTarget, id string) (*domain.Feedback, error)
	ListByRef(ctx context.Context, target domain.FeedbackTarget, refID string) ([]domain.Feedback, error)
	Delete(ctx context.Context, target domain.FeedbackTarget, id string) error
	// DeleteByRef removes every feedback for the referenced place or route
	// and returns how many rows were removed.
	DeleteByRef(ctx context.Context, target domain.FeedbackTarget, refID string) (int64, error)
}

// FavoritesRepository persists favorites.
type FavoritesRepository interface {
	Create(ctx context.Context, fav *domain.Favorite) error
	GetByID(ctx context.Context, id string) (*domain.Favorite, error)
	GetByUserAndPlace(ctx context.Context, userID, placeID string) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
	// DeleteOwned removes the favorite only when it belongs to userID and
	// reports whether a row was removed.
	DeleteOwned(ctx context.Context, id, userID string) (bool, error)
	DeleteByPlace(ctx context.Context, placeID string) (int64, error)
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
}
