package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/ports"
)

// FavoritesService handles users' favorite places.
type FavoritesService struct {
	favorites ports.FavoritesRepository
	places    ports.PlaceClient
}

// NewFavoritesService creates a new FavoritesService.
func NewFavoritesService(favorites ports.FavoritesRepository, places ports.PlaceClient) *FavoritesService {
	return &FavoritesService{favorites: favorites, places: places}
}

// Add marks placeID as a favorite of userID. The place must be confirmed
// by the place service and a user may favorite a place only once.
func (s *FavoritesService) Add(ctx context.Context, userID, placeID string, kind domain.FavoriteKind, token string) (*domain.Favorite, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown favorite type %q", domain.ErrInvalidInput, kind)
	}
	if !s.places.PlaceExists(ctx, placeID, token) {
		return nil, fmt.Errorf("place %s: %w", placeID, domain.ErrNotFound)
	}

	_, err := s.favorites.GetByUserAndPlace(ctx, userID, placeID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("favorite for place %s: %w", placeID, domain.ErrAlreadyExists)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find favorite: %w", err)
	}

	fav := &domain.Favorite{UserID: userID, PlaceID: placeID, Kind: kind, CreatedAt: time.Now().UTC()}
	if err := s.favorites.Create(ctx, fav); err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}
	return fav, nil
}

// Get returns one favorite.
func (s *FavoritesService) Get(ctx context.Context, id string) (*domain.Favorite, error) {
	return s.favorites.GetByID(ctx, id)
}

// ListByUser returns the favorites of userID.
func (s *FavoritesService) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}

// Delete removes a favorite belonging to userID.
func (s *FavoritesService) Delete(ctx context.Context, id, userID string) error {
	ok, err := s.favorites.DeleteOwned(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if !ok {
		return fmt.Errorf("favorite %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteByPlace removes every favorite of placeID.
func (s *FavoritesService) DeleteByPlace(ctx context.Context, placeID string) (int64, error) {
	n, err := s.favorites.DeleteByPlace(ctx, placeID)
	if err != nil {
		return 0, fmt.Errorf("delete favorites: %w", err)
	}
	slog.InfoContext(ctx, "favorites bulk deleted", "place_id", placeID, "count", n)
	return n, nil
}
