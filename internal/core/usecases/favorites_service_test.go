package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
)

// --- Mock FavoritesRepository ---

type mockFavoritesRepo struct {
	items []domain.Favorite
}

func (m *mockFavoritesRepo) Create(ctx context.Context, f *domain.Favorite) error {
	f.ID = fmt.Sprintf("f%d", len(m.items)+1)
	m.items = append(m.items, *f)
	return nil
}

func (m *mockFavoritesRepo) GetByID(ctx context.Context, id string) (*domain.Favorite, error) {
	for _, f := range m.items {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockFavoritesRepo) GetByUserAndPlace(ctx context.Context, userID, placeID string) (*domain.Favorite, error) {
	for _, f := range m.items {
		if f.UserID == userID && f.PlaceID == placeID {
			return &f, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockFavoritesRepo) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for _, f := range m.items {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *mockFavoritesRepo) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	for i, f := range m.items {
		if f.ID == id && f.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockFavoritesRepo) DeleteByPlace(ctx context.Context, placeID string) (int64, error) {
	kept := m.items[:0]
	var n int64
	for _, f := range m.items {
		if f.PlaceID == placeID {
			n++
			continue
		}
		kept = append(kept, f)
	}
	m.items = kept
	return n, nil
}

// --- Tests ---

func TestFavoritesService_Add(t *testing.T) {
	repo := &mockFavoritesRepo{}
	svc := usecases.NewFavoritesService(repo, &mockPlaceClient{exists: map[string]bool{"p1": true}})

	fav, err := svc.Add(context.Background(), "alice", "p1", domain.FavoriteHome, "Bearer t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fav.Kind != domain.FavoriteHome || fav.UserID != "alice" {
		t.Errorf("unexpected favorite %+v", fav)
	}

	if _, err := svc.Add(context.Background(), "alice", "p1", domain.FavoriteWork, "Bearer t"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if _, err := svc.Add(context.Background(), "bob", "p1", domain.FavoriteWork, "Bearer t"); err != nil {
		t.Fatalf("other user: %v", err)
	}
}

func TestFavoritesService_Add_PlaceUnconfirmed(t *testing.T) {
	repo := &mockFavoritesRepo{}
	svc := usecases.NewFavoritesService(repo, &mockPlaceClient{})

	if _, err := svc.Add(context.Background(), "alice", "p1", domain.FavoriteHome, "Bearer t"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("expected nothing stored")
	}
}

func TestFavoritesService_Add_UnknownKind(t *testing.T) {
	svc := usecases.NewFavoritesService(&mockFavoritesRepo{}, &mockPlaceClient{exists: map[string]bool{"p1": true}})
	if _, err := svc.Add(context.Background(), "alice", "p1", "GYM", "Bearer t"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFavoritesService_Delete(t *testing.T) {
	repo := &mockFavoritesRepo{}
	svc := usecases.NewFavoritesService(repo, &mockPlaceClient{exists: map[string]bool{"p1": true}})
	fav, _ := svc.Add(context.Background(), "alice", "p1", domain.FavoriteHome, "Bearer t")

	if err := svc.Delete(context.Background(), fav.ID, "bob"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a stranger, got %v", err)
	}
	if err := svc.Delete(context.Background(), fav.ID, "alice"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestFavoritesService_DeleteByPlace(t *testing.T) {
	repo := &mockFavoritesRepo{}
	svc := usecases.NewFavoritesService(repo, &mockPlaceClient{exists: map[string]bool{"p1": true, "p2": true}})
	_, _ = svc.Add(context.Background(), "alice", "p1", domain.FavoriteHome, "Bearer t")
	_, _ = svc.Add(context.Background(), "bob", "p1", domain.FavoriteWork, "Bearer t")
	_, _ = svc.Add(context.Background(), "bob", "p2", domain.FavoriteWork, "Bearer t")

	n, err := svc.DeleteByPlace(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 removed, got %d", n)
	}
	left, _ := svc.ListByUser(context.Background(), "bob")
	if len(left) != 1 || left[0].PlaceID != "p2" {
		t.Errorf("expected bob's p2 favorite to survive, got %+v", left)
	}
}
