package usecases_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/ports"
)

// --- Mock PlaceRepository ---

type mockPlaceRepo struct {
	saveFn             func(ctx context.Context, p *domain.Place) error
	getByIDFn          func(ctx context.Context, id string) (*domain.Place, error)
	findByIDAndOwnerFn func(ctx context.Context, id, ownerID string) (*domain.Place, error)
	findByLocationFn   func(ctx context.Context, pt domain.GeoPoint) (*domain.Place, error)
	listFn             func(ctx context.Context) ([]domain.Place, error)
	deleteFn           func(ctx context.Context, id string) error
	findNearFn         func(ctx context.Context, q domain.NearQuery) ([]domain.Place, error)

	saves   atomic.Int32
	deletes atomic.Int32
}

func (m *mockPlaceRepo) Save(ctx context.Context, p *domain.Place) error {
	m.saves.Add(1)
	if m.saveFn != nil {
		return m.saveFn(ctx, p)
	}
	if p.ID == "" {
		p.ID = "generated"
	}
	return nil
}

func (m *mockPlaceRepo) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPlaceRepo) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Place, error) {
	if m.findByIDAndOwnerFn != nil {
		return m.findByIDAndOwnerFn(ctx, id, ownerID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPlaceRepo) FindByLocation(ctx context.Context, pt domain.GeoPoint) (*domain.Place, error) {
	if m.findByLocationFn != nil {
		return m.findByLocationFn(ctx, pt)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPlaceRepo) List(ctx context.Context) ([]domain.Place, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPlaceRepo) Delete(ctx context.Context, id string) error {
	m.deletes.Add(1)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPlaceRepo) FindNear(ctx context.Context, q domain.NearQuery) ([]domain.Place, error) {
	if m.findNearFn != nil {
		return m.findNearFn(ctx, q)
	}
	return nil, nil
}

// --- Mock peer clients ---

type mockFeedbackClient struct {
	deleteForPlaceFn func(ctx context.Context, placeID, token string) ports.RemoteOutcome
	deleteForRouteFn func(ctx context.Context, routeID, token string) ports.RemoteOutcome
	calls            atomic.Int32
}

func (m *mockFeedbackClient) DeleteForPlace(ctx context.Context, placeID, token string) ports.RemoteOutcome {
	m.calls.Add(1)
	if m.deleteForPlaceFn != nil {
		return m.deleteForPlaceFn(ctx, placeID, token)
	}
	return ports.RemoteOutcome{Capability: "feedback.deleteForPlace"}
}

func (m *mockFeedbackClient) DeleteForRoute(ctx context.Context, routeID, token string) ports.RemoteOutcome {
	m.calls.Add(1)
	if m.deleteForRouteFn != nil {
		return m.deleteForRouteFn(ctx, routeID, token)
	}
	return ports.RemoteOutcome{Capability: "feedback.deleteForRoute"}
}

type mockFavoritesClient struct {
	deleteForPlaceFn func(ctx context.Context, placeID, token string) ports.RemoteOutcome
	calls            atomic.Int32
}

func (m *mockFavoritesClient) DeleteForPlace(ctx context.Context, placeID, token string) ports.RemoteOutcome {
	m.calls.Add(1)
	if m.deleteForPlaceFn != nil {
		return m.deleteForPlaceFn(ctx, placeID, token)
	}
	return ports.RemoteOutcome{Capability: "favorites.deleteForPlace"}
}

type mockPlaceClient struct {
	exists map[string]bool
	tokens []string
}

func (m *mockPlaceClient) PlaceExists(ctx context.Context, placeID, token string) bool {
	m.tokens = append(m.tokens, token)
	return m.exists[placeID]
}

type mockRouteClient struct {
	exists map[string]bool
}

func (m *mockRouteClient) RouteExists(ctx context.Context, routeID, token string) bool {
	return m.exists[routeID]
}

// --- Mock cache and publisher ---

type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type mockPublisher struct {
	mu      sync.Mutex
	created []string
	deleted []string
}

func (m *mockPublisher) PublishPlaceCreated(ctx context.Context, p *domain.Place) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, p.ID)
	return nil
}

func (m *mockPublisher) PublishPlaceDeleted(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	return nil
}
