package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

// RouteRepo implements ports.RouteRepository.
type RouteRepo struct {
	mu     sync.RWMutex
	routes map[string]domain.Route
}

func NewRouteRepo() *RouteRepo {
	return &RouteRepo{routes: make(map[string]domain.Route)}
}

func (r *RouteRepo) Create(ctx context.Context, route *domain.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	route.ID = uuid.NewString()
	cp := *route
	cp.Places = append([]string(nil), route.Places...)
	r.routes[route.ID] = cp
	return nil
}

func (r *RouteRepo) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.routes[id]
	if !ok {
		return nil, fmt.Errorf("route %s: %w", id, domain.ErrNotFound)
	}
	return &route, nil
}

func (r *RouteRepo) List(ctx context.Context) ([]domain.Route, error) {
	return r.filter(func(domain.Route) bool { return true }), nil
}

func (r *RouteRepo) ListByPlace(ctx context.Context, placeID string) ([]domain.Route, error) {
	return r.filter(func(route domain.Route) bool {
		for _, p := range route.Places {
			if p == placeID {
				return true
			}
		}
		return false
	}), nil
}

func (r *RouteRepo) filter(keep func(domain.Route) bool) []domain.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Route, 0)
	for _, route := range r.routes {
		if keep(route) {
			out = append(out, route)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *RouteRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.routes, id)
	return nil
}

// FeedbackRepo implements ports.FeedbackRepository. Place and route
// feedback live in separate collections.
type FeedbackRepo struct {
	mu    sync.RWMutex
	items map[domain.FeedbackTarget]map[string]domain.Feedback
}

func NewFeedbackRepo() *FeedbackRepo {
	return &FeedbackRepo{items: map[domain.FeedbackTarget]map[string]domain.Feedback{
		domain.TargetPlace: {},
		domain.TargetRoute: {},
	}}
}

func (r *FeedbackRepo) collection(target domain.FeedbackTarget) (map[string]domain.Feedback, error) {
	c, ok := r.items[target]
	if !ok {
		return nil, fmt.Errorf("%w: unknown feedback target %q", domain.ErrInvalidInput, target)
	}
	return c, nil
}

func refID(target domain.FeedbackTarget, fb domain.Feedback) string {
	if target == domain.TargetRoute {
		return fb.RouteID
	}
	return fb.PlaceID
}

func (r *FeedbackRepo) Create(ctx context.Context, target domain.FeedbackTarget, fb *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.collection(target)
	if err != nil {
		return err
	}
	fb.ID = uuid.NewString()
	c[fb.ID] = *fb
	return nil
}

func (r *FeedbackRepo) GetByID(ctx context.Context, target domain.FeedbackTarget, id string) (*domain.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, err := r.collection(target)
	if err != nil {
		return nil, err
	}
	fb, ok := c[id]
	if !ok {
		return nil, fmt.Errorf("feedback %s: %w", id, domain.ErrNotFound)
	}
	return &fb, nil
}

func (r *FeedbackRepo) ListByRef(ctx context.Context, target domain.FeedbackTarget, ref string) ([]domain.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, err := r.collection(target)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Feedback, 0)
	for _, fb := range c {
		if refID(target, fb) == ref {
			out = append(out, fb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *FeedbackRepo) Delete(ctx context.Context, target domain.FeedbackTarget, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.collection(target)
	if err != nil {
		return err
	}
	delete(c, id)
	return nil
}

func (r *FeedbackRepo) DeleteByRef(ctx context.Context, target domain.FeedbackTarget, ref string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.collection(target)
	if err != nil {
		return 0, err
	}
	var n int64
	for id, fb := range c {
		if refID(target, fb) == ref {
			delete(c, id)
			n++
		}
	}
	return n, nil
}

// FavoritesRepo implements ports.FavoritesRepository.
type FavoritesRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Favorite
}

func NewFavoritesRepo() *FavoritesRepo {
	return &FavoritesRepo{items: make(map[string]domain.Favorite)}
}

func (r *FavoritesRepo) Create(ctx context.Context, fav *domain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.items {
		if f.UserID == fav.UserID && f.PlaceID == fav.PlaceID {
			return fmt.Errorf("favorite for place %s: %w", fav.PlaceID, domain.ErrAlreadyExists)
		}
	}
	fav.ID = uuid.NewString()
	r.items[fav.ID] = *fav
	return nil
}

func (r *FavoritesRepo) GetByID(ctx context.Context, id string) (*domain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("favorite %s: %w", id, domain.ErrNotFound)
	}
	return &f, nil
}

func (r *FavoritesRepo) GetByUserAndPlace(ctx context.Context, userID, placeID string) (*domain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.items {
		if f.UserID == userID && f.PlaceID == placeID {
			return &f, nil
		}
	}
	return nil, fmt.Errorf("favorite for place %s: %w", placeID, domain.ErrNotFound)
}

func (r *FavoritesRepo) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Favorite, 0)
	for _, f := range r.items {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *FavoritesRepo) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[id]
	if !ok || f.UserID != userID {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *FavoritesRepo) DeleteByPlace(ctx context.Context, placeID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, f := range r.items {
		if f.PlaceID == placeID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	mu      sync.RWMutex
	byLogin map[string]domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byLogin: make(map[string]domain.User)}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byLogin[user.Login]; ok {
		return fmt.Errorf("login %s: %w", user.Login, domain.ErrAlreadyExists)
	}
	user.ID = uuid.NewString()
	r.byLogin[user.Login] = *user
	return nil
}

func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byLogin[login]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", login, domain.ErrNotFound)
	}
	return &u, nil
}
