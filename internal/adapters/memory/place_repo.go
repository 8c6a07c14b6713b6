// Package memory provides in-process implementations of the repository
// ports. They back the `storage.driver: memory` mode and unit tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/pkg/geospatial"
)

// PlaceRepo implements ports.PlaceRepository.
type PlaceRepo struct {
	mu     sync.RWMutex
	places map[string]domain.Place
}

// NewPlaceRepo creates an empty PlaceRepo.
func NewPlaceRepo() *PlaceRepo {
	return &PlaceRepo{places: make(map[string]domain.Place)}
}

func clonePlace(p domain.Place) *domain.Place {
	p.Tags = append([]string(nil), p.Tags...)
	p.Owners = append([]string(nil), p.Owners...)
	p.DistanceKm = nil
	return &p
}

func (r *PlaceRepo) Save(ctx context.Context, place *domain.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if place.ID == "" {
		place.ID = uuid.NewString()
		r.places[place.ID] = *clonePlace(*place)
		return nil
	}

	stored, ok := r.places[place.ID]
	if !ok {
		return fmt.Errorf("place %s: %w", place.ID, domain.ErrNotFound)
	}
	stored.Name = place.Name
	stored.Tags = append([]string(nil), place.Tags...)
	stored.Description = place.Description
	r.places[place.ID] = stored
	return nil
}

func (r *PlaceRepo) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.places[id]
	if !ok {
		return nil, fmt.Errorf("place %s: %w", id, domain.ErrNotFound)
	}
	return clonePlace(p), nil
}

func (r *PlaceRepo) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.places[id]
	if !ok || !p.OwnedBy(ownerID) {
		return nil, fmt.Errorf("place %s: %w", id, domain.ErrNotFound)
	}
	return clonePlace(p), nil
}

func (r *PlaceRepo) FindByLocation(ctx context.Context, point domain.GeoPoint) (*domain.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.places {
		if p.Location == point {
			return clonePlace(p), nil
		}
	}
	return nil, fmt.Errorf("place at %v: %w", point, domain.ErrNotFound)
}

func (r *PlaceRepo) List(ctx context.Context) ([]domain.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Place, 0, len(r.places))
	for _, p := range r.places {
		out = append(out, *clonePlace(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PlaceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.places, id)
	return nil
}

// FindNear scans every place, keeps those within the radius that match
// the optional predicates and sorts them by distance, then id.
func (r *PlaceRepo) FindNear(ctx context.Context, q domain.NearQuery) ([]domain.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	box := geospatial.BoundingBox(q.Center.Lat, q.Center.Lon, q.RadiusKm)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Place
	for _, p := range r.places {
		if !box.Contains(p.Location.Lat, p.Location.Lon) {
			continue
		}
		if q.Tag != "" && !p.HasTag(q.Tag) {
			continue
		}
		if q.NameContains != "" && !strings.Contains(p.Name, q.NameContains) {
			continue
		}
		d := geospatial.HaversineKm(q.Center.Lat, q.Center.Lon, p.Location.Lat, p.Location.Lon)
		if d > q.RadiusKm {
			continue
		}
		match := clonePlace(p)
		match.DistanceKm = &d
		out = append(out, *match)
	}

	sort.Slice(out, func(i, j int) bool {
		di, dj := *out[i].DistanceKm, *out[j].DistanceKm
		if di != dj {
			return di < dj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
