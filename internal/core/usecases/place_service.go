package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/pkg/metrics"
	"github.com/samirrijal/wayfarer/internal/pkg/telemetry"
)

var tracer = telemetry.Tracer("github.com/samirrijal/wayfarer/internal/core/usecases")

// Cascade states reported in logs and spans.
const (
	StateStart             = "START"
	StateOwnershipVerified = "OWNERSHIP_VERIFIED"
	StateDependentsCleared = "DEPENDENTS_CLEARED"
	StateDeleted           = "DELETED"
	StateNotFound          = "NOT_FOUND"
)

const placeCacheTTL = 600 // seconds

// PlaceService handles place-related business logic, including the
// cascading delete across the feedback and favorites services.
type PlaceService struct {
	places    ports.PlaceRepository
	feedback  ports.FeedbackClient
	favorites ports.FavoritesClient
	cache     ports.CacheService
	events    ports.EventPublisher
}

// NewPlaceService creates a new PlaceService. cache and events may be nil.
func NewPlaceService(
	places ports.PlaceRepository,
	feedback ports.FeedbackClient,
	favorites ports.FavoritesClient,
	cache ports.CacheService,
	events ports.EventPublisher,
) *PlaceService {
	return &PlaceService{
		places:    places,
		feedback:  feedback,
		favorites: favorites,
		cache:     cache,
		events:    events,
	}
}

func placeCacheKey(id string) string { return "places:id:" + id }

// AddPlace stores a new place owned by ownerID. A place already stored at
// the same coordinates yields domain.ErrAlreadyExists.
func (s *PlaceService) AddPlace(ctx context.Context, place *domain.Place, ownerID string) (*domain.Place, error) {
	if err := place.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.places.FindByLocation(ctx, place.Location)
	switch {
	case err == nil && existing != nil:
		return nil, fmt.Errorf("place at (%v, %v): %w", place.Location.Lat, place.Location.Lon, domain.ErrAlreadyExists)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find by location: %w", err)
	}

	place.ID = ""
	place.Owners = []string{ownerID}
	place.DistanceKm = nil
	if place.CreatedAt.IsZero() {
		place.CreatedAt = time.Now().UTC()
	}
	if err := s.places.Save(ctx, place); err != nil {
		return nil, fmt.Errorf("save place: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishPlaceCreated(ctx, place); err != nil {
			slog.WarnContext(ctx, "publish place created", "place_id", place.ID, "error", err)
		}
	}
	return place, nil
}

// GetPlace returns a single place.
func (s *PlaceService) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	key := placeCacheKey(id)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var place domain.Place
			if err := json.Unmarshal(data, &place); err == nil {
				metrics.CacheHits.WithLabelValues("place").Inc()
				return &place, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("place").Inc()
	}

	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(place); err == nil {
			_ = s.cache.Set(ctx, key, data, placeCacheTTL)
		}
	}
	return place, nil
}

// ListPlaces returns every place.
func (s *PlaceService) ListPlaces(ctx context.Context) ([]domain.Place, error) {
	return s.places.List(ctx)
}

// UpdateName renames a place owned by ownerID.
func (s *PlaceService) UpdateName(ctx context.Context, id, ownerID, name string) (*domain.Place, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}
	return s.update(ctx, id, ownerID, func(p *domain.Place) { p.Name = name })
}

// UpdateDescription replaces the description of a place owned by ownerID.
func (s *PlaceService) UpdateDescription(ctx context.Context, id, ownerID, description string) (*domain.Place, error) {
	if err := domain.ValidateDescription(description); err != nil {
		return nil, err
	}
	return s.update(ctx, id, ownerID, func(p *domain.Place) { p.Description = description })
}

func (s *PlaceService) update(ctx context.Context, id, ownerID string, apply func(*domain.Place)) (*domain.Place, error) {
	place, err := s.places.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	apply(place)
	if err := s.places.Save(ctx, place); err != nil {
		return nil, fmt.Errorf("save place: %w", err)
	}
	s.invalidate(ctx, id)
	return place, nil
}

// FindNear returns places within q.RadiusKm of q.Center, nearest first,
// optionally filtered by exact tag and name substring.
func (s *PlaceService) FindNear(ctx context.Context, q domain.NearQuery) ([]domain.Place, error) {
	ctx, span := tracer.Start(ctx, "PlaceService.FindNear")
	defer span.End()
	span.SetAttributes(attribute.Float64(telemetry.AttrRadiusKm, q.RadiusKm))

	if err := q.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	places, err := s.places.FindNear(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "near query failed")
		return nil, fmt.Errorf("near query: %w", err)
	}

	span.SetAttributes(attribute.Int(telemetry.AttrResultCount, len(places)))
	metrics.NearQueryResults.Observe(float64(len(places)))
	return places, nil
}

// DeletePlace removes a place owned by ownerID together with the feedback
// and favorites other services hold for it. A place that is missing or not
// owned by ownerID yields domain.ErrNotFound and no remote call is made.
// Failed dependent deletions never abort the cascade.
func (s *PlaceService) DeletePlace(ctx context.Context, id, ownerID, token string) error {
	ctx, span := tracer.Start(ctx, "PlaceService.DeletePlace")
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrPlaceID, id))

	start := time.Now()
	state := StateStart
	defer func() {
		span.SetAttributes(attribute.String(telemetry.AttrCascadeState, state))
		metrics.CascadeRuns.WithLabelValues("inline", state).Inc()
		metrics.CascadeDuration.WithLabelValues("inline").Observe(time.Since(start).Seconds())
	}()

	if err := s.VerifyOwnership(ctx, id, ownerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			state = StateNotFound
		}
		return err
	}
	state = StateOwnershipVerified

	s.ClearDependents(ctx, id, token)
	if err := ctx.Err(); err != nil {
		return err
	}
	state = StateDependentsCleared

	if err := s.RemovePlace(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "local delete failed")
		return err
	}
	state = StateDeleted

	slog.InfoContext(ctx, "place deleted", "place_id", id, "owner_id", ownerID)
	return nil
}

// VerifyOwnership checks with one combined lookup that the place exists
// and lists ownerID among its owners.
func (s *PlaceService) VerifyOwnership(ctx context.Context, id, ownerID string) error {
	if _, err := s.places.FindByIDAndOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("place %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("verify ownership: %w", err)
	}
	return nil
}

// ClearDependents deletes the feedback and favorites for the place
// concurrently and waits for both. Outcomes are logged and counted only.
func (s *PlaceService) ClearDependents(ctx context.Context, id, token string) []ports.RemoteOutcome {
	outcomes := make([]ports.RemoteOutcome, 2)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		outcomes[0] = s.feedback.DeleteForPlace(gctx, id, token)
		return nil
	})
	g.Go(func() error {
		outcomes[1] = s.favorites.DeleteForPlace(gctx, id, token)
		return nil
	})
	_ = g.Wait()

	for _, o := range outcomes {
		RecordDependentOutcome(ctx, id, o)
	}
	return outcomes
}

// RecordDependentOutcome logs and counts how a dependent deletion resolved.
func RecordDependentOutcome(ctx context.Context, refID string, o ports.RemoteOutcome) {
	path := "primary"
	if o.Fallback {
		path = "fallback"
		slog.WarnContext(ctx, "dependent delete fell back",
			"ref_id", refID, "capability", o.Capability)
	}
	metrics.CascadeDependents.WithLabelValues(o.Capability, path).Inc()
}

// RemovePlace deletes the local place row, drops its cache entry and
// announces the deletion. Removing an absent place is a no-op.
func (s *PlaceService) RemovePlace(ctx context.Context, id string) error {
	if err := s.places.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete place: %w", err)
	}
	s.invalidate(ctx, id)

	if s.events != nil {
		if err := s.events.PublishPlaceDeleted(ctx, id); err != nil {
			slog.WarnContext(ctx, "publish place deleted", "place_id", id, "error", err)
		}
	}
	return nil
}

func (s *PlaceService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, placeCacheKey(id)); err != nil {
		slog.WarnContext(ctx, "cache invalidate", "place_id", id, "error", err)
	}
}
