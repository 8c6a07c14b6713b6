package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/pkg/metrics"
	"github.com/samirrijal/wayfarer/internal/pkg/telemetry"
)

// RouteService handles route-related business logic.
type RouteService struct {
	routes   ports.RouteRepository
	places   ports.PlaceClient
	feedback ports.FeedbackClient
}

// NewRouteService creates a new RouteService.
func NewRouteService(routes ports.RouteRepository, places ports.PlaceClient, feedback ports.FeedbackClient) *RouteService {
	return &RouteService{routes: routes, places: places, feedback: feedback}
}

// GetRoute returns a route by id.
func (s *RouteService) GetRoute(ctx context.Context, id string) (*domain.Route, error) {
	return s.routes.GetByID(ctx, id)
}

// ListRoutes returns every route.
func (s *RouteService) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	return s.routes.List(ctx)
}

// ListByPlace returns the routes passing through placeID.
func (s *RouteService) ListByPlace(ctx context.Context, placeID string) ([]domain.Route, error) {
	return s.routes.ListByPlace(ctx, placeID)
}

// CreateRoute stores a route created by userID. Every referenced place
// must be confirmed by the place service.
func (s *RouteService) CreateRoute(ctx context.Context, route *domain.Route, userID, token string) (*domain.Route, error) {
	if err := route.Validate(); err != nil {
		return nil, err
	}
	for _, placeID := range route.Places {
		if !s.places.PlaceExists(ctx, placeID, token) {
			return nil, fmt.Errorf("place %s: %w", placeID, domain.ErrNotFound)
		}
	}

	route.ID = ""
	route.CreatedBy = userID
	route.CreatedAt = time.Now().UTC()
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}
	return route, nil
}

// DeleteRoute removes a route and the feedback left for it. A failed
// feedback deletion does not prevent the route from being removed.
func (s *RouteService) DeleteRoute(ctx context.Context, id, token string) error {
	ctx, span := tracer.Start(ctx, "RouteService.DeleteRoute")
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrRouteID, id))

	if _, err := s.routes.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("route %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("get route: %w", err)
	}

	RecordDependentOutcome(ctx, id, s.feedback.DeleteForRoute(ctx, id, token))
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.routes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete route: %w", err)
	}
	slog.InfoContext(ctx, "route deleted", "route_id", id)
	return nil
}

// AuditDeletedPlace reports the routes that still pass through a place
// that no longer exists. Routes are left untouched.
func (s *RouteService) AuditDeletedPlace(ctx context.Context, placeID string) (int, error) {
	routes, err := s.routes.ListByPlace(ctx, placeID)
	if err != nil {
		return 0, fmt.Errorf("list routes by place: %w", err)
	}
	for _, r := range routes {
		slog.WarnContext(ctx, "route references deleted place", "route_id", r.ID, "place_id", placeID)
	}
	if len(routes) > 0 {
		metrics.StaleRouteWaypoints.Add(float64(len(routes)))
	}
	return len(routes), nil
}
