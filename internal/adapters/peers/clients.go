// Package peers implements the remote capabilities one service uses to
// reach another: existence checks and bulk deletes, each guarded by a
// circuit breaker that degrades to an empty result.
package peers

import (
	"context"

	"github.com/valyala/fasthttp"

	"github.com/samirrijal/wayfarer/internal/core/ports"
)

// Capability names, also used as breaker names and metric labels.
const (
	CapFeedbackDeleteForPlace  = "feedback.deleteForPlace"
	CapFeedbackDeleteForRoute  = "feedback.deleteForRoute"
	CapFavoritesDeleteForPlace = "favorites.deleteForPlace"
	CapPlaceExists             = "place.exists"
	CapRouteExists             = "route.exists"
)

func noop() struct{} { return struct{}{} }

func absent() bool { return false }

// bulkDelete issues DELETE path and reports whether the fallback answered.
func bulkDelete(ctx context.Context, t *transport, c *capability[struct{}], path, token string) ports.RemoteOutcome {
	_, fellBack := c.call(ctx, func() (struct{}, error) {
		return struct{}{}, t.do(ctx, fasthttp.MethodDelete, path, token)
	})
	return ports.RemoteOutcome{Capability: c.name, Fallback: fellBack}
}

// exists issues GET path; only a 2xx answer counts as existing.
func exists(ctx context.Context, t *transport, c *capability[bool], path, token string) bool {
	ok, _ := c.call(ctx, func() (bool, error) {
		if err := t.do(ctx, fasthttp.MethodGet, path, token); err != nil {
			return false, err
		}
		return true, nil
	})
	return ok
}

// FeedbackClient implements ports.FeedbackClient over HTTP.
type FeedbackClient struct {
	t        *transport
	forPlace *capability[struct{}]
	forRoute *capability[struct{}]
}

// NewFeedbackClient builds a client for the feedback service's bulk deletes.
func NewFeedbackClient(opts Options) *FeedbackClient {
	return &FeedbackClient{
		t:        newTransport("feedback", opts),
		forPlace: newCapability(CapFeedbackDeleteForPlace, opts.Breaker, noop),
		forRoute: newCapability(CapFeedbackDeleteForRoute, opts.Breaker, noop),
	}
}

// DeleteForPlace removes all feedback left on placeID.
func (c *FeedbackClient) DeleteForPlace(ctx context.Context, placeID, token string) ports.RemoteOutcome {
	return bulkDelete(ctx, c.t, c.forPlace, refPath("/feedback/place/batch/%s", placeID), token)
}

// DeleteForRoute removes all feedback left on routeID.
func (c *FeedbackClient) DeleteForRoute(ctx context.Context, routeID, token string) ports.RemoteOutcome {
	return bulkDelete(ctx, c.t, c.forRoute, refPath("/feedback/route/batch/%s", routeID), token)
}

// FavoritesClient implements ports.FavoritesClient over HTTP.
type FavoritesClient struct {
	t        *transport
	forPlace *capability[struct{}]
}

// NewFavoritesClient builds a client for the favorites service.
func NewFavoritesClient(opts Options) *FavoritesClient {
	return &FavoritesClient{
		t:        newTransport("favorites", opts),
		forPlace: newCapability(CapFavoritesDeleteForPlace, opts.Breaker, noop),
	}
}

// DeleteForPlace removes every favorite that points at placeID.
func (c *FavoritesClient) DeleteForPlace(ctx context.Context, placeID, token string) ports.RemoteOutcome {
	return bulkDelete(ctx, c.t, c.forPlace, refPath("/favorites/place/%s", placeID), token)
}

// PlaceClient implements ports.PlaceClient over HTTP.
type PlaceClient struct {
	t   *transport
	cap *capability[bool]
}

// NewPlaceClient builds a client for place existence lookups.
func NewPlaceClient(opts Options) *PlaceClient {
	return &PlaceClient{t: newTransport("place", opts), cap: newCapability(CapPlaceExists, opts.Breaker, absent)}
}

// PlaceExists reports whether placeID exists. An unreachable or failing
// place service reads as absent.
func (c *PlaceClient) PlaceExists(ctx context.Context, placeID, token string) bool {
	return exists(ctx, c.t, c.cap, refPath("/place/%s", placeID), token)
}

// RouteClient implements ports.RouteClient over HTTP.
type RouteClient struct {
	t   *transport
	cap *capability[bool]
}

// NewRouteClient builds a client for route existence lookups.
func NewRouteClient(opts Options) *RouteClient {
	return &RouteClient{t: newTransport("route", opts), cap: newCapability(CapRouteExists, opts.Breaker, absent)}
}

// RouteExists reports whether routeID exists, treating failures as absent.
func (c *RouteClient) RouteExists(ctx context.Context, routeID, token string) bool {
	return exists(ctx, c.t, c.cap, refPath("/route/%s", routeID), token)
}

var (
	_ ports.FeedbackClient  = (*FeedbackClient)(nil)
	_ ports.FavoritesClient = (*FavoritesClient)(nil)
	_ ports.PlaceClient     = (*PlaceClient)(nil)
	_ ports.RouteClient     = (*RouteClient)(nil)
)
