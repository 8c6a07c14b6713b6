package telemetry

// Span attribute keys shared by the use cases and adapters.
const (
	AttrPlaceID      = "wayfarer.place.id"
	AttrRouteID      = "wayfarer.route.id"
	AttrCascadeState = "wayfarer.cascade.state"
	AttrCapability   = "wayfarer.peer.capability"
	AttrFallback     = "wayfarer.peer.fallback"
	AttrRadiusKm     = "wayfarer.search.radius_km"
	AttrResultCount  = "wayfarer.search.results"
)
