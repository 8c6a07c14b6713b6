package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/samirrijal/wayfarer/internal/adapters/http"
	"github.com/samirrijal/wayfarer/internal/adapters/memory"
	natsadapter "github.com/samirrijal/wayfarer/internal/adapters/nats"
	"github.com/samirrijal/wayfarer/internal/adapters/peers"
	"github.com/samirrijal/wayfarer/internal/adapters/postgres"
	"github.com/samirrijal/wayfarer/internal/app"
	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
)

const auditDurable = "route-place-audit"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := app.Init(ctx, "wayfarer-route")
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer rt.Close()
	cfg := rt.Config

	deps := &http.Dependencies{Identity: rt.Tokens}

	var routes ports.RouteRepository
	if rt.UsesMemory() {
		routes = memory.NewRouteRepo()
	} else {
		db, err := rt.OpenDB(ctx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		deps.DB = db
		routes = postgres.NewRouteRepo(db)
	}

	routeSvc := usecases.NewRouteService(
		routes,
		peers.NewPlaceClient(rt.Peer(cfg.Peers.PlaceURL)),
		peers.NewFeedbackClient(rt.Peer(cfg.Peers.FeedbackURL)),
	)
	deps.Routes = routeSvc

	// Routes keep their waypoints when a place goes away; the audit only
	// reports them.
	if cfg.NATS.Enabled {
		sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, place audit disabled", "error", err)
		} else {
			rt.OnClose(sub.Close)
			err := sub.SubscribePlaceDeleted(ctx, auditDurable, func(ctx context.Context, placeID string) error {
				_, err := routeSvc.AuditDeletedPlace(ctx, placeID)
				return err
			})
			if err != nil {
				slog.Warn("subscribe places.deleted", "error", err)
			}
		}
	}

	server := rt.NewServer("Wayfarer Route")
	http.SetupRoutes(server, deps)

	if err := rt.Serve(server); err != nil {
		slog.Error("server", "error", err)
	}
}
