package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/samirrijal/wayfarer/internal/adapters/http"
	"github.com/samirrijal/wayfarer/internal/adapters/memory"
	"github.com/samirrijal/wayfarer/internal/adapters/peers"
	"github.com/samirrijal/wayfarer/internal/adapters/postgres"
	"github.com/samirrijal/wayfarer/internal/app"
	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := app.Init(ctx, "wayfarer-feedback")
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer rt.Close()
	cfg := rt.Config

	deps := &http.Dependencies{Identity: rt.Tokens}

	var feedback ports.FeedbackRepository
	if rt.UsesMemory() {
		feedback = memory.NewFeedbackRepo()
	} else {
		db, err := rt.OpenDB(ctx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		deps.DB = db
		feedback = postgres.NewFeedbackRepo(db)
	}

	deps.Feedback = usecases.NewFeedbackService(
		feedback,
		peers.NewPlaceClient(rt.Peer(cfg.Peers.PlaceURL)),
		peers.NewRouteClient(rt.Peer(cfg.Peers.RouteURL)),
	)

	server := rt.NewServer("Wayfarer Feedback")
	http.SetupRoutes(server, deps)

	if err := rt.Serve(server); err != nil {
		slog.Error("server", "error", err)
	}
}
