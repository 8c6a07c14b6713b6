package main

import (
	"context"
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/samirrijal/wayfarer/internal/adapters/memory"
	natsadapter "github.com/samirrijal/wayfarer/internal/adapters/nats"
	"github.com/samirrijal/wayfarer/internal/adapters/peers"
	"github.com/samirrijal/wayfarer/internal/adapters/postgres"
	"github.com/samirrijal/wayfarer/internal/app"
	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
	"github.com/samirrijal/wayfarer/internal/workflows"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Shares the place service's configuration: same store, cache and peers.
	rt, err := app.Init(ctx, "wayfarer-place")
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer rt.Close()
	cfg := rt.Config

	var places ports.PlaceRepository
	if rt.UsesMemory() {
		slog.Warn("memory storage is not shared with the place service; deletions will not be visible there")
		places = memory.NewPlaceRepo()
	} else {
		db, err := rt.OpenDB(ctx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		places = postgres.NewPlaceRepo(db)
	}

	var cache ports.CacheService
	if c := rt.OpenCache(); c != nil {
		cache = c
	}

	var events ports.EventPublisher
	if cfg.NATS.Enabled {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			rt.OnClose(pub.Close)
			events = pub
		}
	}

	feedback := peers.NewFeedbackClient(rt.Peer(cfg.Peers.FeedbackURL))
	favorites := peers.NewFavoritesClient(rt.Peer(cfg.Peers.FavoritesURL))

	tc, err := client.Dial(client.Options{
		HostPort:  cfg.Cascade.TemporalHost,
		Namespace: cfg.Cascade.Namespace,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer tc.Close()

	w := worker.New(tc, cfg.Cascade.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.PlaceDeletionWorkflow)
	w.RegisterActivity(&workflows.DeletionActivities{
		Places:    usecases.NewPlaceService(places, feedback, favorites, cache, events),
		Feedback:  feedback,
		Favorites: favorites,
	})

	slog.Info("cascader worker started", "task_queue", cfg.Cascade.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		slog.Error("worker", "error", err)
	}
}
