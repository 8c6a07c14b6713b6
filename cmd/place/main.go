package main

import (
	"context"
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"

	"github.com/samirrijal/wayfarer/internal/adapters/http"
	"github.com/samirrijal/wayfarer/internal/adapters/memory"
	natsadapter "github.com/samirrijal/wayfarer/internal/adapters/nats"
	"github.com/samirrijal/wayfarer/internal/adapters/peers"
	"github.com/samirrijal/wayfarer/internal/adapters/postgres"
	"github.com/samirrijal/wayfarer/internal/app"
	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
	"github.com/samirrijal/wayfarer/internal/pkg/config"
	"github.com/samirrijal/wayfarer/internal/workflows"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := app.Init(ctx, "wayfarer-place")
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer rt.Close()
	cfg := rt.Config

	deps := &http.Dependencies{Identity: rt.Tokens}

	var places ports.PlaceRepository
	if rt.UsesMemory() {
		places = memory.NewPlaceRepo()
	} else {
		db, err := rt.OpenDB(ctx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		deps.DB = db
		places = postgres.NewPlaceRepo(db)
	}

	var cache ports.CacheService
	if c := rt.OpenCache(); c != nil {
		deps.Cache = c
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

		// Separate connection for the WebSocket relay
		nc, err := natsadapter.RawConn(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats ws conn unavailable", "error", err)
		} else {
			rt.OnClose(nc.Close)
			deps.NATS = nc
		}
	}

	feedback := peers.NewFeedbackClient(rt.Peer(cfg.Peers.FeedbackURL))
	favorites := peers.NewFavoritesClient(rt.Peer(cfg.Peers.FavoritesURL))

	placeSvc := usecases.NewPlaceService(places, feedback, favorites, cache, events)
	deps.Places = placeSvc
	deps.Deleter = placeSvc

	if cfg.Cascade.Engine == config.EngineTemporal {
		tc, err := client.Dial(client.Options{
			HostPort:  cfg.Cascade.TemporalHost,
			Namespace: cfg.Cascade.Namespace,
		})
		if err != nil {
			log.Fatalf("temporal client: %v", err)
		}
		rt.OnClose(tc.Close)
		deps.Deleter = workflows.NewDeleter(tc, cfg.Cascade.TaskQueue)
	}
	slog.Info("cascade engine selected", "engine", cfg.Cascade.Engine)

	server := rt.NewServer("Wayfarer Place")
	http.SetupRoutes(server, deps)

	if err := rt.Serve(server); err != nil {
		slog.Error("server", "error", err)
	}
}
