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

	rt, err := app.Init(ctx, "wayfarer-favorites")
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer rt.Close()

	deps := &http.Dependencies{Identity: rt.Tokens}

	var favorites ports.FavoritesRepository
	if rt.UsesMemory() {
		favorites = memory.NewFavoritesRepo()
	} else {
		db, err := rt.OpenDB(ctx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		deps.DB = db
		favorites = postgres.NewFavoritesRepo(db)
	}

	deps.Favorites = usecases.NewFavoritesService(
		favorites,
		peers.NewPlaceClient(rt.Peer(rt.Config.Peers.PlaceURL)),
	)

	server := rt.NewServer("Wayfarer Favorites")
	http.SetupRoutes(server, deps)

	if err := rt.Serve(server); err != nil {
		slog.Error("server", "error", err)
	}
}
