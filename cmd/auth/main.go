package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/samirrijal/wayfarer/internal/adapters/http"
	"github.com/samirrijal/wayfarer/internal/adapters/memory"
	"github.com/samirrijal/wayfarer/internal/adapters/postgres"
	"github.com/samirrijal/wayfarer/internal/app"
	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := app.Init(ctx, "wayfarer-auth")
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer rt.Close()

	deps := &http.Dependencies{Identity: rt.Tokens}

	var users ports.UserRepository
	if rt.UsesMemory() {
		users = memory.NewUserRepo()
	} else {
		db, err := rt.OpenDB(ctx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		deps.DB = db
		users = postgres.NewUserRepo(db)
	}

	deps.Auth = usecases.NewAuthService(users, rt.Tokens, rt.Config.Auth.BcryptCost)

	server := rt.NewServer("Wayfarer Auth")
	http.SetupRoutes(server, deps)

	if err := rt.Serve(server); err != nil {
		slog.Error("server", "error", err)
	}
}
