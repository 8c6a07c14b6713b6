package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/samirrijal/wayfarer/internal/adapters/postgres"
	"github.com/samirrijal/wayfarer/internal/pkg/config"
	"github.com/samirrijal/wayfarer/internal/pkg/logging"
)

const migrationsDir = "migrations"

// Tables in drop order.
var tables = []string{"favorites", "route_feedback", "place_feedback", "users", "routes", "places"}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|down>")
	}

	cfg, err := config.Load("wayfarer-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup("wayfarer-migrate", cfg.Log.Level, "text")

	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Database.DSN(), 2)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "up":
		err = up(ctx, db)
	case "down":
		err = down(ctx, db)
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func up(ctx context.Context, db *postgres.DB) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if _, err := db.Pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", f, err)
		}
		slog.Info("applied", "file", f)
	}

	slog.Info("all migrations applied", "count", len(files))
	return nil
}

func down(ctx context.Context, db *postgres.DB) error {
	for _, t := range tables {
		if _, err := db.Pool.Exec(ctx, "DROP TABLE IF EXISTS "+t); err != nil {
			return fmt.Errorf("drop %s: %w", t, err)
		}
		slog.Info("dropped", "table", t)
	}
	return nil
}
