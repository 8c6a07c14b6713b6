package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

// RouteRepo implements ports.RouteRepository.
type RouteRepo struct {
	db *DB
}

func NewRouteRepo(db *DB) *RouteRepo { return &RouteRepo{db: db} }

const routeColumns = `id, name, COALESCE(description, ''), places, COALESCE(created_by, ''), created_at`

func scanRoute(row pgx.Row) (*domain.Route, error) {
	var rt domain.Route
	if err := row.Scan(&rt.ID, &rt.Name, &rt.Description, &rt.Places, &rt.CreatedBy, &rt.CreatedAt); err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RouteRepo) Create(ctx context.Context, route *domain.Route) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO routes (name, description, places, created_by)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''))
		RETURNING id, created_at
	`, route.Name, route.Description, route.Places, route.CreatedBy).Scan(&route.ID, &route.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert route: %w", err)
	}
	return nil
}

func (r *RouteRepo) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	if !validID(id) {
		return nil, fmt.Errorf("route %s: %w", id, domain.ErrNotFound)
	}
	rt, err := scanRoute(r.db.Pool.QueryRow(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "route "+id)
	}
	return rt, nil
}

func (r *RouteRepo) List(ctx context.Context) ([]domain.Route, error) {
	return r.query(ctx, `SELECT `+routeColumns+` FROM routes ORDER BY created_at, id`)
}

// ListByPlace returns routes whose waypoints include placeID.
func (r *RouteRepo) ListByPlace(ctx context.Context, placeID string) ([]domain.Route, error) {
	return r.query(ctx, `
		SELECT `+routeColumns+` FROM routes
		WHERE $1 = ANY(places)
		ORDER BY created_at, id
	`, placeID)
}

func (r *RouteRepo) query(ctx context.Context, sql string, args ...any) ([]domain.Route, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := []domain.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *rt)
	}
	return routes, rows.Err()
}

func (r *RouteRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	return err
}
