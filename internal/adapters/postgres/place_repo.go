package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

// PlaceRepo implements ports.PlaceRepository on a PostGIS geography column.
type PlaceRepo struct {
	db *DB
}

// NewPlaceRepo creates a new PlaceRepo.
func NewPlaceRepo(db *DB) *PlaceRepo {
	return &PlaceRepo{db: db}
}

const placeColumns = `
	id, name,
	ST_Y(location::geometry) AS lat,
	ST_X(location::geometry) AS lon,
	tags, owners, COALESCE(description, ''), created_at`

func scanPlace(row pgx.Row, extra ...any) (*domain.Place, error) {
	var p domain.Place
	dest := []any{
		&p.ID, &p.Name,
		&p.Location.Lat, &p.Location.Lon,
		&p.Tags, &p.Owners, &p.Description, &p.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save inserts a new place or updates name, tags and description.
func (r *PlaceRepo) Save(ctx context.Context, p *domain.Place) error {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	if p.ID == "" {
		err := r.db.Pool.QueryRow(ctx, `
			INSERT INTO places (name, location, tags, owners, description)
			VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography, $4, $5, NULLIF($6, ''))
			RETURNING id, created_at
		`, p.Name, p.Location.Lon, p.Location.Lat, tags, p.Owners, p.Description).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return conflict(err, "insert place")
		}
		return nil
	}

	if !validID(p.ID) {
		return fmt.Errorf("place %s: %w", p.ID, domain.ErrNotFound)
	}
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE places SET name = $2, tags = $3, description = NULLIF($4, '')
		WHERE id = $1
	`, p.ID, p.Name, tags, p.Description)
	if err != nil {
		return fmt.Errorf("update place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("place %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// GetByID returns a place by id.
func (r *PlaceRepo) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	if !validID(id) {
		return nil, fmt.Errorf("place %s: %w", id, domain.ErrNotFound)
	}
	p, err := scanPlace(r.db.Pool.QueryRow(ctx, `SELECT `+placeColumns+` FROM places WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "place "+id)
	}
	return p, nil
}

// FindByIDAndOwner returns the place only when ownerID is listed among its owners.
func (r *PlaceRepo) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Place, error) {
	if !validID(id) {
		return nil, fmt.Errorf("place %s: %w", id, domain.ErrNotFound)
	}
	p, err := scanPlace(r.db.Pool.QueryRow(ctx, `
		SELECT `+placeColumns+` FROM places WHERE id = $1 AND $2 = ANY(owners)
	`, id, ownerID))
	if err != nil {
		return nil, notFound(err, "place "+id)
	}
	return p, nil
}

// FindByLocation returns the place stored at exactly the given point.
func (r *PlaceRepo) FindByLocation(ctx context.Context, pt domain.GeoPoint) (*domain.Place, error) {
	p, err := scanPlace(r.db.Pool.QueryRow(ctx, `
		SELECT `+placeColumns+` FROM places
		WHERE ST_Equals(location::geometry, ST_SetSRID(ST_MakePoint($1, $2), 4326))
		LIMIT 1
	`, pt.Lon, pt.Lat))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("place at (%v, %v)", pt.Lat, pt.Lon))
	}
	return p, nil
}

// List returns all places ordered by creation time.
func (r *PlaceRepo) List(ctx context.Context) ([]domain.Place, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+placeColumns+` FROM places ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := []domain.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, *p)
	}
	return places, rows.Err()
}

// Delete removes a place. A missing row is not an error.
func (r *PlaceRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	return err
}

// FindNear returns places within q.RadiusKm using ST_DWithin on the sphere
// (use_spheroid = false), nearest first. Empty Tag and NameContains
// disable their predicates.
func (r *PlaceRepo) FindNear(ctx context.Context, q domain.NearQuery) ([]domain.Place, error) {
	rows, err := r.db.Pool.Query(ctx, `
		WITH center AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS pt
		)
		SELECT `+placeColumns+`,
		       ST_Distance(location, center.pt, false) / 1000.0 AS distance_km
		FROM places, center
		WHERE ST_DWithin(location, center.pt, $3, false)
		  AND ($4::text = '' OR $4::text = ANY(tags))
		  AND ($5::text = '' OR strpos(name, $5::text) > 0)
		ORDER BY distance_km, id
	`, q.Center.Lon, q.Center.Lat, q.RadiusKm*1000, q.Tag, q.NameContains)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := []domain.Place{}
	for rows.Next() {
		var dist float64
		p, err := scanPlace(rows, &dist)
		if err != nil {
			return nil, err
		}
		p.DistanceKm = &dist
		places = append(places, *p)
	}
	return places, rows.Err()
}
