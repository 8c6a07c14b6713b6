package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

// FavoritesRepo implements ports.FavoritesRepository.
type FavoritesRepo struct {
	db *DB
}

func NewFavoritesRepo(db *DB) *FavoritesRepo { return &FavoritesRepo{db: db} }

const favoriteColumns = `id, user_id, place_id, kind, created_at`

func scanFavorite(row pgx.Row) (*domain.Favorite, error) {
	var f domain.Favorite
	if err := row.Scan(&f.ID, &f.UserID, &f.PlaceID, &f.Kind, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a favorite. The (user_id, place_id) unique index turns a
// concurrent duplicate into domain.ErrAlreadyExists.
func (r *FavoritesRepo) Create(ctx context.Context, f *domain.Favorite) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO favorites (user_id, place_id, kind) VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, f.UserID, f.PlaceID, string(f.Kind)).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return conflict(err, "insert favorite")
	}
	return nil
}

func (r *FavoritesRepo) GetByID(ctx context.Context, id string) (*domain.Favorite, error) {
	if !validID(id) {
		return nil, fmt.Errorf("favorite %s: %w", id, domain.ErrNotFound)
	}
	f, err := scanFavorite(r.db.Pool.QueryRow(ctx, `SELECT `+favoriteColumns+` FROM favorites WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "favorite "+id)
	}
	return f, nil
}

func (r *FavoritesRepo) GetByUserAndPlace(ctx context.Context, userID, placeID string) (*domain.Favorite, error) {
	f, err := scanFavorite(r.db.Pool.QueryRow(ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE user_id = $1 AND place_id = $2`, userID, placeID))
	if err != nil {
		return nil, notFound(err, "favorite for place "+placeID)
	}
	return f, nil
}

func (r *FavoritesRepo) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Favorite{}
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func (r *FavoritesRepo) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *FavoritesRepo) DeleteByPlace(ctx context.Context, placeID string) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM favorites WHERE place_id = $1`, placeID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
