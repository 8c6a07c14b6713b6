package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

// FeedbackRepo implements ports.FeedbackRepository over the place_feedback
// and route_feedback tables.
type FeedbackRepo struct {
	db *DB
}

func NewFeedbackRepo(db *DB) *FeedbackRepo { return &FeedbackRepo{db: db} }

// table returns the table and reference column for target. Both are
// constants, never user input.
func feedbackTable(target domain.FeedbackTarget) (table, refCol string, err error) {
	switch target {
	case domain.TargetPlace:
		return "place_feedback", "place_id", nil
	case domain.TargetRoute:
		return "route_feedback", "route_id", nil
	}
	return "", "", fmt.Errorf("%w: unknown feedback target %q", domain.ErrInvalidInput, target)
}

func scanFeedback(target domain.FeedbackTarget, row pgx.Row) (*domain.Feedback, error) {
	var fb domain.Feedback
	ref := &fb.PlaceID
	if target == domain.TargetRoute {
		ref = &fb.RouteID
	}
	if err := row.Scan(&fb.ID, ref, &fb.UserID, &fb.Grade, &fb.CreatedAt); err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *FeedbackRepo) Create(ctx context.Context, target domain.FeedbackTarget, fb *domain.Feedback) error {
	table, refCol, err := feedbackTable(target)
	if err != nil {
		return err
	}
	ref := fb.PlaceID
	if target == domain.TargetRoute {
		ref = fb.RouteID
	}
	err = r.db.Pool.QueryRow(ctx,
		`INSERT INTO `+table+` (`+refCol+`, user_id, grade) VALUES ($1, $2, $3) RETURNING id, created_at`,
		ref, fb.UserID, fb.Grade,
	).Scan(&fb.ID, &fb.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (r *FeedbackRepo) GetByID(ctx context.Context, target domain.FeedbackTarget, id string) (*domain.Feedback, error) {
	table, refCol, err := feedbackTable(target)
	if err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, fmt.Errorf("feedback %s: %w", id, domain.ErrNotFound)
	}
	fb, err := scanFeedback(target, r.db.Pool.QueryRow(ctx,
		`SELECT id, `+refCol+`, user_id, grade, created_at FROM `+table+` WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "feedback "+id)
	}
	return fb, nil
}

func (r *FeedbackRepo) ListByRef(ctx context.Context, target domain.FeedbackTarget, refID string) ([]domain.Feedback, error) {
	table, refCol, err := feedbackTable(target)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, `+refCol+`, user_id, grade, created_at FROM `+table+` WHERE `+refCol+` = $1 ORDER BY created_at`, refID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Feedback{}
	for rows.Next() {
		fb, err := scanFeedback(target, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *fb)
	}
	return out, rows.Err()
}

func (r *FeedbackRepo) Delete(ctx context.Context, target domain.FeedbackTarget, id string) error {
	table, _, err := feedbackTable(target)
	if err != nil {
		return err
	}
	if !validID(id) {
		return nil
	}
	_, err = r.db.Pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	return err
}

func (r *FeedbackRepo) DeleteByRef(ctx context.Context, target domain.FeedbackTarget, refID string) (int64, error) {
	table, refCol, err := feedbackTable(target)
	if err != nil {
		return 0, err
	}
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM `+table+` WHERE `+refCol+` = $1`, refID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
