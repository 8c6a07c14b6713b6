package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/ports"
)

// FeedbackService handles grades left for places and routes.
type FeedbackService struct {
	feedback ports.FeedbackRepository
	places   ports.PlaceClient
	routes   ports.RouteClient
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(feedback ports.FeedbackRepository, places ports.PlaceClient, routes ports.RouteClient) *FeedbackService {
	return &FeedbackService{feedback: feedback, places: places, routes: routes}
}

// Create stores a grade by userID for the place or route refID. The
// reference is confirmed with its owning service first; an unconfirmed
// reference yields domain.ErrNotFound.
func (s *FeedbackService) Create(ctx context.Context, target domain.FeedbackTarget, refID, userID string, grade int, token string) (*domain.Feedback, error) {
	if err := domain.ValidateGrade(grade); err != nil {
		return nil, err
	}

	fb := &domain.Feedback{UserID: userID, Grade: grade, CreatedAt: time.Now().UTC()}
	switch target {
	case domain.TargetPlace:
		if !s.places.PlaceExists(ctx, refID, token) {
			return nil, fmt.Errorf("place %s: %w", refID, domain.ErrNotFound)
		}
		fb.PlaceID = refID
	case domain.TargetRoute:
		if !s.routes.RouteExists(ctx, refID, token) {
			return nil, fmt.Errorf("route %s: %w", refID, domain.ErrNotFound)
		}
		fb.RouteID = refID
	default:
		return nil, fmt.Errorf("%w: unknown feedback target %q", domain.ErrInvalidInput, target)
	}

	if err := s.feedback.Create(ctx, target, fb); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return fb, nil
}

// ListByRef returns the feedback left for a place or route.
func (s *FeedbackService) ListByRef(ctx context.Context, target domain.FeedbackTarget, refID string) ([]domain.Feedback, error) {
	return s.feedback.ListByRef(ctx, target, refID)
}

// Delete removes one feedback. Only its author or an OWNER may delete it;
// anyone else sees domain.ErrNotFound.
func (s *FeedbackService) Delete(ctx context.Context, target domain.FeedbackTarget, id string, caller domain.Identity) error {
	fb, err := s.feedback.GetByID(ctx, target, id)
	if err != nil {
		return err
	}
	if fb.UserID != caller.UserID && caller.Role != domain.RoleOwner {
		return fmt.Errorf("feedback %s: %w", id, domain.ErrNotFound)
	}
	return s.feedback.Delete(ctx, target, id)
}

// DeleteByRef removes every feedback for a place or route. It backs the
// bulk-delete capability used by cascading deletes, so a reference with
// no feedback is not an error.
func (s *FeedbackService) DeleteByRef(ctx context.Context, target domain.FeedbackTarget, refID string) (int64, error) {
	n, err := s.feedback.DeleteByRef(ctx, target, refID)
	if err != nil {
		return 0, fmt.Errorf("delete %s feedback: %w", target, err)
	}
	slog.InfoContext(ctx, "feedback bulk deleted", "target", string(target), "ref_id", refID, "count", n)
	return n, nil
}
