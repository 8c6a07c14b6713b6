package workflows

import (
	"context"
	"errors"

	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
)

// ErrTypeNotFound is the application error type carried by a deletion that
// targeted a missing or foreign place.
const ErrTypeNotFound = "NotFound"

// Activity names as registered on the worker.
const (
	ActivityVerifyOwnership = "VerifyOwnership"
	ActivityDeleteFeedback  = "DeleteFeedback"
	ActivityDeleteFavorites = "DeleteFavorites"
	ActivityRemovePlace     = "RemovePlace"
)

// DeletionActivities holds the activity implementations for the place
// deletion workflow.
type DeletionActivities struct {
	Places    *usecases.PlaceService
	Feedback  ports.FeedbackClient
	Favorites ports.FavoritesClient
}

// VerifyOwnership fails without retry when the place is missing or not
// owned by the caller.
func (a *DeletionActivities) VerifyOwnership(ctx context.Context, in DeletionInput) error {
	err := a.Places.VerifyOwnership(ctx, in.PlaceID, in.OwnerID)
	if errors.Is(err, domain.ErrNotFound) {
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeNotFound, err)
	}
	return err
}

// DeleteFeedback removes the feedback left for the place. Unavailability
// is reported in the outcome, never as an error.
func (a *DeletionActivities) DeleteFeedback(ctx context.Context, in DeletionInput) (ports.RemoteOutcome, error) {
	o := a.Feedback.DeleteForPlace(ctx, in.PlaceID, in.Token)
	usecases.RecordDependentOutcome(ctx, in.PlaceID, o)
	return o, nil
}

// DeleteFavorites removes every favorite pointing at the place.
func (a *DeletionActivities) DeleteFavorites(ctx context.Context, in DeletionInput) (ports.RemoteOutcome, error) {
	o := a.Favorites.DeleteForPlace(ctx, in.PlaceID, in.Token)
	usecases.RecordDependentOutcome(ctx, in.PlaceID, o)
	return o, nil
}

// RemovePlace deletes the place row.
func (a *DeletionActivities) RemovePlace(ctx context.Context, in DeletionInput) error {
	return a.Places.RemovePlace(ctx, in.PlaceID)
}
