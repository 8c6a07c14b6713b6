package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
)

// DeletionInput is the input for the place deletion workflow.
type DeletionInput struct {
	PlaceID string
	OwnerID string
	Token   string
}

// DeletionResult reports the final cascade state and how each dependent
// deletion resolved.
type DeletionResult struct {
	State      string
	Dependents []ports.RemoteOutcome
}

// PlaceDeletionWorkflow verifies ownership, clears feedback and favorites
// concurrently, waits for both and then removes the place. Dependent
// deletions that fell back never stop the workflow.
func PlaceDeletionWorkflow(ctx workflow.Context, in DeletionInput) (DeletionResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting place deletion", "placeID", in.PlaceID)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:        3,
			NonRetryableErrorTypes: []string{ErrTypeNotFound},
		},
	})

	res := DeletionResult{State: usecases.StateStart}

	// Step 1: ownership
	if err := workflow.ExecuteActivity(ctx, ActivityVerifyOwnership, in).Get(ctx, nil); err != nil {
		if isNotFound(err) {
			res.State = usecases.StateNotFound
		}
		return res, err
	}
	res.State = usecases.StateOwnershipVerified

	// Step 2: dependents, both in flight before either is awaited
	feedback := workflow.ExecuteActivity(ctx, ActivityDeleteFeedback, in)
	favorites := workflow.ExecuteActivity(ctx, ActivityDeleteFavorites, in)

	for _, f := range []workflow.Future{feedback, favorites} {
		var o ports.RemoteOutcome
		if err := f.Get(ctx, &o); err != nil {
			logger.Warn("dependent delete failed", "placeID", in.PlaceID, "error", err)
			o.Fallback = true
		}
		res.Dependents = append(res.Dependents, o)
	}
	res.State = usecases.StateDependentsCleared

	// Step 3: local row
	if err := workflow.ExecuteActivity(ctx, ActivityRemovePlace, in).Get(ctx, nil); err != nil {
		return res, err
	}
	res.State = usecases.StateDeleted

	logger.Info("Place deleted", "placeID", in.PlaceID)
	return res, nil
}
