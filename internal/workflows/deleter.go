package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
	"github.com/samirrijal/wayfarer/internal/pkg/metrics"
)

var _ ports.PlaceDeleter = (*Deleter)(nil)

// Deleter runs place deletions as Temporal workflows and waits for them.
type Deleter struct {
	client    client.Client
	taskQueue string
}

// NewDeleter creates a Deleter starting workflows on taskQueue.
func NewDeleter(c client.Client, taskQueue string) *Deleter {
	return &Deleter{client: c, taskQueue: taskQueue}
}

// WorkflowID names the deletion workflow of a place for one caller.
// Repeated requests by the same caller join a single run; a different
// caller always gets a run of its own, so ownership is verified per caller.
func WorkflowID(placeID, ownerID string) string {
	return "place-deletion-" + placeID + "-" + ownerID
}

// DeletePlace starts the deletion workflow and blocks until it completes.
func (d *Deleter) DeletePlace(ctx context.Context, id, ownerID, token string) error {
	start := time.Now()
	state := "error"
	defer func() {
		metrics.CascadeRuns.WithLabelValues("temporal", state).Inc()
		metrics.CascadeDuration.WithLabelValues("temporal").Observe(time.Since(start).Seconds())
	}()

	run, err := d.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        WorkflowID(id, ownerID),
		TaskQueue: d.taskQueue,
	}, PlaceDeletionWorkflow, DeletionInput{PlaceID: id, OwnerID: ownerID, Token: token})
	if err != nil {
		return fmt.Errorf("start deletion workflow: %w", err)
	}

	var res DeletionResult
	err = run.Get(ctx, &res)
	if res.State != "" {
		state = res.State
	}
	if err != nil {
		if isNotFound(err) {
			state = usecases.StateNotFound
			return fmt.Errorf("place %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("deletion workflow: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var appErr *temporal.ApplicationError
	return errors.As(err, &appErr) && appErr.Type() == ErrTypeNotFound
}
