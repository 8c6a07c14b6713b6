package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

type feedbackRequest struct {
	PlaceID string `json:"place_id"`
	RouteID string `json:"route_id"`
	Grade   int    `json:"grade" validate:"required,min=1,max=5"`
}

func (r feedbackRequest) ref(target domain.FeedbackTarget) string {
	if target == domain.TargetRoute {
		return r.RouteID
	}
	return r.PlaceID
}

// CreateFeedbackHandler records the caller's grade for a place or route.
func CreateFeedbackHandler(deps *Dependencies, target domain.FeedbackTarget) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req feedbackRequest
		if err := bindJSON(c, &req); err != nil {
			return writeDomainError(c, err)
		}
		refID := req.ref(target)
		if refID == "" {
			return errBadRequest(c, string(target)+"_id is required")
		}

		fb, err := deps.Feedback.Create(c.UserContext(), target, refID, identity(c).UserID, req.Grade, bearer(c))
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fb)
	}
}

// ListFeedbackHandler returns the feedback left for a place or route.
func ListFeedbackHandler(deps *Dependencies, target domain.FeedbackTarget) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := deps.Feedback.ListByRef(c.UserContext(), target, c.Params("id"))
		if err != nil {
			return writeDomainError(c, err)
		}
		if items == nil {
			items = []domain.Feedback{}
		}
		return c.JSON(items)
	}
}

// DeleteFeedbackHandler removes one feedback entry.
func DeleteFeedbackHandler(deps *Dependencies, target domain.FeedbackTarget) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Feedback.Delete(c.UserContext(), target, c.Params("id"), identity(c)); err != nil {
			return writeDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteFeedbackBatchHandler removes all feedback for a place or route.
// Deleting feedback for a reference that has none succeeds.
func DeleteFeedbackBatchHandler(deps *Dependencies, target domain.FeedbackTarget) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := deps.Feedback.DeleteByRef(c.UserContext(), target, c.Params("id")); err != nil {
			return writeDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
