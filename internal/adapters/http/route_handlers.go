package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

type routeRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Places      []string `json:"places" validate:"required,min=1,dive,required"`
}

// ListRoutesHandler returns every route, paginated.
func ListRoutesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		routes, err := deps.Routes.ListRoutes(c.UserContext())
		if err != nil {
			return writeDomainError(c, err)
		}
		return paginate(c, routes)
	}
}

// GetRouteHandler returns a route by ID.
func GetRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		route, err := deps.Routes.GetRoute(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(route)
	}
}

// RoutesByPlaceHandler lists the routes passing through a place.
func RoutesByPlaceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		routes, err := deps.Routes.ListByPlace(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeDomainError(c, err)
		}
		if routes == nil {
			routes = []domain.Route{}
		}
		return c.JSON(routes)
	}
}

// CreateRouteHandler stores a route after confirming each of its places.
func CreateRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req routeRequest
		if err := bindJSON(c, &req); err != nil {
			return writeDomainError(c, err)
		}
		route := &domain.Route{Name: req.Name, Description: req.Description, Places: req.Places}
		created, err := deps.Routes.CreateRoute(c.UserContext(), route, identity(c).UserID, bearer(c))
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// DeleteRouteHandler removes a route and its feedback.
func DeleteRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Routes.DeleteRoute(c.UserContext(), c.Params("id"), bearer(c)); err != nil {
			return writeDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
