package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

type favoriteRequest struct {
	PlaceID string `json:"place_id" validate:"required"`
	Kind    string `json:"favorite_type" validate:"required,oneof=HOME WORK ENTERTAINMENT"`
}

// AddFavoriteHandler marks a place as a favorite of the caller.
func AddFavoriteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req favoriteRequest
		if err := bindJSON(c, &req); err != nil {
			return writeDomainError(c, err)
		}
		fav, err := deps.Favorites.Add(c.UserContext(), identity(c).UserID, req.PlaceID, domain.FavoriteKind(req.Kind), bearer(c))
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fav)
	}
}

// GetFavoriteHandler returns a favorite by ID.
func GetFavoriteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fav, err := deps.Favorites.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(fav)
	}
}

// UserFavoritesHandler lists the caller's favorites.
func UserFavoritesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		favs, err := deps.Favorites.ListByUser(c.UserContext(), identity(c).UserID)
		if err != nil {
			return writeDomainError(c, err)
		}
		if favs == nil {
			favs = []domain.Favorite{}
		}
		return c.JSON(favs)
	}
}

// DeleteFavoriteHandler removes one of the caller's favorites.
func DeleteFavoriteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Favorites.Delete(c.UserContext(), c.Params("id"), identity(c).UserID); err != nil {
			return writeDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteFavoritesByPlaceHandler removes every favorite pointing at a place.
func DeleteFavoritesByPlaceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := deps.Favorites.DeleteByPlace(c.UserContext(), c.Params("id")); err != nil {
			return writeDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
