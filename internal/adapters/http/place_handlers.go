package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/wayfarer/internal/core/domain"
)

const defaultNearRadiusKm = 5.0

type coordinatesRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

type placeRequest struct {
	Name        string             `json:"name" validate:"required,max=100"`
	Coordinates coordinatesRequest `json:"coordinates"`
	Tags        []string           `json:"tags" validate:"max=10,dive,required"`
	Description string             `json:"description" validate:"max=500"`
}

type nameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type descriptionRequest struct {
	Description string `json:"description" validate:"max=500"`
}

// ListPlacesHandler returns every place, paginated.
func ListPlacesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		places, err := deps.Places.ListPlaces(c.UserContext())
		if err != nil {
			return writeDomainError(c, err)
		}
		return paginate(c, places)
	}
}

// GetPlaceHandler returns a single place by ID.
func GetPlaceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		place, err := deps.Places.GetPlace(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(place)
	}
}

// CreatePlaceHandler stores a place owned by the caller.
func CreatePlaceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req placeRequest
		if err := bindJSON(c, &req); err != nil {
			return writeDomainError(c, err)
		}

		place := &domain.Place{
			Name:        req.Name,
			Location:    domain.GeoPoint{Lat: *req.Coordinates.Latitude, Lon: *req.Coordinates.Longitude},
			Tags:        req.Tags,
			Description: req.Description,
		}
		created, err := deps.Places.AddPlace(c.UserContext(), place, identity(c).UserID)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// UpdatePlaceNameHandler renames a place owned by the caller.
func UpdatePlaceNameHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req nameRequest
		if err := bindJSON(c, &req); err != nil {
			return writeDomainError(c, err)
		}
		place, err := deps.Places.UpdateName(c.UserContext(), c.Params("id"), identity(c).UserID, req.Name)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(place)
	}
}

// UpdatePlaceDescriptionHandler replaces the description of a place owned by the caller.
func UpdatePlaceDescriptionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req descriptionRequest
		if err := bindJSON(c, &req); err != nil {
			return writeDomainError(c, err)
		}
		place, err := deps.Places.UpdateDescription(c.UserContext(), c.Params("id"), identity(c).UserID, req.Description)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(place)
	}
}

// NearPlacesHandler returns places within distance_km of a point, nearest
// first. filter names the query parameter that must be present ("tag" or
// "name"); an empty filter serves the unfiltered search.
func NearPlacesHandler(deps *Dependencies, filter string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseNearQuery(c)
		if err != nil {
			return writeDomainError(c, err)
		}
		switch filter {
		case "tag":
			q.Tag = c.Query("tag")
			if q.Tag == "" {
				return errBadRequest(c, "tag query parameter is required")
			}
		case "name":
			q.NameContains = c.Query("name")
			if q.NameContains == "" {
				return errBadRequest(c, "name query parameter is required")
			}
		default:
			q.Tag = c.Query("tag")
			q.NameContains = c.Query("name")
		}

		places, err := deps.Places.FindNear(c.UserContext(), q)
		if err != nil {
			return writeDomainError(c, err)
		}
		if places == nil {
			places = []domain.Place{}
		}
		c.Set("Cache-Control", "private, max-age=60")
		return c.JSON(places)
	}
}

// DeletePlaceHandler runs the cascading delete for a place owned by the caller.
func DeletePlaceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := deps.Deleter.DeletePlace(c.UserContext(), c.Params("id"), identity(c).UserID, bearer(c))
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func parseNearQuery(c *fiber.Ctx) (domain.NearQuery, error) {
	lat, err := floatParam(c, "latitude", nil)
	if err != nil {
		return domain.NearQuery{}, err
	}
	lon, err := floatParam(c, "longitude", nil)
	if err != nil {
		return domain.NearQuery{}, err
	}
	def := defaultNearRadiusKm
	radius, err := floatParam(c, "distance_km", &def)
	if err != nil {
		return domain.NearQuery{}, err
	}
	return domain.NearQuery{
		Center:   domain.GeoPoint{Lat: lat, Lon: lon},
		RadiusKm: radius,
	}, nil
}

// floatParam parses a float query parameter. A nil def makes it required.
func floatParam(c *fiber.Ctx, name string, def *float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		if def == nil {
			return 0, fmt.Errorf("%w: %s query parameter is required", domain.ErrInvalidInput, name)
		}
		return *def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, name)
	}
	return v, nil
}
