package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/paragon-dao/paragondao-org-sub001/internal/env"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *env.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/environment", func(c *fiber.Ctx) error {
		var (
			report *env.EnvironmentReport
			err    error
		)
		if c.QueryBool("refresh") {
			report, err = service.Refresh(c.Context())
		} else {
			report, err = service.GetEnvironmentData(c.Context())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build environment report")
		}
		return c.JSON(report)
	})

	v1.Get("/location", func(c *fiber.Ctx) error {
		return c.JSON(service.CurrentLocation(c.Context()))
	})

	v1.Get("/location/search", func(c *fiber.Ctx) error {
		var q searchQuery
		q.Query = c.Query("q")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		results, err := service.SearchLocation(c.Context(), q.Query)
		if err != nil {
			if errors.Is(err, env.ErrEmptyQuery) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusBadGateway, "geocoding lookup failed")
		}
		return c.JSON(fiber.Map{"results": results})
	})

	v1.Put("/location", func(c *fiber.Ctx) error {
		var body setLocationBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc, err := service.SetLocation(c.Context(), body.toLocation())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save location")
		}
		return c.JSON(loc)
	})

	v1.Post("/location/gps", func(c *fiber.Ctx) error {
		loc, err := service.UpgradeToGPS(c.Context())
		if err != nil {
			if errors.Is(err, env.ErrLocationDenied) {
				return fiber.NewError(fiber.StatusForbidden, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to upgrade location")
		}
		return c.JSON(loc)
	})

	v1.Delete("/cache", func(c *fiber.Ctx) error {
		service.ClearCache()
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// searchQuery holds the free-text geocoding query.
type searchQuery struct {
	Query string `validate:"required,min=1"`
}

// setLocationBody is the manual location override payload. Coordinate fields
// are pointers so zero values validate correctly.
type setLocationBody struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	City      string   `json:"city"`
	Region    string   `json:"region"`
	Country   string   `json:"country"`
}

func (b setLocationBody) toLocation() env.Location {
	return env.Location{
		Latitude:  *b.Latitude,
		Longitude: *b.Longitude,
		City:      b.City,
		Region:    b.Region,
		Country:   b.Country,
	}
}
