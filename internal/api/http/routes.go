// Package httpapi exposes the shared state and workflow over HTTP. It is the
// read surface the original app's four screens map onto.
package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weatherplaces/internal/place"
	"weatherplaces/internal/resolver"
	"weatherplaces/internal/state"
	"weatherplaces/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, r *resolver.Resolver, st *state.Store) {
	v1 := app.Group("/api/v1")

	v1.Post("/locations/resolve", func(c *fiber.Ctx) error {
		var req resolveRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// The workflow absorbs all failures into the state itself; the
		// response is whatever got committed.
		r.Resolve(c.UserContext(), req.Query)
		return c.JSON(st.Get())
	})

	v1.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(st.Get())
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		snap := st.Get()
		if snap.Weather == nil {
			return fiber.NewError(fiber.StatusNotFound, "no weather data for current location")
		}
		return c.JSON(fiber.Map{
			"location": snap.LocationName,
			"lat":      snap.Latitude,
			"lon":      snap.Longitude,
			"current":  snap.Weather.Current,
		})
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		snap := st.Get()
		if snap.Weather == nil {
			return fiber.NewError(fiber.StatusNotFound, "no weather data for current location")
		}
		return c.JSON(fiber.Map{
			"location": snap.LocationName,
			"hourly":   snap.Weather.Hourly,
			"daily":    snap.Weather.Daily,
		})
	})

	v1.Get("/weather/advisory", func(c *fiber.Ctx) error {
		snap := st.Get()
		advisory := weather.ComputeAdvisory(snap.Weather)
		return c.JSON(fiber.Map{
			"level":   advisory.Level,
			"status":  advisory.Level.String(),
			"message": advisory.Message(),
			"reasons": advisory.Reasons,
		})
	})

	v1.Get("/places", func(c *fiber.Ctx) error {
		snap := st.Get()
		return c.JSON(fiber.Map{
			"location":    snap.LocationName,
			"annotations": snap.Annotations,
		})
	})

	v1.Get("/locations", func(c *fiber.Ctx) error {
		records, err := r.ListLocations(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to list stored locations")
		}
		return c.JSON(fiber.Map{"locations": records})
	})

	v1.Delete("/locations", func(c *fiber.Ctx) error {
		var req deleteRequest
		req.Key = c.Query("key")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "key query parameter is required")
		}

		if err := r.DeleteLocation(c.UserContext(), req.Key); err != nil {
			if errors.Is(err, place.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no stored location with that key")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete stored location")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/alerts/dismiss", func(c *fiber.Ctx) error {
		r.DismissAlert()
		return c.SendStatus(fiber.StatusNoContent)
	})
}

type resolveRequest struct {
	Query string `json:"query" validate:"required,min=1"`
}

type deleteRequest struct {
	Key string `validate:"required"`
}
