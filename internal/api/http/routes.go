package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/pogo-weather/internal/weather"
)

var validate = validator.New()

// runTimeout bounds a manually triggered pipeline run.
const runTimeout = 2 * time.Minute

// RegisterRoutes wires the HTTP handlers into the Fiber app. A nil gatherer
// leaves /metrics unregistered.
func RegisterRoutes(app *fiber.App, service *weather.Service, gatherer prometheus.Gatherer) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "pogo-weather",
		})
	})

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := app.Group("/api/v1")

	v1.Get("/locations", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"locations": service.Catalog().Locations(),
		})
	})

	v1.Get("/forecast/:locationID", func(c *fiber.Ctx) error {
		q := forecastQuery{
			LocationID: c.Params("locationID"),
			Hour:       c.Query("hour"),
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if q.Hour == "" {
			q.Hour = service.CurrentRequestHour()
		}

		loc, bucket, err := service.Forecast(c.UserContext(), q.LocationID, q.Hour)
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrUnknownLocation):
				return fiber.NewError(fiber.StatusNotFound, "unknown location")
			case errors.Is(err, weather.ErrNoForecast):
				return fiber.NewError(fiber.StatusNotFound, "no forecast stored for requested hour")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read forecast")
		}

		return c.JSON(fiber.Map{
			"location": loc,
			"bucket":   weather.BucketKey(loc.ID, q.Hour),
			"forecast": bucket,
			"message":  weather.RenderForecast(loc, bucket),
		})
	})

	v1.Post("/runs/ingest", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), runTimeout)
		defer cancel()
		return runResponse(c, service.RunIngestion(ctx))
	})

	v1.Post("/runs/report", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), runTimeout)
		defer cancel()
		return runResponse(c, service.RunReport(ctx))
	})
}

// forecastQuery holds the path and query parameters of the forecast endpoint.
type forecastQuery struct {
	LocationID string `validate:"required,numeric"`
	// Hour is the bucket hour, e.g. 2024-01-01T14.
	Hour string `validate:"omitempty,datetime=2006-01-02T15"`
}

// runResponse writes the summary; a run where every location failed is a 502.
func runResponse(c *fiber.Ctx, summary weather.RunSummary) error {
	status := fiber.StatusOK
	if summary.Status() == "failure" {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(summary)
}
