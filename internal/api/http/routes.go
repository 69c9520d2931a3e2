package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/temperature-trend/internal/climate"
	"github.com/i474232898/temperature-trend/internal/common"
	"github.com/i474232898/temperature-trend/internal/report"
	"github.com/i474232898/temperature-trend/internal/store"
)

var validate = validator.New()

// RunReader is the read side of climate.Service used by the handlers.
type RunReader interface {
	Latest() (climate.Run, error)
	Get(id string) (climate.Run, error)
	History() []climate.Run
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service RunReader) {
	v1 := app.Group("/api/v1")

	v1.Get("/runs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"runs": service.History(),
		})
	})

	v1.Get("/runs/latest", func(c *fiber.Ctx) error {
		run, err := service.Latest()
		if err != nil {
			return runError(err)
		}
		return c.JSON(run)
	})

	v1.Get("/runs/:id", func(c *fiber.Ctx) error {
		run, err := service.Get(c.Params("id"))
		if err != nil {
			return runError(err)
		}
		return c.JSON(run)
	})

	v1.Get("/averages", func(c *fiber.Ctx) error {
		var req rangeQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		run, err := service.Latest()
		if err != nil {
			return runError(err)
		}

		from, to := run.StartYear, run.EndYear-1
		if req.From != 0 {
			from = req.From
		}
		if req.To != 0 {
			to = req.To
		}
		if to < from {
			return fiber.NewError(fiber.StatusBadRequest, "to must not be before from")
		}

		return c.JSON(fiber.Map{
			"runId": run.ID,
			"from":  from,
			"to":    to,
			"min":   common.YearsBetween(run.Averages.Min, from, to),
			"max":   common.YearsBetween(run.Averages.Max, from, to),
		})
	})

	v1.Get("/prediction", func(c *fiber.Ctx) error {
		var req predictionQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		run, err := service.Latest()
		if err != nil {
			return runError(err)
		}

		p, err := report.Predict(run.Averages, req.Year)
		if err != nil {
			if errors.Is(err, report.ErrInsufficientData) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fit trend")
		}

		return c.JSON(fiber.Map{
			"runId":      run.ID,
			"prediction": p,
		})
	})
}

func runError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "no run available")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to load run")
}

// rangeQuery holds the optional year bounds of the averages endpoint.
// Zero means unset.
type rangeQuery struct {
	From int `validate:"omitempty,gte=1"`
	To   int `validate:"omitempty,gte=1"`
}

func (r *rangeQuery) bind(c *fiber.Ctx) error {
	var err error
	if r.From, err = parseYear(c.Query("from")); err != nil {
		return err
	}
	if r.To, err = parseYear(c.Query("to")); err != nil {
		return err
	}
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.From != 0 && r.To != 0 && r.To < r.From {
		return errors.New("to must not be before from")
	}
	return nil
}

// predictionQuery holds query parameters for the prediction endpoint.
type predictionQuery struct {
	Year int `validate:"required,gte=1"`
}

func (p *predictionQuery) bind(c *fiber.Ctx) error {
	var err error
	if p.Year, err = parseYear(c.Query("year")); err != nil {
		return err
	}
	return validate.Struct(p)
}

// parseYear returns 0 for an empty value.
func parseYear(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("invalid year; use an integer like 2020")
	}
	return n, nil
}
