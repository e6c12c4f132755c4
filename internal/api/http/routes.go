package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/yclin/taipei-brief/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the status handlers into the Fiber app. The store
// holds the recent pipeline runs recorded by the scheduler.
func RegisterRoutes(app *fiber.App, runs *store.MemoryStore) {
	v1 := app.Group("/api/v1")

	v1.Get("/report/latest", func(c *fiber.Ctx) error {
		run, err := runs.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no report generated yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load latest report")
		}
		return c.JSON(run)
	})

	v1.Get("/report/history", func(c *fiber.Ctx) error {
		var q historyQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"limit": q.Limit,
			"runs":  runs.Recent(q.Limit),
		})
	})
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Limit int `validate:"gte=1,lte=100"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	limitStr := c.Query("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return errors.New("limit must be an integer")
	}
	h.Limit = limit
	return nil
}
