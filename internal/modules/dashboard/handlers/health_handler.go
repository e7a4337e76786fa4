package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/charts"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/publish"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/scheduler"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/source"
)

type HealthHandler struct {
	source    source.Provider
	publisher *publish.Service
	registry  *charts.Registry
	scheduler *scheduler.Scheduler
}

func NewHealthHandler(src source.Provider, publisher *publish.Service, registry *charts.Registry, sched *scheduler.Scheduler) *HealthHandler {
	return &HealthHandler{
		source:    src,
		publisher: publisher,
		registry:  registry,
		scheduler: sched,
	}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	body := fiber.Map{
		"status":    "ok",
		"service":   "dashboard-api",
		"source":    h.source.GetProviderName(),
		"publisher": h.publisher.GetProviderName(),
		"charts":    len(h.registry.IDs()),
	}

	if h.scheduler != nil {
		reports := fiber.Map{}
		for _, id := range h.scheduler.GetScheduledReports() {
			reports[id] = h.scheduler.NextRun(id)
		}
		body["scheduled_reports"] = reports
	}

	return c.JSON(body)
}
