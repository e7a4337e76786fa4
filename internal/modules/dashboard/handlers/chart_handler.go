package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/charts"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/interaction"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/source"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/modules/dashboard/services"
)

type ChartHandler struct {
	chartService  *charts.Service
	reportService *services.ReportService
}

func NewChartHandler(chartService *charts.Service, reportService *services.ReportService) *ChartHandler {
	return &ChartHandler{
		chartService:  chartService,
		reportService: reportService,
	}
}

// ChartResponse is a rendered chart plus the hover text of every element,
// indexed [region][element].
type ChartResponse struct {
	*charts.Chart
	Tooltips [][][]interaction.Field `json:"tooltips"`
}

// ListCharts godoc
// @Summary List charts
// @Description Returns the chart catalogue
// @Tags Charts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /charts [get]
func (h *ChartHandler) ListCharts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"charts": h.chartService.Registry().List(),
	})
}

// GetChart godoc
// @Summary Render a chart
// @Description Loads the current order sheet and returns the chart layout with hover payloads
// @Tags Charts
// @Produce json
// @Param id path string true "Chart ID" example(revenue-by-month)
// @Success 200 {object} ChartResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /charts/{id} [get]
func (h *ChartHandler) GetChart(c *fiber.Ctx) error {
	chart, err := h.chartService.Render(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	tooltips := make([][][]interaction.Field, len(chart.Layout.Regions))
	for i, region := range chart.Layout.Regions {
		tooltips[i] = make([][]interaction.Field, len(region.Elements))
		for j, el := range region.Elements {
			tooltips[i][j] = interaction.Describe(el.Payload, chart.Labels)
		}
	}

	return c.JSON(ChartResponse{Chart: chart, Tooltips: tooltips})
}

// ExportChart godoc
// @Summary Export a chart
// @Description Renders a chart and downloads it as PDF or Excel
// @Tags Charts
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Chart ID"
// @Param format query string false "pdf or excel" default(pdf)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /charts/{id}/export [get]
func (h *ChartHandler) ExportChart(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	file, err := h.reportService.Build(c.UserContext(), []string{c.Params("id")}, format)
	if err != nil {
		return errorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Send(file.Data)
}

// RunReportRequest represents the request body for publishing a report
type RunReportRequest struct {
	Charts []string `json:"charts" example:"revenue-by-month,avg-revenue-by-weekday"`
	Format string   `json:"format" example:"pdf"`
}

// RunReport godoc
// @Summary Publish a report
// @Description Renders the given charts (all when empty) into one document and publishes it
// @Tags Reports
// @Accept json
// @Produce json
// @Param data body RunReportRequest false "Charts and format"
// @Success 201 {object} services.ReportResult
// @Failure 400 {object} map[string]string
// @Router /reports [post]
func (h *ChartHandler) RunReport(c *fiber.Ctx) error {
	var req RunReportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request",
			})
		}
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ids := make([]string, 0, len(req.Charts))
	for _, id := range req.Charts {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	result, err := h.reportService.Run(c.UserContext(), ids, format)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// statusFor maps render failures onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, charts.ErrTargetSurfaceMissing):
		return fiber.StatusNotFound
	case errors.Is(err, source.ErrSourceUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, source.ErrSourceMalformed):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}
	var re *charts.RenderError
	if errors.As(err, &re) {
		body["chart"] = re.Chart
	}
	return c.Status(statusFor(err)).JSON(body)
}
