package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/charts"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/orders"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/publish"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/source"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/modules/dashboard/services"
)

type stubLoader struct {
	records []orders.Record
	err     error
}

func (l stubLoader) Load(ctx context.Context) ([]orders.Record, error) {
	return l.records, l.err
}

func setupApp(t *testing.T, loader charts.RecordLoader) *fiber.App {
	t.Helper()

	registry := charts.DefaultRegistry(charts.Options{CurrencyUnit: "triệu VND"})
	chartService := charts.NewService(loader, orders.NewDeriver(orders.DefaultFields(), time.UTC), registry)

	local, err := publish.NewLocalProvider(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	reportService := services.NewReportService(chartService, export.NewService(), publish.NewService(local), "http://localhost:8080")

	h := NewChartHandler(chartService, reportService)
	app := fiber.New()
	app.Get("/charts", h.ListCharts)
	app.Get("/charts/:id", h.GetChart)
	app.Get("/charts/:id/export", h.ExportChart)
	app.Post("/reports", h.RunReport)
	return app
}

func sampleLoader() stubLoader {
	f := orders.DefaultFields()
	return stubLoader{records: []orders.Record{
		{f.OrderID: "1", f.Amount: 200000.0, f.Timestamp: "2024-01-01 08:00:00", f.GroupCode: "BOT", f.GroupName: "Bột", f.ItemCode: "B1", f.ItemName: "Matcha"},
		{f.OrderID: "2", f.Amount: 150000.0, f.Timestamp: "2024-01-08 09:00:00", f.GroupCode: "THO", f.GroupName: "Trà hoa", f.ItemCode: "T1", f.ItemName: "Cúc"},
	}}
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestListCharts(t *testing.T) {
	app := setupApp(t, sampleLoader())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/charts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	list, ok := body["charts"].([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 6)
}

func TestGetChartIncludesTooltips(t *testing.T) {
	app := setupApp(t, sampleLoader())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/charts/"+charts.RevenueByMonth, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, charts.RevenueByMonth, body["id"])
	assert.NotEmpty(t, body["cycle_id"])

	tooltips := body["tooltips"].([]interface{})
	require.Len(t, tooltips, 1)
	region := tooltips[0].([]interface{})
	require.Len(t, region, 1)
	fields := region[0].([]interface{})
	last := fields[len(fields)-1].(map[string]interface{})
	assert.Equal(t, "350,000", last["value"])
}

func TestGetUnknownChart(t *testing.T) {
	app := setupApp(t, sampleLoader())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/charts/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "nope", decode(t, resp)["chart"])
}

func TestGetChartSourceErrors(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("%w: connection refused", source.ErrSourceUnavailable): fiber.StatusBadGateway,
		fmt.Errorf("%w: missing columns", source.ErrSourceMalformed):      fiber.StatusUnprocessableEntity,
		context.DeadlineExceeded: fiber.StatusGatewayTimeout,
		errors.New("boom"):       fiber.StatusInternalServerError,
	}

	for loadErr, status := range cases {
		app := setupApp(t, stubLoader{err: loadErr})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/charts/"+charts.RevenueByMonth, nil))
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, loadErr.Error())
		resp.Body.Close()
	}
}

func TestExportChart(t *testing.T) {
	app := setupApp(t, sampleLoader())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/charts/"+charts.AvgRevenueByWeekday+"/export?format=excel", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), charts.AvgRevenueByWeekday+".xlsx")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "PK"))
}

func TestExportChartBadFormat(t *testing.T) {
	app := setupApp(t, sampleLoader())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/charts/"+charts.RevenueByMonth+"/export?format=csv", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRunReport(t *testing.T) {
	app := setupApp(t, sampleLoader())

	req := httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader(`{"charts":["revenue-by-month"," "],"format":"excel"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "excel", body["format"])
	assert.Equal(t, []interface{}{charts.RevenueByMonth}, body["charts"])
	file := body["file"].(map[string]interface{})
	assert.Contains(t, file["url"], "/reports/sales/")
}

func TestStatusFor(t *testing.T) {
	wrapped := &charts.RenderError{Chart: "x", Err: fmt.Errorf("wrap: %w", charts.ErrTargetSurfaceMissing)}
	assert.Equal(t, fiber.StatusNotFound, statusFor(wrapped))
}

func TestGetHealth(t *testing.T) {
	local, err := publish.NewLocalProvider(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	h := NewHealthHandler(source.NewLocalProvider("orders.xlsx"), publish.NewService(local), charts.DefaultRegistry(charts.Options{}), nil)
	app := fiber.New()
	app.Get("/health", h.GetHealth)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Local Storage", body["source"])
	assert.Equal(t, "Local Storage", body["publisher"])
	assert.Equal(t, float64(6), body["charts"])
	assert.NotContains(t, body, "scheduled_reports")
}
