package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/charts"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/orders"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/publish"
)

type fixedLoader struct {
	records []orders.Record
	err     error
}

func (l fixedLoader) Load(ctx context.Context) ([]orders.Record, error) {
	return l.records, l.err
}

func newReportService(t *testing.T, loader charts.RecordLoader) (*ReportService, string) {
	t.Helper()
	dir := t.TempDir()
	local, err := publish.NewLocalProvider(dir, "http://localhost:8080")
	require.NoError(t, err)

	registry := charts.DefaultRegistry(charts.Options{CurrencyUnit: "triệu VND"})
	chartService := charts.NewService(loader, orders.NewDeriver(orders.DefaultFields(), time.UTC), registry)
	return NewReportService(chartService, export.NewService(), publish.NewService(local), "http://localhost:8080"), dir
}

func records() []orders.Record {
	f := orders.DefaultFields()
	return []orders.Record{
		{f.OrderID: "1", f.Amount: 120000.0, f.Timestamp: "2024-03-02 10:00:00", f.GroupCode: "BOT", f.GroupName: "Bột", f.ItemCode: "B1", f.ItemName: "Matcha"},
		{f.OrderID: "2", f.Amount: 80000.0, f.Timestamp: "2024-03-09 11:00:00", f.GroupCode: "SET", f.GroupName: "Set trà", f.ItemCode: "S1", f.ItemName: "Set A"},
	}
}

func TestBuildSingleChart(t *testing.T) {
	svc, _ := newReportService(t, fixedLoader{records: records()})

	file, err := svc.Build(context.Background(), []string{charts.RevenueByMonth}, export.FormatPDF)

	require.NoError(t, err)
	assert.Equal(t, charts.RevenueByMonth+".pdf", file.Name)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.NotEmpty(t, file.CycleID)
	assert.NotEmpty(t, file.Data)
}

func TestBuildDefaultsToAllCharts(t *testing.T) {
	svc, _ := newReportService(t, fixedLoader{records: records()})

	file, err := svc.Build(context.Background(), nil, export.FormatExcel)

	require.NoError(t, err)
	assert.Equal(t, "sales-report.xlsx", file.Name)
	assert.Len(t, file.Charts, 6)
}

func TestRunPublishesReport(t *testing.T) {
	svc, dir := newReportService(t, fixedLoader{records: records()})

	result, err := svc.Run(context.Background(), nil, export.FormatExcel)

	require.NoError(t, err)
	assert.Equal(t, "excel", result.Format)
	require.NotNil(t, result.File)
	_, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(result.File.Key)))
	assert.NoError(t, statErr)
}

func TestRunPropagatesLoadError(t *testing.T) {
	loadErr := errors.New("sheet offline")
	svc, dir := newReportService(t, fixedLoader{err: loadErr})

	_, err := svc.Run(context.Background(), nil, export.FormatPDF)

	assert.ErrorIs(t, err, loadErr)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestScheduledJobPublishes(t *testing.T) {
	svc, dir := newReportService(t, fixedLoader{records: records()})

	svc.ScheduledJob([]string{charts.OrderShareByCategory}, export.FormatPDF, time.Second)()

	files, err := filepath.Glob(filepath.Join(dir, "sales", "*.pdf"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
