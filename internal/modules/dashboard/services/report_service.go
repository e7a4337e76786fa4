package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/charts"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/publish"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/shared/utils"
)

const reportTitle = "Sales dashboard"

// ReportFile is an exported document held in memory.
type ReportFile struct {
	Name        string
	ContentType string
	Data        []byte
	Charts      []string
	CycleID     string
}

// ReportResult describes a published report.
type ReportResult struct {
	CycleID     string          `json:"cycle_id"`
	Format      string          `json:"format"`
	Charts      []string        `json:"charts"`
	File        *publish.Result `json:"file"`
	GeneratedAt time.Time       `json:"generated_at"`
}

type ReportService struct {
	charts    *charts.Service
	exporter  *export.Service
	publisher *publish.Service
	linkBase  string
}

func NewReportService(chartService *charts.Service, exporter *export.Service, publisher *publish.Service, linkBase string) *ReportService {
	return &ReportService{
		charts:    chartService,
		exporter:  exporter,
		publisher: publisher,
		linkBase:  linkBase,
	}
}

// Build renders ids in one cycle and exports them as a single document.
// No ids means every registered chart.
func (s *ReportService) Build(ctx context.Context, ids []string, format export.ExportFormat) (*ReportFile, error) {
	if len(ids) == 0 {
		ids = s.charts.Registry().IDs()
	}

	rendered, err := s.charts.RenderMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	report := export.NewReport(reportTitle, rendered, s.linkBase)
	data, contentType, err := s.exporter.Export(report, format)
	if err != nil {
		return nil, err
	}

	name := "sales-report"
	if len(ids) == 1 {
		name = ids[0]
	}
	return &ReportFile{
		Name:        name + s.exporter.GetFileExtension(format),
		ContentType: contentType,
		Data:        data,
		Charts:      ids,
		CycleID:     rendered[0].CycleID,
	}, nil
}

// Run builds the report and publishes it.
func (s *ReportService) Run(ctx context.Context, ids []string, format export.ExportFormat) (*ReportResult, error) {
	file, err := s.Build(ctx, ids, format)
	if err != nil {
		utils.LogError("report build failed", err, map[string]interface{}{"charts": ids, "format": format})
		return nil, err
	}

	published, err := s.publisher.Publish(ctx, bytes.NewReader(file.Data), file.Name, nil)
	if err != nil {
		utils.LogError("report publish failed", err, map[string]interface{}{
			"cycle_id": file.CycleID,
			"provider": s.publisher.GetProviderName(),
		})
		return nil, fmt.Errorf("failed to publish report: %w", err)
	}

	utils.LogInfo("report published", map[string]interface{}{
		"cycle_id": file.CycleID,
		"format":   format,
		"charts":   len(file.Charts),
		"bytes":    len(file.Data),
		"url":      published.URL,
		"provider": s.publisher.GetProviderName(),
	})

	return &ReportResult{
		CycleID:     file.CycleID,
		Format:      string(format),
		Charts:      file.Charts,
		File:        published,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// ScheduledJob returns a cron job that runs the report with its own timeout.
func (s *ReportService) ScheduledJob(ids []string, format export.ExportFormat, timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, err := s.Run(ctx, ids, format); err != nil {
			utils.LogWarn("scheduled report skipped", map[string]interface{}{"error": err.Error()})
		}
	}
}
