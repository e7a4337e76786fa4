// Package dashboard wires the sales dashboard from configuration.
package dashboard

import (
	"context"
	"fmt"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/charts"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/orders"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/publish"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/source"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/modules/dashboard/services"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/shared/awsconfig"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/shared/config"
)

// Module holds the services shared by the API and the report CLI.
type Module struct {
	Source    source.Provider
	Charts    *charts.Service
	Exporter  *export.Service
	Publisher *publish.Service
	Reports   *services.ReportService
}

// New builds the module. The S3 client is only created when the source or
// the publisher needs it.
func New(ctx context.Context, cfg *config.Config) (*Module, error) {
	awsOpts := awsconfig.Options{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	}
	s3Opener := func(ctx context.Context) (source.S3API, error) {
		client, err := awsconfig.NewS3Client(ctx, awsOpts)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	src, err := source.NewProvider(cfg.SourceURI, s3Opener)
	if err != nil {
		return nil, err
	}

	fields := orders.DefaultFields()
	loader := source.NewLoader(src, cfg.SourceSheet, fields, cfg.SourceTimeout)
	registry := charts.DefaultRegistry(charts.Options{
		CurrencyUnit:   cfg.CurrencyUnit,
		PriorityGroups: cfg.PriorityGroups,
	})
	chartService := charts.NewService(loader, orders.NewDeriver(fields, cfg.Location()), registry)

	var provider publish.Provider
	switch cfg.PublishProvider {
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required for the s3 publish provider")
		}
		client, err := awsconfig.NewS3Client(ctx, awsOpts)
		if err != nil {
			return nil, err
		}
		provider = publish.NewS3Provider(client, cfg.S3Bucket, cfg.AWSRegion)
	case "local":
		provider, err = publish.NewLocalProvider(cfg.PublishPath, cfg.PublishBaseURL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown publish provider: %s", cfg.PublishProvider)
	}
	publisher := publish.NewService(provider)

	exporter := export.NewService()
	linkBase := cfg.PublicBaseURL
	if linkBase == "" {
		linkBase = cfg.PublishBaseURL
	}

	return &Module{
		Source:    src,
		Charts:    chartService,
		Exporter:  exporter,
		Publisher: publisher,
		Reports:   services.NewReportService(chartService, exporter, publisher, linkBase),
	}, nil
}
