package charts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/interaction"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/layout"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/orders"
)

// RecordLoader supplies the raw rows of one snapshot.
type RecordLoader interface {
	Load(ctx context.Context) ([]orders.Record, error)
}

// Chart is the declarative output of one render: the series that were
// built and their layout, ready for a renderer.
type Chart struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Labels      interaction.Labels  `json:"labels"`
	Formats     interaction.Formats `json:"formats"`
	Series      []analytics.Series  `json:"series"`
	Layout      layout.Layout       `json:"layout"`
	Records     int                 `json:"records"`
	Anomalies   int                 `json:"anomalies"`
	CycleID     string              `json:"cycle_id"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// Service runs render cycles: load the snapshot, derive, aggregate, lay out.
type Service struct {
	loader     RecordLoader
	deriver    *orders.Deriver
	registry   *Registry
	aggregator *analytics.Aggregator
}

func NewService(loader RecordLoader, deriver *orders.Deriver, registry *Registry) *Service {
	return &Service{
		loader:     loader,
		deriver:    deriver,
		registry:   registry,
		aggregator: analytics.NewAggregator(),
	}
}

// Registry returns the chart catalogue.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Render runs one cycle for a single chart.
func (s *Service) Render(ctx context.Context, id string) (*Chart, error) {
	out, err := s.RenderMany(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// RenderMany loads the snapshot once and builds every requested chart from
// it. Charts come back in the order of ids.
func (s *Service) RenderMany(ctx context.Context, ids []string) ([]*Chart, error) {
	modules := make([]Module, len(ids))
	for i, id := range ids {
		m, err := s.registry.Get(id)
		if err != nil {
			return nil, &RenderError{Chart: id, Err: err}
		}
		modules[i] = m
	}

	cycleID := uuid.NewString()
	start := time.Now()

	raw, err := s.loader.Load(ctx)
	if err != nil {
		log.Error().Err(err).Str("cycle_id", cycleID).Strs("charts", ids).Msg("render cycle aborted")
		return nil, &RenderError{Chart: strings.Join(ids, ","), Err: err}
	}
	derived, anomalies := s.deriver.DeriveAll(raw)

	out := make([]*Chart, len(modules))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range modules {
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &RenderError{Chart: m.ID, Err: err}
			}
			c := s.Build(m, derived)
			c.Anomalies = anomalies
			c.CycleID = cycleID
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().
		Str("cycle_id", cycleID).
		Strs("charts", ids).
		Int("records", len(derived)).
		Int("anomalies", anomalies).
		Dur("took", time.Since(start)).
		Msg("render cycle complete")
	return out, nil
}

// Build runs the pure part of a cycle on already derived records.
func (s *Service) Build(m Module, records []orders.Derived) *Chart {
	series := m.build(s.aggregator, records)
	return &Chart{
		ID:          m.ID,
		Title:       m.Title,
		Labels:      m.Labels,
		Formats:     m.Layout.Formats,
		Series:      series,
		Layout:      layout.NewEngine(m.Layout).Layout(m.Title, series),
		Records:     len(records),
		GeneratedAt: time.Now().UTC(),
	}
}
