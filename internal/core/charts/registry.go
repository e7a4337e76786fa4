package charts

import (
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/interaction"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/layout"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/orders"
)

// Chart ids.
const (
	RevenueByMonth              = "revenue-by-month"
	AvgRevenueByWeekday         = "avg-revenue-by-weekday"
	AvgRevenueByDayOfMonth      = "avg-revenue-by-day-of-month"
	OrderShareByCategory        = "order-share-by-category"
	MonthlyOrderShareByCategory = "monthly-order-share-by-category"
	ItemShareByGroup            = "item-share-by-group"
)

// Options carries the runtime settings that chart modules depend on.
type Options struct {
	CurrencyUnit   string
	PriorityGroups []string
}

// Module is one chart kind: how to turn derived records into series and
// how to lay them out.
type Module struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Labels      interaction.Labels `json:"labels"`
	Layout      layout.Config      `json:"-"`

	build func(agg *analytics.Aggregator, records []orders.Derived) []analytics.Series
}

// Registry holds the chart modules in catalogue order.
type Registry struct {
	modules map[string]Module
	order   []string
}

func NewRegistry(modules ...Module) *Registry {
	r := &Registry{modules: make(map[string]Module, len(modules))}
	for _, m := range modules {
		if _, dup := r.modules[m.ID]; !dup {
			r.order = append(r.order, m.ID)
		}
		r.modules[m.ID] = m
	}
	return r
}

// Get returns the module registered under id.
func (r *Registry) Get(id string) (Module, error) {
	m, ok := r.modules[id]
	if !ok {
		return Module{}, fmt.Errorf("%w: %s", ErrTargetSurfaceMissing, id)
	}
	return m, nil
}

// List returns every module in catalogue order.
func (r *Registry) List() []Module {
	out := make([]Module, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.modules[id])
	}
	return out
}

// IDs returns every chart id in catalogue order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// DefaultRegistry builds the six dashboard charts.
func DefaultRegistry(opts Options) *Registry {
	unit := opts.CurrencyUnit
	moneyFormats := interaction.Formats{
		Tooltip: interaction.Format{Kind: interaction.Integer},
		Label:   interaction.Format{Kind: interaction.Millions, Unit: unit},
		Axis:    interaction.Format{Kind: interaction.AxisMillions},
	}
	shareFormats := interaction.Formats{
		Tooltip: interaction.Format{Kind: interaction.Percent, Decimals: 1},
		Label:   interaction.Format{Kind: interaction.Percent, Decimals: 1},
		Axis:    interaction.Format{Kind: interaction.AxisPercent},
	}
	priority := append([]string(nil), opts.PriorityGroups...)

	return NewRegistry(
		Module{
			ID:          RevenueByMonth,
			Title:       "Revenue by month",
			Description: "Total revenue per calendar month",
			Labels:      interaction.Labels{Key: "Month", Value: "Revenue"},
			Layout: layout.Config{
				Width: 1200, Height: 630,
				Margin:      layout.Margin{Top: 80, Right: 50, Bottom: 50, Left: 100},
				Padding:     0.2,
				ValueLabels: true,
				Formats:     moneyFormats,
			},
			build: func(agg *analytics.Aggregator, records []orders.Derived) []analytics.Series {
				r := agg.Aggregate(records, analytics.AggregateQuery{
					Primary: analytics.ByMonthBucket,
					Reduce:  analytics.Sum(analytics.AmountMeasure),
					Exclude: []analytics.Selector{analytics.ByMonthBucket},
				})
				return []analytics.Series{analytics.BuildSeries("Revenue", r, analytics.Chronological())}
			},
		},
		Module{
			ID:          AvgRevenueByWeekday,
			Title:       "Average revenue by weekday",
			Description: "Revenue per weekday divided by the number of distinct dates on that weekday",
			Labels:      interaction.Labels{Key: "Weekday", Value: "Average revenue"},
			Layout: layout.Config{
				Width: 1200, Height: 630,
				Margin:      layout.Margin{Top: 80, Right: 50, Bottom: 50, Left: 150},
				Padding:     0.2,
				ValueLabels: true,
				Formats:     moneyFormats,
			},
			build: func(agg *analytics.Aggregator, records []orders.Derived) []analytics.Series {
				r := agg.Aggregate(records, analytics.AggregateQuery{
					Primary: analytics.ByWeekday,
					Reduce:  analytics.AveragePerDistinctDay(analytics.AmountMeasure, analytics.ByDay),
					Exclude: []analytics.Selector{analytics.ByWeekday},
				})
				return []analytics.Series{analytics.BuildSeries("Average revenue", r, analytics.FixedOrder(orders.WeekdayNames[:]))}
			},
		},
		Module{
			ID:          AvgRevenueByDayOfMonth,
			Title:       "Average revenue by day of month",
			Description: "Revenue per day of month divided by the number of distinct dates on that day",
			Labels:      interaction.Labels{Key: "Day", Value: "Average revenue"},
			Layout: layout.Config{
				Width: 1200, Height: 630,
				Margin:      layout.Margin{Top: 80, Right: 50, Bottom: 50, Left: 150},
				Padding:     0.1,
				ValueLabels: true,
				Formats: interaction.Formats{
					Tooltip: moneyFormats.Tooltip,
					Label:   interaction.Format{Kind: interaction.Millions, Decimals: 1, Unit: "tr"},
					Axis:    moneyFormats.Axis,
				},
			},
			build: func(agg *analytics.Aggregator, records []orders.Derived) []analytics.Series {
				r := agg.Aggregate(records, analytics.AggregateQuery{
					Primary: analytics.ByDayOfMonth,
					Reduce:  analytics.AveragePerDistinctDay(analytics.AmountMeasure, analytics.ByDay),
					Exclude: []analytics.Selector{analytics.ByDayOfMonth},
				})
				return []analytics.Series{analytics.BuildSeries("Average revenue", r, analytics.NumericAscending())}
			},
		},
		Module{
			ID:          OrderShareByCategory,
			Title:       "Order probability by category",
			Description: "Share of distinct orders that contain each category",
			Labels:      interaction.Labels{Key: "Category", Value: "Probability"},
			Layout: layout.Config{
				Width:       1400,
				Margin:      layout.Margin{Top: 80, Right: 50, Bottom: 50, Left: 200},
				Orientation: layout.Horizontal,
				Padding:     0.2,
				BandStep:    30,
				ValueLabels: true,
				Formats:     shareFormats,
			},
			build: func(agg *analytics.Aggregator, records []orders.Derived) []analytics.Series {
				r := agg.Aggregate(records, analytics.AggregateQuery{
					Primary: analytics.ByCategory,
					Reduce:  analytics.DistinctCount(analytics.ByOrder),
					Share:   true,
				})
				return []analytics.Series{analytics.BuildSeries("Probability", r, analytics.ValueDescending())}
			},
		},
		Module{
			ID:          MonthlyOrderShareByCategory,
			Title:       "Order probability of categories by month",
			Description: "Per month, the share of that month's distinct orders containing each category",
			Labels:      interaction.Labels{Key: "Month", Series: "Category", Value: "Probability"},
			Layout: layout.Config{
				Width: 1400, Height: 530,
				Margin:   layout.Margin{Top: 80, Right: 400, Bottom: 50, Left: 50},
				Mark:     layout.LineMark,
				Padding:  0.2,
				FixedMax: 100,
				Formats:  shareFormats,
			},
			build: func(agg *analytics.Aggregator, records []orders.Derived) []analytics.Series {
				r := agg.Aggregate(records, analytics.AggregateQuery{
					Primary:   analytics.ByMonthKey,
					Secondary: analytics.ByCategory,
					Reduce:    analytics.DistinctCount(analytics.ByOrder),
					Share:     true,
					Exclude:   []analytics.Selector{analytics.ByMonthKey},
				})
				lines := analytics.BuildLines(r, analytics.Chronological(), analytics.PriorityThenDescending(priority))
				return analytics.Relabel(lines, monthLabeler(r.Keys))
			},
		},
		Module{
			ID:          ItemShareByGroup,
			Title:       "Item probability within category",
			Description: "Per category, the share of the category's distinct orders containing each item",
			Labels:      interaction.Labels{Key: "Item", Secondary: "Category", Value: "Probability"},
			Layout: layout.Config{
				Margin:      layout.Margin{Top: 80, Right: 50, Bottom: 50, Left: 350},
				Orientation: layout.Horizontal,
				Padding:     0.2,
				EmptyMax:    100,
				Ticks:       5,
				LabelLimit:  20,
				ValueLabels: true,
				Grid: &layout.Grid{
					Cols: 3, Rows: 2,
					PanelWidth:  (1700 - 350 - 50 - 2*250) / 3.0,
					PanelHeight: 200,
					ColGap:      250,
					RowGap:      70,
				},
				Formats: shareFormats,
			},
			build: func(agg *analytics.Aggregator, records []orders.Derived) []analytics.Series {
				r := agg.Aggregate(records, analytics.AggregateQuery{
					Primary:   analytics.ByCategory,
					Secondary: analytics.BySubcategory,
					Reduce:    analytics.DistinctCount(analytics.ByOrder),
					Share:     true,
				})
				return analytics.BuildPanels(r,
					analytics.PriorityThenDescending(priority),
					analytics.ValueDescending(),
					priority,
				)
			},
		},
	)
}

// monthLabeler shows YYYY-MM keys as "T01". When the data spans more than
// one year the year is kept ("T01/2024") so months never collide.
func monthLabeler(keys []string) func(string) string {
	years := make(map[string]bool)
	for _, k := range keys {
		if k == orders.Sentinel {
			continue
		}
		if i := strings.IndexByte(k, '-'); i > 0 {
			years[k[:i]] = true
		}
	}
	if len(years) <= 1 {
		return orders.MonthDisplay
	}
	return func(key string) string {
		i := strings.IndexByte(key, '-')
		if i <= 0 {
			return key
		}
		return orders.MonthDisplay(key) + "/" + key[:i]
	}
}
