package analytics

import "github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/orders"

// Selector extracts a grouping key from a derived record.
type Selector func(r orders.Derived) string

// Measure extracts a numeric field from a derived record.
type Measure func(r orders.Derived) float64

// Common selectors and measures over derived order lines.
var (
	ByMonthBucket Selector = func(r orders.Derived) string { return r.MonthBucket }
	ByMonthKey    Selector = func(r orders.Derived) string { return r.MonthKey }
	ByWeekday     Selector = func(r orders.Derived) string { return r.WeekdayLabel }
	ByDayOfMonth  Selector = func(r orders.Derived) string { return r.DayOfMonthLabel }
	ByDay         Selector = func(r orders.Derived) string { return r.DayKey }
	ByCategory    Selector = func(r orders.Derived) string { return r.CategoryLabel }
	BySubcategory Selector = func(r orders.Derived) string { return r.SubcategoryLabel }
	ByOrder       Selector = func(r orders.Derived) string { return r.OrderID }
	AmountMeasure Measure  = func(r orders.Derived) float64 { return r.Amount }
)

// AggregateQuery describes one rollup: group by Primary (and optionally
// Secondary), reduce each group with Reduce.
type AggregateQuery struct {
	Primary   Selector
	Secondary Selector // nil for a single-level rollup
	Reduce    Reducer

	// Share turns every value into a percentage of its parent: the whole
	// dataset for primary groups, the primary group for secondary groups.
	Share bool

	// Exclude drops records whose selected key is the Sentinel bucket
	// before grouping.
	Exclude []Selector
}

// Rollup is the result of an aggregation. Keys keep first-seen order;
// Children is only populated for two-level queries.
type Rollup struct {
	Keys     []string           `json:"keys"`
	Values   map[string]float64 `json:"values"`
	Children map[string]*Rollup `json:"children,omitempty"`
}

// Value returns the reduced value for key, 0 when the key is absent.
func (r *Rollup) Value(key string) float64 {
	if r == nil {
		return 0
	}
	return r.Values[key]
}

// Child returns the secondary rollup of a primary key, or nil.
func (r *Rollup) Child(key string) *Rollup {
	if r == nil || r.Children == nil {
		return nil
	}
	return r.Children[key]
}

// AggregatePoint is one reduced value, immutable once built.
type AggregatePoint struct {
	Key          string  `json:"key"`
	SecondaryKey string  `json:"secondary_key,omitempty"`
	Value        float64 `json:"value"`
}

// Series is an ordered, named run of points. Value is the metric the
// series itself is ranked by when several series are ordered.
type Series struct {
	Name   string           `json:"name"`
	Value  float64          `json:"value"`
	Points []AggregatePoint `json:"points"`
}

// Keys returns the point keys in order.
func (s Series) Keys() []string {
	keys := make([]string, len(s.Points))
	for i, p := range s.Points {
		keys[i] = p.Key
	}
	return keys
}

// Max returns the largest point value, 0 for an empty series.
func (s Series) Max() float64 {
	m := 0.0
	for _, p := range s.Points {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}
