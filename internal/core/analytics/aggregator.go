package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/orders"
)

// Reducer collapses a group of records into a single number. Reducers must
// return 0 for an empty group.
type Reducer interface {
	Reduce(group []orders.Derived) float64
}

type sumReducer struct{ measure Measure }

// Sum adds up a numeric field. Money is accumulated as decimals so large
// sheets do not drift.
func Sum(m Measure) Reducer { return sumReducer{measure: m} }

func (s sumReducer) Reduce(group []orders.Derived) float64 {
	total := decimal.Zero
	for _, r := range group {
		total = total.Add(decimal.NewFromFloat(s.measure(r)))
	}
	return total.InexactFloat64()
}

type distinctReducer struct{ field Selector }

// DistinctCount counts the distinct values of a field, e.g. order ids
// shared by several line items.
func DistinctCount(s Selector) Reducer { return distinctReducer{field: s} }

func (d distinctReducer) Reduce(group []orders.Derived) float64 {
	return float64(distinct(group, d.field))
}

type dailyAverageReducer struct {
	amount Measure
	day    Selector
}

// AveragePerDistinctDay divides the summed amount by the number of distinct
// calendar days present in the group. Days without activity are absent from
// the data and do not lower the average.
func AveragePerDistinctDay(amount Measure, day Selector) Reducer {
	return dailyAverageReducer{amount: amount, day: day}
}

func (a dailyAverageReducer) Reduce(group []orders.Derived) float64 {
	days := distinct(group, a.day)
	if days == 0 {
		return 0
	}
	return Sum(a.amount).Reduce(group) / float64(days)
}

func distinct(group []orders.Derived, s Selector) int {
	seen := make(map[string]struct{}, len(group))
	for _, r := range group {
		seen[s(r)] = struct{}{}
	}
	return len(seen)
}

// Aggregator runs rollups over derived records. It is stateless.
type Aggregator struct{}

// NewAggregator creates a new aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate groups records by the query's keys and reduces each group.
// Pipeline: exclude -> group -> reduce -> (share).
func (a *Aggregator) Aggregate(records []orders.Derived, q AggregateQuery) *Rollup {
	records = Filter(records, ExcludeSentinel(q.Exclude...))

	keys, groups := groupBy(records, q.Primary)
	out := &Rollup{
		Keys:   keys,
		Values: make(map[string]float64, len(keys)),
	}

	var total float64
	if q.Share {
		total = q.Reduce.Reduce(records)
	}

	for _, key := range keys {
		group := groups[key]
		value := q.Reduce.Reduce(group)
		if q.Share {
			out.Values[key] = percent(value, total)
		} else {
			out.Values[key] = value
		}

		if q.Secondary == nil {
			continue
		}
		if out.Children == nil {
			out.Children = make(map[string]*Rollup, len(keys))
		}
		subKeys, subGroups := groupBy(group, q.Secondary)
		child := &Rollup{Keys: subKeys, Values: make(map[string]float64, len(subKeys))}
		for _, sk := range subKeys {
			sv := q.Reduce.Reduce(subGroups[sk])
			if q.Share {
				// Two-level shares are normalised by the parent group.
				child.Values[sk] = percent(sv, value)
			} else {
				child.Values[sk] = sv
			}
		}
		out.Children[key] = child
	}

	return out
}

func groupBy(records []orders.Derived, by Selector) ([]string, map[string][]orders.Derived) {
	groups := make(map[string][]orders.Derived)
	keys := make([]string, 0)
	for _, r := range records {
		key := by(r)
		if _, exists := groups[key]; !exists {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], r)
	}
	return keys, groups
}

func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * part / whole
}

// Filter returns the records for which keep is true, in order.
func Filter(records []orders.Derived, keep func(orders.Derived) bool) []orders.Derived {
	out := make([]orders.Derived, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ExcludeSentinel builds a predicate rejecting records whose key under any
// of the selectors is the Sentinel bucket.
func ExcludeSentinel(selectors ...Selector) func(orders.Derived) bool {
	return func(r orders.Derived) bool {
		for _, s := range selectors {
			if s(r) == orders.Sentinel {
				return false
			}
		}
		return true
	}
}
