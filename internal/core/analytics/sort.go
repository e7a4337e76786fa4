package analytics

import (
	"sort"
	"strconv"
)

type entry struct {
	key   string
	value float64
}

// SortPolicy is a total order over (key, value) pairs. Every policy falls
// back to ascending key order, so re-sorting the same input always yields
// the same sequence.
type SortPolicy struct {
	Name string
	less func(a, b entry) bool
}

// Chronological orders zero-padded bucket labels lexically ("T01" < "T02",
// "2023-12" < "2024-01").
func Chronological() SortPolicy {
	return SortPolicy{Name: "chronological", less: func(a, b entry) bool {
		return a.key < b.key
	}}
}

// FixedOrder ranks keys by their index in rank. Keys outside the list come
// after all ranked keys.
func FixedOrder(rank []string) SortPolicy {
	index := rankIndex(rank)
	return SortPolicy{Name: "fixed-calendar-order", less: func(a, b entry) bool {
		ia, oka := index[a.key]
		ib, okb := index[b.key]
		switch {
		case oka && okb:
			return ia < ib
		case oka != okb:
			return oka
		default:
			return a.key < b.key
		}
	}}
}

// NumericAscending orders keys by their integer value ("02" < "10").
// Non-numeric keys come last.
func NumericAscending() SortPolicy {
	return SortPolicy{Name: "numeric-ascending", less: func(a, b entry) bool {
		na, erra := strconv.Atoi(a.key)
		nb, errb := strconv.Atoi(b.key)
		switch {
		case erra == nil && errb == nil:
			if na != nb {
				return na < nb
			}
			return a.key < b.key
		case (erra == nil) != (errb == nil):
			return erra == nil
		default:
			return a.key < b.key
		}
	}}
}

// ValueDescending ranks the largest metric first.
func ValueDescending() SortPolicy {
	return SortPolicy{Name: "value-descending", less: byValueDesc}
}

// PriorityThenDescending places the keys of priority first, in that order,
// followed by every other key by descending value.
func PriorityThenDescending(priority []string) SortPolicy {
	index := rankIndex(priority)
	return SortPolicy{Name: "explicit-priority-then-descending", less: func(a, b entry) bool {
		ia, oka := index[a.key]
		ib, okb := index[b.key]
		switch {
		case oka && okb:
			return ia < ib
		case oka != okb:
			return oka
		default:
			return byValueDesc(a, b)
		}
	}}
}

func byValueDesc(a, b entry) bool {
	if a.value != b.value {
		return a.value > b.value
	}
	return a.key < b.key
}

func rankIndex(rank []string) map[string]int {
	index := make(map[string]int, len(rank))
	for i, k := range rank {
		if _, dup := index[k]; !dup {
			index[k] = i
		}
	}
	return index
}

// SortPoints orders points in place by key and value.
func (p SortPolicy) SortPoints(points []AggregatePoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return p.less(entry{points[i].Key, points[i].Value}, entry{points[j].Key, points[j].Value})
	})
}

// SortSeries orders series in place by name and series value.
func (p SortPolicy) SortSeries(series []Series) {
	sort.SliceStable(series, func(i, j int) bool {
		return p.less(entry{series[i].Name, series[i].Value}, entry{series[j].Name, series[j].Value})
	})
}

// Order returns keys sorted under the policy, looking values up with value.
func (p SortPolicy) Order(keys []string, value func(string) float64) []string {
	entries := make([]entry, len(keys))
	for i, k := range keys {
		entries[i] = entry{key: k, value: value(k)}
	}
	sort.SliceStable(entries, func(i, j int) bool { return p.less(entries[i], entries[j]) })
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.key
	}
	return out
}
