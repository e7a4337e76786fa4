package analytics

import "github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/orders"

// BuildSeries converts a single-level rollup into one ordered series.
// Point keys are the rollup keys; the series value is the point total.
func BuildSeries(name string, r *Rollup, policy SortPolicy) Series {
	s := Series{Name: name, Points: make([]AggregatePoint, 0, len(r.Keys))}
	for _, key := range r.Keys {
		if key == orders.Sentinel {
			continue
		}
		v := r.Values[key]
		s.Points = append(s.Points, AggregatePoint{Key: key, Value: v})
		s.Value += v
	}
	policy.SortPoints(s.Points)
	return s
}

// BuildPanels converts a two-level rollup into one series per primary key,
// e.g. one small-multiples panel per category. Each panel's points are keyed
// by the secondary key and carry the primary key as SecondaryKey; panels are
// ranked by their primary value. Keys in always get a panel even when the
// data has no records for them.
func BuildPanels(r *Rollup, panelPolicy, pointPolicy SortPolicy, always []string) []Series {
	panels := make([]Series, 0, len(r.Keys)+len(always))
	seen := make(map[string]bool, len(r.Keys))

	for _, key := range r.Keys {
		if key == orders.Sentinel {
			continue
		}
		seen[key] = true
		panel := Series{Name: key, Value: r.Values[key], Points: []AggregatePoint{}}
		if child := r.Child(key); child != nil {
			for _, sk := range child.Keys {
				if sk == orders.Sentinel {
					continue
				}
				panel.Points = append(panel.Points, AggregatePoint{
					Key:          sk,
					SecondaryKey: key,
					Value:        child.Values[sk],
				})
			}
		}
		pointPolicy.SortPoints(panel.Points)
		panels = append(panels, panel)
	}

	for _, key := range always {
		if seen[key] || key == orders.Sentinel {
			continue
		}
		seen[key] = true
		panels = append(panels, Series{Name: key, Points: []AggregatePoint{}})
	}

	panelPolicy.SortSeries(panels)
	return panels
}

// BuildLines pivots a two-level rollup into one series per secondary key,
// e.g. one line per category across months. Every line gets a point for
// every primary key (0 where the combination is absent), ordered by
// xPolicy. Lines are ranked by the sum of their points under linePolicy.
func BuildLines(r *Rollup, xPolicy, linePolicy SortPolicy) []Series {
	xKeys := make([]string, 0, len(r.Keys))
	for _, key := range r.Keys {
		if key != orders.Sentinel {
			xKeys = append(xKeys, key)
		}
	}
	xKeys = xPolicy.Order(xKeys, r.Value)

	var names []string
	seen := make(map[string]bool)
	for _, key := range r.Keys {
		child := r.Child(key)
		if child == nil || key == orders.Sentinel {
			continue
		}
		for _, sk := range child.Keys {
			if !seen[sk] && sk != orders.Sentinel {
				seen[sk] = true
				names = append(names, sk)
			}
		}
	}

	lines := make([]Series, 0, len(names))
	for _, name := range names {
		line := Series{Name: name, Points: make([]AggregatePoint, 0, len(xKeys))}
		for _, x := range xKeys {
			v := r.Child(x).Value(name)
			line.Points = append(line.Points, AggregatePoint{Key: x, SecondaryKey: name, Value: v})
			line.Value += v
		}
		lines = append(lines, line)
	}

	linePolicy.SortSeries(lines)
	return lines
}

// Relabel returns copies of series with every point key passed through
// label. Series and point order are kept.
func Relabel(series []Series, label func(string) string) []Series {
	out := make([]Series, len(series))
	for i, s := range series {
		points := make([]AggregatePoint, len(s.Points))
		for j, p := range s.Points {
			p.Key = label(p.Key)
			points[j] = p
		}
		out[i] = Series{Name: s.Name, Value: s.Value, Points: points}
	}
	return out
}
