package orders

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Derived is an order line augmented with its classification keys. Source
// holds a private copy of the input record.
type Derived struct {
	Source Record `json:"-"`

	OrderID string  `json:"order_id"`
	Amount  float64 `json:"amount"`

	MonthBucket     string `json:"month_bucket"`
	MonthKey        string `json:"month_key"`
	WeekdayLabel    string `json:"weekday_label"`
	DayOfMonthLabel string `json:"day_of_month_label"`
	DayKey          string `json:"day_key"`

	CategoryLabel    string `json:"category_label"`
	SubcategoryLabel string `json:"subcategory_label"`

	// Anomaly is set when the timestamp did not parse and every
	// time-derived key holds Sentinel.
	Anomaly bool `json:"anomaly"`
}

// Deriver computes classification keys record by record. It holds no
// mutable state and is safe for concurrent use.
type Deriver struct {
	fields FieldMap
	loc    *time.Location
}

// NewDeriver creates a deriver reading the given columns. Naive timestamps
// are interpreted in loc (UTC when nil).
func NewDeriver(fields FieldMap, loc *time.Location) *Deriver {
	if loc == nil {
		loc = time.UTC
	}
	return &Deriver{fields: fields, loc: loc}
}

// Fields returns the column mapping used by the deriver.
func (d *Deriver) Fields() FieldMap {
	return d.fields
}

// Derive never fails: an unparseable timestamp routes the record to the
// Sentinel bucket instead of dropping it.
func (d *Deriver) Derive(r Record) Derived {
	out := Derived{
		Source:           r.Clone(),
		OrderID:          r.String(d.fields.OrderID),
		Amount:           Amount(r[d.fields.Amount]),
		CategoryLabel:    CompositeLabel(r.String(d.fields.GroupCode), r.String(d.fields.GroupName)),
		SubcategoryLabel: CompositeLabel(r.String(d.fields.ItemCode), r.String(d.fields.ItemName)),
	}

	t, ok := ParseTimestamp(r[d.fields.Timestamp], d.loc)
	if !ok {
		out.Anomaly = true
		out.MonthBucket = Sentinel
		out.MonthKey = Sentinel
		out.WeekdayLabel = Sentinel
		out.DayOfMonthLabel = Sentinel
		out.DayKey = Sentinel
		return out
	}

	out.MonthBucket = MonthBucket(t)
	out.MonthKey = MonthKey(t)
	out.WeekdayLabel = WeekdayLabel(t)
	out.DayOfMonthLabel = DayOfMonthLabel(t)
	out.DayKey = DayKey(t)
	return out
}

// DeriveAll derives every record, preserving order and count, and reports
// how many records fell into the Sentinel bucket.
func (d *Deriver) DeriveAll(records []Record) ([]Derived, int) {
	out := make([]Derived, len(records))
	anomalies := 0
	for i, r := range records {
		out[i] = d.Derive(r)
		if out[i].Anomaly {
			anomalies++
		}
	}
	return out, anomalies
}

// CompositeLabel builds the "[code] name" label. The result is opaque and
// must not be split again.
func CompositeLabel(code, name string) string {
	return fmt.Sprintf("[%s] %s", code, name)
}

// Amount coerces a monetary cell to a non-negative number; absent or
// non-numeric values become 0.
func Amount(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = p
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
