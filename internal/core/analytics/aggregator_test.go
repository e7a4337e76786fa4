package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/orders"
)

var testFields = orders.FieldMap{
	OrderID:   "order",
	Amount:    "amount",
	Timestamp: "date",
	GroupCode: "group_code",
	GroupName: "group_name",
	ItemCode:  "item_code",
	ItemName:  "item_name",
}

func derive(t *testing.T, records ...orders.Record) []orders.Derived {
	t.Helper()
	out, _ := orders.NewDeriver(testFields, time.UTC).DeriveAll(records)
	return out
}

func line(order any, amount float64, date, group, item string) orders.Record {
	return orders.Record{
		"order": order, "amount": amount, "date": date,
		"group_code": group, "group_name": group,
		"item_code": item, "item_name": item,
	}
}

func TestAggregateSumAndDistinctCountByMonth(t *testing.T) {
	records := derive(t,
		orders.Record{"order": 1, "amount": 100, "date": "2024-01-05"},
		orders.Record{"order": 1, "amount": 50, "date": "2024-01-05"},
		orders.Record{"order": 2, "amount": 200, "date": "2024-01-06"},
	)
	agg := NewAggregator()

	revenue := agg.Aggregate(records, AggregateQuery{Primary: ByMonthBucket, Reduce: Sum(AmountMeasure)})
	require.Equal(t, []string{"T01"}, revenue.Keys)
	assert.Equal(t, 350.0, revenue.Value("T01"))

	orderCount := agg.Aggregate(records, AggregateQuery{Primary: ByMonthBucket, Reduce: DistinctCount(ByOrder)})
	assert.Equal(t, 2.0, orderCount.Value("T01"))
}

func TestDistinctCountIgnoresLineItemMultiplicity(t *testing.T) {
	var records []orders.Record
	for i := 0; i < 7; i++ {
		records = append(records, line("A", 1, "2024-02-01", "G", "I"))
	}
	records = append(records, line("B", 1, "2024-02-01", "G", "I"))

	r := NewAggregator().Aggregate(derive(t, records...), AggregateQuery{Primary: ByCategory, Reduce: DistinctCount(ByOrder)})

	assert.Equal(t, 2.0, r.Value("[G] G"))
}

func TestAveragePerDistinctDay(t *testing.T) {
	// 2024-01-08 is a Monday.
	records := derive(t,
		line("A", 100, "2024-01-08 09:00:00", "G", "I"),
		line("B", 200, "2024-01-08 17:30:00", "G", "I"),
	)

	r := NewAggregator().Aggregate(records, AggregateQuery{
		Primary: ByWeekday,
		Reduce:  AveragePerDistinctDay(AmountMeasure, ByDay),
		Exclude: []Selector{ByWeekday},
	})

	assert.Equal(t, 300.0, r.Value("Monday"))
}

func TestAveragePerDistinctDayHasNoPhantomDays(t *testing.T) {
	base := []orders.Record{
		line("A", 100, "2024-01-08", "G", "I"),
		line("B", 300, "2024-01-15", "G", "I"),
	}
	q := AggregateQuery{Primary: ByWeekday, Reduce: AveragePerDistinctDay(AmountMeasure, ByDay)}
	agg := NewAggregator()

	before := agg.Aggregate(derive(t, base...), q)
	require.Equal(t, 200.0, before.Value("Monday"))

	// Duplicating the rows of an existing day adds amount but not days.
	dup := append(append([]orders.Record{}, base...), line("A", 100, "2024-01-08", "G", "I"))
	after := agg.Aggregate(derive(t, dup...), q)
	assert.Equal(t, 250.0, after.Value("Monday"))
}

func TestShareOfTotalSumsToHundred(t *testing.T) {
	records := derive(t,
		line("1", 10, "2024-01-01", "A", "x"),
		line("2", 10, "2024-01-02", "B", "y"),
		line("3", 10, "2024-01-03", "B", "y"),
		line("4", 10, "2024-01-04", "C", "z"),
		line("5", 10, "2024-01-05", "C", "z"),
		line("6", 10, "2024-01-06", "C", "z"),
	)

	r := NewAggregator().Aggregate(records, AggregateQuery{Primary: ByCategory, Reduce: DistinctCount(ByOrder), Share: true})

	total := 0.0
	for _, k := range r.Keys {
		total += r.Value(k)
	}
	assert.InDelta(t, 100, total, 1e-6)
	assert.InDelta(t, 50, r.Value("[C] C"), 1e-9)
}

func TestTwoLevelShareUsesParentGroupTotal(t *testing.T) {
	records := derive(t,
		line("1", 1, "2024-01-01", "BOT", "b1"),
		line("1", 1, "2024-01-01", "BOT", "b2"),
		line("2", 1, "2024-01-01", "BOT", "b1"),
		line("3", 1, "2024-01-01", "SET", "s1"),
		line("4", 1, "2024-01-01", "SET", "s1"),
		line("5", 1, "2024-01-01", "SET", "s2"),
		line("6", 1, "2024-01-01", "SET", "s2"),
	)

	r := NewAggregator().Aggregate(records, AggregateQuery{
		Primary:   ByCategory,
		Secondary: BySubcategory,
		Reduce:    DistinctCount(ByOrder),
		Share:     true,
	})

	// BOT holds orders {1,2}: b1 appears in both, b2 in one.
	bot := r.Child("[BOT] BOT")
	require.NotNil(t, bot)
	assert.InDelta(t, 100, bot.Value("[b1] b1"), 1e-9)
	assert.InDelta(t, 50, bot.Value("[b2] b2"), 1e-9)

	set := r.Child("[SET] SET")
	assert.InDelta(t, 50, set.Value("[s1] s1"), 1e-9)

	// Primary values stay shares of the grand total (6 orders).
	assert.InDelta(t, 100.0*2/6, r.Value("[BOT] BOT"), 1e-9)
}

func TestAggregateExcludesSentinelBeforeGrouping(t *testing.T) {
	records := derive(t,
		line("1", 100, "2024-03-01", "A", "x"),
		line("2", 999, "garbage", "A", "x"),
	)

	r := NewAggregator().Aggregate(records, AggregateQuery{
		Primary: ByMonthBucket,
		Reduce:  Sum(AmountMeasure),
		Share:   true,
		Exclude: []Selector{ByMonthBucket},
	})

	assert.Equal(t, []string{"T03"}, r.Keys)
	assert.InDelta(t, 100, r.Value("T03"), 1e-9)
	_, present := r.Values[orders.Sentinel]
	assert.False(t, present)
}

func TestAggregateEmptyInput(t *testing.T) {
	r := NewAggregator().Aggregate(nil, AggregateQuery{Primary: ByMonthBucket, Reduce: AveragePerDistinctDay(AmountMeasure, ByDay), Share: true})

	assert.Empty(t, r.Keys)
	assert.Equal(t, 0.0, r.Value("T01"))
	assert.Equal(t, 0.0, AveragePerDistinctDay(AmountMeasure, ByDay).Reduce(nil))
	assert.Equal(t, 0.0, Sum(AmountMeasure).Reduce(nil))
}

func TestSumKeepsCentsExact(t *testing.T) {
	var records []orders.Record
	for i := 0; i < 10; i++ {
		records = append(records, line("A", 0.1, "2024-01-01", "G", "I"))
	}

	assert.Equal(t, 1.0, Sum(AmountMeasure).Reduce(derive(t, records...)))
}
