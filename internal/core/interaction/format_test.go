package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatApply(t *testing.T) {
	cases := []struct {
		f    Format
		in   float64
		want string
	}{
		{Format{Kind: Integer}, 1234567.4, "1,234,567"},
		{Format{Kind: Integer}, 999.5, "1,000"},
		{Format{Kind: Integer}, 0, "0"},
		{Format{Kind: Percent, Decimals: 1}, 12.345, "12.3%"},
		{Format{Kind: Percent, Decimals: 1}, 100, "100.0%"},
		{Format{Kind: Millions, Unit: "triệu VND"}, 350_000_000, "350 triệu VND"},
		{Format{Kind: Millions, Decimals: 1, Unit: "tr"}, 12_340_000, "12.3 tr"},
		{Format{Kind: Millions}, 1_500_000_000_000, "1,500,000"},
		{Format{Kind: AxisMillions}, 250_000_000, "250M"},
		{Format{Kind: AxisPercent}, 12.4, "12%"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.f.Apply(tc.in), "%s(%v)", tc.f.Kind, tc.in)
	}
}

func TestPayloadIsComputedOnce(t *testing.T) {
	p := New("Revenue", "T01", "", 350, Format{Kind: Integer})

	assert.Equal(t, "350", p.FormattedValue)

	labels := Labels{Key: "Month", Value: "Revenue"}
	first := Describe(p, labels)
	second := Describe(p, labels)
	assert.Equal(t, first, second)
	assert.Equal(t, []Field{{Label: "Month", Value: "T01"}, {Label: "Revenue", Value: "350"}}, first)
}

func TestDescribeIncludesSecondaryKey(t *testing.T) {
	p := New("[BOT] Bột", "T02", "[BOT] Bột", 42.25, Format{Kind: Percent, Decimals: 1})

	fields := Describe(p, Labels{Key: "Month", Secondary: "Category", Value: "Probability"})

	assert.Equal(t, []Field{
		{Label: "Month", Value: "T02"},
		{Label: "Category", Value: "[BOT] Bột"},
		{Label: "Probability", Value: "42.3%"},
	}, fields)
}
