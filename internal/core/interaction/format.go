package interaction

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatKind selects a display rule for a numeric value.
type FormatKind string

const (
	// Integer rounds and groups thousands: 1234567.4 -> "1,234,567".
	Integer FormatKind = "integer"
	// Percent prints a share with Decimals places: 12.345 -> "12.3%".
	Percent FormatKind = "percent"
	// Millions abbreviates money: 350000000 -> "350 triệu VND".
	Millions FormatKind = "millions"
	// AxisMillions is the compact axis form: 350000000 -> "350M".
	AxisMillions FormatKind = "axis-millions"
	// AxisPercent is the compact axis form: 12 -> "12%".
	AxisPercent FormatKind = "axis-percent"
)

// Format is a display rule. Decimals applies to Percent and Millions.
type Format struct {
	Kind     FormatKind `json:"kind"`
	Decimals int        `json:"decimals"`
	Unit     string     `json:"unit,omitempty"`
}

// Formats groups the display rules of one chart kind.
type Formats struct {
	Tooltip Format `json:"tooltip"`
	Label   Format `json:"label"`
	Axis    Format `json:"axis"`
}

// Apply renders v under the rule.
func (f Format) Apply(v float64) string {
	switch f.Kind {
	case Percent:
		return grouped(v, f.Decimals) + "%"
	case Millions:
		s := grouped(v/1e6, f.Decimals)
		if f.Unit != "" {
			s += " " + f.Unit
		}
		return s
	case AxisMillions:
		return grouped(v/1e6, 0) + "M"
	case AxisPercent:
		return strconv.FormatFloat(roundTo(v, 0), 'f', 0, 64) + "%"
	default:
		return grouped(v, 0)
	}
}

// grouped formats v with a thousands separator and fixed decimals.
func grouped(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	v = roundTo(v, decimals)
	if v == 0 {
		v = 0 // drop negative zero
	}
	whole, frac := math.Modf(math.Abs(v))
	s := humanize.Comma(int64(whole))
	if v < 0 {
		s = "-" + s
	}
	if decimals == 0 {
		return s
	}
	digits := strconv.FormatFloat(frac, 'f', decimals, 64)
	// frac rounds below 1 because v was rounded first; strip "0."
	return s + "." + strings.TrimPrefix(digits, "0.")
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
