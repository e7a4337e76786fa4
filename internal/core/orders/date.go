package orders

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sentinel is the bucket assigned to every time-derived key of a record
// whose timestamp could not be parsed.
const Sentinel = "undefined-bucket"

// MonthTag prefixes the two-digit month bucket ("T01".."T12").
const MonthTag = "T"

// WeekdayNames is indexed by time.Weekday, so the week starts on Sunday.
var WeekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// layouts accepted for textual timestamps, tried in order. Layouts that
// carry an offset keep it; the rest are read in the deriver's location.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// maxExcelSerial is 9999-12-31 in the 1900 date system.
const maxExcelSerial = 2958465

// ParseTimestamp converts a sheet cell into a time in loc. Numbers (and
// numeric strings) are read as Excel serial dates.
func ParseTimestamp(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t.In(loc), true
	case float64:
		return fromSerial(t, loc)
	case float32:
		return fromSerial(float64(t), loc)
	case int:
		return fromSerial(float64(t), loc)
	case int64:
		return fromSerial(float64(t), loc)
	case string:
		return parseText(t, loc)
	default:
		return time.Time{}, false
	}
}

func parseText(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(f, loc)
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

func fromSerial(f float64, loc *time.Location) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f > maxExcelSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return time.Time{}, false
	}
	// Serial dates carry no zone; keep the wall clock.
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), true
}

// MonthBucket returns the tagged two-digit month label, e.g. "T01".
func MonthBucket(t time.Time) string {
	return MonthTag + twoDigits(int(t.Month()))
}

// MonthKey returns the year-qualified month, e.g. "2024-01".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DayKey returns the calendar date, e.g. "2024-01-05".
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekdayLabel maps the timestamp's weekday onto WeekdayNames.
func WeekdayLabel(t time.Time) string {
	return WeekdayNames[t.Weekday()]
}

// DayOfMonthLabel returns the zero-padded day of month, e.g. "05".
func DayOfMonthLabel(t time.Time) string {
	return twoDigits(t.Day())
}

// MonthDisplay turns a MonthKey into its display bucket ("2024-01" -> "T01").
// Unknown shapes are returned unchanged.
func MonthDisplay(key string) string {
	if len(key) == 7 && key[4] == '-' {
		return MonthTag + key[5:]
	}
	return key
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
