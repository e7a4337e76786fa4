package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/charts"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/orders"
)

type memLoader []orders.Record

func (m memLoader) Load(ctx context.Context) ([]orders.Record, error) { return m, nil }

func renderAll(t *testing.T) []*charts.Chart {
	t.Helper()
	f := orders.DefaultFields()
	row := func(order string, amount float64, at, group, item string) orders.Record {
		return orders.Record{
			f.OrderID: order, f.Amount: amount, f.Timestamp: at,
			f.GroupCode: group, f.GroupName: group, f.ItemCode: item, f.ItemName: item,
		}
	}
	loader := memLoader{
		row("1", 150000, "2024-01-05 10:00:00", "BOT", "BOT01"),
		row("2", 250000, "2024-02-11 15:30:00", "SET", "SET02"),
		row("3", 99000, "2024-02-12 09:00:00", "THO", "THO03"),
		row("3", 45000, "2024-02-12 09:00:00", "BOT", "BOT01"),
	}
	reg := charts.DefaultRegistry(charts.Options{CurrencyUnit: "triệu VND", PriorityGroups: []string{"[BOT] BOT"}})
	svc := charts.NewService(loader, orders.NewDeriver(f, time.UTC), reg)

	out, err := svc.RenderMany(context.Background(), reg.IDs())
	require.NoError(t, err)
	return out
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{"": FormatPDF, "PDF": FormatPDF, "excel": FormatExcel, "xlsx": FormatExcel} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestExportPDF(t *testing.T) {
	report := NewReport("Sales dashboard", renderAll(t), "http://localhost:8080/")

	data, contentType, err := NewService().Export(report, FormatPDF)

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, "http://localhost:8080", report.LinkBase)
}

func TestExportExcelSheetPerChart(t *testing.T) {
	rendered := renderAll(t)

	data, _, err := NewService().Export(NewReport("Sales dashboard", rendered, ""), FormatExcel)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		charts.RevenueByMonth,
		charts.AvgRevenueByWeekday,
		charts.AvgRevenueByDayOfMonth,
		charts.OrderShareByCategory,
		charts.MonthlyOrderShareByCategory,
		charts.ItemShareByGroup,
	}, f.GetSheetList())

	title, err := f.GetCellValue(charts.RevenueByMonth, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Revenue by month", title)

	header, err := f.GetCellValue(charts.RevenueByMonth, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Month", header)

	key, _ := f.GetCellValue(charts.RevenueByMonth, "B5")
	assert.Equal(t, "T01", key)
	value, _ := f.GetCellValue(charts.RevenueByMonth, "D5", excelize.Options{RawCellValue: true})
	assert.Equal(t, "150000", value)
}

func TestExportRejectsEmptyReport(t *testing.T) {
	_, _, err := NewService().Export(NewReport("empty", nil, ""), FormatExcel)
	assert.Error(t, err)

	_, _, err = NewService().Export(NewReport("empty", nil, ""), FormatPDF)
	assert.Error(t, err)
}

func TestSheetNameIsUniqueAndShort(t *testing.T) {
	used := map[string]bool{}

	a := sheetName("a-very-long-chart-identifier-over-thirty-one", used)
	b := sheetName("a-very-long-chart-identifier-over-thirty-one", used)

	assert.Len(t, []rune(a), maxSheetName)
	assert.NotEqual(t, a, b)
	assert.LessOrEqual(t, len([]rune(b)), maxSheetName)
	assert.Equal(t, "x(1)", sheetName("x[1]", used))
}

func TestPaletteIsStablePerKey(t *testing.T) {
	p := newPalette([]string{"#000001", "#000002"})

	assert.Equal(t, "#000001", p.color("a"))
	assert.Equal(t, "#000002", p.color("b"))
	assert.Equal(t, "#000001", p.color("c"))
	assert.Equal(t, "#000002", p.color("b"))
}
