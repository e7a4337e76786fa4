package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/charts"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/layout"
)

const maxSheetName = 31

// ExcelExporter writes each chart's series as a table on its own sheet
type ExcelExporter struct{}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export exports the report to Excel format
func (e *ExcelExporter) Export(report *Report, writer io.Writer) error {
	if len(report.Charts) == 0 {
		return fmt.Errorf("no charts to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := e.createHeaderStyle(f, report.Style)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Family: report.Style.FontFamily, Color: stripHashFromColor(report.Style.TitleColor)},
	})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	evenRowStyle, err := e.createRowStyle(f, report.Style, report.Style.RowBgColor2)
	if err != nil {
		return fmt.Errorf("failed to create row style: %w", err)
	}

	used := make(map[string]bool)
	for i, c := range report.Charts {
		sheet := sheetName(c.ID, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to name sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}

		if err := e.writeChart(f, sheet, report, c, headerStyle, titleStyle, evenRowStyle); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

// GetContentType returns the MIME type for Excel files
func (e *ExcelExporter) GetContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// GetFileExtension returns the file extension for Excel files
func (e *ExcelExporter) GetFileExtension() string {
	return ".xlsx"
}

const (
	titleRow  = 1
	metaRow   = 2
	headerRow = 4
)

func (e *ExcelExporter) writeChart(f *excelize.File, sheet string, report *Report, c *charts.Chart, headerStyle, titleStyle, evenRowStyle int) error {
	f.SetCellValue(sheet, cell(1, titleRow), c.Title)
	f.SetCellStyle(sheet, cell(1, titleRow), cell(1, titleRow), titleStyle)
	f.SetCellValue(sheet, cell(1, metaRow), fmt.Sprintf("%s | %d records, %d unparsed dates | generated %s",
		report.Title, c.Records, c.Anomalies, report.CreatedAt.Format("2006-01-02 15:04:05")))

	headers := []string{
		orDefault(c.Labels.Series, "Series"),
		orDefault(c.Labels.Key, "Key"),
		orDefault(c.Labels.Secondary, "Group"),
		orDefault(c.Labels.Value, "Value"),
		"Formatted",
	}
	for col, h := range headers {
		ref := cell(col+1, headerRow)
		f.SetCellValue(sheet, ref, h)
		f.SetCellStyle(sheet, ref, ref, headerStyle)
	}
	f.SetColWidth(sheet, "A", "C", 28)
	f.SetColWidth(sheet, "D", "E", 16)

	row := headerRow + 1
	var blocks []seriesBlock
	for _, s := range c.Series {
		block := seriesBlock{name: s.Name, first: row}
		for _, p := range s.Points {
			values := []any{s.Name, p.Key, p.SecondaryKey, p.Value, c.Formats.Tooltip.Apply(p.Value)}
			for col, v := range values {
				f.SetCellValue(sheet, cell(col+1, row), v)
			}
			if (row-headerRow)%2 == 0 {
				f.SetCellStyle(sheet, cell(1, row), cell(len(values), row), evenRowStyle)
			}
			row++
		}
		block.last = row - 1
		if block.last >= block.first {
			blocks = append(blocks, block)
		}
	}
	lastRow := row - 1

	if report.Style.FreezeHeader {
		f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: cell(1, headerRow+1),
			ActivePane:  "bottomLeft",
		})
	}
	if report.Style.AutoFilter && lastRow > headerRow {
		f.AutoFilter(sheet, fmt.Sprintf("%s:%s", cell(1, headerRow), cell(len(headers), lastRow)), nil)
	}

	// Grids get one block per panel with different categories; only
	// single-panel charts map onto one native chart.
	if report.Style.NativeCharts && len(c.Layout.Regions) == 1 && len(blocks) > 0 {
		return e.addNativeChart(f, sheet, c, blocks)
	}
	return nil
}

type seriesBlock struct {
	name        string
	first, last int
}

func (e *ExcelExporter) addNativeChart(f *excelize.File, sheet string, c *charts.Chart, blocks []seriesBlock) error {
	chartType := excelize.Col
	switch {
	case len(c.Layout.Regions[0].Lines) > 0:
		chartType = excelize.Line
	case c.Layout.Regions[0].Orientation == layout.Horizontal:
		chartType = excelize.Bar
	}

	quoted := "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	series := make([]excelize.ChartSeries, 0, len(blocks))
	for _, b := range blocks {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$A$%d", quoted, b.first),
			Categories: fmt.Sprintf("%s!$B$%d:$B$%d", quoted, b.first, b.last),
			Values:     fmt.Sprintf("%s!$D$%d:$D$%d", quoted, b.first, b.last),
		})
	}

	err := f.AddChart(sheet, "G4", &excelize.Chart{
		Type:      chartType,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: c.Title}},
		Dimension: excelize.ChartDimension{Width: 960, Height: 480},
		Legend:    excelize.ChartLegend{Position: "right"},
	})
	if err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}
	return nil
}

// createHeaderStyle creates the header style
func (e *ExcelExporter) createHeaderStyle(f *excelize.File, style ExportStyle) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   style.FontSize,
			Family: style.FontFamily,
			Color:  "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{stripHashFromColor(style.HeaderBgColor)},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
}

// createRowStyle creates a row style with background color
func (e *ExcelExporter) createRowStyle(f *excelize.File, style ExportStyle, bgColor string) (int, error) {
	rowStyle := &excelize.Style{
		Font: &excelize.Font{
			Size:   style.FontSize,
			Family: style.FontFamily,
		},
	}
	if bgColor != "" && !strings.EqualFold(bgColor, "#FFFFFF") {
		rowStyle.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{stripHashFromColor(bgColor)},
		}
	}
	return f.NewStyle(rowStyle)
}

// sheetName derives a unique, valid sheet name from a chart id.
func sheetName(id string, used map[string]bool) string {
	name := strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")").Replace(id)
	if name == "" {
		name = "chart"
	}
	runes := []rune(name)
	if len(runes) > maxSheetName {
		runes = runes[:maxSheetName]
	}
	base := string(runes)
	name = base
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf("~%d", n)
		r := []rune(base)
		if len(r)+len(suffix) > maxSheetName {
			r = r[:maxSheetName-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[name] = true
	return name
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
