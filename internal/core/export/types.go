package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/charts"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatPDF   ExportFormat = "pdf"
	FormatExcel ExportFormat = "excel"
)

// ParseFormat accepts "pdf", "excel" and "xlsx".
func ParseFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// Exporter is the interface for all export formats
type Exporter interface {
	Export(report *Report, writer io.Writer) error
	GetContentType() string
	GetFileExtension() string
}

// Report is a set of rendered charts exported as one document: one PDF
// page or one workbook sheet per chart.
type Report struct {
	Title       string
	Description string
	CreatedAt   time.Time
	Charts      []*charts.Chart

	// LinkBase is the public base URL of the dashboard API. When set, each
	// PDF page carries a QR code linking to the chart's JSON.
	LinkBase string

	Style ExportStyle
}

// ExportStyle defines styling options for exports
type ExportStyle struct {
	// PDF specific
	Orientation string // "portrait" or "landscape"
	PageSize    string // "A4", "Letter", etc.

	// Common styling
	HeaderBgColor string // Hex color
	RowBgColor1   string // Hex color for odd rows
	RowBgColor2   string // Hex color for even rows
	TitleColor    string
	Palette       []string // Ordinal colors for bars and lines

	// Font settings
	FontFamily string
	FontSize   float64

	// Excel specific
	FreezeHeader bool
	AutoFilter   bool
	NativeCharts bool // add an Excel chart next to single-panel data
}

// DefaultStyle returns default export styling
func DefaultStyle() ExportStyle {
	return ExportStyle{
		Orientation:   "landscape",
		PageSize:      "A4",
		HeaderBgColor: "#4472C4",
		RowBgColor1:   "#FFFFFF",
		RowBgColor2:   "#F2F2F2",
		TitleColor:    "#246BA0",
		Palette: []string{
			"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD",
			"#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF",
		},
		FontFamily:   "Arial",
		FontSize:     10,
		FreezeHeader: true,
		AutoFilter:   true,
		NativeCharts: true,
	}
}

// NewReport builds a report with default styling.
func NewReport(title string, rendered []*charts.Chart, linkBase string) *Report {
	return &Report{
		Title:     title,
		CreatedAt: time.Now(),
		Charts:    rendered,
		LinkBase:  strings.TrimRight(linkBase, "/"),
		Style:     DefaultStyle(),
	}
}

// palette hands out colors by first-seen key, cycling through the style
// palette.
type palette struct {
	colors []string
	index  map[string]int
}

func newPalette(colors []string) *palette {
	if len(colors) == 0 {
		colors = DefaultStyle().Palette
	}
	return &palette{colors: colors, index: make(map[string]int)}
}

func (p *palette) color(key string) string {
	i, ok := p.index[key]
	if !ok {
		i = len(p.index)
		p.index[key] = i
	}
	return p.colors[i%len(p.colors)]
}

// hexToRGB converts hex color to RGB values
func hexToRGB(hex string) (int, int, int) {
	hex = stripHashFromColor(hex)

	// Default to white if invalid
	if len(hex) != 6 {
		return 255, 255, 255
	}

	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}

// stripHashFromColor removes # from hex color codes
func stripHashFromColor(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}
