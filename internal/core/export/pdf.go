package export

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/charts"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/layout"
)

const (
	pageMargin = 10.0 // mm
	headerH    = 22.0 // mm reserved above the plot for titles and the QR code
	qrSize     = 20.0 // mm
)

// PDFExporter draws chart layouts with gofpdf, one page per chart
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export exports the report to PDF format
func (p *PDFExporter) Export(report *Report, writer io.Writer) error {
	if len(report.Charts) == 0 {
		return fmt.Errorf("no charts to export")
	}

	orientation := "P"
	if report.Style.Orientation == "landscape" {
		orientation = "L"
	}
	pageSize := report.Style.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}
	fontFamily := report.Style.FontFamily
	if fontFamily == "" {
		fontFamily = "Arial"
	}

	pdf := gofpdf.New(orientation, "mm", pageSize, "")
	pdf.SetTitle(report.Title, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, c := range report.Charts {
		pdf.AddPage()
		d := &pageDrawer{
			pdf:    pdf,
			tr:     tr,
			font:   fontFamily,
			style:  report.Style,
			colors: newPalette(report.Style.Palette),
		}
		d.header(report, c)
		if report.LinkBase != "" {
			if err := d.qr(report.LinkBase+"/charts/"+c.ID, c.ID); err != nil {
				return err
			}
		}
		d.chart(c)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build PDF: %w", err)
	}
	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// GetContentType returns the MIME type for PDF files
func (p *PDFExporter) GetContentType() string {
	return "application/pdf"
}

// GetFileExtension returns the file extension for PDF files
func (p *PDFExporter) GetFileExtension() string {
	return ".pdf"
}

type pageDrawer struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	font   string
	style  ExportStyle
	colors *palette

	// canvas pixel -> page mm
	scale  float64
	x0, y0 float64
}

func (d *pageDrawer) header(report *Report, c *charts.Chart) {
	pdf := d.pdf
	r, g, b := hexToRGB(d.style.TitleColor)
	pdf.SetTextColor(r, g, b)
	pdf.SetFont(d.font, "B", 16)
	pdf.SetXY(pageMargin, pageMargin)
	pdf.CellFormat(0, 8, d.tr(c.Title), "", 1, "L", false, 0, "")

	pdf.SetTextColor(90, 90, 90)
	pdf.SetFont(d.font, "I", 8)
	meta := fmt.Sprintf("%s | %d records, %d unparsed dates | generated %s",
		report.Title, c.Records, c.Anomalies, report.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.CellFormat(0, 5, d.tr(meta), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (d *pageDrawer) qr(link, id string) error {
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to encode QR code: %w", err)
	}
	name := "qr-" + id
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))

	pageW, _ := d.pdf.GetPageSize()
	d.pdf.ImageOptions(name, pageW-pageMargin-qrSize, pageMargin-2, qrSize, qrSize, false, opts, 0, link)
	return nil
}

// chart fits the layout canvas into the page below the header.
func (d *pageDrawer) chart(c *charts.Chart) {
	pageW, pageH := d.pdf.GetPageSize()
	availW := pageW - 2*pageMargin
	availH := pageH - 2*pageMargin - headerH

	l := c.Layout
	d.scale = math.Min(availW/math.Max(l.Width, 1), availH/math.Max(l.Height, 1))
	d.x0 = pageMargin + (availW-l.Width*d.scale)/2
	d.y0 = pageMargin + headerH

	for _, region := range l.Regions {
		d.region(region)
	}
	if len(l.Regions) == 1 && len(l.Regions[0].Lines) > 0 {
		d.legend(l.Regions[0])
	}
}

func (d *pageDrawer) x(px float64) float64 { return d.x0 + px*d.scale }
func (d *pageDrawer) y(px float64) float64 { return d.y0 + px*d.scale }

func (d *pageDrawer) fill(hex string) {
	r, g, b := hexToRGB(hex)
	d.pdf.SetFillColor(r, g, b)
}

func (d *pageDrawer) stroke(hex string) {
	r, g, b := hexToRGB(hex)
	d.pdf.SetDrawColor(r, g, b)
}

func (d *pageDrawer) text(x, y float64, s, align string) {
	s = d.tr(s)
	w := d.pdf.GetStringWidth(s)
	switch align {
	case "C":
		x -= w / 2
	case "R":
		x -= w
	}
	d.pdf.Text(x, y, s)
}

func (d *pageDrawer) region(r layout.PlotRegion) {
	pdf := d.pdf
	left, top := r.Origin.X, r.Origin.Y
	bottom := top + r.Height

	if r.Title != "" {
		pdf.SetFont(d.font, "B", 8)
		d.text(d.x(left+r.Width/2), d.y(top)-2, r.Title, "C")
	}

	// axes
	d.stroke("#333333")
	pdf.SetLineWidth(0.2)
	pdf.Line(d.x(left), d.y(top), d.x(left), d.y(bottom))
	pdf.Line(d.x(left), d.y(bottom), d.x(left+r.Width), d.y(bottom))

	pdf.SetFont(d.font, "", 6)
	for _, t := range r.XTicks {
		pdf.Line(d.x(t.Position), d.y(bottom), d.x(t.Position), d.y(bottom)+1)
		d.text(d.x(t.Position), d.y(bottom)+3.5, t.Label, "C")
	}
	for _, t := range r.YTicks {
		pdf.Line(d.x(left)-1, d.y(t.Position), d.x(left), d.y(t.Position))
		d.text(d.x(left)-1.5, d.y(t.Position)+1, t.Label, "R")
	}

	for _, line := range r.Lines {
		d.stroke(d.colors.color(line.Series))
		pdf.SetLineWidth(0.5)
		for i := 1; i < len(line.Points); i++ {
			a, b := line.Points[i-1], line.Points[i]
			pdf.Line(d.x(a.X), d.y(a.Y), d.x(b.X), d.y(b.Y))
		}
	}

	pdf.SetFont(d.font, "", 5)
	for _, el := range r.Elements {
		switch el.Kind {
		case layout.ElementPoint:
			d.fill(d.colors.color(el.Series))
			pdf.Circle(d.x(el.X), d.y(el.Y), el.Width/2*d.scale, "F")
		default:
			d.fill(d.colors.color(el.Payload.Key))
			pdf.Rect(d.x(el.X), d.y(el.Y), el.Width*d.scale, el.Height*d.scale, "F")
		}
		if el.Label == "" {
			continue
		}
		if r.Orientation == layout.Horizontal {
			d.text(d.x(el.X+el.Width)+1, d.y(el.Y+el.Height/2)+1, el.Label, "L")
		} else {
			d.text(d.x(el.X+el.Width/2), d.y(el.Y)-1, el.Label, "C")
		}
	}
}

func (d *pageDrawer) legend(r layout.PlotRegion) {
	pdf := d.pdf
	x := d.x(r.Origin.X+r.Width) + 4
	y := d.y(r.Origin.Y)
	pdf.SetFont(d.font, "", 6)
	for _, line := range r.Lines {
		d.fill(d.colors.color(line.Series))
		pdf.Rect(x, y-2, 2.5, 2.5, "F")
		d.text(x+4, y, line.Series, "L")
		y += 4
	}
}
