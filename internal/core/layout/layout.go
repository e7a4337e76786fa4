// Package layout maps aggregated series onto plot regions: one full-size
// panel, or a grid of independently scaled small multiples. Every element
// comes out with absolute canvas geometry and its hover payload, so a
// renderer only has to draw.
package layout

import (
	"math"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/interaction"
)

// Orientation of the bars. Vertical puts categories on the x axis.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Mark is the kind of element drawn per point.
type Mark string

const (
	BarMark  Mark = "bar"
	LineMark Mark = "line"
)

// Element kinds emitted in PlotRegion.Elements.
const (
	ElementBar   = "bar"
	ElementPoint = "point"
)

type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Grid configures small multiples. Panel i sits at row i/Cols, column
// i%Cols; rows are added when there are more panels than Cols*Rows.
type Grid struct {
	Cols        int     `json:"cols"`
	Rows        int     `json:"rows"`
	PanelWidth  float64 `json:"panel_width"`
	PanelHeight float64 `json:"panel_height"`
	ColGap      float64 `json:"col_gap"`
	RowGap      float64 `json:"row_gap"`
}

// Config holds the static layout constants of one chart kind.
type Config struct {
	Width       float64
	Height      float64
	Margin      Margin
	Orientation Orientation
	Mark        Mark
	Padding     float64 // band padding, inner and outer

	// BandStep, when set on a horizontal single panel, sizes the plot
	// height as categories*BandStep instead of using Height.
	BandStep float64

	FixedMax float64 // magnitude domain [0, FixedMax] when > 0
	EmptyMax float64 // domain max used when every value is 0

	Ticks        int
	LabelLimit   int // truncate category tick labels longer than this
	MarkerRadius float64
	ValueLabels  bool

	Grid    *Grid
	Formats interaction.Formats
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tick is one axis label at an absolute canvas position along its axis.
type Tick struct {
	Value    float64 `json:"value"`
	Label    string  `json:"label"`
	Position float64 `json:"position"`
}

// Element is one drawable bar or point marker.
type Element struct {
	Kind    string              `json:"kind"`
	Series  string              `json:"series"`
	X       float64             `json:"x"`
	Y       float64             `json:"y"`
	Width   float64             `json:"width"`
	Height  float64             `json:"height"`
	Label   string              `json:"label,omitempty"`
	Payload interaction.Payload `json:"payload"`
}

// Polyline connects the points of one line series.
type Polyline struct {
	Series string  `json:"series"`
	Points []Point `json:"points"`
}

// Scale is implemented by LinearScale and BandScale.
type Scale interface {
	ScaleKind() ScaleKind
}

func (s LinearScale) ScaleKind() ScaleKind { return Linear }
func (b BandScale) ScaleKind() ScaleKind   { return Band }

// PlotRegion is one panel with its own scales.
type PlotRegion struct {
	Title       string      `json:"title,omitempty"`
	Row         int         `json:"row"`
	Col         int         `json:"col"`
	Origin      Point       `json:"origin"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Orientation Orientation `json:"orientation"`
	XScale      Scale       `json:"x_scale"`
	YScale      Scale       `json:"y_scale"`
	XTicks      []Tick      `json:"x_ticks"`
	YTicks      []Tick      `json:"y_ticks"`
	Elements    []Element   `json:"elements"`
	Lines       []Polyline  `json:"lines,omitempty"`
}

// Band returns the categorical scale of the region.
func (r PlotRegion) Band() BandScale {
	if b, ok := r.XScale.(BandScale); ok {
		return b
	}
	b, _ := r.YScale.(BandScale)
	return b
}

// Magnitude returns the continuous scale of the region.
func (r PlotRegion) Magnitude() LinearScale {
	if s, ok := r.YScale.(LinearScale); ok {
		return s
	}
	s, _ := r.XScale.(LinearScale)
	return s
}

// Layout is the full declarative description of one chart.
type Layout struct {
	Title   string       `json:"title"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Regions []PlotRegion `json:"regions"`
}

// Engine lays out series under a fixed Config.
type Engine struct {
	cfg Config
}

// NewEngine creates a layout engine with defaults filled in.
func NewEngine(cfg Config) *Engine {
	if cfg.Orientation == "" {
		cfg.Orientation = Vertical
	}
	if cfg.Mark == "" {
		cfg.Mark = BarMark
	}
	if cfg.Ticks <= 0 {
		cfg.Ticks = 10
	}
	if cfg.MarkerRadius <= 0 {
		cfg.MarkerRadius = 5
	}
	if cfg.Grid != nil && cfg.Grid.Cols <= 0 {
		g := *cfg.Grid
		g.Cols = 1
		cfg.Grid = &g
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Layout places series on the canvas: all series share one panel, or in
// grid mode each series gets its own panel.
func (e *Engine) Layout(title string, series []analytics.Series) Layout {
	if e.cfg.Grid != nil {
		return e.grid(title, series)
	}
	return e.single(title, series)
}

func (e *Engine) single(title string, series []analytics.Series) Layout {
	c := e.cfg
	keys := unionKeys(series)

	width := c.Width - c.Margin.Left - c.Margin.Right
	height := c.Height - c.Margin.Top - c.Margin.Bottom
	canvasHeight := c.Height
	if c.Orientation == Horizontal && c.BandStep > 0 {
		height = float64(len(keys)) * c.BandStep
		canvasHeight = c.Margin.Top + height + c.Margin.Bottom
	}

	max := c.FixedMax
	if max <= 0 {
		for _, s := range series {
			max = math.Max(max, s.Max())
		}
	}

	region := e.region(Point{X: c.Margin.Left, Y: c.Margin.Top}, width, height, keys, max, series)
	return Layout{
		Title:   title,
		Width:   c.Width,
		Height:  canvasHeight,
		Regions: []PlotRegion{region},
	}
}

func (e *Engine) grid(title string, series []analytics.Series) Layout {
	c := e.cfg
	g := c.Grid

	rows := g.Rows
	if need := (len(series) + g.Cols - 1) / g.Cols; need > rows {
		rows = need
	}

	regions := make([]PlotRegion, 0, len(series))
	for i, s := range series {
		row, col := i/g.Cols, i%g.Cols
		origin := Point{
			X: c.Margin.Left + float64(col)*(g.PanelWidth+g.ColGap),
			Y: c.Margin.Top + float64(row)*(g.PanelHeight+g.RowGap),
		}
		// Each panel scales to its own points only.
		max := c.FixedMax
		if max <= 0 {
			max = s.Max()
		}
		region := e.region(origin, g.PanelWidth, g.PanelHeight, s.Keys(), max, []analytics.Series{s})
		region.Title = s.Name
		region.Row, region.Col = row, col
		regions = append(regions, region)
	}

	return Layout{
		Title:   title,
		Width:   c.Margin.Left + c.Margin.Right + float64(g.Cols)*g.PanelWidth + float64(g.Cols-1)*g.ColGap,
		Height:  c.Margin.Top + c.Margin.Bottom + float64(rows)*g.PanelHeight + float64(rows-1)*g.RowGap,
		Regions: regions,
	}
}

func (e *Engine) region(origin Point, width, height float64, keys []string, max float64, series []analytics.Series) PlotRegion {
	c := e.cfg
	r := PlotRegion{
		Origin:      origin,
		Width:       width,
		Height:      height,
		Orientation: c.Orientation,
		Elements:    []Element{},
	}

	var band BandScale
	var mag LinearScale
	if c.Orientation == Horizontal {
		band = NewBandScale(keys, [2]float64{0, height}, c.Padding)
		mag = NewLinearScale(max, c.EmptyMax, [2]float64{0, width})
		r.XScale, r.YScale = mag, band
		r.XTicks = e.magnitudeTicks(mag, origin.X)
		r.YTicks = e.bandTicks(band, origin.Y)
	} else {
		band = NewBandScale(keys, [2]float64{0, width}, c.Padding)
		mag = NewLinearScale(max, c.EmptyMax, [2]float64{height, 0})
		r.XScale, r.YScale = band, mag
		r.XTicks = e.bandTicks(band, origin.X)
		r.YTicks = e.magnitudeTicks(mag, origin.Y)
	}

	for _, s := range series {
		var line Polyline
		if c.Mark == LineMark {
			line = Polyline{Series: s.Name, Points: make([]Point, 0, len(s.Points))}
		}
		for _, p := range s.Points {
			pos, ok := band.Map(p.Key)
			if !ok {
				continue
			}
			el := Element{
				Series:  s.Name,
				Payload: interaction.New(s.Name, p.Key, p.SecondaryKey, p.Value, c.Formats.Tooltip),
			}
			if c.ValueLabels {
				el.Label = c.Formats.Label.Apply(p.Value)
			}

			switch {
			case c.Mark == LineMark:
				center := Point{X: origin.X + pos + band.Bandwidth/2, Y: origin.Y + mag.Map(p.Value)}
				if c.Orientation == Horizontal {
					center = Point{X: origin.X + mag.Map(p.Value), Y: origin.Y + pos + band.Bandwidth/2}
				}
				line.Points = append(line.Points, center)
				el.Kind = ElementPoint
				el.X, el.Y = center.X, center.Y
				el.Width, el.Height = 2*c.MarkerRadius, 2*c.MarkerRadius
			case c.Orientation == Horizontal:
				el.Kind = ElementBar
				el.X = origin.X
				el.Y = origin.Y + pos
				el.Width = mag.Map(p.Value)
				el.Height = band.Bandwidth
			default:
				top := mag.Map(p.Value)
				el.Kind = ElementBar
				el.X = origin.X + pos
				el.Y = origin.Y + top
				el.Width = band.Bandwidth
				el.Height = height - top
			}
			r.Elements = append(r.Elements, el)
		}
		if c.Mark == LineMark {
			r.Lines = append(r.Lines, line)
		}
	}
	return r
}

func (e *Engine) bandTicks(b BandScale, offset float64) []Tick {
	out := make([]Tick, 0, len(b.Domain))
	for _, k := range b.Domain {
		center, _ := b.Center(k)
		out = append(out, Tick{Label: truncate(k, e.cfg.LabelLimit), Position: offset + center})
	}
	return out
}

func (e *Engine) magnitudeTicks(s LinearScale, offset float64) []Tick {
	values := s.Ticks(e.cfg.Ticks)
	out := make([]Tick, 0, len(values))
	for _, v := range values {
		out = append(out, Tick{Value: v, Label: e.cfg.Formats.Axis.Apply(v), Position: offset + s.Map(v)})
	}
	return out
}

// unionKeys returns the keys of all series in first-seen order.
func unionKeys(series []analytics.Series) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, s := range series {
		for _, p := range s.Points {
			if !seen[p.Key] {
				seen[p.Key] = true
				keys = append(keys, p.Key)
			}
		}
	}
	return keys
}

func truncate(label string, limit int) string {
	if limit <= 3 {
		return label
	}
	runes := []rune(label)
	if len(runes) <= limit {
		return label
	}
	return string(runes[:limit-3]) + "..."
}
