package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/interaction"
)

func series(name string, pairs ...any) analytics.Series {
	s := analytics.Series{Name: name}
	for i := 0; i < len(pairs); i += 2 {
		v := pairs[i+1].(float64)
		s.Points = append(s.Points, analytics.AggregatePoint{Key: pairs[i].(string), Value: v})
		s.Value += v
	}
	return s
}

func TestSinglePanelVerticalBars(t *testing.T) {
	e := NewEngine(Config{
		Width:       1100,
		Height:      600,
		Margin:      Margin{Top: 50, Right: 50, Bottom: 50, Left: 50},
		Padding:     0,
		ValueLabels: true,
		Formats: interaction.Formats{
			Tooltip: interaction.Format{Kind: interaction.Integer},
			Label:   interaction.Format{Kind: interaction.Integer},
			Axis:    interaction.Format{Kind: interaction.Integer},
		},
	})

	l := e.Layout("Revenue", []analytics.Series{series("revenue", "T01", 100.0, "T02", 50.0)})

	require.Len(t, l.Regions, 1)
	r := l.Regions[0]
	assert.Equal(t, Point{X: 50, Y: 50}, r.Origin)
	assert.Equal(t, 1000.0, r.Width)
	assert.Equal(t, 500.0, r.Height)
	assert.Equal(t, [2]float64{0, 100}, r.Magnitude().Domain)
	assert.Equal(t, []string{"T01", "T02"}, r.Band().Domain)

	require.Len(t, r.Elements, 2)
	a, b := r.Elements[0], r.Elements[1]
	assert.Equal(t, ElementBar, a.Kind)
	assert.InDelta(t, 50, a.X, 1e-9)
	assert.InDelta(t, 50, a.Y, 1e-9)
	assert.InDelta(t, 500, a.Width, 1e-9)
	assert.InDelta(t, 500, a.Height, 1e-9)
	assert.InDelta(t, 550, b.X, 1e-9)
	assert.InDelta(t, 300, b.Y, 1e-9)
	assert.InDelta(t, 250, b.Height, 1e-9)
	assert.Equal(t, "50", b.Label)
	assert.Equal(t, "T02", b.Payload.Key)
	assert.Equal(t, "revenue", b.Payload.SeriesName)

	require.Len(t, r.XTicks, 2)
	assert.InDelta(t, 300, r.XTicks[0].Position, 1e-9)
	assert.Equal(t, "0", r.YTicks[0].Label)
	assert.InDelta(t, 550, r.YTicks[0].Position, 1e-9)
}

func TestSinglePanelHorizontalSizesByBandStep(t *testing.T) {
	e := NewEngine(Config{
		Width:       1400,
		Margin:      Margin{Top: 50, Right: 50, Bottom: 50, Left: 200},
		Orientation: Horizontal,
		BandStep:    30,
	})

	l := e.Layout("Share", []analytics.Series{series("share", "[A] a", 60.0, "[B] b", 30.0, "[C] c", 10.0)})

	assert.Equal(t, 190.0, l.Height)
	r := l.Regions[0]
	assert.Equal(t, 90.0, r.Height)
	assert.Equal(t, 1150.0, r.Width)

	_, isBand := r.YScale.(BandScale)
	assert.True(t, isBand)

	first := r.Elements[0]
	assert.Equal(t, 200.0, first.X)
	assert.InDelta(t, 1150, first.Width, 1e-9)
	assert.InDelta(t, 30, first.Height, 1e-9)
	assert.InDelta(t, 1150.0/6, r.Elements[2].Width, 1e-9)
}

func TestSinglePanelSharedDomainAcrossSeries(t *testing.T) {
	e := NewEngine(Config{Width: 100, Height: 100})

	l := e.Layout("", []analytics.Series{
		series("a", "x", 10.0, "y", 20.0),
		series("b", "y", 80.0, "z", 5.0),
	})

	r := l.Regions[0]
	assert.Equal(t, []string{"x", "y", "z"}, r.Band().Domain)
	assert.Equal(t, [2]float64{0, 80}, r.Magnitude().Domain)
}

func TestFixedMaxOverridesData(t *testing.T) {
	e := NewEngine(Config{Width: 100, Height: 100, FixedMax: 100})

	l := e.Layout("", []analytics.Series{series("a", "x", 30.0)})

	assert.Equal(t, [2]float64{0, 100}, l.Regions[0].Magnitude().Domain)
}

func TestLineMarkPlacesMarkersAtBandCentres(t *testing.T) {
	e := NewEngine(Config{Width: 200, Height: 100, Mark: LineMark, FixedMax: 100})

	l := e.Layout("", []analytics.Series{
		series("[A] a", "T01", 50.0, "T02", 100.0),
		series("[B] b", "T01", 50.0, "T02", 0.0),
	})

	r := l.Regions[0]
	require.Len(t, r.Lines, 2)
	assert.Equal(t, []Point{{X: 50, Y: 50}, {X: 150, Y: 0}}, r.Lines[0].Points)
	assert.Equal(t, "[B] b", r.Lines[1].Series)

	require.Len(t, r.Elements, 4)
	assert.Equal(t, ElementPoint, r.Elements[0].Kind)
	assert.Equal(t, 10.0, r.Elements[0].Width)
}

func gridEngine() *Engine {
	return NewEngine(Config{
		Margin:   Margin{Top: 80, Right: 50, Bottom: 50, Left: 350},
		Padding:  0.2,
		EmptyMax: 100,
		Ticks:    5,
		Grid: &Grid{
			Cols: 3, Rows: 2,
			PanelWidth: 300, PanelHeight: 200,
			ColGap: 250, RowGap: 70,
		},
	})
}

func TestGridPlacesPanelsRowMajor(t *testing.T) {
	var panels []analytics.Series
	for i := 0; i < 5; i++ {
		panels = append(panels, series(fmt.Sprintf("cat-%d", i), "item", float64(10*(i+1))))
	}

	l := gridEngine().Layout("Items", panels)

	require.Len(t, l.Regions, 5)
	assert.Equal(t, 0, l.Regions[0].Row)
	assert.Equal(t, 0, l.Regions[0].Col)
	assert.Equal(t, Point{X: 350, Y: 80}, l.Regions[0].Origin)

	last := l.Regions[4]
	assert.Equal(t, "cat-4", last.Title)
	assert.Equal(t, 1, last.Row)
	assert.Equal(t, 1, last.Col)
	assert.Equal(t, Point{X: 350 + 550, Y: 80 + 270}, last.Origin)

	assert.Equal(t, 350.0+50+3*300+2*250, l.Width)
	assert.Equal(t, 80.0+50+2*200+70, l.Height)
}

func TestGridDomainsAreIndependent(t *testing.T) {
	l := gridEngine().Layout("", []analytics.Series{
		series("small", "a", 12.0, "b", 3.0),
		series("large", "c", 90.0),
	})

	assert.Equal(t, [2]float64{0, 12}, l.Regions[0].Magnitude().Domain)
	assert.Equal(t, [2]float64{0, 90}, l.Regions[1].Magnitude().Domain)
	assert.Equal(t, []string{"a", "b"}, l.Regions[0].Band().Domain)
	assert.Equal(t, []string{"c"}, l.Regions[1].Band().Domain)
}

func TestGridEmptyPanelUsesFallbackDomain(t *testing.T) {
	l := gridEngine().Layout("", []analytics.Series{{Name: "[SET] Set trà"}})

	r := l.Regions[0]
	assert.Equal(t, [2]float64{0, 100}, r.Magnitude().Domain)
	assert.Empty(t, r.Elements)
	assert.Len(t, r.XTicks, 0)
	assert.NotEmpty(t, r.YTicks)
}

func TestGridGrowsRowsForExtraPanels(t *testing.T) {
	var panels []analytics.Series
	for i := 0; i < 7; i++ {
		panels = append(panels, series(fmt.Sprintf("p%d", i), "k", 1.0))
	}

	l := gridEngine().Layout("", panels)

	assert.Equal(t, 2, l.Regions[6].Row)
	assert.Equal(t, 0, l.Regions[6].Col)
	assert.Equal(t, 80.0+50+3*200+2*70, l.Height)
}

func TestBandDomainHasUniqueKeys(t *testing.T) {
	l := NewEngine(Config{Width: 100, Height: 100}).Layout("", []analytics.Series{
		series("a", "x", 1.0, "y", 2.0),
		series("b", "x", 3.0, "y", 4.0),
	})

	domain := l.Regions[0].Band().Domain
	seen := map[string]bool{}
	for _, k := range domain {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
	for _, el := range l.Regions[0].Elements {
		assert.True(t, seen[el.Payload.Key])
	}
}

func TestTickLabelsAreTruncated(t *testing.T) {
	e := NewEngine(Config{Width: 100, Height: 100, LabelLimit: 20})

	l := e.Layout("", []analytics.Series{series("a", "[TMX] Tea mix special blend", 1.0)})

	assert.Equal(t, "[TMX] Tea mix spe...", l.Regions[0].XTicks[0].Label)
	assert.Equal(t, "[TMX] Tea mix special blend", l.Regions[0].Elements[0].Payload.Key)
}
