// Package interaction defines what a hover or focus event on a plotted
// element reveals. Payloads are plain values computed once at layout time;
// handling an event only reads them.
package interaction

// Payload is the data attached to one plotted point.
type Payload struct {
	SeriesName     string  `json:"series_name"`
	Key            string  `json:"key"`
	SecondaryKey   string  `json:"secondary_key,omitempty"`
	Value          float64 `json:"value"`
	FormattedValue string  `json:"formatted_value"`
}

// New builds the payload for a point, formatting the value once.
func New(series, key, secondary string, value float64, f Format) Payload {
	return Payload{
		SeriesName:     series,
		Key:            key,
		SecondaryKey:   secondary,
		Value:          value,
		FormattedValue: f.Apply(value),
	}
}

// Field is one "label: value" line of a tooltip.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Labels names the tooltip lines of a chart kind. Empty labels are skipped.
type Labels struct {
	Series    string `json:"series,omitempty"`
	Key       string `json:"key"`
	Secondary string `json:"secondary,omitempty"`
	Value     string `json:"value"`
}

// Describe returns the tooltip lines for p. It is pure, so repeated events
// on the same element always show the same content.
func Describe(p Payload, l Labels) []Field {
	fields := make([]Field, 0, 4)
	if l.Key != "" {
		fields = append(fields, Field{Label: l.Key, Value: p.Key})
	}
	if l.Secondary != "" && p.SecondaryKey != "" {
		fields = append(fields, Field{Label: l.Secondary, Value: p.SecondaryKey})
	}
	if l.Series != "" && p.SeriesName != "" {
		fields = append(fields, Field{Label: l.Series, Value: p.SeriesName})
	}
	fields = append(fields, Field{Label: l.Value, Value: p.FormattedValue})
	return fields
}
