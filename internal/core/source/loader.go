package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/orders"
)

// Loader fetches and parses one snapshot of the order sheet.
type Loader struct {
	provider Provider
	sheet    string
	fields   orders.FieldMap
	timeout  time.Duration
}

func NewLoader(provider Provider, sheet string, fields orders.FieldMap, timeout time.Duration) *Loader {
	return &Loader{
		provider: provider,
		sheet:    sheet,
		fields:   fields,
		timeout:  timeout,
	}
}

// Load returns the rows of the sheet. Fetch failures wrap
// ErrSourceUnavailable, unusable content wraps ErrSourceMalformed.
func (l *Loader) Load(ctx context.Context) ([]orders.Record, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	rc, err := l.provider.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, l.provider.GetProviderName(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read: %w", ErrSourceUnavailable, l.provider.GetProviderName(), err)
	}

	records, err := Parse(bytes.NewReader(data), l.sheet, l.fields)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("provider", l.provider.GetProviderName()).
		Int("bytes", len(data)).
		Int("records", len(records)).
		Msg("order sheet loaded")
	return records, nil
}
