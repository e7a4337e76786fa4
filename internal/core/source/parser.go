package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/orders"
)

// Parse reads order lines from an xlsx workbook. The first row holds the
// column headers; sheet selects the worksheet, empty means the first one.
// Cells are read raw, so date cells come through as Excel serial numbers
// and blank cells are left out of the record.
func Parse(r io.Reader, sheet string, fields orders.FieldMap) ([]orders.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not an xlsx workbook: %w", ErrSourceMalformed, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrSourceMalformed)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrSourceMalformed, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrSourceMalformed, sheet)
	}

	header := make([]string, len(rows[0]))
	present := make(map[string]bool, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
		present[header[i]] = true
	}
	var missing []string
	for _, col := range fields.Required() {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrSourceMalformed, strings.Join(missing, ", "))
	}

	records := make([]orders.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(orders.Record, len(header))
		for i, h := range header {
			if h == "" || i >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[i]); v != "" {
				rec[h] = v
			}
		}
		if len(rec) == 0 {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
