package orders

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one flat row of the order sheet: field name -> scalar.
type Record map[string]any

// Clone returns a shallow copy of the record. Values are scalars, so the
// copy shares nothing mutable with the original.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the field as a trimmed string, or "" when absent.
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// FieldMap names the sheet columns the pipeline reads.
type FieldMap struct {
	OrderID   string
	Amount    string
	Timestamp string
	GroupCode string
	GroupName string
	ItemCode  string
	ItemName  string
}

// DefaultFields returns the column headers of the sales order sheet.
func DefaultFields() FieldMap {
	return FieldMap{
		OrderID:   "Mã đơn hàng",
		Amount:    "Thành tiền",
		Timestamp: "Thời gian tạo đơn",
		GroupCode: "Mã nhóm hàng",
		GroupName: "Tên nhóm hàng",
		ItemCode:  "Mã mặt hàng",
		ItemName:  "Tên mặt hàng",
	}
}

// Required lists the columns a sheet must carry to be usable.
func (f FieldMap) Required() []string {
	return []string{f.OrderID, f.Amount, f.Timestamp, f.GroupCode, f.GroupName, f.ItemCode, f.ItemName}
}
