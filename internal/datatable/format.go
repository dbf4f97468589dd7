package datatable

import (
	"fmt"
	"strconv"
	"time"
)

// FormatValue is the default cell formatter used when a Column has no Format.
func FormatValue(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case Labeler:
		if s, ok := Resolve(val).(string); ok {
			return s
		}
		return ""

	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02")

	case *time.Time:
		if val == nil {
			return ""
		}
		return FormatValue(*val)

	case bool:
		if val {
			return "Yes"
		}
		return "No"

	case string:
		return val

	case int:
		return strconv.Itoa(val)

	case int64:
		return strconv.FormatInt(val, 10)

	case float32:
		return FormatValue(float64(val))

	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%.2f", val)

	default:
		return fmt.Sprintf("%v", v)
	}
}
