package datatable

// coerce.go converts loosely typed row and filter values into the
// representation a comparison needs.
//
// Rows come from REST payloads and database scans, so the same column can
// hold float64, int64, json.Number or a numeric string. Every function here
// reports ok=false instead of failing; the caller treats that as "no match".
//
// Dates are compared as calendar days in UTC. A time.Time is converted to UTC
// before its date is taken, an RFC 3339 string likewise, and any other string
// goes through date.Normalize which accepts the common written formats.

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/domonda/go-types/date"
)

// toText returns the string form used by search and text filters.
func toText(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	case time.Time:
		if x.IsZero() {
			return "", false
		}
		return string(date.OfTime(x.UTC())), true
	case *time.Time:
		if x == nil {
			return "", false
		}
		return toText(*x)
	case fmt.Stringer:
		return x.String(), true
	}
	return fmt.Sprint(v), true
}

// toNumber coerces v to a finite float64.
func toNumber(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case float32:
		f = float64(x)
	case float64:
		f = x
	case bool:
		if x {
			f = 1
		}
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toBool accepts only real booleans and the strings "true" and "false".
func toBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case *bool:
		if x == nil {
			return false, false
		}
		return *x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// toDay returns the UTC calendar day of v.
func toDay(v any) (date.Date, bool) {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return "", false
		}
		return date.OfTime(x.UTC()), true
	case *time.Time:
		if x == nil {
			return "", false
		}
		return toDay(*x)
	case date.Date:
		return toDay(string(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return "", false
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return date.OfTime(t.UTC()), true
		}
		d, err := date.Normalize(s)
		if err != nil {
			return "", false
		}
		return d, true
	}
	return "", false
}
