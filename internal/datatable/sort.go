package datatable

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// SortRows returns a copy of rows ordered by key.
//
// The sort is stable, so rows with equal values keep their relative order.
// References sort by label, nil values always sort last. An empty column or
// an unknown direction returns the rows in their original order.
func SortRows[R any](rows []R, key SortKey, columns []Column[R]) []R {
	result := make([]R, len(rows))
	copy(result, rows)
	if key.Column == "" || !key.Direction.Valid() {
		return result
	}

	extract := func(row R) any { return Resolve(Field(row, key.Column)) }
	if col, ok := findColumn(columns, key.Column); ok {
		extract = col.Resolved
	}

	// Resolve every value once, then sort the positions.
	keys := make([]any, len(rows))
	for i, row := range rows {
		keys[i] = extract(row)
	}
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}

	desc := key.Direction == Descending
	sort.SliceStable(order, func(i, j int) bool {
		a, b := keys[order[i]], keys[order[j]]
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		c := compareValues(a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})

	for i, idx := range order {
		result[i] = rows[idx]
	}
	return result
}

// NextSort returns the sort key after the user clicks column.
// Clicking the active column flips its direction,
// clicking any other column starts ascending.
func NextSort(current *SortKey, column string) SortKey {
	if current != nil && current.Column == column && current.Direction == Ascending {
		return SortKey{Column: column, Direction: Descending}
	}
	return SortKey{Column: column, Direction: Ascending}
}

// value ranks order values of different kinds against each other.
const (
	rankBool = iota
	rankNumber
	rankTime
	rankString
	rankOther
)

func rankOf(v any) int {
	switch v.(type) {
	case bool:
		return rankBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return rankNumber
	case time.Time:
		return rankTime
	case string:
		return rankString
	}
	return rankOther
}

// compareValues returns -1, 0 or +1 using the native order of the values.
func compareValues(a, b any) int {
	ra, rb := rankOf(a), rankOf(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch ra {
	case rankBool:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1

	case rankNumber:
		x, okA := toNumber(a)
		y, okB := toNumber(b)
		if okA && okB {
			return compareFloat(x, y)
		}

	case rankTime:
		x, y := a.(time.Time), b.(time.Time)
		return x.Compare(y)

	case rankString:
		return strings.Compare(a.(string), b.(string))
	}

	x, _ := toText(a)
	y, _ := toText(b)
	return strings.Compare(x, y)
}

func compareFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
