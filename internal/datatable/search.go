package datatable

import "strings"

// Matches reports whether row contains text in any filterable column.
// The comparison is case-insensitive and an empty text matches every row.
func Matches[R any](row R, text string, columns []Column[R]) bool {
	if text == "" {
		return true
	}
	return matchesLower(row, strings.ToLower(text), columns)
}

func matchesLower[R any](row R, needle string, columns []Column[R]) bool {
	for _, col := range columns {
		if !col.Filterable() {
			continue
		}
		s, ok := toText(col.Resolved(row))
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// Search returns the rows matching text, keeping their order.
// The input slice is never modified.
func Search[R any](rows []R, text string, columns []Column[R]) []R {
	if text == "" {
		return rows
	}
	needle := strings.ToLower(text)
	result := make([]R, 0, len(rows))
	for _, row := range rows {
		if matchesLower(row, needle, columns) {
			result = append(result, row)
		}
	}
	return result
}
