package core

import (
	"strings"
	"unicode"
)

// resolveDBColumn returns the database column name of a field.
// It uses the DBColumn mapping if set, falling back to snake_case conversion.
func resolveDBColumn(spec FieldSpec) string {
	if spec.DBColumn != "" {
		return spec.DBColumn
	}
	return toDBColumnName(spec.Name)
}

// quoteIdentifier quotes a SQL identifier to prevent injection.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// toDBColumnName converts a field name to a database column name.
// "salesPrice" -> "sales_price"
// "Meta Title" -> "meta_title"
// "created_at" -> "created_at" (no change if already snake_case)
func toDBColumnName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	prevLower := false
	for _, r := range name {
		switch {
		case r == ' ' || r == '-':
			b.WriteByte('_')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return b.String()
}
