package datatable

import (
	"sort"
	"strings"
)

// DefaultOperator returns the operator used for t when a filter
// names no operator or one the type does not support.
func DefaultOperator(t SemanticType) Operator {
	switch t {
	case TypeNumber, TypeBoolean, TypeDate, TypeSelect, TypeReference:
		return OpEquals
	default:
		return OpContains
	}
}

// Operators returns the operators supported by t, default first.
func Operators(t SemanticType) []Operator {
	switch t {
	case TypeNumber:
		return []Operator{OpEquals, OpGreater, OpGreaterEq, OpLess, OpLessEq}
	case TypeBoolean, TypeDate, TypeSelect, TypeReference:
		return []Operator{OpEquals}
	default:
		return []Operator{OpContains, OpEquals, OpStartsWith, OpEndsWith}
	}
}

// effectiveOperator maps op onto the operators supported by t.
func effectiveOperator(t SemanticType, op Operator) Operator {
	for _, supported := range Operators(t) {
		if op == supported {
			return op
		}
	}
	return DefaultOperator(t)
}

// MatchFilter reports whether row passes f.
//
// The row value is read through the column named by f.Column, or directly
// through Field if the schema has no such column. Empty filters always pass.
func MatchFilter[R any](row R, f Filter, columns []Column[R]) bool {
	if f.IsEmpty() {
		return true
	}
	typ := f.Type
	var value any
	if col, ok := findColumn(columns, f.Column); ok {
		if typ == "" {
			typ = col.Type
		}
		value = col.Resolved(row)
	} else {
		value = Resolve(Field(row, f.Column))
	}
	return matchValue(value, typ, ParseOperator(string(f.Operator)), Resolve(f.Value))
}

// matchValue applies the per-type decision table.
func matchValue(value any, typ SemanticType, op Operator, want any) bool {
	if value == nil {
		return false
	}
	op = effectiveOperator(typ, op)

	switch typ {
	case TypeNumber:
		got, ok := toNumber(value)
		if !ok {
			return false
		}
		limit, ok := toNumber(want)
		if !ok {
			return false
		}
		switch op {
		case OpGreater:
			return got > limit
		case OpGreaterEq:
			return got >= limit
		case OpLess:
			return got < limit
		case OpLessEq:
			return got <= limit
		default:
			return got == limit
		}

	case TypeBoolean:
		got, ok := toBool(value)
		if !ok {
			return false
		}
		wantBool, ok := toBool(want)
		return ok && got == wantBool

	case TypeDate:
		got, ok := toDay(value)
		if !ok {
			return false
		}
		wantDay, ok := toDay(want)
		return ok && got == wantDay

	case TypeSelect, TypeReference:
		got, ok := toText(value)
		if !ok {
			return false
		}
		wantStr, ok := toText(want)
		return ok && got == wantStr

	default:
		got, ok := toText(value)
		if !ok {
			return false
		}
		wantStr, ok := toText(want)
		if !ok {
			return false
		}
		got = strings.ToLower(got)
		wantStr = strings.ToLower(wantStr)
		switch op {
		case OpEquals:
			return got == wantStr
		case OpStartsWith:
			return strings.HasPrefix(got, wantStr)
		case OpEndsWith:
			return strings.HasSuffix(got, wantStr)
		default:
			return strings.Contains(got, wantStr)
		}
	}
}

// ApplyFilters returns the rows that pass every filter, keeping their order.
// Filters are combined with logical AND. The input slice is never modified.
func ApplyFilters[R any](rows []R, filters map[string]Filter, columns []Column[R]) []R {
	active := activeFilters(filters)
	if len(active) == 0 {
		return rows
	}
	result := make([]R, 0, len(rows))
	for _, row := range rows {
		if matchAll(row, active, columns) {
			result = append(result, row)
		}
	}
	return result
}

func matchAll[R any](row R, filters []Filter, columns []Column[R]) bool {
	for _, f := range filters {
		if !MatchFilter(row, f, columns) {
			return false
		}
	}
	return true
}

// activeFilters returns the non-empty filters ordered by column id.
func activeFilters(filters map[string]Filter) []Filter {
	active := make([]Filter, 0, len(filters))
	for key, f := range filters {
		if f.IsEmpty() {
			continue
		}
		if f.Column == "" {
			f.Column = key
		}
		active = append(active, f)
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].Column < active[j].Column
	})
	return active
}
