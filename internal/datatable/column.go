package datatable

import "reflect"

// Column describes one field of a list view.
//
// Columns are sortable and filterable unless DisableSort or DisableFilter
// is set. Value overrides the default lookup of ID through Field,
// Format overrides FormatValue when rendering or exporting a cell.
type Column[R any] struct {
	ID            string
	Label         string
	Type          SemanticType
	DisableSort   bool
	DisableFilter bool
	Value         func(row R) any
	Format        func(v any) string
}

// Sortable reports whether a user may sort by this column.
func (c Column[R]) Sortable() bool { return !c.DisableSort }

// Filterable reports whether the column takes part in search and column filters.
func (c Column[R]) Filterable() bool { return !c.DisableFilter }

// Extract returns the raw value of the column for row.
func (c Column[R]) Extract(row R) any {
	if c.Value != nil {
		return c.Value(row)
	}
	return Field(row, c.ID)
}

// Resolved returns the value of the column for row
// with references replaced by their display label.
func (c Column[R]) Resolved(row R) any {
	return Resolve(c.Extract(row))
}

// FormatCell renders the column value of row as display string.
func (c Column[R]) FormatCell(row R) string {
	v := c.Extract(row)
	if c.Format != nil {
		return c.Format(v)
	}
	return FormatValue(v)
}

// Reference is a value that points at a related entity,
// for example the category of a product.
type Reference struct {
	ID    any    `json:"_id"`
	Label string `json:"name"`
}

// DisplayLabel implements Labeler.
func (r Reference) DisplayLabel() string { return r.Label }

// Labeler is implemented by values that are displayed,
// searched and sorted by a label instead of by themselves.
type Labeler interface {
	DisplayLabel() string
}

// Resolve returns the display label of a Labeler value
// and any other value unchanged. A nil pointer Labeler resolves to nil.
func Resolve(v any) any {
	x, ok := v.(Labeler)
	if !ok {
		return v
	}
	if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	return x.DisplayLabel()
}

func findColumn[R any](columns []Column[R], id string) (Column[R], bool) {
	for _, col := range columns {
		if col.ID == id {
			return col, true
		}
	}
	return Column[R]{}, false
}

// columnIDs returns the ids of columns in schema order.
func columnIDs[R any](columns []Column[R]) []string {
	ids := make([]string, len(columns))
	for i, col := range columns {
		ids[i] = col.ID
	}
	return ids
}
