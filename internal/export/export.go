// Package export writes the rows of a list view to spreadsheet files.
//
// Exports contain the visible columns in schema order and the rows the user
// sees, filtered and sorted but not paged, or only the selected rows. Cells
// are rendered with the same formatters the list page uses.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrUnsupportedScope  = errors.New("unsupported export scope")
	ErrNoRowsSelected    = errors.New("no rows selected")
)

// Format is an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Scope selects which rows are exported.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeSelected Scope = "selected"
)

// ParseFormat parses a format name. An empty name selects xlsx.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
}

// ParseScope parses a scope name. An empty name selects all rows.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeSelected:
		return ScopeSelected, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedScope, s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileName returns the download name of an export of entity taken at now.
func FileName(entity string, f Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", entity, now.UTC().Format("20060102_150405"), f)
}

// Rows returns the rows of view to export from the full collection.
// ScopeSelected returns the selected rows in view order and fails with
// ErrNoRowsSelected if none of them is in the filtered result.
func Rows[R any](view *datatable.View[R], all []R, scope Scope) ([]R, error) {
	rows := view.Apply(all)
	if scope != ScopeSelected {
		return rows, nil
	}
	selected := view.Selection().SelectedRows(rows)
	if len(selected) == 0 {
		return nil, ErrNoRowsSelected
	}
	return selected, nil
}

// Write writes rows in format f. Sheet names the worksheet of xlsx files.
func Write[R any](w io.Writer, f Format, sheet string, columns []datatable.Column[R], rows []R) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, sheet, columns, rows)
	case FormatCSV:
		return WriteCSV(w, columns, rows)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// header returns the column labels.
func header[R any](columns []datatable.Column[R]) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = col.Label
		if out[i] == "" {
			out[i] = col.ID
		}
	}
	return out
}

// cells returns the formatted cells of row.
func cells[R any](columns []datatable.Column[R], row R) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = col.FormatCell(row)
	}
	return out
}
