// Package templates renders the catalog admin pages.
//
// Components are plain templ.Component values so handlers can render full
// pages or, for HTMX requests, only the table fragment they swapped.
package templates

import "github.com/JonMunkholm/catalogadmin/internal/datatable"

// EntityLink is one entry of the sidebar and the dashboard.
type EntityLink struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Rows  int    `json:"rows"`
}

// EntityGroup is a sidebar section.
type EntityGroup struct {
	Name     string       `json:"name"`
	Entities []EntityLink `json:"entities"`
}

// ColumnView describes one column as rendered.
type ColumnView struct {
	ID         string                 `json:"id"`
	Label      string                 `json:"label"`
	Type       datatable.SemanticType `json:"type"`
	Sortable   bool                   `json:"sortable"`
	Filterable bool                   `json:"filterable"`
	Visible    bool                   `json:"visible"`
	Operators  []datatable.Operator   `json:"operators,omitempty"`
	EnumValues []string               `json:"enumValues,omitempty"`
	Filter     *datatable.Filter      `json:"filter,omitempty"`
	SortDir    datatable.Direction    `json:"sortDir,omitempty"`
}

// RowView is one rendered row; Cells follow the visible columns.
type RowView struct {
	ID       string   `json:"id"`
	Selected bool     `json:"selected"`
	Cells    []string `json:"cells"`
}

// TableData is everything the table fragment shows.
// It doubles as the JSON body of the table API.
type TableData struct {
	Entity        string                   `json:"entity"`
	Label         string                   `json:"label"`
	Columns       []ColumnView             `json:"columns"`
	Visible       []ColumnView             `json:"-"`
	Rows          []RowView                `json:"rows"`
	Search        string                   `json:"search"`
	Page          int                      `json:"page"`
	PageSize      int                      `json:"pageSize"`
	TotalPages    int                      `json:"totalPages"`
	TotalCount    int                      `json:"totalCount"`
	SourceCount   int                      `json:"sourceCount"`
	Selection     datatable.SelectionState `json:"selection"`
	SelectedCount int                      `json:"selectedCount"`
	PageSizes     []int                    `json:"-"`
	Sidebar       []EntityGroup            `json:"-"`
}
