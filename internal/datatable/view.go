package datatable

import (
	"fmt"
	"log/slog"
	"maps"
)

// DefaultPageSize is used when Options.PageSize is not set.
const DefaultPageSize = 15

// Options configures a View.
type Options struct {
	// PageSize is the initial number of rows per page (default: DefaultPageSize).
	PageSize int
	// DisablePagination renders all rows as a single page.
	DisablePagination bool
	// Store persists column visibility under StorageKey.
	// Visibility is not persisted if either is unset.
	Store      Store
	StorageKey string
	Logger     *slog.Logger
}

// State is the mutable part of a view apart from selection and visibility.
type State struct {
	Search   string            `json:"search"`
	Filters  map[string]Filter `json:"filters"`
	Sort     *SortKey          `json:"sort,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// Result is everything a renderer needs for one recompute.
type Result[R any] struct {
	PageRows       []R
	Page           int
	PageSize       int
	TotalPages     int
	TotalCount     int
	SourceCount    int
	Selection      SelectionState
	SelectedCount  int
	VisibleColumns []Column[R]
	State          State
}

// View is the state machine of one list page.
// It is created when the page is mounted and discarded when it is left;
// only column visibility outlives it through the Store.
type View[R any] struct {
	columns    []Column[R]
	paginate   bool
	state      State
	selection  *Selection[R]
	visibility *Visibility
	logger     *slog.Logger
}

// NewView returns a view over columns with default state:
// no search, filters or sort, page 1, empty selection and
// all columns visible unless the Store recalls otherwise.
// A nil identity uses DefaultIdentity.
func NewView[R any](columns []Column[R], identity IdentityFunc[R], opts Options) *View[R] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View[R]{
		columns:  columns,
		paginate: !opts.DisablePagination,
		state: State{
			Filters:  make(map[string]Filter),
			Page:     1,
			PageSize: pageSize,
		},
		selection:  NewSelection(identity),
		visibility: NewVisibility(columnIDs(columns), opts.Store, opts.StorageKey, logger),
		logger:     logger,
	}
}

// Columns returns the full column schema.
func (v *View[R]) Columns() []Column[R] { return v.columns }

// Column returns the column with id.
func (v *View[R]) Column(id string) (Column[R], bool) { return findColumn(v.columns, id) }

// Selection returns the selection of the view.
func (v *View[R]) Selection() *Selection[R] { return v.selection }

// Visibility returns the column visibility of the view.
func (v *View[R]) Visibility() *Visibility { return v.visibility }

// State returns a copy of the current view state.
func (v *View[R]) State() State {
	s := v.state
	s.Filters = maps.Clone(v.state.Filters)
	if v.state.Sort != nil {
		key := *v.state.Sort
		s.Sort = &key
	}
	return s
}

// SetSearch changes the search text. A changed text resets to page 1.
func (v *View[R]) SetSearch(text string) {
	if text == v.state.Search {
		return
	}
	v.state.Search = text
	v.state.Page = 1
}

// SetFilter replaces the filter of f.Column and resets to page 1.
// A filter with an empty value removes the column's filter.
func (v *View[R]) SetFilter(f Filter) error {
	col, ok := v.Column(f.Column)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, f.Column)
	}
	if !col.Filterable() {
		return fmt.Errorf("%w: %s", ErrNotFilterable, f.Column)
	}
	if f.Type == "" {
		f.Type = col.Type
	}
	f.Operator = effectiveOperator(f.Type, ParseOperator(string(f.Operator)))

	if f.IsEmpty() {
		delete(v.state.Filters, f.Column)
	} else {
		v.state.Filters[f.Column] = f
	}
	v.state.Page = 1
	return nil
}

// ClearFilter removes the filter of column and resets to page 1.
func (v *View[R]) ClearFilter(column string) {
	if _, ok := v.state.Filters[column]; !ok {
		return
	}
	delete(v.state.Filters, column)
	v.state.Page = 1
}

// ClearFilters removes every column filter and resets to page 1.
func (v *View[R]) ClearFilters() {
	if len(v.state.Filters) == 0 {
		return
	}
	clear(v.state.Filters)
	v.state.Page = 1
}

// ToggleSort handles a click on the sort control of column.
// The active column flips between ascending and descending,
// another column becomes the sort key in ascending order.
func (v *View[R]) ToggleSort(column string) (SortKey, error) {
	col, ok := v.Column(column)
	if !ok {
		return SortKey{}, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	if !col.Sortable() {
		return SortKey{}, fmt.Errorf("%w: %s", ErrNotSortable, column)
	}
	key := NextSort(v.state.Sort, column)
	v.state.Sort = &key
	v.state.Page = 1
	return key, nil
}

// SetSort makes key the sort key. An invalid direction clears the sort.
func (v *View[R]) SetSort(key SortKey) error {
	col, ok := v.Column(key.Column)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key.Column)
	}
	if !col.Sortable() {
		return fmt.Errorf("%w: %s", ErrNotSortable, key.Column)
	}
	if !key.Direction.Valid() {
		v.ClearSort()
		return nil
	}
	v.state.Sort = &key
	v.state.Page = 1
	return nil
}

// ClearSort restores the original row order and resets to page 1.
func (v *View[R]) ClearSort() {
	if v.state.Sort == nil {
		return
	}
	v.state.Sort = nil
	v.state.Page = 1
}

// SetPage moves to page. Pages past the end render empty.
func (v *View[R]) SetPage(page int) error {
	if page < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	v.state.Page = page
	return nil
}

// SetPageSize changes the rows per page and resets to page 1.
func (v *View[R]) SetPageSize(size int) error {
	if size < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	if size != v.state.PageSize {
		v.state.PageSize = size
		v.state.Page = 1
	}
	return nil
}

// NextPage advances one page unless the current page is the last one.
func (v *View[R]) NextPage(rows []R) {
	if v.state.Page < TotalPages(len(v.Apply(rows)), v.state.PageSize) {
		v.state.Page++
	}
}

// PrevPage goes back one page unless already on page 1.
func (v *View[R]) PrevPage() {
	if v.state.Page > 1 {
		v.state.Page--
	}
}

// ToggleRow flips the selection of row.
func (v *View[R]) ToggleRow(row R) bool { return v.selection.Toggle(row) }

// SelectAllOnPage selects the rows of the current page.
func (v *View[R]) SelectAllOnPage(rows []R) int {
	return v.selection.SelectAllOnPage(v.Page(rows).Rows)
}

// ClearPage deselects the rows of the current page.
func (v *View[R]) ClearPage(rows []R) int {
	return v.selection.ClearPage(v.Page(rows).Rows)
}

// Apply runs search, column filters and sort over rows without paging.
func (v *View[R]) Apply(rows []R) []R {
	result := Search(rows, v.state.Search, v.columns)
	result = ApplyFilters(result, v.state.Filters, v.columns)
	if v.state.Sort != nil {
		result = SortRows(result, *v.state.Sort, v.columns)
	}
	return result
}

// Page returns the current page of rows.
func (v *View[R]) Page(rows []R) Page[R] {
	filtered := v.Apply(rows)
	if !v.paginate {
		return PaginateAll(filtered)
	}
	return Paginate(filtered, v.state.Page, v.state.PageSize)
}

// Compute recomputes the whole pipeline for the rows snapshot.
func (v *View[R]) Compute(rows []R) Result[R] {
	page := v.Page(rows)
	return Result[R]{
		PageRows:       page.Rows,
		Page:           page.Number,
		PageSize:       page.Size,
		TotalPages:     page.TotalPages,
		TotalCount:     page.TotalCount,
		SourceCount:    len(rows),
		Selection:      v.selection.State(page.Rows),
		SelectedCount:  len(v.selection.SelectedRows(rows)),
		VisibleColumns: VisibleColumns(v.columns, v.visibility),
		State:          v.State(),
	}
}
