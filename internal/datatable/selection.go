package datatable

import (
	"fmt"
	"sort"
	"strconv"
)

// RowID identifies a row within the collection of a view.
// Numeric and string identities are both stored in their canonical string form.
type RowID string

// IdentityFunc returns the identity of a row.
type IdentityFunc[R any] func(row R) RowID

// DefaultIdentity reads the "_id" field of a row, falling back to "id".
func DefaultIdentity[R any](row R) RowID {
	if v := Field(row, "_id"); v != nil {
		return IdentityOf(v)
	}
	return IdentityOf(Field(row, "id"))
}

// IdentityOf converts an identity value to a RowID.
// References are identified by their ID, not by their label.
func IdentityOf(v any) RowID {
	switch x := v.(type) {
	case nil:
		return ""
	case RowID:
		return x
	case string:
		return RowID(x)
	case int:
		return RowID(strconv.Itoa(x))
	case int32:
		return RowID(strconv.FormatInt(int64(x), 10))
	case int64:
		return RowID(strconv.FormatInt(x, 10))
	case float64:
		return RowID(strconv.FormatFloat(x, 'f', -1, 64))
	case Reference:
		return IdentityOf(x.ID)
	case *Reference:
		if x == nil {
			return ""
		}
		return IdentityOf(x.ID)
	case fmt.Stringer:
		return RowID(x.String())
	}
	return RowID(fmt.Sprint(v))
}

// SelectionState summarizes how many rows of a page are selected.
type SelectionState string

const (
	SelectionNone SelectionState = "none"
	SelectionSome SelectionState = "some"
	SelectionAll  SelectionState = "all"
)

// Selection is the set of selected row identities of a view.
//
// It tracks identities, not positions, so paging, filtering and sorting
// never change it. Identities of rows that are no longer supplied stay in
// the set and simply resolve to "unselected".
type Selection[R any] struct {
	identity IdentityFunc[R]
	ids      map[RowID]struct{}
}

// NewSelection returns an empty Selection.
// A nil identity uses DefaultIdentity.
func NewSelection[R any](identity IdentityFunc[R]) *Selection[R] {
	if identity == nil {
		identity = DefaultIdentity[R]
	}
	return &Selection[R]{
		identity: identity,
		ids:      make(map[RowID]struct{}),
	}
}

// Identity returns the identity of row.
func (s *Selection[R]) Identity(row R) RowID { return s.identity(row) }

// Toggle flips the selection of row and reports whether it is now selected.
func (s *Selection[R]) Toggle(row R) bool {
	return s.ToggleID(s.identity(row))
}

// ToggleID flips the selection of id and reports whether it is now selected.
func (s *Selection[R]) ToggleID(id RowID) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Select adds ids to the selection.
func (s *Selection[R]) Select(ids ...RowID) {
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Deselect removes ids from the selection.
func (s *Selection[R]) Deselect(ids ...RowID) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// SelectAllOnPage selects every row of pageRows
// and returns how many were newly added.
func (s *Selection[R]) SelectAllOnPage(pageRows []R) int {
	added := 0
	for _, row := range pageRows {
		id := s.identity(row)
		if _, ok := s.ids[id]; !ok {
			s.ids[id] = struct{}{}
			added++
		}
	}
	return added
}

// ClearPage deselects every row of pageRows
// and returns how many were removed.
func (s *Selection[R]) ClearPage(pageRows []R) int {
	removed := 0
	for _, row := range pageRows {
		id := s.identity(row)
		if _, ok := s.ids[id]; ok {
			delete(s.ids, id)
			removed++
		}
	}
	return removed
}

// State returns the tri-state of the page's "select all" control.
func (s *Selection[R]) State(pageRows []R) SelectionState {
	selected := 0
	for _, row := range pageRows {
		if s.Has(row) {
			selected++
		}
	}
	switch {
	case selected == 0:
		return SelectionNone
	case selected == len(pageRows):
		return SelectionAll
	}
	return SelectionSome
}

// SelectedRows returns the rows of known whose identity is selected,
// in the order of known. Selected identities not found in known are skipped.
func (s *Selection[R]) SelectedRows(known []R) []R {
	var rows []R
	for _, row := range known {
		if s.Has(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

// Has reports whether row is selected.
func (s *Selection[R]) Has(row R) bool { return s.HasID(s.identity(row)) }

// HasID reports whether id is selected.
func (s *Selection[R]) HasID(id RowID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected identities including stale ones.
func (s *Selection[R]) Len() int { return len(s.ids) }

// IDs returns the selected identities sorted.
func (s *Selection[R]) IDs() []RowID {
	ids := make([]RowID, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clear removes every identity from the selection.
func (s *Selection[R]) Clear() {
	clear(s.ids)
}
