package web

// handlers_table.go serves the list view API. Every action changes the
// session's view of one entity, then responds with the recomputed table:
// the HTML fragment for HTMX requests and JSON otherwise.

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/catalogadmin/internal/core"
	"github.com/JonMunkholm/catalogadmin/internal/datatable"
	"github.com/JonMunkholm/catalogadmin/internal/logging"
	"github.com/JonMunkholm/catalogadmin/internal/web/templates"
)

// viewAction changes a mounted view. rows is the current snapshot of the
// entity's rows. The session lock is held while it runs.
type viewAction func(r *http.Request, v *listView, rows []datatable.Record) error

// mutateView runs action on the session's view of the requested entity and
// returns the recomputed table. On failure it writes the error response.
func (s *Server) mutateView(w http.ResponseWriter, r *http.Request, name string, action viewAction) (templates.TableData, bool) {
	ctx := r.Context()
	entity := chi.URLParam(r, "entity")

	def, err := s.service.Entity(entity)
	if err != nil {
		s.respondError(w, r, err)
		return templates.TableData{}, false
	}
	rows, err := s.service.Rows(ctx, entity)
	if err != nil {
		s.respondError(w, r, err)
		return templates.TableData{}, false
	}

	sid := core.SessionIDFromContext(ctx)
	sess := s.sessions.acquire(sid)

	var data templates.TableData
	err = sess.update(entity, s.mounter(entity, sid), func(view *listView) error {
		if action != nil {
			if err := action(r, view, rows); err != nil {
				return err
			}
		}
		data = s.tableData(def, view, rows)
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return templates.TableData{}, false
	}
	if action != nil {
		logging.FromContext(ctx).Debug("view changed",
			"entity", entity,
			"action", name,
			"page", data.Page,
			"rows", data.TotalCount,
		)
	}
	return data, true
}

// mounter returns the function mounting a fresh view of entity for session sid.
func (s *Server) mounter(entity, sid string) func() (*listView, error) {
	return func() (*listView, error) {
		return s.service.NewView(entity, s.sessions.preferences(sid))
	}
}

// tableAction returns a handler applying action and responding with the table.
func (s *Server) tableAction(name string, action viewAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, ok := s.mutateView(w, r, name, action)
		if !ok {
			return
		}
		s.respondTable(w, r, data)
	}
}

// respondTable writes the table fragment or its JSON form.
func (s *Server) respondTable(w http.ResponseWriter, r *http.Request, data templates.TableData) {
	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.TablePartial(data).Render(r.Context(), w); err != nil {
			logging.FromContext(r.Context()).Error("render table", "entity", data.Entity, "error", err)
		}
		return
	}
	writeJSON(w, r, data)
}

// tableData recomputes view over rows for rendering.
func (s *Server) tableData(def core.EntityDefinition, view *listView, rows []datatable.Record) templates.TableData {
	res := view.Compute(rows)
	state := res.State
	visibility := view.Visibility()

	data := templates.TableData{
		Entity:        def.Info.Key,
		Label:         def.Info.Label,
		Search:        state.Search,
		Page:          res.Page,
		PageSize:      res.PageSize,
		TotalPages:    res.TotalPages,
		TotalCount:    res.TotalCount,
		SourceCount:   res.SourceCount,
		Selection:     res.Selection,
		SelectedCount: res.SelectedCount,
		PageSizes:     s.pageSizes(res.PageSize),
	}

	for _, col := range view.Columns() {
		cv := templates.ColumnView{
			ID:         col.ID,
			Label:      col.Label,
			Type:       col.Type,
			Sortable:   col.Sortable(),
			Filterable: col.Filterable(),
			Visible:    visibility.IsVisible(col.ID),
		}
		if cv.Filterable {
			cv.Operators = datatable.Operators(col.Type)
		}
		if spec, ok := def.Field(col.ID); ok {
			cv.EnumValues = spec.EnumValues
		}
		if f, ok := state.Filters[col.ID]; ok {
			cv.Filter = &f
		}
		if state.Sort != nil && state.Sort.Column == col.ID {
			cv.SortDir = state.Sort.Direction
		}
		data.Columns = append(data.Columns, cv)
		if cv.Visible {
			data.Visible = append(data.Visible, cv)
		}
	}

	selection := view.Selection()
	data.Rows = make([]templates.RowView, 0, len(res.PageRows))
	for _, row := range res.PageRows {
		id := selection.Identity(row)
		cells := make([]string, len(res.VisibleColumns))
		for i, col := range res.VisibleColumns {
			cells[i] = col.FormatCell(row)
		}
		data.Rows = append(data.Rows, templates.RowView{
			ID:       string(id),
			Selected: selection.HasID(id),
			Cells:    cells,
		})
	}
	return data
}

// pageSizes returns the page sizes offered next to the pager.
func (s *Server) pageSizes(current int) []int {
	if !s.cfg.Table.Pagination {
		return nil
	}
	sizes := []int{s.cfg.Table.DefaultPageSize, 25, 50, 100, current}
	out := sizes[:0]
	for _, size := range sizes {
		if size > 0 && size <= s.cfg.Table.MaxPageSize {
			out = append(out, size)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// handleTable returns the current table, applying one-shot query parameters.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	s.tableAction("query", s.queryAction)(w, r)
}

func (s *Server) queryAction(r *http.Request, v *listView, _ []datatable.Record) error {
	if len(r.URL.Query()) == 0 {
		return nil
	}
	return applyQuery(r.URL.Query(), v, s.cfg.Table.MaxPageSize)
}

// handleResetView unmounts the entity's view and returns a fresh one.
// Column visibility survives because it lives in the preference store.
func (s *Server) handleResetView(w http.ResponseWriter, r *http.Request) {
	s.sessions.acquire(core.SessionIDFromContext(r.Context())).reset(chi.URLParam(r, "entity"))
	s.tableAction("reset", nil)(w, r)
}

// ============================================================================
// Actions
// ============================================================================

func setSearch(r *http.Request, v *listView, _ []datatable.Record) error {
	values, err := requestValues(r)
	if err != nil {
		return err
	}
	text, ok := values["search"]
	if !ok {
		text = values["q"]
	}
	v.SetSearch(text)
	return nil
}

func setFilter(r *http.Request, v *listView, _ []datatable.Record) error {
	values, err := requestValues(r)
	if err != nil {
		return err
	}
	f, err := filterFromValues(chi.URLParam(r, "column"), values)
	if err != nil {
		return err
	}
	return v.SetFilter(f)
}

func clearFilter(r *http.Request, v *listView, _ []datatable.Record) error {
	column := chi.URLParam(r, "column")
	if _, ok := v.Column(column); !ok {
		return fmt.Errorf("%w: %s", datatable.ErrUnknownColumn, column)
	}
	v.ClearFilter(column)
	return nil
}

func clearFilters(_ *http.Request, v *listView, _ []datatable.Record) error {
	v.ClearFilters()
	return nil
}

// toggleSort cycles the sort of a column, or sets it when the request
// names a direction.
func toggleSort(r *http.Request, v *listView, _ []datatable.Record) error {
	column := chi.URLParam(r, "column")
	values, err := requestValues(r)
	if err != nil {
		return err
	}
	if dir, ok := values["dir"]; ok {
		return v.SetSort(datatable.SortKey{Column: column, Direction: datatable.Direction(dir)})
	}
	_, err = v.ToggleSort(column)
	return err
}

func clearSort(_ *http.Request, v *listView, _ []datatable.Record) error {
	v.ClearSort()
	return nil
}

// setPage moves to a page number, or one page with "next" and "prev".
func setPage(r *http.Request, v *listView, rows []datatable.Record) error {
	switch p := chi.URLParam(r, "page"); p {
	case "next":
		v.NextPage(rows)
	case "prev":
		v.PrevPage()
	default:
		page, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("%w: %q", datatable.ErrInvalidPage, p)
		}
		return v.SetPage(page)
	}
	return nil
}

func (s *Server) setPageSize(r *http.Request, v *listView, _ []datatable.Record) error {
	size, err := parsePageSize(chi.URLParam(r, "size"), s.cfg.Table.MaxPageSize)
	if err != nil {
		return err
	}
	return v.SetPageSize(size)
}

// toggleRow flips the selection of a row of the current snapshot.
func toggleRow(r *http.Request, v *listView, rows []datatable.Record) error {
	id := datatable.RowID(chi.URLParam(r, "rowID"))
	selection := v.Selection()
	for _, row := range rows {
		if selection.Identity(row) == id {
			v.ToggleRow(row)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", errRowNotFound, id)
}

func selectPage(_ *http.Request, v *listView, rows []datatable.Record) error {
	v.SelectAllOnPage(rows)
	return nil
}

func clearPage(_ *http.Request, v *listView, rows []datatable.Record) error {
	v.ClearPage(rows)
	return nil
}

func clearSelection(_ *http.Request, v *listView, _ []datatable.Record) error {
	v.Selection().Clear()
	return nil
}

func toggleColumn(r *http.Request, v *listView, _ []datatable.Record) error {
	column := chi.URLParam(r, "column")
	if _, ok := v.Column(column); !ok {
		return fmt.Errorf("%w: %s", datatable.ErrUnknownColumn, column)
	}
	v.Visibility().Toggle(column)
	return nil
}

func showAllColumns(_ *http.Request, v *listView, _ []datatable.Record) error {
	v.Visibility().ShowAll()
	return nil
}

func hideAllColumns(_ *http.Request, v *listView, _ []datatable.Record) error {
	v.Visibility().HideAll()
	return nil
}
