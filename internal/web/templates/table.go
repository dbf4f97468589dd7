package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

// hxTarget is the element every table action swaps.
const hxTarget = "#table-root"

// TableView renders the full page of one entity list.
func TableView(data TableData) templ.Component {
	return Layout(data.Label, data.Sidebar, data.Entity, TablePartial(data))
}

// TablePartial renders the table fragment: toolbar, filters, rows and pager.
func TablePartial(data TableData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div id="table-root" class="table-root"`)
		h.attr("data-entity", data.Entity)
		h.raw(`><header class="table-header"><h1>`)
		h.text(data.Label)
		h.raw(`</h1>`)
		renderToolbar(h, data)
		h.raw(`</header>`)
		renderColumnMenu(h, data)
		h.raw(`<table class="data-table"><thead><tr>`)
		renderSelectAll(h, data)
		for _, col := range data.Visible {
			renderHeaderCell(h, data.Entity, col)
		}
		h.raw(`</tr><tr class="filter-row"><th></th>`)
		for _, col := range data.Visible {
			h.raw(`<th>`)
			if col.Filterable {
				renderFilter(h, data.Entity, col)
			}
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		if len(data.Rows) == 0 {
			h.raw(`<tr class="empty"><td`)
			h.attr("colspan", strconv.Itoa(len(data.Visible)+1))
			h.raw(`>No rows match the current search and filters.</td></tr>`)
		}
		for _, row := range data.Rows {
			renderRow(h, data.Entity, row)
		}
		h.raw(`</tbody></table>`)
		renderPager(h, data)
		h.raw(`</div>`)
		return h.err
	})
}

func hxPost(h *htmlWriter, path string) {
	h.attr("hx-post", path)
	h.attr("hx-target", hxTarget)
	h.attr("hx-swap", "outerHTML")
}

func hxDelete(h *htmlWriter, path string) {
	h.attr("hx-delete", path)
	h.attr("hx-target", hxTarget)
	h.attr("hx-swap", "outerHTML")
}

func renderToolbar(h *htmlWriter, data TableData) {
	h.raw(`<div class="toolbar"><input type="search" name="search" placeholder="Search…"`)
	h.attr("value", data.Search)
	hxPost(h, apiPath(data.Entity, "search"))
	h.attr("hx-trigger", "input changed delay:300ms, search")
	h.raw(`><button type="button"`)
	hxDelete(h, apiPath(data.Entity, "filters"))
	h.raw(`>Clear filters</button><button type="button"`)
	hxDelete(h, apiPath(data.Entity, "view"))
	h.raw(`>Reset view</button>`)

	h.raw(`<span class="selection-summary">`)
	h.text(fmt.Sprintf("%d selected", data.SelectedCount))
	h.raw(`</span>`)
	if data.SelectedCount > 0 {
		h.raw(`<button type="button"`)
		hxDelete(h, apiPath(data.Entity, "selection"))
		h.raw(`>Clear selection</button>`)
	}

	export := "/api/export/" + url.PathEscape(data.Entity)
	h.raw(`<span class="export">Export: `)
	for _, f := range []string{"xlsx", "csv"} {
		h.raw(`<a`)
		h.attr("href", export+"?format="+f)
		h.raw(`>`)
		h.text(f)
		h.raw(`</a> `)
		if data.SelectedCount > 0 {
			h.raw(`<a`)
			h.attr("href", export+"?format="+f+"&scope=selected")
			h.raw(`>`)
			h.text(f + " (selected)")
			h.raw(`</a> `)
		}
	}
	h.raw(`</span></div>`)
}

func renderColumnMenu(h *htmlWriter, data TableData) {
	h.raw(`<details class="column-menu"><summary>Columns</summary><ul>`)
	for _, col := range data.Columns {
		h.raw(`<li><label><input type="checkbox"`)
		if col.Visible {
			h.raw(` checked`)
		}
		hxPost(h, apiPath(data.Entity, "columns", col.ID, "toggle"))
		h.raw(`> `)
		h.text(col.Label)
		h.raw(`</label></li>`)
	}
	h.raw(`</ul><button type="button"`)
	hxPost(h, apiPath(data.Entity, "columns", "show-all"))
	h.raw(`>Show all</button><button type="button"`)
	hxPost(h, apiPath(data.Entity, "columns", "hide-all"))
	h.raw(`>Hide all</button></details>`)
}

func renderSelectAll(h *htmlWriter, data TableData) {
	h.raw(`<th class="select"><input type="checkbox" aria-label="Select page"`)
	switch data.Selection {
	case datatable.SelectionAll:
		h.raw(` checked`)
		hxPost(h, apiPath(data.Entity, "clear-page"))
	case datatable.SelectionSome:
		h.attr("data-indeterminate", "true")
		hxPost(h, apiPath(data.Entity, "select-page"))
	default:
		hxPost(h, apiPath(data.Entity, "select-page"))
	}
	h.raw(`></th>`)
}

func renderHeaderCell(h *htmlWriter, entity string, col ColumnView) {
	h.raw(`<th`)
	h.attr("data-column", col.ID)
	h.raw(`>`)
	if !col.Sortable {
		h.text(col.Label)
		h.raw(`</th>`)
		return
	}
	h.raw(`<button type="button" class="sort"`)
	hxPost(h, apiPath(entity, "sort", col.ID))
	h.raw(`>`)
	h.text(col.Label)
	switch col.SortDir {
	case datatable.Ascending:
		h.raw(` <span class="sort-dir">▲</span>`)
	case datatable.Descending:
		h.raw(` <span class="sort-dir">▼</span>`)
	}
	h.raw(`</button></th>`)
}

func renderFilter(h *htmlWriter, entity string, col ColumnView) {
	current := ""
	var op datatable.Operator
	if col.Filter != nil {
		current = fmt.Sprint(col.Filter.Value)
		op = col.Filter.Operator
	}

	h.raw(`<form class="filter"`)
	hxPost(h, apiPath(entity, "filter", col.ID))
	h.attr("hx-trigger", "change, input delay:400ms")
	h.raw(`>`)
	if len(col.Operators) > 1 {
		h.raw(`<select name="operator">`)
		for _, o := range col.Operators {
			option(h, string(o), string(o), o == op)
		}
		h.raw(`</select>`)
	}

	switch col.Type {
	case datatable.TypeSelect:
		h.raw(`<select name="value">`)
		option(h, "", "All", current == "")
		for _, v := range col.EnumValues {
			option(h, v, v, v == current)
		}
		h.raw(`</select>`)
	case datatable.TypeBoolean:
		h.raw(`<select name="value">`)
		option(h, "", "All", current == "")
		option(h, "true", "Yes", current == "true")
		option(h, "false", "No", current == "false")
		h.raw(`</select>`)
	case datatable.TypeDate:
		h.raw(`<input type="date" name="value"`)
		h.attr("value", current)
		h.raw(`>`)
	case datatable.TypeNumber:
		h.raw(`<input type="number" step="any" name="value"`)
		h.attr("value", current)
		h.raw(`>`)
	default:
		h.raw(`<input type="text" name="value"`)
		h.attr("value", current)
		h.raw(`>`)
	}
	h.raw(`</form>`)
}

func option(h *htmlWriter, value, label string, selected bool) {
	h.raw(`<option`)
	h.attr("value", value)
	if selected {
		h.raw(` selected`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</option>`)
}

func renderRow(h *htmlWriter, entity string, row RowView) {
	h.raw(`<tr`)
	h.attr("data-row", row.ID)
	if row.Selected {
		h.attr("class", "selected")
	}
	h.raw(`><td class="select"><input type="checkbox" aria-label="Select row"`)
	if row.Selected {
		h.raw(` checked`)
	}
	hxPost(h, apiPath(entity, "select", row.ID))
	h.raw(`></td>`)
	for _, cell := range row.Cells {
		h.raw(`<td>`)
		h.text(cell)
		h.raw(`</td>`)
	}
	h.raw(`</tr>`)
}

func renderPager(h *htmlWriter, data TableData) {
	h.raw(`<footer class="pager"><span class="count">`)
	if data.TotalCount == data.SourceCount {
		h.text(fmt.Sprintf("%d rows", data.TotalCount))
	} else {
		h.text(fmt.Sprintf("%d of %d rows", data.TotalCount, data.SourceCount))
	}
	h.raw(`</span>`)

	if data.TotalPages > 1 {
		h.raw(`<button type="button"`)
		if data.Page <= 1 {
			h.raw(` disabled`)
		}
		hxPost(h, apiPath(data.Entity, "page", "prev"))
		h.raw(`>Previous</button><span class="page">`)
		h.text(fmt.Sprintf("Page %d of %d", data.Page, data.TotalPages))
		h.raw(`</span><button type="button"`)
		if data.Page >= data.TotalPages {
			h.raw(` disabled`)
		}
		hxPost(h, apiPath(data.Entity, "page", "next"))
		h.raw(`>Next</button>`)
	}

	if len(data.PageSizes) > 0 {
		h.raw(`<span class="page-sizes">Rows per page:`)
		for _, size := range data.PageSizes {
			h.raw(` <button type="button"`)
			if size == data.PageSize {
				h.attr("class", "active")
			}
			hxPost(h, apiPath(data.Entity, "page-size", strconv.Itoa(size)))
			h.raw(`>`)
			h.text(strconv.Itoa(size))
			h.raw(`</button>`)
		}
		h.raw(`</span>`)
	}
	h.raw(`</footer>`)
}
