// Package datatable is the list-view engine shared by every catalog entity.
//
// It turns an in-memory snapshot of rows plus a column schema into one
// render-ready page:
//
//	rows → search → column filters → sort → paginate → page + selection flags
//
// The pure stages are exposed as functions (Search, ApplyFilters, SortRows,
// Paginate) so they can be used on their own. View bundles them with the
// mutable view state of a single list page: search text, per-column filters,
// the single sort key, the page cursor, the row selection and the set of
// visible columns.
//
// # Rows
//
// The engine is generic over the row type R. Values are read through
// Column.Value when set, otherwise through the Fielder interface which
// Record implements. A value may be a Reference; Resolve turns it into its
// display label before searching, filtering and sorting.
//
// # Failure behaviour
//
// None of the pure stages return errors or panic on malformed input.
// A filter value that cannot be coerced for its column type excludes the row,
// an unknown operator falls back to the type's default, and an unknown sort
// direction leaves the order unchanged. Only the View operations that a user
// interaction triggers (sorting an unsortable column, paging to page 0)
// report sentinel errors so the caller can reject the interaction.
//
// # Concurrency
//
// View is not safe for concurrent use. Every mutation is expected to come
// from one logical writer, followed by a full Compute over the current rows.
package datatable
