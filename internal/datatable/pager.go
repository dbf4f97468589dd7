package datatable

// Page is one slice of a filtered and sorted row sequence.
type Page[R any] struct {
	Rows       []R
	Number     int
	Size       int
	TotalPages int
	TotalCount int
}

// TotalPages returns the number of pages needed for total rows,
// zero when there are no rows.
func TotalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	if pageSize <= 0 {
		return 1
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

// Paginate returns page number page of rows.
//
// Pages are 1-based; a page below 1 is treated as page 1 and a page past the
// end is empty. A pageSize of zero or less returns all rows as a single page.
func Paginate[R any](rows []R, page, pageSize int) Page[R] {
	if page < 1 {
		page = 1
	}
	total := len(rows)
	if pageSize <= 0 {
		return PaginateAll(rows)
	}

	p := Page[R]{
		Number:     page,
		Size:       pageSize,
		TotalPages: TotalPages(total, pageSize),
		TotalCount: total,
	}
	// Compare page indexes before multiplying so huge pages cannot overflow.
	if total == 0 || page-1 > (total-1)/pageSize {
		p.Rows = rows[:0:0]
		return p
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, total-start)
	p.Rows = rows[start:end:end]
	return p
}

// PaginateAll returns all rows as one logical page,
// used when a list view has pagination disabled.
func PaginateAll[R any](rows []R) Page[R] {
	return Page[R]{
		Rows:       rows,
		Number:     1,
		Size:       len(rows),
		TotalPages: TotalPages(len(rows), len(rows)),
		TotalCount: len(rows),
	}
}
