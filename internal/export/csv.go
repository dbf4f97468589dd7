package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

// WriteCSV writes a header row of column labels followed by one line per row.
func WriteCSV[R any](w io.Writer, columns []datatable.Column[R], rows []R) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(columns)); err != nil {
		return fmt.Errorf("export csv header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(cells(columns, row)); err != nil {
			return fmt.Errorf("export csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}
