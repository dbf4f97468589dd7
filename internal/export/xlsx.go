package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

// maxSheetName is the longest worksheet name Excel accepts.
const maxSheetName = 31

// WriteXLSX writes a single worksheet workbook with a bold header row.
func WriteXLSX[R any](w io.Writer, sheet string, columns []datatable.Column[R], rows []R) (err error) {
	f := excelize.NewFile()
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = fmt.Errorf("export xlsx close: %w", e)
		}
	}()

	name := sheetName(sheet)
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("export xlsx sheet: %w", err)
	}

	if err := setRow(f, name, 1, header(columns)); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export xlsx style: %w", err)
	}
	if err := f.SetRowStyle(name, 1, 1, bold); err != nil {
		return fmt.Errorf("export xlsx style: %w", err)
	}

	for i, row := range rows {
		if err := setRow(f, name, i+2, cells(columns, row)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export xlsx write: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("export xlsx row %d: %w", row, err)
	}
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("export xlsx row %d: %w", row, err)
	}
	return nil
}

// sheetName trims name to a valid worksheet name.
func sheetName(name string) string {
	if name == "" {
		return "Export"
	}
	r := []rune(name)
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}
	for i, c := range r {
		switch c {
		case ':', '\\', '/', '?', '*', '[', ']':
			r[i] = '_'
		}
	}
	return string(r)
}
