package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

// ============================================================================
// Fixtures
// ============================================================================

var columns = []datatable.Column[datatable.Record]{
	{ID: "name", Label: "Name", Type: datatable.TypeText},
	{ID: "salesPrice", Label: "Sales Price", Type: datatable.TypeNumber},
	{ID: "category", Label: "Category", Type: datatable.TypeReference},
	{ID: "active", Label: "Active", Type: datatable.TypeBoolean},
	{ID: "createdAt", Type: datatable.TypeDate},
}

func records() []datatable.Record {
	return []datatable.Record{
		{"_id": 1, "name": "Desk Lamp", "salesPrice": 249.5, "category": datatable.Reference{ID: 3, Label: "Lighting"}, "active": true,
			"createdAt": time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)},
		{"_id": 2, "name": "Cable, 2m", "salesPrice": 12.0, "active": false},
		{"_id": 3, "name": "Floor Lamp", "salesPrice": 899.0, "category": datatable.Reference{ID: 3, Label: "Lighting"}, "active": true},
	}
}

// ============================================================================
// Format Tests
// ============================================================================

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatXLSX, false},
		{"xlsx", FormatXLSX, false},
		{" CSV ", FormatCSV, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScope(t *testing.T) {
	s, err := ParseScope("")
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, s)

	s, err = ParseScope("selected")
	require.NoError(t, err)
	assert.Equal(t, ScopeSelected, s)

	_, err = ParseScope("page")
	assert.ErrorIs(t, err, ErrUnsupportedScope)
}

func TestFileName(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "products_20250304_050607.csv", FileName("products", FormatCSV, at))
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
}

// ============================================================================
// Writer Tests
// ============================================================================

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, columns, records()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name,Sales Price,Category,Active,createdAt", lines[0])
	assert.Equal(t, "Desk Lamp,249.50,Lighting,Yes,2025-01-06", lines[1])
	assert.Equal(t, `"Cable, 2m",12,,No,`, lines[2])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "Products", columns, records()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Products", f.GetSheetName(0))
	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Name", "Sales Price", "Category", "Active", "createdAt"}, rows[0])
	assert.Equal(t, []string{"Floor Lamp", "899", "Lighting", "Yes"}, rows[3])
}

func TestWrite_Unsupported(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("pdf"), "x", columns, records())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Export", sheetName(""))
	assert.Equal(t, "a_b_c", sheetName("a/b:c"))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40))), 31)
}

// ============================================================================
// Row Selection Tests
// ============================================================================

func TestRows(t *testing.T) {
	all := records()
	view := datatable.NewView(columns, datatable.DefaultIdentity[datatable.Record], datatable.Options{PageSize: 1})
	require.NoError(t, view.SetFilter(datatable.Filter{Column: "salesPrice", Operator: datatable.OpGreater, Value: 200}))

	rows, err := Rows(view, all, ScopeAll)
	require.NoError(t, err)
	assert.Len(t, rows, 2, "exports ignore paging")

	_, err = Rows(view, all, ScopeSelected)
	assert.ErrorIs(t, err, ErrNoRowsSelected)

	view.Selection().Select("2", "3")
	rows, err = Rows(view, all, ScopeSelected)
	require.NoError(t, err)
	require.Len(t, rows, 1, "selected rows outside the filter are skipped")
	assert.Equal(t, "Floor Lamp", rows[0]["name"])
}
