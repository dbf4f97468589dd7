package datatable

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Search Tests
// ============================================================================

func TestSearch_EmptyTextMatchesEverything(t *testing.T) {
	rows := numbered(5)
	assert.Len(t, Search(rows, "", productColumns), 5)
}

func TestSearch_CaseInsensitiveAcrossColumns(t *testing.T) {
	rows := []Record{
		{"_id": 1, "name": "Blue Chair", "sku": "CH-1"},
		{"_id": 2, "name": "Red Table", "sku": "tb-blue"},
		{"_id": 3, "name": "Green Lamp", "sku": "LA-1"},
	}
	got := Search(rows, "BLUE", productColumns)
	assert.Equal(t, []string{"Blue Chair", "Red Table"}, names(got))
}

func TestSearch_SkipsNonFilterableColumns(t *testing.T) {
	rows := []Record{{"_id": 1, "name": "Chair", "notes": "secret"}}
	assert.Empty(t, Search(rows, "secret", productColumns))
}

func TestSearch_NilValuesNeverMatch(t *testing.T) {
	rows := []Record{{"_id": 1, "name": nil}}
	assert.Empty(t, Search(rows, "nil", productColumns))
	assert.Empty(t, Search(rows, "<nil>", productColumns))
}

func TestSearch_ResolvesReferences(t *testing.T) {
	rows := []Record{
		{"_id": 1, "name": "Chair", "category": Reference{ID: "c1", Label: "Furniture"}},
		{"_id": 2, "name": "Lamp", "category": &Reference{ID: "c2", Label: "Lighting"}},
	}
	assert.Equal(t, []string{"Chair"}, names(Search(rows, "furn", productColumns)))
	assert.Equal(t, []string{"Lamp"}, names(Search(rows, "light", productColumns)))
	assert.Empty(t, Search(rows, "c1", productColumns), "references must not match on their id")
}

func TestSearch_UsesValueExtractor(t *testing.T) {
	cols := []Column[Record]{{
		ID:    "fullName",
		Type:  TypeText,
		Value: func(r Record) any { return r["first"].(string) + " " + r["last"].(string) },
	}}
	rows := []Record{{"first": "Ada", "last": "Lovelace"}, {"first": "Alan", "last": "Turing"}}
	got := Search(rows, "ada love", cols)
	require.Len(t, got, 1)
	assert.Equal(t, "Ada", got[0]["first"])
}

// ============================================================================
// Column Filter Tests
// ============================================================================

func TestMatchFilter_Text(t *testing.T) {
	row := Record{"name": "Oak Dining Table"}
	tests := []struct {
		op    Operator
		value string
		want  bool
	}{
		{OpContains, "dining", true},
		{OpContains, "DINING", true},
		{OpContains, "chair", false},
		{OpEquals, "oak dining table", true},
		{OpEquals, "oak", false},
		{OpStartsWith, "OAK", true},
		{OpStartsWith, "table", false},
		{OpEndsWith, "table", true},
		{OpEndsWith, "oak", false},
		{"", "dining", true},
		{"bogus", "dining", true},
		{OpGreater, "dining", true},
		{"startswith", "oak", true},
		{"endsWith", "table", true},
		{"equals", "oak dining table", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.op)+"_"+tt.value, func(t *testing.T) {
			f := Filter{Column: "name", Operator: tt.op, Value: tt.value}
			assert.Equal(t, tt.want, MatchFilter(row, f, productColumns))
		})
	}
}

func TestMatchFilter_Number(t *testing.T) {
	tests := []struct {
		name  string
		price any
		op    Operator
		value any
		want  bool
	}{
		{"eq default", 200.0, "", "200", true},
		{"eq int row", 200, OpEquals, 200.0, true},
		{"gt", 250.0, OpGreater, "200", true},
		{"gt boundary", 200.0, OpGreater, "200", false},
		{"gte boundary", 200.0, OpGreaterEq, "200", true},
		{"lt", 10.0, OpLess, 11, true},
		{"lte boundary", 11.0, OpLessEq, 11, true},
		{"string row value", "99.5", OpLess, 100, true},
		{"json number", json.Number("42"), OpEquals, "42", true},
		{"unknown op falls back to eq", 5.0, OpContains, "5", true},
		{"non numeric filter", 5.0, OpEquals, "five", false},
		{"non numeric row", "n/a", OpGreater, 0, false},
		{"nil row", nil, OpGreater, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Record{"salesPrice": tt.price}
			f := Filter{Column: "salesPrice", Operator: tt.op, Value: tt.value}
			assert.Equal(t, tt.want, MatchFilter(row, f, productColumns))
		})
	}
}

func TestMatchFilter_Boolean(t *testing.T) {
	tests := []struct {
		name   string
		active any
		value  any
		want   bool
	}{
		{"true matches true", true, true, true},
		{"false matches false", false, false, true},
		{"string filter", true, "true", true},
		{"string filter mismatch", true, "false", false},
		{"strict row value", "yes", true, false},
		{"strict filter value", true, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Record{"active": tt.active}
			f := Filter{Column: "active", Value: tt.value}
			assert.Equal(t, tt.want, MatchFilter(row, f, productColumns))
		})
	}
}

func TestMatchFilter_FalseIsNotEmpty(t *testing.T) {
	rows := []Record{{"_id": 1, "active": true}, {"_id": 2, "active": false}}
	got := ApplyFilters(rows, map[string]Filter{"active": {Column: "active", Value: false}}, productColumns)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0]["_id"])
}

func TestMatchFilter_DateComparesUTCCalendarDay(t *testing.T) {
	tests := []struct {
		name    string
		created any
		value   any
		want    bool
	}{
		{"same day different hour", day(2024, time.March, 5, 23), "2024-03-05", true},
		{"other day", day(2024, time.March, 6, 0), "2024-03-05", false},
		{"rfc3339 row value", "2024-03-05T10:30:00Z", "2024-03-05", true},
		{"offset converted to utc", "2024-03-05T23:30:00-05:00", "2024-03-06", true},
		{"time filter value", "2024-03-05", day(2024, time.March, 5, 12), true},
		{"local time converted", time.Date(2024, 3, 6, 1, 0, 0, 0, time.FixedZone("CET", 3600)), "2024-03-06", true},
		{"garbage filter", day(2024, time.March, 5, 0), "not a date", false},
		{"garbage row", "someday", "2024-03-05", false},
		{"zero time", time.Time{}, "0001-01-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Record{"createdAt": tt.created}
			f := Filter{Column: "createdAt", Value: tt.value}
			assert.Equal(t, tt.want, MatchFilter(row, f, productColumns))
		})
	}
}

func TestMatchFilter_SelectIsExact(t *testing.T) {
	row := Record{"status": "active"}
	assert.True(t, MatchFilter(row, Filter{Column: "status", Value: "active"}, productColumns))
	assert.False(t, MatchFilter(row, Filter{Column: "status", Value: "Active"}, productColumns))
	assert.False(t, MatchFilter(row, Filter{Column: "status", Value: "act"}, productColumns))
}

func TestMatchFilter_ReferenceResolvesToLabel(t *testing.T) {
	row := Record{"category": Reference{ID: "c1", Label: "Furniture"}}
	assert.True(t, MatchFilter(row, Filter{Column: "category", Value: "Furniture"}, productColumns))
	assert.False(t, MatchFilter(row, Filter{Column: "category", Value: "c1"}, productColumns))
	assert.True(t, MatchFilter(row, Filter{Column: "category", Value: Reference{ID: "x", Label: "Furniture"}}, productColumns))
}

func TestMatchFilter_CustomTypeBehavesLikeText(t *testing.T) {
	cols := []Column[Record]{{ID: "tags", Type: TypeCustom}}
	row := Record{"tags": "summer,sale"}
	assert.True(t, MatchFilter(row, Filter{Column: "tags", Value: "SALE"}, cols))
	assert.True(t, MatchFilter(row, Filter{Column: "tags", Type: "mystery", Value: "sale"}, cols))
}

func TestMatchFilter_ColumnOutsideSchema(t *testing.T) {
	row := Record{"warehouse": "North"}
	assert.True(t, MatchFilter(row, Filter{Column: "warehouse", Value: "nor"}, productColumns))
	assert.False(t, MatchFilter(row, Filter{Column: "missing", Value: "nor"}, productColumns))
}

// ============================================================================
// ApplyFilters Tests
// ============================================================================

func TestApplyFilters_EmptyValueIsNoop(t *testing.T) {
	rows := twentyThreeProducts()
	for _, v := range []any{nil, "", "   "} {
		filters := map[string]Filter{"salesPrice": {Column: "salesPrice", Operator: OpGreater, Value: v}}
		assert.Len(t, ApplyFilters(rows, filters, productColumns), len(rows))
	}
}

func TestApplyFilters_FillsColumnFromKey(t *testing.T) {
	rows := []Record{{"name": "a", "salesPrice": 1.0}, {"name": "b", "salesPrice": 5.0}}
	filters := map[string]Filter{"salesPrice": {Operator: OpGreater, Value: 2}}
	assert.Equal(t, []string{"b"}, names(ApplyFilters(rows, filters, productColumns)))
}

func TestApplyFilters_ANDSemantics(t *testing.T) {
	rows := []Record{
		{"_id": 1, "name": "Oak Chair", "salesPrice": 150.0, "active": true},
		{"_id": 2, "name": "Oak Table", "salesPrice": 450.0, "active": true},
		{"_id": 3, "name": "Oak Bench", "salesPrice": 500.0, "active": false},
		{"_id": 4, "name": "Pine Table", "salesPrice": 600.0, "active": true},
	}
	filters := map[string]Filter{
		"name":       {Column: "name", Operator: OpStartsWith, Value: "oak"},
		"salesPrice": {Column: "salesPrice", Operator: OpGreater, Value: 200},
		"active":     {Column: "active", Value: true},
	}
	got := ApplyFilters(rows, filters, productColumns)
	assert.Equal(t, []string{"Oak Table"}, names(got))

	// Every row that passes all filters is kept and every kept row passes all of them.
	for _, row := range rows {
		passesAll := true
		for _, f := range filters {
			passesAll = passesAll && MatchFilter(row, f, productColumns)
		}
		assert.Equal(t, passesAll, contains(got, row["_id"]), "row %v", row["_id"])
	}
}

func TestApplyFilters_DoesNotModifyInput(t *testing.T) {
	rows := numbered(10)
	before := names(rows)
	ApplyFilters(rows, map[string]Filter{"salesPrice": {Column: "salesPrice", Operator: OpLess, Value: 3}}, productColumns)
	assert.Equal(t, before, names(rows))
}

func TestApplyFilters_SalesPriceScenario(t *testing.T) {
	rows := twentyThreeProducts()
	want := 0
	for _, r := range rows {
		if r["salesPrice"].(float64) > 200 {
			want++
		}
	}
	got := ApplyFilters(rows, map[string]Filter{
		"salesPrice": {Column: "salesPrice", Operator: OpGreater, Value: 200},
	}, productColumns)
	assert.Len(t, got, want)
	assert.Equal(t, 10, want)
}

func contains(rows []Record, id any) bool {
	for _, r := range rows {
		if r["_id"] == id {
			return true
		}
	}
	return false
}

func TestOperators(t *testing.T) {
	assert.Equal(t, OpContains, DefaultOperator(TypeText))
	assert.Equal(t, OpContains, DefaultOperator(TypeCustom))
	assert.Equal(t, OpEquals, DefaultOperator(TypeNumber))
	assert.Equal(t, OpEquals, DefaultOperator(TypeDate))
	assert.Equal(t, []Operator{OpEquals}, Operators(TypeBoolean))
	assert.Contains(t, Operators(TypeNumber), OpLessEq)
	assert.Equal(t, OpStartsWith, ParseOperator(" StartsWith "))
	assert.Equal(t, Operator("weird"), ParseOperator("weird"))
}
