package datatable

import (
	"testing"
	"time"
)

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"bool true", true, "Yes"},
		{"bool false", false, "No"},
		{"int", 42, "42"},
		{"int64", int64(9), "9"},
		{"whole float", 100.0, "100"},
		{"fraction float", 19.989, "19.99"},
		{"time", ts, "2024-01-15"},
		{"time pointer", &ts, "2024-01-15"},
		{"zero time", time.Time{}, ""},
		{"reference", Reference{ID: 1, Label: "Chairs"}, "Chairs"},
		{"nil reference", (*Reference)(nil), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.input); got != tt.expected {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestColumn_FormatCell(t *testing.T) {
	col := Column[Record]{ID: "salesPrice", Format: func(v any) string { return "$" + FormatValue(v) }}
	if got := col.FormatCell(Record{"salesPrice": 12.5}); got != "$12.50" {
		t.Errorf("FormatCell = %q", got)
	}
}

func TestToNumber_RejectsNonFinite(t *testing.T) {
	for _, s := range []string{"NaN", "Inf", "-Inf", "", "  "} {
		if _, ok := toNumber(s); ok {
			t.Errorf("toNumber(%q) should fail", s)
		}
	}
	if f, ok := toNumber(" 12.5 "); !ok || f != 12.5 {
		t.Errorf("toNumber(\" 12.5 \") = %v, %v", f, ok)
	}
}

type sizeLabel struct{ name string }

func (s sizeLabel) DisplayLabel() string { return s.name }

func TestResolve(t *testing.T) {
	var nilRef *Reference
	var nilSize *sizeLabel
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"plain value", 42, 42},
		{"reference", Reference{ID: 3, Label: "Chairs"}, "Chairs"},
		{"reference pointer", &Reference{ID: 3, Label: "Chairs"}, "Chairs"},
		{"nil reference pointer", nilRef, nil},
		{"value receiver labeler", sizeLabel{"Large"}, "Large"},
		{"pointer to value receiver labeler", &sizeLabel{"Small"}, "Small"},
		{"nil pointer to value receiver labeler", nilSize, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.input); got != tt.want {
				t.Errorf("Resolve(%#v) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatValue_NilLabelerPointer(t *testing.T) {
	var nilSize *sizeLabel
	if got := FormatValue(nilSize); got != "" {
		t.Errorf("FormatValue(nil *sizeLabel) = %q, want empty", got)
	}
	if got := FormatValue(sizeLabel{"Large"}); got != "Large" {
		t.Errorf("FormatValue(sizeLabel) = %q", got)
	}
}
