package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "unknown entity",
			err:         fmt.Errorf("%w: widgets", ErrUnknownEntity),
			wantCode:    "TBL001",
			wantMessage: "This list does not exist",
		},
		{
			name:        "row not found",
			err:         errors.New("row not found: 42"),
			wantCode:    "TBL002",
			wantMessage: "This row is no longer part of the list",
		},
		{
			name:        "unknown column",
			err:         fmt.Errorf("%w: color", datatable.ErrUnknownColumn),
			wantCode:    "COL001",
			wantMessage: "This column does not exist in the list",
		},
		{
			name:        "not sortable",
			err:         fmt.Errorf("%w: image", datatable.ErrNotSortable),
			wantCode:    "COL002",
			wantMessage: "This column cannot be sorted",
		},
		{
			name:        "not filterable",
			err:         datatable.ErrNotFilterable,
			wantCode:    "COL003",
			wantMessage: "This column cannot be filtered",
		},
		{
			name:        "page size matched before page",
			err:         fmt.Errorf("%w: 0", datatable.ErrInvalidPageSize),
			wantCode:    "VAL001",
			wantMessage: "Invalid number of rows per page",
		},
		{
			name:        "invalid page",
			err:         fmt.Errorf("%w: -1", datatable.ErrInvalidPage),
			wantCode:    "VAL002",
			wantMessage: "Invalid page number",
		},
		{
			name:        "connection refused maps correctly",
			err:         errors.New("dial tcp: connection refused"),
			wantCode:    "DB001",
			wantMessage: "Unable to connect to database",
		},
		{
			name:        "deadline",
			err:         fmt.Errorf("load products: %w", context.DeadlineExceeded),
			wantCode:    "DB004",
			wantMessage: "Operation timed out",
		},
		{
			name:        "preference write",
			err:         errors.New("set preference datatable.columns.products: boom"),
			wantCode:    "PREF001",
			wantMessage: "Column preferences could not be saved",
		},
		{
			name:        "unsupported export before generic export",
			err:         errors.New("unsupported export format: pdf"),
			wantCode:    "EXP001",
			wantMessage: "This export format is not supported",
		},
		{
			name:        "unsupported export scope",
			err:         errors.New(`unsupported export scope: "page"`),
			wantCode:    "EXP004",
			wantMessage: "This export scope is not supported",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("UNKNOWN ENTITY foo"),
			wantCode:    "TBL001",
			wantMessage: "This list does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(fmt.Errorf("%w: notes", datatable.ErrNotSortable))

	expected := "This column cannot be sorted (Code: COL002). Sort by another column"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", ErrUnknownEntity, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
