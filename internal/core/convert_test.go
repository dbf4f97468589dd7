package core

import (
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func TestFromPg(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	cet := time.FixedZone("CET", 3600)
	local := time.Date(2024, 3, 6, 0, 30, 0, 0, cet)

	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"nil", nil, nil},
		{"string", "Oak", "Oak"},
		{"int16", int16(4), int64(4)},
		{"int32", int32(42), int64(42)},
		{"int64", int64(7), int64(7)},
		{"float32", float32(1.5), 1.5},
		{"bool", true, true},
		{"uuid bytes", [16]byte(id), id.String()},
		{"pg uuid", pgtype.UUID{Bytes: id, Valid: true}, id.String()},
		{"null pg uuid", pgtype.UUID{}, nil},
		{"time converted to utc", local, local.UTC()},
		{"pg date", pgtype.Date{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Valid: true}, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"null pg date", pgtype.Date{}, nil},
		{"pg text", pgtype.Text{String: "x", Valid: true}, "x"},
		{"null pg text", pgtype.Text{}, nil},
		{"pg bool", pgtype.Bool{Bool: false, Valid: true}, false},
		{"pg int4", pgtype.Int4{Int32: 9, Valid: true}, int64(9)},
		{"null pg int8", pgtype.Int8{}, nil},
		{"numeric", pgtype.Numeric{Int: big.NewInt(38950), Exp: -2, Valid: true}, 389.5},
		{"null numeric", pgtype.Numeric{}, nil},
		{"nan numeric", pgtype.Numeric{NaN: true, Valid: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromPg(tt.input)
			if got != tt.want {
				t.Errorf("FromPg(%v) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPgUUIDToString(t *testing.T) {
	if got := PgUUIDToString(pgtype.UUID{}); got != "" {
		t.Errorf("invalid uuid = %q, want empty", got)
	}
}
