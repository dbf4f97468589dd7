package core

// convert.go turns values scanned by pgx into the plain Go values list views
// work with.
//
// pgx returns numeric columns as pgtype.Numeric, uuid columns as [16]byte and
// small integers as int16/int32. Filters and sorting coerce numbers to float64
// anyway, but keeping one representation per kind makes exports and JSON
// responses consistent:
//   - numeric, float4 → float64
//   - int2, int4, int8 → int64
//   - uuid → canonical string
//   - date, timestamp, timestamptz → time.Time in UTC
//
// Invalid (NULL) pgtype values become nil.

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// FromPg converts a pgx scan value to its list-view representation.
func FromPg(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	case [16]byte:
		return uuid.UUID(x).String()
	case time.Time:
		return x.UTC()
	case pgtype.Numeric:
		return PgNumericToFloat(x)
	case pgtype.UUID:
		if !x.Valid {
			return nil
		}
		return PgUUIDToString(x)
	case pgtype.Text:
		if !x.Valid {
			return nil
		}
		return x.String
	case pgtype.Bool:
		if !x.Valid {
			return nil
		}
		return x.Bool
	case pgtype.Date:
		if !x.Valid {
			return nil
		}
		return x.Time.UTC()
	case pgtype.Timestamptz:
		if !x.Valid {
			return nil
		}
		return x.Time.UTC()
	case pgtype.Int4:
		if !x.Valid {
			return nil
		}
		return int64(x.Int32)
	case pgtype.Int8:
		if !x.Valid {
			return nil
		}
		return x.Int64
	}
	return v
}

// PgNumericToFloat converts a pgtype.Numeric to float64.
// Returns nil if the value is NULL, NaN or infinite.
func PgNumericToFloat(n pgtype.Numeric) any {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return nil
	}
	return f.Float64
}

// PgUUIDToString converts a pgtype.UUID to its string representation.
// Returns empty string if the UUID is invalid.
func PgUUIDToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}
