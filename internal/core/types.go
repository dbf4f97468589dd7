package core

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// FieldType represents the kind of data held by an entity field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
	FieldNumeric
	FieldBool
	FieldReference
	FieldCustom
)

// Semantic returns the list-view type used to filter and sort the field.
func (t FieldType) Semantic() datatable.SemanticType {
	switch t {
	case FieldEnum:
		return datatable.TypeSelect
	case FieldDate:
		return datatable.TypeDate
	case FieldNumeric:
		return datatable.TypeNumber
	case FieldBool:
		return datatable.TypeBoolean
	case FieldReference:
		return datatable.TypeReference
	case FieldCustom:
		return datatable.TypeCustom
	default:
		return datatable.TypeText
	}
}

// RefSpec describes the entity a FieldReference points at.
type RefSpec struct {
	Table       string // Referenced table: "categories"
	KeyColumn   string // Key column of the referenced table (default "id")
	LabelColumn string // Column shown instead of the key (default "name")
}

// FieldSpec defines one field of an entity and how it is listed.
type FieldSpec struct {
	Name       string             // Row key and column id: "salesPrice"
	Label      string             // Column header: "Sales Price"
	DBColumn   string             // Database column name (derived from Name if empty)
	Type       FieldType          // Data type
	EnumValues []string           // Valid values for FieldEnum
	Ref        *RefSpec           // Target of a FieldReference
	NoSort     bool               // Column cannot be sorted
	NoFilter   bool               // Column is excluded from search and filters
	Format     func(v any) string // Optional cell formatter
}

// EntityInfo contains display information about an entity.
type EntityInfo struct {
	Key      string   // Unique identifier: "products"
	Group    string   // Menu section: "Catalog", "Sales", "Marketing"
	Label    string   // Display name: "Products"
	Table    string   // Database table (defaults to Key)
	IDField  string   // Row identity field (defaults to "_id")
	Columns  []string // Field names in display order
	PageSize int      // Rows per page, zero uses the configured default
}

// SeedFunc returns the rows served when no database is configured.
type SeedFunc func() []datatable.Record

// EntityDefinition contains everything needed to list an entity.
type EntityDefinition struct {
	Info       EntityInfo
	FieldSpecs []FieldSpec
	Seed       SeedFunc
}

// Columns returns the list-view columns of the entity in display order.
func (d EntityDefinition) Columns() []datatable.Column[datatable.Record] {
	cols := make([]datatable.Column[datatable.Record], 0, len(d.FieldSpecs))
	for _, spec := range d.FieldSpecs {
		label := spec.Label
		if label == "" {
			label = spec.Name
		}
		cols = append(cols, datatable.Column[datatable.Record]{
			ID:            spec.Name,
			Label:         label,
			Type:          spec.Type.Semantic(),
			DisableSort:   spec.NoSort,
			DisableFilter: spec.NoFilter,
			Format:        spec.Format,
		})
	}
	return cols
}

// Field returns the spec of field name.
func (d EntityDefinition) Field(name string) (FieldSpec, bool) {
	for _, spec := range d.FieldSpecs {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// Identity returns the row identity extractor of the entity.
func (d EntityDefinition) Identity() datatable.IdentityFunc[datatable.Record] {
	field := d.Info.IDField
	if field == "" {
		field = "_id"
	}
	return func(row datatable.Record) datatable.RowID {
		return datatable.IdentityOf(row[field])
	}
}

// TableName returns the database table holding the entity.
func (d EntityDefinition) TableName() string {
	if d.Info.Table != "" {
		return d.Info.Table
	}
	return d.Info.Key
}
