package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

// QueryTimeout is the maximum duration of one entity query.
var QueryTimeout = 30 * time.Second

// PostgresSource loads entity rows from PostgreSQL.
//
// Every entity table has an "id" primary key, stored in each row under the
// entity's IDField. Reference fields are loaded together with the label of
// the referenced row and returned as datatable.Reference values.
type PostgresSource struct {
	db     DBTX
	logger *slog.Logger
}

// NewPostgresSource returns a source reading from db.
func NewPostgresSource(db DBTX, logger *slog.Logger) *PostgresSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSource{db: db, logger: logger}
}

// Rows fetches every row of entityKey ordered by id.
func (p *PostgresSource) Rows(ctx context.Context, entityKey string) ([]datatable.Record, error) {
	def, ok := Get(entityKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entityKey)
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	start := time.Now()
	query := buildSelect(def)
	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", entityKey, err)
	}
	defer rows.Close()

	idField := def.Info.IDField
	if idField == "" {
		idField = "_id"
	}

	var result []datatable.Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		result = append(result, scanRecord(def, idField, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	p.logger.Debug("entity rows loaded",
		"entity", entityKey,
		"rows", len(result),
		"duration", time.Since(start),
	)
	return result, nil
}

// buildSelect returns the query listing def. Each reference field
// contributes two columns: the stored key and the referenced label.
func buildSelect(def EntityDefinition) string {
	cols := []string{"t." + quoteIdentifier("id")}
	for _, spec := range def.FieldSpecs {
		col := "t." + quoteIdentifier(resolveDBColumn(spec))
		cols = append(cols, col)
		if spec.Type == FieldReference && spec.Ref != nil {
			key, label := refColumns(spec.Ref)
			cols = append(cols, fmt.Sprintf(
				"(SELECT r.%s FROM %s r WHERE r.%s = %s)",
				quoteIdentifier(label),
				quoteIdentifier(spec.Ref.Table),
				quoteIdentifier(key),
				col,
			))
		}
	}
	return fmt.Sprintf(
		"SELECT %s FROM %s t ORDER BY t.%s",
		strings.Join(cols, ", "),
		quoteIdentifier(def.TableName()),
		quoteIdentifier("id"),
	)
}

// scanRecord maps the values of one buildSelect row onto a record.
func scanRecord(def EntityDefinition, idField string, values []any) datatable.Record {
	rec := make(datatable.Record, len(def.FieldSpecs)+1)
	rec[idField] = FromPg(values[0])
	i := 1
	for _, spec := range def.FieldSpecs {
		if i >= len(values) {
			break
		}
		v := FromPg(values[i])
		i++
		if spec.Type == FieldReference && spec.Ref != nil {
			var label any
			if i < len(values) {
				label = FromPg(values[i])
			}
			i++
			if v == nil {
				rec[spec.Name] = nil
				continue
			}
			name, _ := label.(string)
			rec[spec.Name] = datatable.Reference{ID: v, Label: name}
			continue
		}
		rec[spec.Name] = v
	}
	return rec
}

func refColumns(ref *RefSpec) (key, label string) {
	key, label = ref.KeyColumn, ref.LabelColumn
	if key == "" {
		key = "id"
	}
	if label == "" {
		label = "name"
	}
	return key, label
}
