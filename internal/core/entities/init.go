// Package entities registers the catalog entities listed by the admin.
// Import it for its side effects.
package entities

import (
	"fmt"
	"time"

	"github.com/JonMunkholm/catalogadmin/internal/core"
	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

func init() {
	registerCategories()
	registerProducts()
	registerLocations()
	registerOrders()
	registerSEOEntries()
}

// seedEpoch anchors every seeded timestamp so seed data is deterministic.
var seedEpoch = time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)

func formatMoney(v any) string {
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("$%.2f", x)
	case int64:
		return fmt.Sprintf("$%d.00", x)
	}
	return datatable.FormatValue(v)
}

func ref(id any, label string) datatable.Reference {
	return datatable.Reference{ID: id, Label: label}
}

func catalogRef(table string) *core.RefSpec {
	return &core.RefSpec{Table: table}
}
