package entities

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/catalogadmin/internal/core"
	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

func registerSEOEntries() {
	core.Register(core.EntityDefinition{
		Info: core.EntityInfo{
			Key:   "seo",
			Group: "Marketing",
			Label: "SEO Entries",
			Table: "seo_entries",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "path", Label: "Path", Type: core.FieldText},
			{Name: "metaTitle", Label: "Meta Title", Type: core.FieldText},
			{Name: "metaDescription", Label: "Meta Description", Type: core.FieldText, NoSort: true},
			{Name: "product", Label: "Product", Type: core.FieldReference, Ref: catalogRef("products")},
			{Name: "noIndex", Label: "No Index", Type: core.FieldBool},
			{Name: "updatedAt", Label: "Updated", Type: core.FieldDate},
		},
		Seed: seedSEOEntries,
	})
}

func seedSEOEntries() []datatable.Record {
	rows := make([]datatable.Record, 0, len(productSeeds)+2)
	rows = append(rows,
		datatable.Record{
			"_id": 1, "path": "/", "metaTitle": "Nordic Home | Furniture and Lighting",
			"metaDescription": "Furniture, lighting and textiles for every room.",
			"product":         nil, "noIndex": false, "updatedAt": seedEpoch,
		},
		datatable.Record{
			"_id": 2, "path": "/checkout", "metaTitle": "Checkout",
			"metaDescription": nil, "product": nil, "noIndex": true, "updatedAt": seedEpoch.AddDate(0, -2, 0),
		},
	)
	for i, p := range productSeeds {
		id := i + 1
		rows = append(rows, datatable.Record{
			"_id":             id + 2,
			"path":            "/products/" + slugify(p.name),
			"metaTitle":       p.name + " | Nordic Home",
			"metaDescription": fmt.Sprintf("Buy the %s online.", strings.ToLower(p.name)),
			"product":         ref(id, p.name),
			"noIndex":         p.stock == 0,
			"updatedAt":       seedEpoch.AddDate(0, 0, -id),
		})
	}
	return rows
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

func emailFor(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@example.com"
}
