package entities

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/catalogadmin/internal/core"
	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

var productStatuses = []string{"draft", "active", "archived"}

type categorySeed struct {
	id     int
	name   string
	parent int
}

var categorySeeds = []categorySeed{
	{1, "Furniture", 0},
	{2, "Lighting", 0},
	{3, "Chairs", 1},
	{4, "Tables", 1},
	{5, "Outdoor", 0},
	{6, "Textiles", 0},
}

func categoryName(id int) string {
	for _, c := range categorySeeds {
		if c.id == id {
			return c.name
		}
	}
	return ""
}

func registerCategories() {
	core.Register(core.EntityDefinition{
		Info: core.EntityInfo{
			Key:   "categories",
			Group: "Catalog",
			Label: "Categories",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name", Label: "Name", Type: core.FieldText},
			{Name: "slug", Label: "Slug", Type: core.FieldText},
			{Name: "parent", Label: "Parent", Type: core.FieldReference, Ref: catalogRef("categories")},
			{Name: "productCount", Label: "Products", Type: core.FieldNumeric},
			{Name: "visible", Label: "Visible", Type: core.FieldBool},
		},
		Seed: seedCategories,
	})
}

func seedCategories() []datatable.Record {
	counts := make(map[int]int)
	for _, p := range productSeeds {
		counts[p.category]++
	}
	rows := make([]datatable.Record, len(categorySeeds))
	for i, c := range categorySeeds {
		var parent any
		if c.parent != 0 {
			parent = ref(c.parent, categoryName(c.parent))
		}
		rows[i] = datatable.Record{
			"_id":          c.id,
			"name":         c.name,
			"slug":         strings.ToLower(c.name),
			"parent":       parent,
			"productCount": counts[c.id],
			"visible":      c.id != 6,
		}
	}
	return rows
}

type productSeed struct {
	name     string
	category int
	price    float64
	stock    int
}

// productSeeds holds the 23 demo products.
var productSeeds = []productSeed{
	{"Oak Dining Chair", 3, 149.00, 42},
	{"Walnut Coffee Table", 4, 389.50, 12},
	{"Brass Floor Lamp", 2, 219.99, 8},
	{"Linen Throw", 6, 59.00, 120},
	{"Teak Garden Bench", 5, 640.00, 5},
	{"Pendant Light Dome", 2, 129.00, 33},
	{"Velvet Armchair", 3, 799.00, 4},
	{"Extendable Dining Table", 4, 1249.00, 2},
	{"Wool Rug 200x300", 6, 480.00, 9},
	{"Desk Lamp Arc", 2, 89.90, 61},
	{"Stacking Chair", 3, 75.00, 230},
	{"Side Table Round", 4, 199.00, 18},
	{"Outdoor Lounge Set", 5, 1899.00, 1},
	{"Cotton Cushion Cover", 6, 24.50, 340},
	{"Bar Stool", 3, 165.00, 27},
	{"Wall Sconce", 2, 145.00, 14},
	{"Picnic Table", 5, 310.00, 6},
	{"Bookshelf Ladder", 1, 275.00, 11},
	{"Nightstand", 1, 180.00, 22},
	{"Sideboard", 1, 960.00, 3},
	{"Hammock", 5, 95.00, 40},
	{"Table Runner", 6, 32.00, 150},
	{"String Lights", 2, 39.00, 0},
}

func registerProducts() {
	core.Register(core.EntityDefinition{
		Info: core.EntityInfo{
			Key:   "products",
			Group: "Catalog",
			Label: "Products",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name", Label: "Name", Type: core.FieldText},
			{Name: "sku", Label: "SKU", Type: core.FieldText},
			{Name: "category", Label: "Category", Type: core.FieldReference, Ref: catalogRef("categories")},
			{Name: "salesPrice", Label: "Sales Price", Type: core.FieldNumeric, Format: formatMoney},
			{Name: "stock", Label: "Stock", Type: core.FieldNumeric},
			{Name: "status", Label: "Status", Type: core.FieldEnum, EnumValues: productStatuses},
			{Name: "active", Label: "Active", Type: core.FieldBool},
			{Name: "createdAt", Label: "Created", Type: core.FieldDate},
			{Name: "description", Label: "Description", Type: core.FieldText, NoSort: true},
			{Name: "imageUrl", Label: "Image", Type: core.FieldCustom, NoSort: true, NoFilter: true},
		},
		Seed: seedProducts,
	})
}

func seedProducts() []datatable.Record {
	rows := make([]datatable.Record, len(productSeeds))
	for i, p := range productSeeds {
		id := i + 1
		status := productStatuses[1]
		switch {
		case p.stock == 0:
			status = productStatuses[2]
		case id%7 == 0:
			status = productStatuses[0]
		}
		rows[i] = datatable.Record{
			"_id":         id,
			"name":        p.name,
			"sku":         fmt.Sprintf("SKU-%04d", 1000+id),
			"category":    ref(p.category, categoryName(p.category)),
			"salesPrice":  p.price,
			"stock":       p.stock,
			"status":      status,
			"active":      status == "active",
			"createdAt":   seedEpoch.AddDate(0, 0, -3*id),
			"description": fmt.Sprintf("%s from the %s collection.", p.name, categoryName(p.category)),
			"imageUrl":    fmt.Sprintf("/static/img/products/%d.jpg", id),
		}
	}
	return rows
}
