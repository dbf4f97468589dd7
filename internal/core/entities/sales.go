package entities

import (
	"fmt"
	"math"
	"time"

	"github.com/JonMunkholm/catalogadmin/internal/core"
	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

var orderStatuses = []string{"pending", "paid", "shipped", "cancelled"}

type locationSeed struct {
	name     string
	city     string
	country  string
	timezone string
}

var locationSeeds = []locationSeed{
	{"Flagship Store", "Copenhagen", "DK", "Europe/Copenhagen"},
	{"Harbour Outlet", "Aarhus", "DK", "Europe/Copenhagen"},
	{"Berlin Showroom", "Berlin", "DE", "Europe/Berlin"},
	{"Web Shop", "Online", "DK", "UTC"},
	{"Oslo Pop-up", "Oslo", "NO", "Europe/Oslo"},
}

func registerLocations() {
	core.Register(core.EntityDefinition{
		Info: core.EntityInfo{
			Key:   "locations",
			Group: "Sales",
			Label: "Locations",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name", Label: "Name", Type: core.FieldText},
			{Name: "city", Label: "City", Type: core.FieldText},
			{Name: "country", Label: "Country", Type: core.FieldEnum, EnumValues: []string{"DE", "DK", "NO"}},
			{Name: "timezone", Label: "Time Zone", Type: core.FieldText},
			{Name: "active", Label: "Active", Type: core.FieldBool},
		},
		Seed: seedLocations,
	})
}

func seedLocations() []datatable.Record {
	rows := make([]datatable.Record, len(locationSeeds))
	for i, l := range locationSeeds {
		rows[i] = datatable.Record{
			"_id":      i + 1,
			"name":     l.name,
			"city":     l.city,
			"country":  l.country,
			"timezone": l.timezone,
			"active":   l.name != "Oslo Pop-up",
		}
	}
	return rows
}

var customers = []string{
	"Ida Jensen", "Mads Nielsen", "Sofie Hansen", "Lukas Schmidt",
	"Emma Larsen", "Noah Berg", "Freja Holm", "Jonas Weber",
}

const (
	orderCount   = 48
	orderSpacing = 36 * time.Hour
)

func registerOrders() {
	core.Register(core.EntityDefinition{
		Info: core.EntityInfo{
			Key:      "orders",
			Group:    "Sales",
			Label:    "Orders",
			PageSize: 20,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "orderNumber", Label: "Order", Type: core.FieldText},
			{Name: "customer", Label: "Customer", Type: core.FieldText},
			{Name: "email", Label: "Email", Type: core.FieldText},
			{Name: "location", Label: "Location", Type: core.FieldReference, Ref: catalogRef("locations")},
			{Name: "items", Label: "Items", Type: core.FieldNumeric},
			{Name: "total", Label: "Total", Type: core.FieldNumeric, Format: formatMoney},
			{Name: "status", Label: "Status", Type: core.FieldEnum, EnumValues: orderStatuses},
			{Name: "paid", Label: "Paid", Type: core.FieldBool},
			{Name: "placedAt", Label: "Placed", Type: core.FieldDate},
		},
		Seed: seedOrders,
	})
}

func seedOrders() []datatable.Record {
	rows := make([]datatable.Record, orderCount)
	for i := range rows {
		n := i + 1
		customer := customers[i%len(customers)]
		loc := i%len(locationSeeds) + 1
		product := productSeeds[(i*5)%len(productSeeds)]
		items := 1 + i%4
		status := orderStatuses[i%len(orderStatuses)]

		var location any = ref(loc, locationSeeds[loc-1].name)
		if n%11 == 0 {
			location = nil
		}
		rows[i] = datatable.Record{
			"_id":         n,
			"orderNumber": fmt.Sprintf("SO-%05d", 20000+n),
			"customer":    customer,
			"email":       emailFor(customer),
			"location":    location,
			"items":       items,
			"total":       math.Round(product.price*float64(items)*100) / 100,
			"status":      status,
			"paid":        status == "paid" || status == "shipped",
			"placedAt":    seedEpoch.Add(-orderSpacing * time.Duration(n)),
		}
	}
	return rows
}
