package datatable

import (
	"errors"
	"fmt"
	"time"
)

var productColumns = []Column[Record]{
	{ID: "name", Label: "Name", Type: TypeText},
	{ID: "sku", Label: "SKU", Type: TypeText},
	{ID: "salesPrice", Label: "Sales Price", Type: TypeNumber},
	{ID: "active", Label: "Active", Type: TypeBoolean},
	{ID: "category", Label: "Category", Type: TypeReference},
	{ID: "status", Label: "Status", Type: TypeSelect},
	{ID: "createdAt", Label: "Created", Type: TypeDate},
	{ID: "notes", Label: "Notes", Type: TypeText, DisableSort: true, DisableFilter: true},
}

func product(id int, name string, price float64) Record {
	return Record{"_id": id, "name": name, "sku": fmt.Sprintf("SKU-%03d", id), "salesPrice": price}
}

// numbered returns n products named "p0".."p{n-1}" with ids 0..n-1.
func numbered(n int) []Record {
	rows := make([]Record, n)
	for i := range rows {
		rows[i] = product(i, fmt.Sprintf("p%d", i), float64(i))
	}
	return rows
}

// twentyThreeProducts mirrors the size of the seeded catalog.
func twentyThreeProducts() []Record {
	prices := []float64{
		19.99, 250, 89.5, 1200, 45, 310.25, 199.99, 200, 75, 640,
		15, 999.99, 120, 201, 55.5, 430, 8.75, 260, 180, 1500,
		35, 205.5, 99,
	}
	rows := make([]Record, len(prices))
	for i, p := range prices {
		rows[i] = product(i+1, fmt.Sprintf("Product %02d", i+1), p)
	}
	return rows
}

func names(rows []Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i], _ = r["name"].(string)
	}
	return out
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

// memStore is an in-memory Store that can be told to fail.
type memStore struct {
	data     map[string]string
	getErr   error
	setErr   error
	setCalls int
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (m *memStore) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

var errStoreDown = errors.New("store down")
