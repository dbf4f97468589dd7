// Package core provides the catalog entities shown by the admin list pages.
//
// This package holds the domain side of the back office independent of any
// UI or transport layer. It can be used by web handlers, CLI tools, or tests
// without modification.
//
// # Architecture
//
//   - Entity Definitions: registered via the registry, each entity has field
//     specs that become list-view columns and optional seed rows.
//   - Sources: supply the complete row collection of an entity, either from
//     memory ([MemorySource]) or from PostgreSQL ([PostgresSource]).
//   - Service: the entry point used by the web layer to list entities, load
//     rows and mount list views.
//
// # Entity Registry
//
// Entities are registered at init time using [Register]:
//
//	core.Register(core.EntityDefinition{
//	    Info: core.EntityInfo{Key: "products", Group: "Catalog", Label: "Products"},
//	    FieldSpecs: []core.FieldSpec{
//	        {Name: "name", Label: "Name", Type: core.FieldText},
//	        {Name: "salesPrice", Label: "Sales Price", Type: core.FieldNumeric},
//	        {Name: "category", Label: "Category", Type: core.FieldReference,
//	            Ref: &core.RefSpec{Table: "categories"}},
//	    },
//	})
//
// # List Views
//
// Searching, filtering, sorting, paging and selection all happen in memory in
// package datatable. The server never pages; a source always returns every
// row and the view computes the visible page from that snapshot.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a code prefix for support reference (TBL, COL, VAL,
// DB, PREF, EXP, REQ, RATE).
package core
