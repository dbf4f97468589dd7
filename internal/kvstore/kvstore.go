// Package kvstore implements the key-value port used to persist
// user interface preferences such as column visibility.
//
// Three backends are available: an in-process map, a pudge file database
// and a PostgreSQL table. All of them satisfy datatable.Store.
package kvstore

import "errors"

// Store is a string key-value store.
// Get reports ok=false when key has no value.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kvstore: store closed")

// Backend names accepted by the preferences configuration.
const (
	BackendMemory   = "memory"
	BackendPudge    = "pudge"
	BackendPostgres = "postgres"
)
