package datatable

import (
	"encoding/json"
	"log/slog"
)

// Store is the key-value port used to remember column visibility.
// Get reports ok=false when no value is stored under key.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// storageKeyPrefix namespaces visibility entries within a shared Store.
const storageKeyPrefix = "datatable.columns."

// StorageKey returns the Store key used for the visibility of storageKey.
func StorageKey(storageKey string) string {
	return storageKeyPrefix + storageKey
}

// Visibility tracks which columns of a view are shown.
//
// Every change is written to the Store under StorageKey(storageKey).
// Write and read failures are logged and otherwise ignored;
// unreadable stored data falls back to showing every column.
// Visibility never influences search, filtering, sorting or paging.
type Visibility struct {
	columns []string
	visible map[string]bool
	store   Store
	key     string
	logger  *slog.Logger
}

// NewVisibility returns the visibility of columns,
// seeded from store if a value was persisted for storageKey.
// A nil store or an empty storageKey disables persistence.
func NewVisibility(columns []string, store Store, storageKey string, logger *slog.Logger) *Visibility {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Visibility{
		columns: columns,
		visible: make(map[string]bool, len(columns)),
		logger:  logger,
	}
	if store != nil && storageKey != "" {
		v.store = store
		v.key = StorageKey(storageKey)
	}
	if !v.load() {
		for _, id := range columns {
			v.visible[id] = true
		}
	}
	return v
}

// load seeds the visible set from the store and reports whether it did.
func (v *Visibility) load() bool {
	if v.store == nil {
		return false
	}
	raw, ok, err := v.store.Get(v.key)
	if err != nil {
		v.logger.Warn("column visibility: read failed", "key", v.key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil || ids == nil {
		v.logger.Debug("column visibility: ignoring unreadable value", "key", v.key, "error", err)
		return false
	}
	matched := 0
	for _, id := range ids {
		if v.known(id) {
			v.visible[id] = true
			matched++
		}
	}
	// A non-empty list naming no current column predates a schema change.
	if len(ids) > 0 && matched == 0 {
		v.logger.Debug("column visibility: ignoring value without known columns", "key", v.key)
		return false
	}
	return true
}

// persist writes the visible column ids in schema order.
func (v *Visibility) persist() {
	if v.store == nil {
		return
	}
	data, err := json.Marshal(v.IDs())
	if err != nil {
		v.logger.Warn("column visibility: encode failed", "key", v.key, "error", err)
		return
	}
	if err := v.store.Set(v.key, string(data)); err != nil {
		v.logger.Warn("column visibility: write failed", "key", v.key, "error", err)
	}
}

func (v *Visibility) known(id string) bool {
	for _, col := range v.columns {
		if col == id {
			return true
		}
	}
	return false
}

// Toggle flips the visibility of column id and reports whether it is now visible.
// Ids that are not part of the schema are ignored.
func (v *Visibility) Toggle(id string) bool {
	if !v.known(id) {
		return false
	}
	if v.visible[id] {
		delete(v.visible, id)
	} else {
		v.visible[id] = true
	}
	v.persist()
	return v.visible[id]
}

// Show makes column id visible.
func (v *Visibility) Show(id string) {
	if !v.known(id) || v.visible[id] {
		return
	}
	v.visible[id] = true
	v.persist()
}

// Hide hides column id.
func (v *Visibility) Hide(id string) {
	if !v.visible[id] {
		return
	}
	delete(v.visible, id)
	v.persist()
}

// ShowAll makes every column visible.
func (v *Visibility) ShowAll() {
	for _, id := range v.columns {
		v.visible[id] = true
	}
	v.persist()
}

// HideAll hides every column.
func (v *Visibility) HideAll() {
	clear(v.visible)
	v.persist()
}

// IsVisible reports whether column id is shown.
func (v *Visibility) IsVisible(id string) bool { return v.visible[id] }

// IDs returns the visible column ids in schema order.
func (v *Visibility) IDs() []string {
	ids := make([]string, 0, len(v.visible))
	for _, id := range v.columns {
		if v.visible[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// VisibleColumns returns the columns of schema that are visible.
func VisibleColumns[R any](columns []Column[R], v *Visibility) []Column[R] {
	visible := make([]Column[R], 0, len(columns))
	for _, col := range columns {
		if v == nil || v.IsVisible(col.ID) {
			visible = append(visible, col)
		}
	}
	return visible
}
