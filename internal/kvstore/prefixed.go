package kvstore

// Prefixed scopes every key of an underlying store, so several
// browser sessions can share one backend without seeing each other's values.
type Prefixed struct {
	store  Store
	prefix string
}

// NewPrefixed returns store with every key prefixed by prefix.
func NewPrefixed(store Store, prefix string) *Prefixed {
	return &Prefixed{store: store, prefix: prefix}
}

func (p *Prefixed) Get(key string) (string, bool, error) { return p.store.Get(p.prefix + key) }

func (p *Prefixed) Set(key, value string) error { return p.store.Set(p.prefix+key, value) }

func (p *Prefixed) Delete(key string) error { return p.store.Delete(p.prefix + key) }
