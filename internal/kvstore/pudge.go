package kvstore

import (
	"errors"
	"fmt"

	"github.com/recoilme/pudge"
)

// Pudge stores values in a pudge file database.
type Pudge struct {
	db *pudge.Db
}

// OpenPudge opens or creates the database file at path.
// Writes are fsynced every second.
func OpenPudge(path string) (*Pudge, error) {
	cfg := &pudge.Config{
		SyncInterval: 1,
	}
	db, err := pudge.Open(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pudge %s: %w", path, err)
	}
	return &Pudge{db: db}, nil
}

func (p *Pudge) Get(key string) (string, bool, error) {
	if p.db == nil {
		return "", false, ErrClosed
	}
	var raw []byte
	if err := p.db.Get(key, &raw); err != nil {
		if errors.Is(err, pudge.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("pudge get %s: %w", key, err)
	}
	return string(raw), true, nil
}

func (p *Pudge) Set(key, value string) error {
	if p.db == nil {
		return ErrClosed
	}
	if err := p.db.Set(key, []byte(value)); err != nil {
		return fmt.Errorf("pudge set %s: %w", key, err)
	}
	return nil
}

func (p *Pudge) Delete(key string) error {
	if p.db == nil {
		return ErrClosed
	}
	err := p.db.Delete(key)
	if err != nil && !errors.Is(err, pudge.ErrKeyNotFound) {
		return fmt.Errorf("pudge delete %s: %w", key, err)
	}
	return nil
}

// Keys returns every stored key starting with prefix.
func (p *Pudge) Keys(prefix string) ([]string, error) {
	if p.db == nil {
		return nil, ErrClosed
	}
	raw, err := p.db.Keys([]byte(prefix+"*"), 0, 0, true)
	if err != nil {
		return nil, fmt.Errorf("pudge keys %s: %w", prefix, err)
	}
	keys := make([]string, len(raw))
	for i, k := range raw {
		keys[i] = string(k)
	}
	return keys, nil
}

// Close flushes and closes the database file.
func (p *Pudge) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
