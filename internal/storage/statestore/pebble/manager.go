package pebble

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/labsx402/paradoxd/internal/storage/statestore"
)

// Manager opens one pebble store per name under a shared root
// directory. Reopening a name hands back the same wrapper, so every
// caller observes the same Close.
type Manager struct {
	root string

	mu   sync.Mutex
	open map[string]*KV
}

func NewManager(root string) *Manager {
	return &Manager{
		root: root,
		open: make(map[string]*KV),
	}
}

func (m *Manager) OpenDB(name string) (statestore.KV, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if kv, ok := m.open[name]; ok {
		return kv, nil
	}

	db, err := pebble.Open(filepath.Join(m.root, name+".db"), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble store %s: %w", name, err)
	}

	kv := NewKV(db)
	m.open[name] = kv
	return kv, nil
}

func (m *Manager) CloseDB(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kv, ok := m.open[name]
	if !ok {
		return fmt.Errorf("pebble store %s not open", name)
	}
	delete(m.open, name)
	return kv.Close()
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for name, kv := range m.open {
		if err := kv.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pebble store %s: %w", name, err))
		}
	}
	m.open = make(map[string]*KV)
	return errors.Join(errs...)
}
