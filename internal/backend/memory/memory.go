// SPDX-License-Identifier: Apache-2.0

// Package memory provides an in-process backend used by tests and by the
// --backend=memory escape hatch. Entries vanish when the process exits,
// which also makes it a convenient stand-in on hosts without a usable
// OS keystore.
package memory

import (
	"sync"

	"github.com/akihiro/secrets-cli/internal/backend"
)

// Backend implements backend.Backend with a plain map.
type Backend struct {
	mu      sync.Mutex
	entries map[string]map[string]string // service -> name -> value
}

// New returns an empty in-memory backend.
func New() *Backend {
	return &Backend{entries: make(map[string]map[string]string)}
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return "memory" }

// Get implements backend.Backend.
func (b *Backend) Get(service, name string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.entries[service][name]
	if !ok {
		return "", &backend.ErrNotFound{Service: service, Name: name}
	}
	return v, nil
}

// Set implements backend.Backend.
func (b *Backend) Set(service, name, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.entries[service] == nil {
		b.entries[service] = make(map[string]string)
	}
	b.entries[service][name] = value
	return nil
}

// Delete implements backend.Backend.
func (b *Backend) Delete(service, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.entries[service][name]; !ok {
		return &backend.ErrNotFound{Service: service, Name: name}
	}
	delete(b.entries[service], name)
	return nil
}
