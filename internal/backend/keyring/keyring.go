// SPDX-License-Identifier: Apache-2.0

// Package keyring provides a backend on top of zalando/go-keyring, which
// speaks to the macOS Keychain, the Windows Credential Manager, or the
// Freedesktop Secret Service depending on the build platform. It is the
// default adapter on darwin and the portable fallback everywhere else.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/akihiro/secrets-cli/internal/backend"
)

// Backend implements backend.Backend via the go-keyring library.
type Backend struct{}

// New returns a keyring-backed adapter.
func New() *Backend { return &Backend{} }

// Name implements backend.Backend.
func (b *Backend) Name() string { return "keyring" }

// Get implements backend.Backend.
func (b *Backend) Get(service, name string) (string, error) {
	v, err := keyring.Get(service, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", &backend.ErrNotFound{Service: service, Name: name}
		}
		return "", fmt.Errorf("keyring get %s/%s: %w", service, name, err)
	}
	return v, nil
}

// Set implements backend.Backend.
func (b *Backend) Set(service, name, value string) error {
	if err := keyring.Set(service, name, value); err != nil {
		return fmt.Errorf("keyring set %s/%s: %w", service, name, err)
	}
	return nil
}

// Delete implements backend.Backend.
func (b *Backend) Delete(service, name string) error {
	if err := keyring.Delete(service, name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return &backend.ErrNotFound{Service: service, Name: name}
		}
		return fmt.Errorf("keyring delete %s/%s: %w", service, name, err)
	}
	return nil
}
