// SPDX-License-Identifier: Apache-2.0

//go:build windows

// Package wincred provides a backend that stores secrets as generic
// credentials in the Windows Credential Manager. Each secret maps to a
// credential whose TargetName is "<service>/<name>", so distinct service
// namespaces never collide in the credential list.
package wincred

import (
	"fmt"
	"strings"

	"github.com/danieljoos/wincred"

	"github.com/akihiro/secrets-cli/internal/backend"
)

// Backend implements backend.Backend against the Windows Credential Manager.
type Backend struct{}

// New returns a Credential Manager adapter.
func New() *Backend { return &Backend{} }

// Name implements backend.Backend.
func (b *Backend) Name() string { return "wincred" }

func target(service, name string) string {
	return service + "/" + name
}

// Get implements backend.Backend.
func (b *Backend) Get(service, name string) (string, error) {
	cred, err := wincred.GetGenericCredential(target(service, name))
	if err != nil {
		if isNotFound(err) {
			return "", &backend.ErrNotFound{Service: service, Name: name}
		}
		return "", fmt.Errorf("wincred get %s/%s: %w", service, name, err)
	}
	return string(cred.CredentialBlob), nil
}

// Set implements backend.Backend.
func (b *Backend) Set(service, name, value string) error {
	// Credential Manager caps generic credential blobs at 2560 bytes.
	if len(value) > 2560 {
		return fmt.Errorf("secret too large for Windows Credential Manager (max 2560 bytes, got %d)", len(value))
	}
	cred := wincred.NewGenericCredential(target(service, name))
	cred.CredentialBlob = []byte(value)
	cred.UserName = service
	cred.Persist = wincred.PersistLocalMachine
	if err := cred.Write(); err != nil {
		return fmt.Errorf("wincred set %s/%s: %w", service, name, err)
	}
	return nil
}

// Delete implements backend.Backend.
func (b *Backend) Delete(service, name string) error {
	cred, err := wincred.GetGenericCredential(target(service, name))
	if err != nil {
		if isNotFound(err) {
			return &backend.ErrNotFound{Service: service, Name: name}
		}
		return fmt.Errorf("wincred delete %s/%s: %w", service, name, err)
	}
	if err := cred.Delete(); err != nil {
		return fmt.Errorf("wincred delete %s/%s: %w", service, name, err)
	}
	return nil
}

// isNotFound reports whether an error indicates a missing credential.
func isNotFound(err error) bool {
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "not found") ||
		strings.Contains(lower, "element not found")
}
