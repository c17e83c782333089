// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/akihiro/secrets-cli/internal/backend"
	"github.com/akihiro/secrets-cli/internal/backend/keyring"
	"github.com/akihiro/secrets-cli/internal/backend/memory"
)

// openBackend selects the secret backend by name. The empty name means
// the platform default (see backend_*.go). "keyring" and "memory" are
// accepted everywhere.
func openBackend(name string) (backend.Backend, error) {
	if name == "" {
		name = defaultBackendName
	}
	switch name {
	case "keyring":
		return keyring.New(), nil
	case "memory":
		return memory.New(), nil
	default:
		be, err := openPlatformBackend(name)
		if err != nil {
			return nil, fmt.Errorf("backend %q: %w", name, err)
		}
		return be, nil
	}
}
