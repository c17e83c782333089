// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"

	"github.com/akihiro/secrets-cli/internal/backend"
)

const defaultBackendName = "keyring"

func openPlatformBackend(string) (backend.Backend, error) {
	// go-keyring speaks to the macOS Keychain directly; there is no
	// separate platform adapter here.
	return nil, errors.New("unknown backend (try keyring or memory)")
}
