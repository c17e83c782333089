// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"

	"github.com/akihiro/secrets-cli/internal/backend"
	"github.com/akihiro/secrets-cli/internal/backend/wincred"
)

const defaultBackendName = "wincred"

func openPlatformBackend(name string) (backend.Backend, error) {
	if name == "wincred" {
		return wincred.New(), nil
	}
	return nil, errors.New("unknown backend (try wincred, keyring, or memory)")
}
