// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"

	"github.com/akihiro/secrets-cli/internal/backend"
	"github.com/akihiro/secrets-cli/internal/backend/secretservice"
)

const defaultBackendName = "secret-service"

func openPlatformBackend(name string) (backend.Backend, error) {
	if name == "secret-service" {
		return secretservice.New()
	}
	return nil, errors.New("unknown backend (try secret-service, keyring, or memory)")
}
