// SPDX-License-Identifier: Apache-2.0

// secrets is a command-line credential manager. Values are stored in the
// OS-native credential store; a local index file tracks names only.
//
// Usage:
//
//	secrets set NAME [VALUE]
//	secrets get NAME [--print | --reveal | --copy]
//	secrets list
//	secrets delete NAME [--yes]
//	secrets export [--format bash|json|dotenv]
//	secrets import FILE
//	secrets status
//
// Global flags select the namespace (--service-name), the index directory
// (--base-dir), and the backend (--backend). Commands render errors
// themselves; a non-zero exit status signals failure to scripts.
package main

import (
	"os"

	"github.com/akihiro/secrets-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
