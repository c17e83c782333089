// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the secrets command tree against the real platform backend.
func Execute() error {
	err := NewRootCommand(NewApp()).Execute()
	if err != nil {
		var r *renderedError
		if !errors.As(err, &r) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	return err
}

// NewRootCommand builds the root command and wires all subcommands.
func NewRootCommand(app *App) *cobra.Command {
	var (
		cfgFile     string
		namespace   string
		baseDir     string
		backendName string
		verbose     bool
	)

	root := &cobra.Command{
		Use:   "secrets",
		Short: "Store secrets in the OS keyring with a local name index",
		Long: `secrets is a command-line credential manager. Secret values live in the
operating system's native credential store (Windows Credential Manager,
macOS Keychain, Linux Secret Service); a local index file tracks secret
names only, never values, so listing and export stay cheap.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initialize(cfgFile, namespace, baseDir, backendName, verbose)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: secrets.toml in ., user config dir, ~/.secrets-cli)")
	pf.StringVar(&namespace, "service-name", "", "keyring service namespace (default: ai-keys)")
	pf.StringVar(&baseDir, "base-dir", "", "directory for the name index (default: ~/.secrets)")
	pf.StringVar(&backendName, "backend", "", "secret backend: platform default, keyring, or memory")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		newSetCommand(app),
		newGetCommand(app),
		newListCommand(app),
		newDeleteCommand(app),
		newExportCommand(app),
		newImportCommand(app),
		newStatusCommand(app),
		newVersionCommand(),
	)
	return root
}
