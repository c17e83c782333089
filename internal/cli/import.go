// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/akihiro/secrets-cli/internal/store"
)

func newImportCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import secrets from a dotenv file into the OS keyring",
		Long: `Read KEY=VALUE pairs from a dotenv file and store each one. Import
stops at the first keyring failure; keys stored before the failure
remain stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, formatJSON, formatText); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fail := func(msg string, err error) error {
				if format == formatJSON {
					printJSON(out, map[string]any{"success": false, "error": msg})
				} else {
					printErr(out, msg)
				}
				return rendered(err)
			}

			pairs, err := godotenv.Read(args[0])
			if err != nil {
				return fail(fmt.Sprintf("read %s: %v", args[0], err), err)
			}
			if len(pairs) == 0 {
				return fail(fmt.Sprintf("no entries found in %s", args[0]), errors.New("empty dotenv file"))
			}

			names := make([]string, 0, len(pairs))
			for n := range pairs {
				names = append(names, n)
			}
			sort.Strings(names)

			for _, name := range names {
				err := app.store.Set(name, pairs[name])
				var warn *store.IndexWarning
				if errors.As(err, &warn) {
					app.logger.Warn("index update failed", "name", warn.Name, "err", warn.Err)
					err = nil
				}
				if err != nil {
					return fail(fmt.Sprintf("import %q: %v", name, err), err)
				}
			}

			if format == formatJSON {
				printJSON(out, map[string]any{"success": true, "imported": len(names), "names": names})
			} else {
				printOK(out, fmt.Sprintf("Imported %d secrets from %s", len(names), args[0]))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: json|text")
	return cmd
}
