// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newExportCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all secrets as environment variables (plaintext!)",
		Long: `Read every indexed secret from the OS keyring and print it. Names the
keyring no longer has are skipped and dropped from the index; any other
keyring failure aborts the export rather than handing scripts a partial
environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, formatBash, formatJSON, formatDotenv); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			exports, err := app.store.ExportEnv()
			if err != nil {
				if format == formatJSON {
					printJSON(out, map[string]any{"success": false, "error": err.Error()})
				} else {
					printErr(cmd.ErrOrStderr(), err.Error())
				}
				return rendered(err)
			}

			switch format {
			case formatJSON:
				printJSON(out, map[string]any{"success": true, "secrets": exports, "count": len(exports)})
			case formatDotenv:
				content, err := godotenv.Marshal(exports)
				if err != nil {
					return fmt.Errorf("render dotenv: %w", err)
				}
				fmt.Fprintln(out, content)
			default: // bash
				fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: This exposes secrets in plaintext!")
				names := make([]string, 0, len(exports))
				for n := range exports {
					names = append(names, n)
				}
				sort.Strings(names)
				for _, n := range names {
					fmt.Fprintf(out, "export %s=%s\n", n, exports[n])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatBash, "output format: bash|json|dotenv")
	return cmd
}
