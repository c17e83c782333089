// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored secret names (never values)",
		Long: `List the names recorded in the local index. This never contacts the OS
keyring, so it is cheap; names deleted behind this tool's back may linger
until the next get, delete, or export touches them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, formatJSON, formatTable); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			names, err := app.store.Names()
			if err != nil {
				if format == formatJSON {
					printJSON(out, map[string]any{"success": false, "error": err.Error()})
				} else {
					printErr(out, err.Error())
				}
				return rendered(err)
			}

			if format == formatJSON {
				printJSON(out, map[string]any{"success": true, "secrets": names, "count": len(names)})
				return nil
			}
			if len(names) == 0 {
				fmt.Fprintln(out, color.YellowString("No secrets stored"))
				return nil
			}
			fmt.Fprintln(out, renderNameTable(names))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: json|table")
	return cmd
}
