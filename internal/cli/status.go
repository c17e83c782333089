// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatusCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show namespace, backend, and index information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, formatJSON, formatTable); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			st, err := app.store.Status()
			if err != nil {
				if format == formatJSON {
					printJSON(out, map[string]any{"success": false, "error": err.Error()})
				} else {
					printErr(out, err.Error())
				}
				return rendered(err)
			}

			if format == formatJSON {
				printJSON(out, map[string]any{
					"success":      true,
					"namespace":    st.Namespace,
					"backend":      st.Backend,
					"secret_count": st.SecretCount,
					"index_path":   st.IndexPath,
				})
				return nil
			}
			fmt.Fprintln(out, renderStatusTable([][2]string{
				{"Namespace", st.Namespace},
				{"Backend", st.Backend},
				{"Secret count", strconv.Itoa(st.SecretCount)},
				{"Index path", st.IndexPath},
			}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json|table")
	return cmd
}
