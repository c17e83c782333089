// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/akihiro/secrets-cli/internal/store"
)

func newSetCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "set NAME [VALUE]",
		Short: "Store a secret in the OS keyring",
		Long: `Store a secret value under NAME. When VALUE is omitted, it is read from
an interactive hidden prompt so the value stays out of shell history.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, formatJSON, formatText); err != nil {
				return err
			}
			name := args[0]
			var value string
			if len(args) == 2 {
				value = args[1]
			} else {
				prompt := &survey.Password{Message: fmt.Sprintf("Value for %q:", name)}
				if err := survey.AskOne(prompt, &value); err != nil {
					return fmt.Errorf("read value: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			err := app.store.Set(name, value)

			var warn *store.IndexWarning
			if errors.As(err, &warn) {
				// The value is durably stored; the stale index heals on a
				// later operation. Success with a warning, not a failure.
				app.logger.Warn("index update failed", "name", warn.Name, "err", warn.Err)
				err = nil
			}
			if err != nil {
				if format == formatJSON {
					printJSON(out, map[string]any{"success": false, "error": err.Error(), "name": name})
				} else {
					printErr(out, err.Error())
				}
				return rendered(err)
			}

			if format == formatJSON {
				printJSON(out, map[string]any{
					"success": true,
					"name":    name,
					"message": fmt.Sprintf("Secret '%s' stored securely in OS keyring", name),
				})
			} else {
				printOK(out, fmt.Sprintf("Secret '%s' stored securely", name))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: json|text")
	return cmd
}
