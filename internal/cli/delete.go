// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akihiro/secrets-cli/internal/backend"
	"github.com/akihiro/secrets-cli/internal/store"
)

func newDeleteCommand(app *App) *cobra.Command {
	var (
		format string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a secret from the OS keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, formatJSON, formatText); err != nil {
				return err
			}
			name := args[0]
			out := cmd.OutOrStdout()

			fail := func(msg string, err error) error {
				if format == formatJSON {
					printJSON(out, map[string]any{"success": false, "error": msg, "name": name})
				} else {
					printErr(out, msg)
				}
				return rendered(err)
			}

			// Check existence before prompting; this also heals a stale
			// index entry for the name.
			if _, err := app.store.Get(name); err != nil {
				var nf *backend.ErrNotFound
				if errors.As(err, &nf) {
					return fail(fmt.Sprintf("Secret '%s' not found", name), err)
				}
				return fail(err.Error(), err)
			}

			if !yes {
				if format == formatJSON {
					// Non-interactive consumers must be explicit.
					err := errors.New("confirmation required")
					return fail("Confirmation required. Use --yes to confirm deletion", err)
				}
				fmt.Fprintf(out, "%s This will permanently delete secret: %s\n",
					color.YellowString("Warning:"), name)
				var confirm bool
				prompt := &survey.Confirm{Message: "Are you sure?", Default: false}
				if err := survey.AskOne(prompt, &confirm); err != nil {
					return fmt.Errorf("confirm: %w", err)
				}
				if !confirm {
					fmt.Fprintln(out, "Deletion cancelled")
					return nil
				}
			}

			err := app.store.Delete(name)
			var warn *store.IndexWarning
			if errors.As(err, &warn) {
				app.logger.Warn("index update failed", "name", warn.Name, "err", warn.Err)
				err = nil
			}
			if err != nil {
				var nf *backend.ErrNotFound
				if errors.As(err, &nf) {
					// Deleted out from under us between the check and now.
					return fail(fmt.Sprintf("Secret '%s' not found", name), err)
				}
				return fail(err.Error(), err)
			}

			if format == formatJSON {
				printJSON(out, map[string]any{"success": true, "name": name, "deleted": true})
			} else {
				printOK(out, fmt.Sprintf("Secret '%s' deleted", name))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: json|text")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}
