// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/oarkflow/clipboard"
	"github.com/spf13/cobra"

	"github.com/akihiro/secrets-cli/internal/backend"
)

func newGetCommand(app *App) *cobra.Command {
	var (
		format     string
		printValue bool
		reveal     bool
		copyValue  bool
	)

	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Check a secret exists, optionally revealing its value",
		Long: `Look NAME up in the OS keyring. Without --print or --reveal this is an
existence check only; the check always reads the real backend, so a name
deleted behind this tool's back reports as missing (and is dropped from
the local index).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, formatJSON, formatText); err != nil {
				return err
			}
			name := args[0]
			out := cmd.OutOrStdout()

			value, err := app.store.Get(name)
			if err != nil {
				var nf *backend.ErrNotFound
				msg := err.Error()
				if errors.As(err, &nf) {
					msg = fmt.Sprintf("Secret '%s' not found", name)
				}
				if format == formatJSON {
					printJSON(out, map[string]any{"success": false, "error": msg, "name": name})
				} else {
					printErr(out, msg)
				}
				return rendered(err)
			}

			if copyValue {
				if err := clipboard.WriteAll(value); err != nil {
					printErr(out, fmt.Sprintf("copy to clipboard: %v", err))
					return rendered(err)
				}
			}

			includeValue := printValue || (reveal && format == formatJSON)

			if format == formatJSON {
				result := map[string]any{"success": true, "name": name, "exists": true}
				if includeValue {
					result["value"] = value
				}
				if copyValue {
					result["copied"] = true
				}
				printJSON(out, result)
				return nil
			}

			switch {
			case printValue:
				fmt.Fprintf(out, "%s: %s\n", name, value)
			case copyValue:
				printOK(out, fmt.Sprintf("Secret '%s' copied to clipboard", name))
			default:
				printOK(out, fmt.Sprintf("Secret '%s' exists", name))
				fmt.Fprintln(out)
				fmt.Fprintln(out, color.YellowString("Use --print to display value (insecure!)"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: json|text")
	cmd.Flags().BoolVar(&printValue, "print", false, "print the secret value (INSECURE!)")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "always include the value in JSON output")
	cmd.Flags().BoolVar(&copyValue, "copy", false, "copy the value to the clipboard instead of printing it")
	return cmd
}
