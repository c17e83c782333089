// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
)

// Output formats accepted by --format. Each command declares which subset
// it supports.
const (
	formatJSON   = "json"
	formatText   = "text"
	formatTable  = "table"
	formatBash   = "bash"
	formatDotenv = "dotenv"
)

// renderedError marks an error a command has already printed, so Execute
// does not print it a second time. The exit status still reflects it.
type renderedError struct{ err error }

func (e *renderedError) Error() string { return e.err.Error() }
func (e *renderedError) Unwrap() error { return e.err }

func rendered(err error) error { return &renderedError{err: err} }

func validateFormat(got string, allowed ...string) error {
	for _, f := range allowed {
		if got == f {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q", got)
}

// printJSON writes v as indented JSON, the payload shape scripts consume.
func printJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, `{"success": false, "error": %q}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(w, string(data))
}

func printOK(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), msg)
}

func printErr(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", color.RedString("Error:"), msg)
}

// renderNameTable draws a one-column table of secret names.
func renderNameTable(names []string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name")
	for _, n := range names {
		t.Row(n)
	}
	return t.Render()
}

// renderStatusTable draws the two-column key/value status table.
func renderStatusTable(rows [][2]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Field", "Value")
	for _, r := range rows {
		t.Row(r[0], r[1])
	}
	return t.Render()
}
