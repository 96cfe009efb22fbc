// Copyright (c) 2025 nhdbstats
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"io"
	"strings"

	apperrors "nhdbstats/server/internal/errors"

	"github.com/pterm/pterm"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// FormatQueryFault explains a failed games query in a user-friendly way.
func FormatQueryFault(err error) string {
	var builder strings.Builder

	switch apperrors.KindOf(err) {
	case apperrors.ConnectFailed:
		builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Database Unreachable"))
		builder.WriteString("\n\n")
		builder.WriteString("The games database could not be reached.\n")
		builder.WriteString("This usually happens when:\n")
		builder.WriteString("  • PostgreSQL is not running or not listening on the configured host\n")
		builder.WriteString("  • The credentials in the DSN were rejected\n")
		builder.WriteString("  • A firewall blocks the connection\n")
		builder.WriteString("\n")
		builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Check the connection with 'nhdbstats dbinfo' or run 'nhdbstats connect'"))

	case apperrors.QueryFailed:
		builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Query Failed"))
		builder.WriteString("\n\n")
		builder.WriteString("The database rejected the query or stopped while returning rows.\n")
		builder.WriteString("Possible reasons:\n")
		builder.WriteString("  • The v_ascended view is missing or not readable by this user\n")
		builder.WriteString("  • A column changed type\n")

	case apperrors.DataIntegrity:
		builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Data Integrity Violation"))
		builder.WriteString("\n\n")
		if col := apperrors.ColumnOf(err); col != "" {
			builder.WriteString(fmt.Sprintf("Column %q does not match the expected schema.\n", col))
		}
		builder.WriteString("The database returned data that breaks the games column catalog,\n")
		builder.WriteString("so no result was produced.\n")

	default:
		builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Unexpected Failure"))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")

	if err != nil && strings.TrimSpace(err.Error()) != "" {
		builder.WriteString("\n")
		builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(err.Error())))
	}

	return builder.String()
}

// PresentQueryFault writes a formatted query fault to w, normally stderr so
// it never mixes with JSON written to stdout.
func PresentQueryFault(w io.Writer, err error) {
	fmt.Fprintf(w, "\n%s\n\n", FormatQueryFault(err))
}
