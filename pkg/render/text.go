// Package render draws a screen.View as a terminal table or an HTML page.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Sternrassler/employee-directory/pkg/directory"
	"github.com/Sternrassler/employee-directory/pkg/pagination"
	"github.com/Sternrassler/employee-directory/pkg/screen"
	"github.com/samber/lo"
)

// Cells returns the table cells of a record in column order.
func Cells(r directory.Record) []string {
	return []string{strconv.FormatInt(r.ID, 10), r.Name, r.Email, r.Role}
}

// Text writes v as plain text. Disabled buttons are drawn in parentheses,
// enabled ones in brackets.
func Text(w io.Writer, v screen.View) error {
	if v.Mode != screen.ModeTable {
		_, err := fmt.Fprintln(w, v.Message)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\n\n", v.Title); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(v.Columns, "\t"))
	fmt.Fprintln(tw, strings.Join(lo.Map(v.Columns, func(c string, _ int) string {
		return strings.Repeat("-", len(c))
	}), "\t"))
	for _, row := range v.Rows {
		fmt.Fprintln(tw, strings.Join(Cells(row), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if line := ControlsLine(v.Controls); line != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// ControlsLine renders the navigation region, or "" when it is hidden.
func ControlsLine(c pagination.Controls) string {
	if !c.Visible {
		return ""
	}
	return fmt.Sprintf("%s  %d  %s", button("Previous", c.PreviousEnabled), c.Page, button("Next", c.NextEnabled))
}

func button(label string, enabled bool) string {
	if enabled {
		return "[" + label + "]"
	}
	return "(" + label + ")"
}
