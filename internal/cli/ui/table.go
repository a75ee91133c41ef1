package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Table renders aligned columnar output for terminal display.
type Table struct {
	headers []string
	rows    [][]string
	noColor bool
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// DisableColor turns off ANSI styling for the rendered output.
func (t *Table) DisableColor() {
	t.noColor = true
}

// AddRow appends a row. Rows shorter than the header count are padded
// with empty cells; longer rows are truncated.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	t.rows = append(t.rows, row)
}

// Render produces the formatted table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	bold := color.New(color.Bold)
	if t.noColor {
		bold.DisableColor()
	}
	headerCells := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerCells[i] = bold.Sprint(padRight(h, widths[i]))
	}
	b.WriteString(strings.Join(headerCells, "  "))
	b.WriteString("\n")

	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("\n")

	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = padRight(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteString("\n")
	}

	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// KeyValueList renders aligned "key: value" pairs, in the order given.
func KeyValueList(pairs [][2]string, noColor bool) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}

	bold := color.New(color.Bold)
	if noColor {
		bold.DisableColor()
	}

	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s  %s\n", bold.Sprint(padRight(p[0]+":", width+1)), p[1])
	}
	return b.String()
}
