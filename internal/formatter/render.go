package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tablerail/tablerail/internal/registry"
	"github.com/tablerail/tablerail/internal/store"
)

// FormatRow renders one row as display cells, one per field, in field order
func (f *Formatter) FormatRow(row store.Row, fields []registry.Field) []string {
	cells := make([]string, len(fields))

	for i, field := range fields {
		value, ok := row[field.Name]
		if !ok {
			cells[i] = NotAvailable

			continue
		}

		cells[i] = f.FormatCell(value, field.Kind)
	}

	return cells
}

// RenderTable writes rows as an aligned text table with a header line
func (f *Formatter) RenderTable(w io.Writer, fields []registry.Field, rows []store.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	headers := make([]string, len(fields))
	for i, field := range fields {
		headers[i] = strings.ToUpper(field.Name)
	}

	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(f.FormatRow(row, fields), "\t"))
	}

	return tw.Flush()
}

// RenderDetail writes one row as "field: value" lines. Resolved relation
// strings in mapped override the raw foreign key values.
func (f *Formatter) RenderDetail(w io.Writer, fields []registry.Field, row store.Row, mapped map[string]string) {
	width := 0
	for _, field := range fields {
		if len(field.Name) > width {
			width = len(field.Name)
		}
	}

	for _, field := range fields {
		value, ok := mapped[field.Name]
		if !ok {
			value = f.FormatCell(row[field.Name], field.Kind)
		}

		fmt.Fprintf(w, "%-*s  %s\n", width+1, field.Name+":", value)
	}
}
