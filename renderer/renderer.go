// Package renderer turns datasets, assets and projects into markdown, and
// optionally into ANSI for a terminal. It never computes anything: it only
// formats what the core packages hand it.
package renderer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// ANSI renders markdown for a terminal. On any rendering problem the raw
// markdown is returned, which is always readable.
func ANSI(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// builder accumulates markdown. It is a strings.Builder with Printf.
type builder struct {
	strings.Builder
}

// Printf formats according to a format specifier and appends to the builder.
func (b *builder) Printf(format string, args ...any) {
	fmt.Fprintf(&b.Builder, format, args...)
}

// row writes one markdown table row.
func (b *builder) row(cells ...string) {
	b.Printf("| %s |\n", strings.Join(cells, " | "))
}

// sep writes the markdown table separator for n columns.
func (b *builder) sep(n int) {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = "---"
	}
	b.row(cells...)
}
