// Package formatter renders one-shot search results for the CLI.
package formatter

import (
	"fmt"
	"time"

	"github.com/yildizm/snapgrid/internal/gallery"
)

// Report is a completed search ready for output
type Report struct {
	Term        string
	IsDefault   bool
	Total       int
	Photos      []gallery.Photo
	GeneratedAt time.Time
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// New returns the formatter for format: text, json, markdown or csv
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use text, json, markdown or csv)", format)
	}
}
