package formatter

import (
	"fmt"
	"strings"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# " + headline(report) + "\n\n")
	if !report.GeneratedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))
	}

	f.writeSummaryTable(&b, report)

	if len(report.Photos) == 0 {
		b.WriteString("_No photos found._\n")
		return []byte(b.String()), nil
	}

	f.writePhotoTable(&b, report)
	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *Report) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	b.WriteString(fmt.Sprintf("| Query | %s |\n", escapeMarkdown(report.Term)))
	b.WriteString(fmt.Sprintf("| Fallback query | %t |\n", report.IsDefault))
	b.WriteString(fmt.Sprintf("| Shown | %d |\n", len(report.Photos)))
	b.WriteString(fmt.Sprintf("| Total matches | %s |\n\n", formatNumber(report.Total)))
}

func (f *markdownFormatter) writePhotoTable(b *strings.Builder, report *Report) {
	b.WriteString("## Photos\n\n")
	b.WriteString("| # | Preview | Photographer | Location | Download |\n")
	b.WriteString("|---|---------|--------------|----------|----------|\n")
	for i, p := range report.Photos {
		b.WriteString(fmt.Sprintf("| %d | ![%s](%s) | %s | %s | [full](%s) |\n",
			i,
			escapeMarkdown(p.Title()),
			p.URLs.Small,
			escapeMarkdown(p.User.Name),
			escapeMarkdown(p.User.DisplayLocation()),
			p.URLs.Full,
		))
	}
}

// escapeMarkdown keeps table cells intact
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
