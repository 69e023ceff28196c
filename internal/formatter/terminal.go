package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/snapgrid/internal/emoji"
)

// terminalFormatter prints results as a tree using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, report)

	if len(report.Photos) == 0 {
		b.WriteString("No photos found.\n")
		return []byte(b.String()), nil
	}

	items := make([]termfmt.TreeItem, 0, len(report.Photos))
	for i, p := range report.Photos {
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%d. %s %s", i, emoji.GetEmoji("camera"), p.Title()),
			Value: p.ID,
			Children: []termfmt.TreeItem{
				{Label: emoji.GetEmoji("user") + " " + p.User.Name, Value: ""},
				{Label: emoji.GetEmoji("location") + " " + p.User.DisplayLocation(), Value: ""},
				{Label: emoji.GetEmoji("download") + " " + p.URLs.Full, Value: "", Last: true},
			},
			Last: i == len(report.Photos)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts))
	b.WriteString("\n")

	return []byte(b.String()), nil
}

// writeHeader writes the boxed title and the result count
func (f *terminalFormatter) writeHeader(b *strings.Builder, report *Report) {
	header := headline(report)
	width := len([]rune(header))

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n")

	fmt.Fprintf(b, "%s %s of %s\n\n", emoji.GetEmoji("search"),
		plural(len(report.Photos), "photo"), formatNumber(report.Total))
}
