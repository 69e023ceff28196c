package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/snapgrid/internal/emoji"
)

// renderViewer draws the full-screen viewer. It reports false when the
// viewer index has no photo behind it, in which case the grid is shown.
func (m *Model) renderViewer() (string, bool) {
	photo, ok := m.gallery.Selected()
	if !ok {
		return "", false
	}
	i, _ := m.gallery.Viewer().Index()
	n := len(m.gallery.Results())

	nav := fmt.Sprintf("%s  %d/%d  %s", emoji.GetEmoji("prev"), i+1, n, emoji.GetEmoji("next"))
	width := max(m.width-8, minCellWidth)
	clip := lipgloss.NewStyle().MaxWidth(width)

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Button.Render(nav),
		"",
		clip.Render(m.styles.Heading.Render(photo.Title())),
		"",
		clip.Render(m.styles.Author.Render(emoji.GetEmoji("user")+" "+photo.User.Name)),
		clip.Render(m.styles.Location.Render(emoji.GetEmoji("location")+" "+photo.User.DisplayLocation())),
		"",
		clip.Render(m.styles.Muted.Render(photo.URLs.Regular)),
		"",
		m.styles.Button.Render(emoji.GetEmoji("download")+" Download (d)"),
	)

	frame := m.styles.Viewer.Width(width).Render(body)
	view := lipgloss.Place(m.width, max(m.height-footerHeight, 0), lipgloss.Center, lipgloss.Center, frame)
	return view + "\n" + m.renderFooter(viewerKeys{m.keys}), true
}
