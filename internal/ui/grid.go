package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/snapgrid/internal/emoji"
	"github.com/yildizm/snapgrid/internal/gallery"
	"github.com/yildizm/snapgrid/internal/layout"
)

// Screen rows taken by chrome around the grid
const (
	headerHeight = 6 // title, input box, heading
	footerHeight = 2 // status, help
	minCellWidth = 16
)

// View renders the current frame
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.gallery.Viewer().IsOpen() {
		if view, ok := m.renderViewer(); ok {
			return view
		}
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderFooter(gridKeys{m.keys}))
	return b.String()
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render(emoji.GetEmoji("camera") + " snapgrid")
	if m.gallery.Loading() {
		title += " " + m.spinner.View()
	}

	box := m.styles.Input
	if m.focus == focusInput {
		box = m.styles.InputOn
	}
	input := box.Width(max(m.width-4, 10)).Render(m.input.View())

	heading := ""
	if term := m.gallery.Heading(); term != "" {
		heading = m.styles.Heading.Render("Search results for ") + m.styles.Term.Render(`"`+term+`"`)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, input, heading)
}

func (m *Model) renderFooter(keys help.KeyMap) string {
	status := ""
	if m.status != "" {
		style := m.styles.Success
		if m.statusErr {
			style = m.styles.Error
		}
		status = style.Render(m.status)
	}
	return status + "\n" + m.help.View(keys)
}

// renderBody renders the cells and slices out the visible rows
func (m *Model) renderBody() string {
	cells := m.gallery.Cells()
	if len(cells) == 0 {
		return m.styles.Muted.Render("No photos found.")
	}

	lines := strings.Split(m.renderGrid(cells), "\n")
	viewport := m.viewportHeight()
	start := min(m.scroll, max(len(lines)-viewport, 0))
	end := min(start+viewport, len(lines))
	return strings.Join(lines[start:end], "\n")
}

func (m *Model) renderGrid(cells []gallery.Cell) string {
	width := m.gridWidth()
	cols := layout.Columns(m.layout, width)
	colWidth := max(width/cols, minCellWidth)
	heights := m.cellHeights(cells, width)
	columns := layout.Arrange(m.layout, heights, cols)

	rendered := make([]string, 0, len(columns))
	for _, column := range columns {
		boxes := make([]string, 0, len(column))
		for _, idx := range column {
			boxes = append(boxes, m.renderCell(cells[idx], colWidth, heights[idx], idx == m.cursor))
		}
		rendered = append(rendered, lipgloss.JoinVertical(lipgloss.Left, boxes...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderCell draws one box of the given outer size
func (m *Model) renderCell(cell gallery.Cell, width, height int, focused bool) string {
	innerW := max(width-2, 1)
	innerH := max(height-2, 1)

	if cell.Skeleton {
		row := strings.Repeat("░", innerW)
		rows := make([]string, innerH)
		for i := range rows {
			rows[i] = row
		}
		return m.styles.Skeleton.Width(innerW).Height(innerH).Render(strings.Join(rows, "\n"))
	}

	clip := lipgloss.NewStyle().MaxWidth(innerW)
	p := cell.Photo
	content := []string{
		clip.Render(m.styles.Author.Render(emoji.GetEmoji("user") + " " + p.User.Name)),
		clip.Render(m.styles.Location.Render(emoji.GetEmoji("location") + " " + p.User.DisplayLocation())),
		clip.Render(m.styles.Muted.Render(p.Title())),
	}
	if len(content) > innerH {
		content = content[:innerH]
	}

	style := m.styles.Cell
	if focused && m.focus == focusGrid {
		style = m.styles.CellOn
	}
	return style.Width(innerW).Height(innerH).Render(strings.Join(content, "\n"))
}

// cellHeights returns the outer height of every cell for the current layout
func (m *Model) cellHeights(cells []gallery.Cell, width int) []int {
	colWidth := max(width/layout.Columns(m.layout, width), minCellWidth)
	heights := make([]int, len(cells))
	for i, c := range cells {
		if c.Skeleton {
			heights[i] = layout.GridCellHeight
			continue
		}
		heights[i] = layout.CellHeight(m.layout, c.Photo, colWidth)
	}
	return heights
}

func (m *Model) gridWidth() int {
	return max(m.width, minCellWidth)
}

func (m *Model) viewportHeight() int {
	return max(m.height-headerHeight-footerHeight, layout.GridCellHeight)
}

// keepCursorVisible scrolls so the focused cell is fully on screen
func (m *Model) keepCursorVisible() {
	cells := m.gallery.Cells()
	if len(cells) == 0 {
		m.cursor, m.scroll = 0, 0
		return
	}
	m.cursor = min(max(m.cursor, 0), len(cells)-1)

	width := m.gridWidth()
	heights := m.cellHeights(cells, width)
	columns := layout.Arrange(m.layout, heights, layout.Columns(m.layout, width))
	col, row, ok := layout.Locate(columns, m.cursor)
	if !ok {
		return
	}

	top := 0
	for _, idx := range columns[col][:row] {
		top += heights[idx]
	}
	bottom := top + heights[m.cursor]

	viewport := m.viewportHeight()
	if top < m.scroll {
		m.scroll = top
	}
	if bottom > m.scroll+viewport {
		m.scroll = bottom - viewport
	}
}
