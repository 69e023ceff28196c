package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor

	// Gallery colors
	Skeleton lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given [light, dark] colors
func buildTheme(name string, primary, secondary, accent, success, errorColor, border, foreground, muted, skeleton, selected [2]string) Theme {
	return Theme{
		Name:       name,
		Primary:    lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary:  lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Accent:     lipgloss.AdaptiveColor{Light: accent[0], Dark: accent[1]},
		Success:    lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Error:      lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:     lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Foreground: lipgloss.AdaptiveColor{Light: foreground[0], Dark: foreground[1]},
		Muted:      lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Skeleton:   lipgloss.AdaptiveColor{Light: skeleton[0], Dark: skeleton[1]},
		Selected:   lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#263343", "#DCE3EB"}, [2]string{"#72778B", "#9CA3AF"}, [2]string{"#1E40AF", "#3B82F6"},
		[2]string{"#059669", "#10B981"}, [2]string{"#DC2626", "#EF4444"}, [2]string{"#D1D5DB", "#374151"},
		[2]string{"#111827", "#F9FAFB"}, [2]string{"#78716C", "#A8A29E"}, [2]string{"#D1D5DB", "#4B5563"},
		[2]string{"#1E40AF", "#60A5FA"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#333333", "#DDDDDD"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC0000", "#FF4444"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#444444", "#BBBBBB"}, [2]string{"#999999", "#666666"},
		[2]string{"#CC6600", "#FFFF00"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C53030", "#FC8181"}, [2]string{"#E2E8F0", "#2D3748"},
		[2]string{"#2D3748", "#F7FAFC"}, [2]string{"#A0AEC0", "#718096"}, [2]string{"#EDF2F7", "#2D3748"},
		[2]string{"#4A5568", "#CBD5E0"})
)

// ThemeByName returns the named theme, or the default theme and false
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return DefaultTheme, true
	case "high-contrast":
		return HighContrastTheme, true
	case "minimal":
		return MinimalTheme, true
	default:
		return DefaultTheme, false
	}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Heading  lipgloss.Style
	Term     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Spinner  lipgloss.Style
	Input    lipgloss.Style
	InputOn  lipgloss.Style
	Cell     lipgloss.Style
	CellOn   lipgloss.Style
	Skeleton lipgloss.Style
	Author   lipgloss.Style
	Location lipgloss.Style
	Viewer   lipgloss.Style
	Button   lipgloss.Style
}

// NewStyles builds the styles for theme. Without color every style keeps its
// layout (borders, padding) but drops foreground and background colors.
func NewStyles(theme Theme, color bool) *Styles {
	if IsColorDisabled() {
		color = false
	}

	fg := func(s lipgloss.Style, c lipgloss.AdaptiveColor) lipgloss.Style {
		if !color {
			return s
		}
		return s.Foreground(c)
	}
	border := func(s lipgloss.Style, c lipgloss.AdaptiveColor) lipgloss.Style {
		if !color {
			return s
		}
		return s.BorderForeground(c)
	}

	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	return &Styles{
		Theme: theme,

		Title:    fg(lipgloss.NewStyle().Bold(true).Padding(0, 1), theme.Primary),
		Heading:  fg(lipgloss.NewStyle().Bold(true), theme.Primary),
		Term:     fg(lipgloss.NewStyle().Bold(true), theme.Secondary),
		Muted:    fg(lipgloss.NewStyle(), theme.Muted),
		Success:  fg(lipgloss.NewStyle().Bold(true), theme.Success),
		Error:    fg(lipgloss.NewStyle().Bold(true), theme.Error),
		Spinner:  fg(lipgloss.NewStyle(), theme.Accent),
		Input:    border(box, theme.Border),
		InputOn:  border(box, theme.Accent),
		Cell:     border(lipgloss.NewStyle().Border(lipgloss.RoundedBorder()), theme.Border),
		CellOn:   border(lipgloss.NewStyle().Border(lipgloss.ThickBorder()), theme.Selected),
		Skeleton: border(fg(lipgloss.NewStyle().Border(lipgloss.RoundedBorder()), theme.Skeleton), theme.Skeleton),
		Author:   fg(lipgloss.NewStyle().Bold(true), theme.Foreground),
		Location: fg(lipgloss.NewStyle(), theme.Muted),
		Viewer:   border(lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2), theme.Primary),
		Button:   fg(lipgloss.NewStyle().Bold(true).Padding(0, 1), theme.Accent),
	}
}
