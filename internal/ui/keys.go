package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings for the grid and the viewer
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Open     key.Binding
	Download key.Binding
	Focus    key.Binding
	Prev     key.Binding
	Next     key.Binding
	Close    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Download: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
		Focus:    key.NewBinding(key.WithKeys("tab", "/"), key.WithHelp("tab", "search")),
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Close:    key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// gridKeys is the help.KeyMap shown under the grid
type gridKeys struct{ keyMap }

func (k gridKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Download, k.Focus, k.Help, k.Quit}
}

func (k gridKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Open, k.Download},
		{k.Focus, k.Help, k.Quit},
	}
}

// viewerKeys is the help.KeyMap shown in the viewer
type viewerKeys struct{ keyMap }

func (k viewerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Download, k.Close}
}

func (k viewerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next}, {k.Download, k.Close}}
}
