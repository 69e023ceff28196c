// Package ui is the Bubble Tea front end: a search box over a grid or masonry
// gallery with a full-screen viewer.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/snapgrid/internal/config"
	"github.com/yildizm/snapgrid/internal/emoji"
	"github.com/yildizm/snapgrid/internal/gallery"
	"github.com/yildizm/snapgrid/internal/layout"
	"github.com/yildizm/snapgrid/internal/logger"
)

// StatusTimeout is how long a download status stays on screen
const StatusTimeout = 4 * time.Second

// Searcher runs photo searches
type Searcher interface {
	Search(ctx context.Context, term string, perPage int) ([]gallery.Photo, error)
}

// Saver stores a photo and returns where it was written
type Saver interface {
	Download(ctx context.Context, photo gallery.Photo) (string, error)
}

// Options configures the model
type Options struct {
	Gallery gallery.Options
	Layout  layout.Kind
	PerPage int
	Theme   string
	Color   bool
	Updates <-chan config.Update
	Logger  *logger.Logger
}

type focusArea int

const (
	focusInput focusArea = iota
	focusGrid
)

// Model is the top-level Bubble Tea model
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	gallery  *gallery.Gallery
	searcher Searcher
	saver    Saver
	log      *logger.Logger
	updates  <-chan config.Update

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	styles  *Styles
	color   bool

	layout  layout.Kind
	perPage int
	focus   focusArea
	cursor  int
	scroll  int
	width   int
	height  int

	status    string
	statusErr bool
	statusID  int

	quitting bool
}

// NewModel creates the browser model
func NewModel(searcher Searcher, saver Saver, opts Options) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	if opts.Layout == "" {
		opts.Layout = layout.Grid
	}
	if opts.PerPage <= 0 {
		opts.PerPage = layout.DefaultPageSize(opts.Layout)
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewWithCallback("ui", func() bool { return false })
		opts.Logger.SetOutput(nil)
	}
	theme, _ := ThemeByName(opts.Theme)

	input := textinput.New()
	input.Placeholder = "Search photos..."
	input.Prompt = emoji.GetEmoji("search") + " "
	input.CharLimit = 120
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:      ctx,
		cancel:   cancel,
		gallery:  gallery.New(opts.Gallery),
		searcher: searcher,
		saver:    saver,
		log:      opts.Logger,
		updates:  opts.Updates,
		input:    input,
		spinner:  sp,
		help:     help.New(),
		keys:     defaultKeyMap(),
		color:    opts.Color,
		layout:   opts.Layout,
		perPage:  opts.PerPage,
		focus:    focusInput,
		width:    80,
		height:   24,
	}
	m.setTheme(theme)
	return m
}

// Init starts the cursor blink, the spinner, the startup search and the config listener
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.runEffect(m.gallery.Mount()),
		waitForConfig(m.updates),
	)
}

// Update handles incoming messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.keepCursorVisible()
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case debounceMsg:
		return m, m.runEffect(m.gallery.DebounceExpired(msg.tag))
	case searchResultMsg:
		return m.handleSearchResult(msg)
	case loadingDoneMsg:
		m.gallery.SettleLoading(msg.seq)
		return m, nil
	case downloadDoneMsg:
		return m.handleDownloadDone(msg)
	case statusClearMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	case configReloadedMsg:
		return m.handleConfigReload(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runEffect turns a gallery effect into a command
func (m *Model) runEffect(e gallery.Effect) tea.Cmd {
	switch e.Kind {
	case gallery.EffectDebounce:
		tag := e.Tag
		return tea.Tick(e.Delay, func(time.Time) tea.Msg {
			return debounceMsg{tag: tag}
		})
	case gallery.EffectSearch:
		req := m.gallery.BeginSearch(e)
		m.log.DebugWithFields("search dispatched", []logger.Field{
			logger.F("seq", req.Seq), logger.F("term", req.Term), logger.F("default", req.IsDefault),
		})
		return searchCommand(m.ctx, m.searcher, req, m.perPage)
	default:
		return nil
	}
}

func (m *Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	resp := msg.resp
	if resp.Err != nil && m.ctx.Err() == nil {
		m.log.ErrorWithFields("search failed", []logger.Field{
			logger.F("seq", resp.Seq), logger.F("term", resp.Term), logger.Error(resp.Err),
		})
	}

	if m.gallery.ResolveSearch(resp) {
		m.log.DebugWithFields("search applied", []logger.Field{
			logger.F("seq", resp.Seq), logger.Count(len(resp.Photos)),
		})
		m.cursor = 0
		m.scroll = 0
	}

	seq := resp.Seq
	return m, tea.Tick(m.gallery.Options().LoadingDelay, func(time.Time) tea.Msg {
		return loadingDoneMsg{seq: seq}
	})
}

func (m *Model) handleDownloadDone(msg downloadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.ErrorWithFields("download failed", []logger.Field{logger.Error(msg.err)})
		return m, m.setStatus(fmt.Sprintf("%s Download failed: %v", emoji.GetEmoji("error"), msg.err), true)
	}
	m.log.InfoWithFields("photo downloaded", []logger.Field{logger.F("path", msg.path)})
	return m, m.setStatus(fmt.Sprintf("%s Saved %s", emoji.GetEmoji("success"), msg.path), false)
}

func (m *Model) handleConfigReload(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	next := waitForConfig(m.updates)
	if msg.update.Err != nil {
		m.log.WarnWithFields("config reload failed", []logger.Field{logger.Error(msg.update.Err)})
		return m, tea.Batch(next, m.setStatus(emoji.GetEmoji("warning")+" Config reload failed", true))
	}

	cfg := msg.update.Config
	theme, ok := ThemeByName(cfg.UI.Theme)
	if !ok {
		m.log.Warn("unknown theme %q, using default", cfg.UI.Theme)
	}
	m.setTheme(theme)
	m.layout = cfg.LayoutKind()
	m.perPage = cfg.PageSize()
	m.keepCursorVisible()
	m.log.InfoWithFields("config reloaded", []logger.Field{
		logger.F("theme", theme.Name), logger.F("layout", m.layout), logger.F("per_page", m.perPage),
	})

	return m, tea.Batch(next, m.setStatus(emoji.GetEmoji("config")+" Config reloaded", false))
}

func (m *Model) setTheme(theme Theme) {
	m.styles = NewStyles(theme, m.color)
	m.spinner.Style = m.styles.Spinner
}

// setStatus shows text and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusErr = isErr
	id := m.statusID
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}
	if m.gallery.Viewer().IsOpen() {
		return m.handleViewerKey(msg)
	}
	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.gallery.Teardown()
	m.cancel()
	return m, tea.Quit
}

func (m *Model) handleViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Prev):
		m.gallery.Prev()
	case key.Matches(msg, m.keys.Next):
		m.gallery.Next()
	case key.Matches(msg, m.keys.Close):
		if i, ok := m.gallery.Viewer().Index(); ok {
			m.cursor = i
			m.keepCursorVisible()
		}
		m.gallery.Close()
	case key.Matches(msg, m.keys.Download):
		if p, ok := m.gallery.Selected(); ok {
			return m, m.startDownload(p)
		}
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyEsc, tea.KeyEnter, tea.KeyDown:
		m.focusGrid()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.runEffect(m.gallery.SetQuery(m.input.Value())))
}

func (m *Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus):
		m.focus = focusInput
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Open):
		m.gallery.Open(m.cursor)
	case key.Matches(msg, m.keys.Download):
		if p, ok := m.gallery.DownloadTarget(m.cursor); ok {
			return m, m.startDownload(p)
		}
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	}
	return m, nil
}

func (m *Model) focusGrid() {
	m.focus = focusGrid
	m.input.Blur()
}

func (m *Model) startDownload(p gallery.Photo) tea.Cmd {
	m.log.InfoWithFields("download started", []logger.Field{logger.F("photo", p.ID)})
	return tea.Batch(
		m.setStatus(fmt.Sprintf("%s Downloading %s...", emoji.GetEmoji("download"), p.Title()), false),
		downloadCommand(m.ctx, m.saver, p),
	)
}

func (m *Model) moveCursor(dx, dy int) {
	cells := m.gallery.Cells()
	if len(cells) == 0 {
		return
	}
	kind, width := m.layout, m.gridWidth()
	columns := layout.Arrange(kind, m.cellHeights(cells, width), layout.Columns(kind, width))
	m.cursor = layout.Move(columns, m.cursor, dx, dy)
	m.keepCursorVisible()
}

// Gallery exposes the state machine, mainly for tests
func (m *Model) Gallery() *gallery.Gallery {
	return m.gallery
}

// Run starts the browser in the alternate screen and blocks until it exits
func Run(searcher Searcher, saver Saver, opts Options) error {
	m := NewModel(searcher, saver, opts)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
