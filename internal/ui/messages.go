package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/snapgrid/internal/config"
	"github.com/yildizm/snapgrid/internal/gallery"
)

// debounceMsg fires when a debounce timer started with tag expires
type debounceMsg struct {
	tag int
}

// searchResultMsg carries the settled outcome of a dispatched search
type searchResultMsg struct {
	resp gallery.Response
}

// loadingDoneMsg fires once the trailing loading delay of seq has passed
type loadingDoneMsg struct {
	seq uint64
}

type downloadDoneMsg struct {
	path string
	err  error
}

// statusClearMsg clears the status line if id is still current
type statusClearMsg struct {
	id int
}

type configReloadedMsg struct {
	update config.Update
}

// searchCommand runs req against searcher and reports the response
func searchCommand(ctx context.Context, searcher Searcher, req gallery.Request, perPage int) tea.Cmd {
	return func() tea.Msg {
		photos, err := searcher.Search(ctx, req.Term, perPage)
		return searchResultMsg{resp: gallery.Response{
			Seq:       req.Seq,
			Term:      req.Term,
			IsDefault: req.IsDefault,
			Photos:    photos,
			Err:       err,
		}}
	}
}

func downloadCommand(ctx context.Context, saver Saver, photo gallery.Photo) tea.Cmd {
	return func() tea.Msg {
		path, err := saver.Download(ctx, photo)
		return downloadDoneMsg{path: path, err: err}
	}
}

// waitForConfig blocks on the next watcher update. A closed channel ends the loop.
func waitForConfig(updates <-chan config.Update) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return configReloadedMsg{update: u}
	}
}
