// Package gallery holds the photo search state machine: the debounced query,
// the fenced result store and the wrap-around viewer. Nothing in here does I/O;
// callers turn the returned effects and requests into timers and HTTP calls.
package gallery

import "time"

// Defaults used when Options fields are zero
const (
	DefaultQuery        = "africans"
	DefaultDebounce     = 500 * time.Millisecond
	DefaultLoadingDelay = time.Second
	DefaultSkeletons    = 8
)

// Options configures a Gallery
type Options struct {
	DefaultQuery string
	Debounce     time.Duration
	LoadingDelay time.Duration
	Skeletons    int
}

func (o Options) withDefaults() Options {
	if o.DefaultQuery == "" {
		o.DefaultQuery = DefaultQuery
	}
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.LoadingDelay <= 0 {
		o.LoadingDelay = DefaultLoadingDelay
	}
	if o.Skeletons <= 0 {
		o.Skeletons = DefaultSkeletons
	}
	return o
}

// Gallery is the single state object owned by the top-level view
type Gallery struct {
	opts   Options
	query  *QueryController
	store  *Store
	viewer Viewer
}

// New creates a gallery
func New(opts Options) *Gallery {
	opts = opts.withDefaults()
	return &Gallery{
		opts:  opts,
		query: NewQueryController(opts.DefaultQuery, opts.Debounce),
		store: NewStore(),
	}
}

// Options returns the effective options
func (g *Gallery) Options() Options {
	return g.opts
}

// Mount returns the startup search effect
func (g *Gallery) Mount() Effect {
	return g.query.Mount()
}

// SetQuery forwards an input change to the query controller
func (g *Gallery) SetQuery(q string) Effect {
	return g.query.SetQuery(q)
}

// DebounceExpired forwards a fired debounce timer
func (g *Gallery) DebounceExpired(tag int) Effect {
	return g.query.Expire(tag)
}

// Teardown cancels any pending debounce timer
func (g *Gallery) Teardown() {
	g.query.Cancel()
}

// BeginSearch dispatches a search for a search effect
func (g *Gallery) BeginSearch(e Effect) Request {
	return g.store.Begin(e.Term, e.IsDefault)
}

// ResolveSearch applies a settled response and keeps the viewer inside the new set
func (g *Gallery) ResolveSearch(resp Response) bool {
	if !g.store.Resolve(resp) {
		return false
	}
	g.viewer = g.viewer.fit(g.store.Len())
	return true
}

// SettleLoading lowers the loading flag for seq once the trailing delay has passed
func (g *Gallery) SettleLoading(seq uint64) bool {
	return g.store.Settle(seq)
}

// Loading reports whether skeletons should be shown
func (g *Gallery) Loading() bool {
	return g.store.Loading()
}

// State returns the query and search state
func (g *Gallery) State() SearchState {
	s := g.store.Search()
	s.Query = g.query.Query()
	return s
}

// Heading returns the search term to announce, or "" for default results
func (g *Gallery) Heading() string {
	s := g.store.Search()
	if s.IsDefault || s.Term == "" {
		return ""
	}
	return s.Term
}

// Results returns a copy of the current result set
func (g *Gallery) Results() []Photo {
	return g.store.Results()
}

// Cells returns the cells to render
func (g *Gallery) Cells() []Cell {
	return g.store.Cells(g.opts.Skeletons)
}

// Open opens the viewer on the clicked cell. Skeletons cannot be opened.
func (g *Gallery) Open(cell int) bool {
	if g.store.Loading() {
		return false
	}
	g.viewer = g.viewer.Open(cell, g.store.Len())
	return g.viewer.IsOpen()
}

// Next moves the viewer forward with wrap-around
func (g *Gallery) Next() {
	g.viewer = g.viewer.Next(g.store.Len())
}

// Prev moves the viewer back with wrap-around
func (g *Gallery) Prev() {
	g.viewer = g.viewer.Prev(g.store.Len())
}

// Close closes the viewer
func (g *Gallery) Close() {
	g.viewer = g.viewer.Close()
}

// Viewer returns the viewer state
func (g *Gallery) Viewer() Viewer {
	return g.viewer
}

// Selected returns the photo under the viewer. It is false when the viewer is
// closed or the index no longer exists.
func (g *Gallery) Selected() (Photo, bool) {
	i, open := g.viewer.Index()
	if !open {
		return Photo{}, false
	}
	return g.store.At(i)
}

// DownloadTarget returns the photo behind grid cell i. The grid download
// action is bound to the cell itself, never to the viewer selection.
func (g *Gallery) DownloadTarget(cell int) (Photo, bool) {
	if g.store.Loading() {
		return Photo{}, false
	}
	return g.store.At(cell)
}
