package gallery

// Request is a dispatched search
type Request struct {
	Seq       uint64
	Term      string
	IsDefault bool
}

// Response is the settled outcome of a Request
type Response struct {
	Seq       uint64
	Term      string
	IsDefault bool
	Photos    []Photo
	Err       error
}

// Cell is one grid position. Skeleton cells carry no photo.
type Cell struct {
	Index    int
	Skeleton bool
	Photo    Photo
}

// Store holds the latest result set and the loading flag.
//
// Each Begin takes the next sequence number. Responses and settle events for
// older sequences are ignored, so a slow superseded request can never
// overwrite newer results.
type Store struct {
	results []Photo
	search  SearchState
	loading bool
	seq     uint64
}

// SearchState is the searched term and whether it came from the fallback query
type SearchState struct {
	Query     string
	Term      string
	IsDefault bool
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Begin starts a search and raises the loading flag
func (s *Store) Begin(term string, isDefault bool) Request {
	s.seq++
	s.loading = true
	return Request{Seq: s.seq, Term: term, IsDefault: isDefault}
}

// Resolve applies a response. It reports whether the result set was replaced.
// Failed or superseded responses leave the current results untouched.
func (s *Store) Resolve(resp Response) bool {
	if resp.Seq != s.seq || resp.Err != nil {
		return false
	}
	s.results = append([]Photo(nil), resp.Photos...)
	s.search.Term = resp.Term
	s.search.IsDefault = resp.IsDefault
	return true
}

// Settle lowers the loading flag if seq is still the latest search
func (s *Store) Settle(seq uint64) bool {
	if seq != s.seq {
		return false
	}
	s.loading = false
	return true
}

// Loading reports whether the latest search has not yet settled
func (s *Store) Loading() bool {
	return s.loading
}

// Seq returns the latest dispatched sequence number
func (s *Store) Seq() uint64 {
	return s.seq
}

// Results returns a copy of the current result set
func (s *Store) Results() []Photo {
	return append([]Photo(nil), s.results...)
}

// Len returns the number of photos in the result set
func (s *Store) Len() int {
	return len(s.results)
}

// At returns the photo at index i, if present
func (s *Store) At(i int) (Photo, bool) {
	if i < 0 || i >= len(s.results) {
		return Photo{}, false
	}
	return s.results[i], true
}

// Search returns the last searched term state
func (s *Store) Search() SearchState {
	return s.search
}

// Cells returns skeleton placeholders while loading, otherwise one cell per photo
func (s *Store) Cells(skeletons int) []Cell {
	if s.loading {
		cells := make([]Cell, skeletons)
		for i := range cells {
			cells[i] = Cell{Index: i, Skeleton: true}
		}
		return cells
	}

	cells := make([]Cell, len(s.results))
	for i, p := range s.results {
		cells[i] = Cell{Index: i, Photo: p}
	}
	return cells
}
