package gallery

// Viewer is the carousel state. The zero value is closed.
//
// All transitions take the current result count n and return a new value,
// so the state machine can be exercised without any rendering.
type Viewer struct {
	index int
	open  bool
}

// Open selects index i. Out of range indices leave the viewer closed.
func (v Viewer) Open(i, n int) Viewer {
	if i < 0 || i >= n {
		return Viewer{}
	}
	return Viewer{index: i, open: true}
}

// Next advances one photo, wrapping from the last index to 0
func (v Viewer) Next(n int) Viewer {
	if !v.open || n <= 0 {
		return v
	}
	if v.index < n-1 {
		return Viewer{index: v.index + 1, open: true}
	}
	return Viewer{index: 0, open: true}
}

// Prev steps back one photo, wrapping from 0 to the last index
func (v Viewer) Prev(n int) Viewer {
	if !v.open || n <= 0 {
		return v
	}
	if v.index > 0 {
		return Viewer{index: v.index - 1, open: true}
	}
	return Viewer{index: n - 1, open: true}
}

// Close returns a closed viewer
func (v Viewer) Close() Viewer {
	return Viewer{}
}

// Index returns the selected index and whether the viewer is open
func (v Viewer) Index() (int, bool) {
	return v.index, v.open
}

// IsOpen reports whether a photo is selected
func (v Viewer) IsOpen() bool {
	return v.open
}

// fit closes the viewer when the selection no longer exists in a set of n photos
func (v Viewer) fit(n int) Viewer {
	if v.open && v.index >= n {
		return Viewer{}
	}
	return v
}
