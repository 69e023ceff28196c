// Package layout assigns gallery cells to terminal columns. Grid and masonry
// only differ in arrangement; both keep the API order of the result set.
package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/yildizm/snapgrid/internal/gallery"
)

// Kind selects a layout policy
type Kind string

const (
	Grid    Kind = "grid"
	Masonry Kind = "masonry"
)

// Breakpoints in terminal columns
const (
	NarrowWidth = 72
	MediumWidth = 110
)

// Cell heights in lines
const (
	GridCellHeight   = 6
	MinMasonryHeight = 4
	MaxMasonryHeight = 12
)

// Page sizes used when search.per_page is not set
const (
	GridPageSize    = 8
	MasonryPageSize = 20
)

// Parse converts a config or flag value to a Kind
func Parse(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Grid, "":
		return Grid, nil
	case Masonry:
		return Masonry, nil
	default:
		return "", fmt.Errorf("unknown layout %q (expected grid or masonry)", s)
	}
}

func (k Kind) String() string {
	return string(k)
}

// Columns returns the column count for a terminal of the given width.
// Both policies share the same breakpoints.
func Columns(_ Kind, width int) int {
	switch {
	case width < NarrowWidth:
		return 1
	case width < MediumWidth:
		return 2
	default:
		return 3
	}
}

// DefaultPageSize returns the number of photos requested per search
func DefaultPageSize(kind Kind) int {
	if kind == Masonry {
		return MasonryPageSize
	}
	return GridPageSize
}

// CellHeight returns the rendered height of a photo cell. Masonry follows the
// aspect ratio; terminal lines are roughly twice as tall as they are wide.
func CellHeight(kind Kind, photo gallery.Photo, width int) int {
	if kind != Masonry {
		return GridCellHeight
	}
	if width <= 0 {
		return MinMasonryHeight
	}
	h := int(math.Round(photo.AspectRatio() * float64(width) / 2))
	return clamp(h, MinMasonryHeight, MaxMasonryHeight)
}

// Arrange distributes item indexes over cols columns. Grid fills row-major;
// masonry appends each item to the shortest column, leftmost on ties.
func Arrange(kind Kind, heights []int, cols int) [][]int {
	if cols < 1 {
		cols = 1
	}
	columns := make([][]int, cols)

	if kind != Masonry {
		for i := range heights {
			columns[i%cols] = append(columns[i%cols], i)
		}
		return columns
	}

	totals := make([]int, cols)
	for i, h := range heights {
		shortest := 0
		for c := 1; c < cols; c++ {
			if totals[c] < totals[shortest] {
				shortest = c
			}
		}
		columns[shortest] = append(columns[shortest], i)
		totals[shortest] += h
	}
	return columns
}

// Locate returns the column and row of item, or ok=false
func Locate(columns [][]int, item int) (col, row int, ok bool) {
	for c, column := range columns {
		for r, idx := range column {
			if idx == item {
				return c, r, true
			}
		}
	}
	return 0, 0, false
}

// Move returns the item reached by stepping dx columns and dy rows from item.
// Moves off the edge stay put; a shorter neighbouring column clamps the row.
func Move(columns [][]int, item, dx, dy int) int {
	c, r, ok := Locate(columns, item)
	if !ok {
		return item
	}

	if dx != 0 {
		nc := c + dx
		if nc < 0 || nc >= len(columns) || len(columns[nc]) == 0 {
			return item
		}
		c = nc
		r = clamp(r, 0, len(columns[c])-1)
	}
	if dy != 0 {
		r = clamp(r+dy, 0, len(columns[c])-1)
	}
	return columns[c][r]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
