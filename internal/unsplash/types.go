package unsplash

import "github.com/yildizm/snapgrid/internal/gallery"

// SearchResult is one page of /search/photos
type SearchResult struct {
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Results    []gallery.Photo `json:"results"`
}

// ErrorResponse is the body Unsplash sends with non-success statuses
type ErrorResponse struct {
	Errors []string `json:"errors"`
}
