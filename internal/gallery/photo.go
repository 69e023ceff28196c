package gallery

import "strings"

// UnknownLocation is shown when a photographer has no location on file
const UnknownLocation = "Unknown"

// Photo is a single search hit. It is never modified after it is received.
type Photo struct {
	ID             string `json:"id"`
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
	AltDescription string `json:"alt_description"`
	URLs           URLs   `json:"urls"`
	User           User   `json:"user"`
}

// URLs holds the renditions of a photo
type URLs struct {
	Small   string `json:"small"`
	Regular string `json:"regular"`
	Full    string `json:"full"`
}

// User is the photographer attribution
type User struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// DisplayLocation returns the location or UnknownLocation when none is set
func (u User) DisplayLocation() string {
	if strings.TrimSpace(u.Location) == "" {
		return UnknownLocation
	}
	return u.Location
}

// Title returns a printable caption for the photo
func (p Photo) Title() string {
	if desc := strings.TrimSpace(p.AltDescription); desc != "" {
		return desc
	}
	return "Untitled"
}

// AspectRatio returns height/width, or 1 when dimensions are unknown
func (p Photo) AspectRatio() float64 {
	if p.Width <= 0 || p.Height <= 0 {
		return 1
	}
	return float64(p.Height) / float64(p.Width)
}
