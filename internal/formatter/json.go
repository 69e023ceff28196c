package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/snapgrid/internal/gallery"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the document written by the json formatter
type JSONOutput struct {
	Term        string        `json:"term"`
	IsDefault   bool          `json:"is_default"`
	Total       int           `json:"total"`
	Count       int           `json:"count"`
	GeneratedAt time.Time     `json:"generated_at"`
	Photos      []PhotoOutput `json:"photos"`
}

// PhotoOutput is one photo with its grid index
type PhotoOutput struct {
	Index    int          `json:"index"`
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Author   string       `json:"author"`
	Location string       `json:"location"`
	Width    int          `json:"width,omitempty"`
	Height   int          `json:"height,omitempty"`
	URLs     gallery.URLs `json:"urls"`
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	output := &JSONOutput{
		Term:        report.Term,
		IsDefault:   report.IsDefault,
		Total:       report.Total,
		Count:       len(report.Photos),
		GeneratedAt: report.GeneratedAt,
		Photos:      make([]PhotoOutput, 0, len(report.Photos)),
	}

	for i, p := range report.Photos {
		output.Photos = append(output.Photos, PhotoOutput{
			Index:    i,
			ID:       p.ID,
			Title:    p.Title(),
			Author:   p.User.Name,
			Location: p.User.DisplayLocation(),
			Width:    p.Width,
			Height:   p.Height,
			URLs:     p.URLs,
		})
	}

	return json.MarshalIndent(output, "", "  ")
}
