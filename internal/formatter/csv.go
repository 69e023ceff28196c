package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// csvFormatter formats photos as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Index",
		"ID",
		"Title",
		"Photographer",
		"Location",
		"Width",
		"Height",
		"Small URL",
		"Regular URL",
		"Full URL",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, p := range report.Photos {
		record := []string{
			strconv.Itoa(i),
			p.ID,
			p.Title(),
			p.User.Name,
			p.User.DisplayLocation(),
			strconv.Itoa(p.Width),
			strconv.Itoa(p.Height),
			p.URLs.Small,
			p.URLs.Regular,
			p.URLs.Full,
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}
