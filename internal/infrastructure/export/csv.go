package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVRenderer renders documents as RFC 4180 CSV. Sections are written
// sequentially, separated by blank lines, so a multi-section report stays
// readable in a spreadsheet.
type CSVRenderer struct{}

// NewCSVRenderer creates a new CSVRenderer
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// ContentType returns the MIME type for CSV output
func (r *CSVRenderer) ContentType() string {
	return "text/csv"
}

// Extension returns the file extension for CSV output
func (r *CSVRenderer) Extension() string {
	return "csv"
}

// Render writes the document as CSV
func (r *CSVRenderer) Render(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{doc.Title}); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	if doc.Subtitle != "" {
		if err := w.Write([]string{doc.Subtitle}); err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
	}

	for _, section := range doc.Sections {
		if err := w.Write(nil); err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
		if section.Title != "" {
			if err := w.Write([]string{section.Title}); err != nil {
				return nil, fmt.Errorf("failed to write csv: %w", err)
			}
		}
		for _, fact := range section.Facts {
			if err := w.Write([]string{fact.Label, fact.Value}); err != nil {
				return nil, fmt.Errorf("failed to write csv: %w", err)
			}
		}
		if section.Table != nil {
			if err := w.Write(section.Table.Headers); err != nil {
				return nil, fmt.Errorf("failed to write csv: %w", err)
			}
			for _, row := range section.Table.Rows {
				if err := w.Write(row); err != nil {
					return nil, fmt.Errorf("failed to write csv: %w", err)
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
