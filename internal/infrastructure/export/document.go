package export

import "time"

// Document is the renderer-independent shape of an exportable report.
// The report composer fills one of these; each renderer decides how to
// lay it out.
type Document struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Sections    []Section
}

// Section is one titled block of a document
type Section struct {
	Title string
	Facts []Fact
	Table *Table
}

// Fact is a single labeled value
type Fact struct {
	Label string
	Value string
}

// Table is tabular section content
type Table struct {
	Headers []string
	Rows    [][]string
}
