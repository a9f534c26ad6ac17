package export

import (
	"bytes"
	"fmt"
	"html/template"
)

// reportTemplate lays out a document for print. Kept intentionally plain so
// headless Chrome renders it deterministically.
const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; color: #1a1a2e; margin: 32px; }
h1 { font-size: 22px; margin-bottom: 2px; }
h2 { font-size: 15px; margin-top: 28px; border-bottom: 2px solid #2b6cb0; padding-bottom: 4px; }
.subtitle { color: #555; font-size: 12px; }
.generated { color: #888; font-size: 10px; margin-top: 4px; }
table { border-collapse: collapse; width: 100%; margin-top: 8px; font-size: 11px; }
th { background: #edf2f7; text-align: left; padding: 5px 8px; border: 1px solid #cbd5e0; }
td { padding: 4px 8px; border: 1px solid #e2e8f0; }
tr:nth-child(even) td { background: #f7fafc; }
.facts { margin-top: 8px; font-size: 12px; }
.facts dt { font-weight: 600; float: left; clear: left; width: 220px; }
.facts dd { margin: 0 0 4px 230px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Subtitle}}<div class="subtitle">{{.Subtitle}}</div>{{end}}
<div class="generated">Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</div>
{{range .Sections}}
<h2>{{.Title}}</h2>
{{if .Facts}}<dl class="facts">
{{range .Facts}}<dt>{{.Label}}</dt><dd>{{.Value}}</dd>
{{end}}</dl>{{end}}
{{if .Table}}<table>
<tr>{{range .Table.Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>{{end}}
{{end}}
</body>
</html>`

// HTMLRenderer renders documents as standalone HTML pages
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates a new HTMLRenderer
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render writes the document as HTML
func (r *HTMLRenderer) Render(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.Bytes(), nil
}
