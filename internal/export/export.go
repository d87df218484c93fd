// Package export renders completed screenings into downloadable report
// documents. It is a sink: it reads a stored screening and never feeds
// anything back into the screening pipeline.
package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ocuscreen/ocuscreen/pkg/models"
)

// Exporter renders one screening as a downloadable document.
type Exporter interface {
	Render(w io.Writer, s *models.Screening) error
	ContentType() string
	Filename(s *models.Screening) string
}

// HTMLExporter renders a self-contained HTML report.
type HTMLExporter struct {
	tmpl *template.Template
}

// NewHTMLExporter parses the report template once up front.
func NewHTMLExporter() (*HTMLExporter, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"percent": func(p float64) string { return fmt.Sprintf("%.1f%%", p*100) },
	}).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &HTMLExporter{tmpl: tmpl}, nil
}

func (e *HTMLExporter) ContentType() string { return "text/html; charset=utf-8" }

func (e *HTMLExporter) Filename(s *models.Screening) string {
	return fmt.Sprintf("screening-%s.html", s.ID)
}

// Render writes the report for s to w.
func (e *HTMLExporter) Render(w io.Writer, s *models.Screening) error {
	if err := e.tmpl.Execute(w, s); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Screening Report {{.ID}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; color: #1a1a1a; }
h1 { font-size: 1.4rem; }
.category { display: inline-block; padding: 0.2rem 0.8rem; border-radius: 1rem; color: #fff; }
.category.positive { background: #c0392b; }
.category.negative { background: #27ae60; }
.category.inconclusive { background: #7f8c8d; }
table { border-collapse: collapse; width: 100%; margin-top: 0.5rem; }
th, td { text-align: left; padding: 0.3rem 0.6rem; border-bottom: 1px solid #ddd; }
footer { margin-top: 2rem; font-size: 0.8rem; color: #888; }
</style>
</head>
<body>
<h1>Eye Screening Report</h1>
<p>
<span class="category {{.Category}}">{{.Category}}</span>
&nbsp;{{.EffectiveLabel}} at {{.Percent}}% confidence
</p>

<h2>Interpretation</h2>
<p>{{.Interpretation}}</p>

<h2>Classification Breakdown</h2>
<p>{{.Visualization}}</p>
<table>
<tr><th>Label</th><th>Probability</th></tr>
{{range .Breakdown}}<tr><td>{{.Label}}</td><td>{{percent .Probability}}</td></tr>
{{end}}</table>

<h2>Next Steps</h2>
<p>{{.NextSteps}}</p>

<footer>
Report {{.ID}} · generated {{.CreatedAt.Format "2006-01-02 15:04 MST"}} · provider {{.Provider}} ({{.Model}})<br>
This is an automated screening result, not a medical diagnosis.
</footer>
</body>
</html>
`
