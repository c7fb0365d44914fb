// Package report renders predictions and risk analyses as self-contained HTML
// documents (inline styles, no external assets).
package report

import (
	"embed"
	"html/template"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var (
	predictionTmpl = template.Must(template.ParseFS(templateFS, "templates/base.html.tmpl", "templates/prediction.html.tmpl"))
	analysisTmpl   = template.Must(template.ParseFS(templateFS, "templates/base.html.tmpl", "templates/analysis.html.tmpl"))
)

func execute(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.ExecuteTemplate(&b, "base", data); err != nil {
		return "", eris.Wrap(err, "report: execute template")
	}
	return b.String(), nil
}

// FormatNumber prints a value the way it was read from the table: shortest
// representation, exponent only when needed ("0.0036", "1.4e-05").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatSci prints a value in two-decimal scientific notation ("3.00e+02").
func FormatSci(v float64) string {
	return strconv.FormatFloat(v, 'e', 2, 64)
}

// FormatPercent prints a percentage with up to four significant digits.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64) + "%"
}
