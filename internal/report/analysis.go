package report

import (
	"strings"
	"time"

	"github.com/sells-group/nitro-cli/internal/model"
)

type analysisView struct {
	Title       string
	Heading     string
	Product     string
	Total       int
	HighCount   int
	Rows        []analysisRow
	GeneratedAt string
}

type analysisRow struct {
	IFA          string
	Manufacturer string
	Plant        string
	DMFRef       string
	GlobalRisk   string
	Nitrosamine  string
	Level        model.RiskLevel
	LevelLabel   string
}

// RenderRiskAnalysis renders the aggregate risk analysis of product over the
// collected entries.
func RenderRiskAnalysis(product string, entries []model.Entry, now time.Time) (string, error) {
	product = strings.TrimSpace(product)
	if product == "" {
		return "", model.MissingField("product")
	}

	view := analysisView{
		Title:       "Análise de Risco - " + product,
		Heading:     "Análise de Risco de Nitrosaminas",
		Product:     product,
		Total:       len(entries),
		GeneratedAt: now.Format("02/01/2006 15:04"),
	}
	for _, e := range entries {
		row := analysisRow{
			IFA:          e.IFA,
			Manufacturer: e.Manufacturer,
			Plant:        e.Plant,
			DMFRef:       e.DMFRef,
			GlobalRisk:   FormatNumber(e.GlobalRisk),
			Nitrosamine:  "N/A",
			LevelLabel:   "N/A",
		}
		if e.HasNitrosamine() {
			row.Nitrosamine = *e.NitrosamineName
		}
		if e.NitrosamineRisk != nil {
			row.Level = *e.NitrosamineRisk
			row.LevelLabel = row.Level.Label()
			if row.Level == model.RiskHigh {
				view.HighCount++
			}
		}
		view.Rows = append(view.Rows, row)
	}

	return execute(analysisTmpl, view)
}
