package report

import (
	"strings"

	"github.com/sells-group/nitro-cli/internal/model"
)

// SampleNote warns that the value came from the bundled sample table.
const SampleNote = "Atenção: valores ilustrativos. A tabela de referência embutida não reproduz a predição publicada de Ashworth e colaboradores; " +
	"configure reference.path com a tabela oficial antes de usar este resultado."

type predictionView struct {
	Title       string
	Heading     string
	Paragraphs  []string
	Generated   bool
	SampleNote  string
	PH          string
	PKa         string
	Nitrite     string
	Amine       string
	Temperature string
	Dose        string
	Limit       string
	PPB         string
	ComputedPPM string
	Percentage  string
	Level       model.RiskLevel
	LevelLabel  string
}

// RenderPrediction renders the prediction annex for one IFA. When the
// narrative is empty the standard paragraph is generated.
func RenderPrediction(p model.Prediction) (string, error) {
	text := p.Narrative
	if strings.TrimSpace(text) == "" {
		text = Narrative(p)
	}

	in := p.Input
	a := p.Assessment
	note := ""
	if p.Illustrative {
		note = SampleNote
	}
	return execute(predictionTmpl, predictionView{
		Title:       "Anexo Predição - " + in.IFA,
		Heading:     "Relatório de Predição de Nitrosaminas",
		Paragraphs:  paragraphs(text),
		Generated:   p.Generated,
		SampleNote:  note,
		PH:          strings.TrimSpace(in.PH),
		PKa:         FormatNumber(p.PKa),
		Nitrite:     in.Nitrite,
		Amine:       in.Amine,
		Temperature: in.Temperature,
		Dose:        FormatNumber(a.DoseMgPerDay),
		Limit:       FormatNumber(a.LimitNgPerDay),
		PPB:         FormatNumber(p.PPB),
		ComputedPPM: FormatSci(a.ComputedPPM),
		Percentage:  FormatPercent(a.Percentage),
		Level:       a.Level,
		LevelLabel:  a.Level.Label(),
	})
}
