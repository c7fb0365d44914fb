package report

import (
	"fmt"
	"strings"

	"github.com/sells-group/nitro-cli/internal/model"
)

// Narrative writes the conclusion paragraph of a prediction report.
func Narrative(p model.Prediction) string {
	in := p.Input
	a := p.Assessment

	position := "abaixo"
	if a.Level != model.RiskLow {
		position = "acima"
	}

	return fmt.Sprintf(
		"No quadro 1 deste Anexo, foram inseridos valores de pH (%s), pKa (%s), níveis de nitrito (%s), "+
			"quantidade de amina (%s) e temperatura do processo (%s°C), obtendo a quantidade de %s ppb formada. "+
			"Conforme predição teórica de Ashworth e colaboradores, a formação de %s está %s de %s%% da especificação (%s ppm). "+
			"Desta forma, o risco para a formação de %s no IFA %s é %s.",
		strings.TrimSpace(in.PH), FormatNumber(p.PKa), in.Nitrite, in.Amine, in.Temperature,
		FormatNumber(p.PPB),
		in.Nitrosamine, position, FormatNumber(a.ThresholdPct), FormatSci(a.ComputedPPM),
		in.Nitrosamine, in.IFA, a.Level.Label(),
	)
}

// paragraphs splits free text on blank lines, dropping empty blocks.
func paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			out = append(out, block)
		}
	}
	return out
}
