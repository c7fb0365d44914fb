package report

import (
	"strings"
	"unicode"
)

// Report kinds, used as the file name prefix.
const (
	KindPrediction    = "Predicao"
	KindPredictionLLM = "Predicao_IA"
	KindRiskAnalysis  = "AR"
)

// Filename returns "<kind>_<name>.html" with name reduced to a safe file name.
func Filename(kind, name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '"' || r == '*' || r == '?' || r == '<' || r == '>' || r == '|':
			return '-'
		case unicode.IsControl(r):
			return -1
		case unicode.IsSpace(r):
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, ".")
	if name == "" {
		name = "relatorio"
	}
	return kind + "_" + name + ".html"
}
