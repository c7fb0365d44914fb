// Package model holds the domain types shared across packages and the error
// kinds surfaced to the user.
package model

import (
	"errors"

	"github.com/rotisserie/eris"
)

// Error kinds surfaced to the user. Callers wrap them with context and test
// with eris.Is.
var (
	// ErrInvalidInput marks a non-numeric or out-of-range field.
	ErrInvalidInput = eris.New("invalid input")
	// ErrNoMatch marks a parameter combination absent from the reference table.
	ErrNoMatch = eris.New("no matching reference row")
	// ErrMissingRequiredField marks a blank mandatory field.
	ErrMissingRequiredField = eris.New("missing required field")
)

// FieldError names the offending field of an InvalidInput or
// MissingRequiredField error.
type FieldError struct {
	Field string
	Kind  error
}

func (e *FieldError) Error() string {
	return e.Kind.Error() + ": " + e.Field
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

// InvalidField returns an ErrInvalidInput error for field.
func InvalidField(field string) error {
	return &FieldError{Field: field, Kind: ErrInvalidInput}
}

// MissingField returns an ErrMissingRequiredField error for field.
func MissingField(field string) error {
	return &FieldError{Field: field, Kind: ErrMissingRequiredField}
}

// fieldLabels maps field keys to the labels shown on the form.
var fieldLabels = map[string]string{
	"ifa":              "IFA",
	"nitrosamine":      "Nitrosamina",
	"limit":            "Limite de Ingestão Diário ng/dia",
	"dose":             "Dose Máxima Diária mg/dia",
	"ph":               "pH",
	"pka":              "pKa",
	"nitrite":          "Níveis de Nitrito",
	"amine":            "Quantidade de Amina",
	"temperature":      "Temperatura °C",
	"product":          "Produto",
	"manufacturer":     "Fabricante",
	"plant":            "Planta",
	"dmf_ref":          "Referência DMF",
	"global_risk":      "Risco Global",
	"nitrosamine_risk": "Risco da Nitrosamina",
}

// UserMessage maps an error to the message shown to the user. Unknown errors
// get a generic message so internals never leak to the page.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	field := ""
	var fe *FieldError
	if errors.As(err, &fe) {
		field = fieldLabels[fe.Field]
		if field == "" {
			field = fe.Field
		}
	}
	switch {
	case eris.Is(err, ErrNoMatch):
		return "Combinação inválida. Verifique os valores informados."
	case eris.Is(err, ErrMissingRequiredField):
		if field != "" {
			return "Campo obrigatório não preenchido: " + field + "."
		}
		return "Preencha todos os campos obrigatórios."
	case eris.Is(err, ErrInvalidInput):
		if field != "" {
			return "Valor inválido no campo " + field + "."
		}
		return "Valores inválidos. Verifique os campos numéricos."
	default:
		return "Não foi possível gerar o relatório. Tente novamente."
	}
}
