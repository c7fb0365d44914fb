package model

import "time"

// PredictionInput holds the form values of a prediction request exactly as
// entered. Numeric fields stay strings until validated.
type PredictionInput struct {
	IFA         string `json:"ifa"`
	Nitrosamine string `json:"nitrosamine"`
	Limit       string `json:"limit"`
	Dose        string `json:"dose"`
	PH          string `json:"ph"`
	PKa         string `json:"pka"`
	Nitrite     string `json:"nitrite"`
	Amine       string `json:"amine"`
	Temperature string `json:"temperature"`
}

// Prediction is a completed formation estimate ready for rendering. Generated
// is set when the narrative came from the language model; Illustrative when
// the value came from the bundled sample table.
type Prediction struct {
	Input        PredictionInput `json:"input"`
	PKa          float64         `json:"pka"`
	PPB          float64         `json:"ppb"`
	Assessment   Assessment      `json:"assessment"`
	Narrative    string          `json:"narrative"`
	Generated    bool            `json:"generated"`
	Illustrative bool            `json:"illustrative"`
	CreatedAt    time.Time       `json:"created_at"`
}
