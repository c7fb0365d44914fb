package model

import "strings"

// RiskLevel is the classification of a nitrosamine formation estimate.
type RiskLevel string

// Risk levels.
const (
	RiskLow  RiskLevel = "low"
	RiskHigh RiskLevel = "high"
)

// Label returns the Portuguese label used in reports.
func (l RiskLevel) Label() string {
	switch l {
	case RiskLow:
		return "baixo"
	case RiskHigh:
		return "alto"
	default:
		return string(l)
	}
}

// ParseRiskLevel accepts the English or Portuguese label in any case.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "baixo":
		return RiskLow, nil
	case "high", "alto":
		return RiskHigh, nil
	default:
		return "", InvalidField("nitrosamine_risk")
	}
}

// Assessment is the outcome of comparing a formation estimate against the
// acceptable intake limit.
type Assessment struct {
	LimitNgPerDay float64   `json:"limit_ng_per_day"`
	DoseMgPerDay  float64   `json:"dose_mg_per_day"`
	ComputedPPM   float64   `json:"computed_ppm"`
	FormedPPM     float64   `json:"formed_ppm"`
	Percentage    float64   `json:"percentage"`
	ThresholdPct  float64   `json:"threshold_pct"`
	Level         RiskLevel `json:"level"`
}
