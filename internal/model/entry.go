package model

import "strings"

// Entry is one line of the aggregate risk analysis: an IFA source together
// with its overall and, optionally, nitrosamine-specific risk.
type Entry struct {
	ID              string     `json:"id" yaml:"id,omitempty"`
	IFA             string     `json:"ifa" yaml:"ifa"`
	Manufacturer    string     `json:"manufacturer" yaml:"manufacturer"`
	Plant           string     `json:"plant" yaml:"plant"`
	DMFRef          string     `json:"dmf_ref" yaml:"dmf_ref"`
	GlobalRisk      float64    `json:"global_risk" yaml:"global_risk"`
	NitrosamineName *string    `json:"nitrosamine_name,omitempty" yaml:"nitrosamine_name,omitempty"`
	NitrosamineRisk *RiskLevel `json:"nitrosamine_risk,omitempty" yaml:"nitrosamine_risk,omitempty"`
}

// Validate checks the fields required to place the entry in a report.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.IFA) == "" {
		return MissingField("ifa")
	}
	if e.GlobalRisk < 0 {
		return InvalidField("global_risk")
	}
	if e.NitrosamineRisk != nil {
		if _, err := ParseRiskLevel(string(*e.NitrosamineRisk)); err != nil {
			return err
		}
	}
	return nil
}

// HasNitrosamine reports whether a nitrosamine assessment is attached.
func (e Entry) HasNitrosamine() bool {
	return e.NitrosamineName != nil && strings.TrimSpace(*e.NitrosamineName) != ""
}
