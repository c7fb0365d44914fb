// Package risk compares a predicted nitrosamine formation against the
// acceptable intake limit of the product.
package risk

import (
	"math"
	"strconv"
	"strings"

	"github.com/sells-group/nitro-cli/internal/model"
)

// DefaultThresholdPct is the percentage of the limit at and above which the
// risk is high.
const DefaultThresholdPct = 10.0

// ppbPerPPM converts the reference table's ppb into ppm.
const ppbPerPPM = 1000.0

// Calculator classifies formation estimates against a threshold.
type Calculator struct {
	ThresholdPct float64
}

// NewCalculator returns a Calculator; a non-positive threshold falls back to
// DefaultThresholdPct.
func NewCalculator(thresholdPct float64) Calculator {
	if thresholdPct <= 0 || math.IsNaN(thresholdPct) || math.IsInf(thresholdPct, 0) {
		thresholdPct = DefaultThresholdPct
	}
	return Calculator{ThresholdPct: thresholdPct}
}

// Assess parses limit (ng/day) and dose (mg/day) and classifies ppb.
func (c Calculator) Assess(limit, dose string, ppb float64) (model.Assessment, error) {
	l, err := ParseQuantity(limit)
	if err != nil {
		return model.Assessment{}, model.InvalidField("limit")
	}
	d, err := ParseQuantity(dose)
	if err != nil {
		return model.Assessment{}, model.InvalidField("dose")
	}
	return c.Compute(l, d, ppb)
}

// Compute classifies ppb against the product limit divided by the dose.
//
//	computed_ppm = limit / dose
//	percentage   = (ppb / 1000) / computed_ppm * 100
//
// The risk is low iff percentage < threshold.
func (c Calculator) Compute(limitNgPerDay, doseMgPerDay, ppb float64) (model.Assessment, error) {
	if !finite(limitNgPerDay) || limitNgPerDay <= 0 {
		return model.Assessment{}, model.InvalidField("limit")
	}
	if !finite(doseMgPerDay) || doseMgPerDay <= 0 {
		return model.Assessment{}, model.InvalidField("dose")
	}
	if !finite(ppb) || ppb < 0 {
		return model.Assessment{}, model.InvalidField("ppb")
	}

	computed := limitNgPerDay / doseMgPerDay
	formed := ppb / ppbPerPPM
	pct := formed / computed * 100

	return model.Assessment{
		LimitNgPerDay: limitNgPerDay,
		DoseMgPerDay:  doseMgPerDay,
		ComputedPPM:   computed,
		FormedPPM:     formed,
		Percentage:    pct,
		ThresholdPct:  c.ThresholdPct,
		Level:         c.Classify(pct),
	}, nil
}

// Classify returns the level for a percentage of the limit.
func (c Calculator) Classify(pct float64) model.RiskLevel {
	if pct < c.ThresholdPct {
		return model.RiskLow
	}
	return model.RiskHigh
}

// ParseQuantity parses a user-entered number. Surrounding spaces are ignored
// and a single decimal comma is accepted ("1,5").
func ParseQuantity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, model.ErrInvalidInput
	}
	if !finite(f) {
		return 0, model.ErrInvalidInput
	}
	return f, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
